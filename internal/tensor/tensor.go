// Package tensor provides the dense float64 tensor type underlying all
// inference computations in Lumen.
//
// The estimators work on small-to-medium batched log-probability tensors, so
// a single dtype and a flat row-major layout keep the surface minimal:
//   - Tensor: shape + contiguous float64 data
//   - creation helpers: Zeros, Ones, Full, Scalar, FromSlice
//   - value kernels in ops.go: element-wise arithmetic with scalar broadcast,
//     Gather and Expand (used both by forward passes and by detached
//     downstream-cost arithmetic in the estimators)
package tensor

import "fmt"

// Tensor is a dense row-major float64 tensor.
//
// Tensors are used both as differentiable graph nodes (when produced through
// the autodiff tape) and as plain value holders (detached computations).
// Identity matters: the autodiff tape keys gradients by *Tensor pointer.
type Tensor struct {
	shape Shape
	data  []float64
}

// New creates a zero-filled tensor with the given shape.
func New(shape Shape) *Tensor {
	if err := shape.Validate(); err != nil {
		panic(err)
	}
	return &Tensor{
		shape: shape.Clone(),
		data:  make([]float64, shape.NumElements()),
	}
}

// FromSlice creates a tensor from existing data. The data is copied.
func FromSlice(data []float64, shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, shape.NumElements())
	}
	t := New(shape)
	copy(t.data, data)
	return t, nil
}

// Shape returns the tensor's shape. Callers must not mutate it.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// Data returns the underlying data slice.
func (t *Tensor) Data() []float64 {
	return t.data
}

// NumElements returns the total element count.
func (t *Tensor) NumElements() int {
	return len(t.data)
}

// IsScalar reports whether the tensor holds exactly one element.
// Scalar tensors broadcast against any shape in the binary kernels.
func (t *Tensor) IsScalar() bool {
	return len(t.data) == 1
}

// Item returns the single element of a scalar tensor.
func (t *Tensor) Item() float64 {
	if !t.IsScalar() {
		panic(fmt.Sprintf("Item: tensor has %d elements, want 1", len(t.data)))
	}
	return t.data[0]
}

// Clone returns a deep copy sharing no storage with t.
func (t *Tensor) Clone() *Tensor {
	c := New(t.shape)
	copy(c.data, t.data)
	return c
}

// Reshape returns a view-copy of t with a new shape of equal element count.
func (t *Tensor) Reshape(shape Shape) *Tensor {
	if shape.NumElements() != len(t.data) {
		panic(fmt.Sprintf("Reshape: %v has %d elements, want %d for %v",
			t.shape, len(t.data), shape.NumElements(), shape))
	}
	c := t.Clone()
	c.shape = shape.Clone()
	return c
}

func (t *Tensor) String() string {
	if len(t.data) <= 8 {
		return fmt.Sprintf("Tensor(%v, %v)", t.shape, t.data)
	}
	return fmt.Sprintf("Tensor(%v, %v...)", t.shape, t.data[:8])
}
