package tensor

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Binary kernels operate on equal shapes, or broadcast a one-element tensor
// against any shape. Anything richer (general NumPy broadcasting) is handled
// explicitly via Expand, which keeps gradient bookkeeping trivial.

func checkBinary(a, b *Tensor) {
	if a.shape.Equal(b.shape) || a.IsScalar() || b.IsScalar() {
		return
	}
	panic(fmt.Sprintf("shape mismatch: %v vs %v (only equal shapes or scalar broadcast)",
		a.shape, b.shape))
}

// outShape returns the result shape for a binary op under scalar broadcast.
func outShape(a, b *Tensor) Shape {
	if a.IsScalar() && !b.IsScalar() {
		return b.shape
	}
	return a.shape
}

func binary(a, b *Tensor, f func(x, y float64) float64) *Tensor {
	checkBinary(a, b)
	out := New(outShape(a, b))
	switch {
	case a.IsScalar() && !b.IsScalar():
		x := a.data[0]
		for i, y := range b.data {
			out.data[i] = f(x, y)
		}
	case b.IsScalar() && !a.IsScalar():
		y := b.data[0]
		for i, x := range a.data {
			out.data[i] = f(x, y)
		}
	default:
		for i := range a.data {
			out.data[i] = f(a.data[i], b.data[i])
		}
	}
	return out
}

// Add computes a + b element-wise.
func Add(a, b *Tensor) *Tensor {
	checkBinary(a, b)
	if a.shape.Equal(b.shape) {
		out := a.Clone()
		floats.Add(out.data, b.data)
		return out
	}
	return binary(a, b, func(x, y float64) float64 { return x + y })
}

// Sub computes a - b element-wise.
func Sub(a, b *Tensor) *Tensor {
	checkBinary(a, b)
	if a.shape.Equal(b.shape) {
		out := a.Clone()
		floats.Sub(out.data, b.data)
		return out
	}
	return binary(a, b, func(x, y float64) float64 { return x - y })
}

// Mul computes a * b element-wise.
func Mul(a, b *Tensor) *Tensor {
	checkBinary(a, b)
	if a.shape.Equal(b.shape) {
		out := a.Clone()
		floats.Mul(out.data, b.data)
		return out
	}
	return binary(a, b, func(x, y float64) float64 { return x * y })
}

// Div computes a / b element-wise.
func Div(a, b *Tensor) *Tensor {
	checkBinary(a, b)
	if a.shape.Equal(b.shape) {
		out := a.Clone()
		floats.Div(out.data, b.data)
		return out
	}
	return binary(a, b, func(x, y float64) float64 { return x / y })
}

// Neg computes -t element-wise.
func Neg(t *Tensor) *Tensor {
	out := t.Clone()
	floats.Scale(-1, out.data)
	return out
}

// Scale computes c * t element-wise.
func Scale(t *Tensor, c float64) *Tensor {
	out := t.Clone()
	floats.Scale(c, out.data)
	return out
}

// Shift computes t + c element-wise.
func Shift(t *Tensor, c float64) *Tensor {
	out := t.Clone()
	floats.AddConst(c, out.data)
	return out
}

// Log computes the element-wise natural logarithm.
func Log(t *Tensor) *Tensor {
	out := New(t.shape)
	for i, v := range t.data {
		out.data[i] = math.Log(v)
	}
	return out
}

// Exp computes the element-wise exponential.
func Exp(t *Tensor) *Tensor {
	out := New(t.shape)
	for i, v := range t.data {
		out.data[i] = math.Exp(v)
	}
	return out
}

// Sum returns the sum of all elements.
func Sum(t *Tensor) float64 {
	return floats.Sum(t.data)
}

// Mean returns the arithmetic mean of all elements.
func Mean(t *Tensor) float64 {
	return floats.Sum(t.data) / float64(len(t.data))
}

// Gather selects rows of t along the leading dimension.
// For t of shape [d0, rest...] and k indices, the result is [k, rest...].
// Indices must lie in [0, d0).
func Gather(t *Tensor, indices []int) *Tensor {
	if len(t.shape) == 0 {
		panic("Gather: scalar tensor has no leading dimension")
	}
	d0 := t.shape[0]
	rowLen := len(t.data) / d0
	shape := t.shape.Clone()
	shape[0] = len(indices)
	out := New(shape)
	for i, idx := range indices {
		if idx < 0 || idx >= d0 {
			panic(fmt.Sprintf("Gather: index %d out of range [0, %d)", idx, d0))
		}
		copy(out.data[i*rowLen:(i+1)*rowLen], t.data[idx*rowLen:(idx+1)*rowLen])
	}
	return out
}

// ScatterAddRows adds each row of src into dst at the given leading indices.
// Inverse of Gather; used by its backward pass. Modifies dst in place.
func ScatterAddRows(dst, src *Tensor, indices []int) {
	d0 := dst.shape[0]
	rowLen := len(dst.data) / d0
	for i, idx := range indices {
		floats.Add(dst.data[idx*rowLen:(idx+1)*rowLen], src.data[i*rowLen:(i+1)*rowLen])
	}
}

// Expand broadcasts t to a larger shape. Dimensions are right-aligned; each
// dimension of t must either equal the target dimension or be 1 (missing
// leading dimensions are treated as 1).
func Expand(t *Tensor, shape Shape) *Tensor {
	src := t.shape
	pad := len(shape) - len(src)
	if pad < 0 {
		panic(fmt.Sprintf("Expand: cannot expand %v to smaller rank %v", src, shape))
	}
	for i, d := range src {
		if d != shape[pad+i] && d != 1 {
			panic(fmt.Sprintf("Expand: dim %d of %v incompatible with %v", i, src, shape))
		}
	}
	out := New(shape)
	srcStrides := src.ComputeStrides()
	outStrides := shape.ComputeStrides()
	for i := range out.data {
		si := 0
		for d := 0; d < len(src); d++ {
			idx := (i / outStrides[pad+d]) % shape[pad+d]
			if src[d] != 1 {
				si += idx * srcStrides[d]
			}
		}
		out.data[i] = t.data[si]
	}
	return out
}

// SumTo reduces t down to the given shape by summing over the dimensions
// Expand broadcast. Inverse of Expand; used by its backward pass.
func SumTo(t *Tensor, shape Shape) *Tensor {
	if t.shape.Equal(shape) {
		return t.Clone()
	}
	pad := len(t.shape) - len(shape)
	out := New(shape)
	srcStrides := t.shape.ComputeStrides()
	outStrides := shape.ComputeStrides()
	for i, v := range t.data {
		oi := 0
		for d := 0; d < len(shape); d++ {
			idx := (i / srcStrides[pad+d]) % t.shape[pad+d]
			if shape[d] != 1 {
				oi += idx * outStrides[d]
			}
		}
		out.data[oi] += v
	}
	return out
}
