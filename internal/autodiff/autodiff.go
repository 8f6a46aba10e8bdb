// Package autodiff implements reverse-mode automatic differentiation over
// float64 tensors.
//
// Architecture:
//   - GradientTape: records operations during the forward pass
//   - ops.Operation: each op (Add, Mul, Log, Gather, ...) implements its own
//     backward pass
//   - Reverse walk: Backward applies the chain rule over the tape and
//     returns a tensor-to-gradient map
//
// The tape front-end below mirrors the tensor value kernels: each method
// computes the forward result and records the matching operation when the
// tape is recording. Detached computations simply use the tensor package
// directly.
package autodiff

import (
	"github.com/lumen-ml/lumen/internal/autodiff/ops"
	"github.com/lumen-ml/lumen/internal/tensor"
)

// Add performs element-wise addition and records the operation.
func (t *GradientTape) Add(a, b *tensor.Tensor) *tensor.Tensor {
	result := tensor.Add(a, b)
	t.Record(ops.NewAddOp(a, b, result))
	return result
}

// Sub performs element-wise subtraction and records the operation.
func (t *GradientTape) Sub(a, b *tensor.Tensor) *tensor.Tensor {
	result := tensor.Sub(a, b)
	t.Record(ops.NewSubOp(a, b, result))
	return result
}

// Mul performs element-wise multiplication and records the operation.
func (t *GradientTape) Mul(a, b *tensor.Tensor) *tensor.Tensor {
	result := tensor.Mul(a, b)
	t.Record(ops.NewMulOp(a, b, result))
	return result
}

// Div performs element-wise division and records the operation.
func (t *GradientTape) Div(a, b *tensor.Tensor) *tensor.Tensor {
	result := tensor.Div(a, b)
	t.Record(ops.NewDivOp(a, b, result))
	return result
}

// Neg negates element-wise and records the operation.
func (t *GradientTape) Neg(x *tensor.Tensor) *tensor.Tensor {
	result := tensor.Neg(x)
	t.Record(ops.NewNegOp(x, result))
	return result
}

// Log computes the element-wise natural logarithm and records the operation.
func (t *GradientTape) Log(x *tensor.Tensor) *tensor.Tensor {
	result := tensor.Log(x)
	t.Record(ops.NewLogOp(x, result))
	return result
}

// Exp computes the element-wise exponential and records the operation.
func (t *GradientTape) Exp(x *tensor.Tensor) *tensor.Tensor {
	result := tensor.Exp(x)
	t.Record(ops.NewExpOp(x, result))
	return result
}

// Scale multiplies by a gradient-free constant and records the operation.
func (t *GradientTape) Scale(x *tensor.Tensor, c float64) *tensor.Tensor {
	result := tensor.Scale(x, c)
	t.Record(ops.NewScaleOp(x, result, c))
	return result
}

// Shift adds a gradient-free constant and records the operation.
func (t *GradientTape) Shift(x *tensor.Tensor, c float64) *tensor.Tensor {
	result := tensor.Shift(x, c)
	t.Record(ops.NewShiftOp(x, result))
	return result
}

// Sum reduces to a one-element tensor and records the operation.
func (t *GradientTape) Sum(x *tensor.Tensor) *tensor.Tensor {
	result := tensor.Scalar(tensor.Sum(x))
	t.Record(ops.NewSumOp(x, result))
	return result
}

// Gather selects rows along the leading dimension and records the operation.
func (t *GradientTape) Gather(x *tensor.Tensor, indices []int) *tensor.Tensor {
	result := tensor.Gather(x, indices)
	t.Record(ops.NewGatherOp(x, result, indices))
	return result
}

// Expand broadcasts to a larger shape and records the operation.
func (t *GradientTape) Expand(x *tensor.Tensor, shape tensor.Shape) *tensor.Tensor {
	result := tensor.Expand(x, shape)
	t.Record(ops.NewExpandOp(x, result))
	return result
}

// Reshape changes the shape and records the operation.
func (t *GradientTape) Reshape(x *tensor.Tensor, shape tensor.Shape) *tensor.Tensor {
	result := x.Reshape(shape)
	t.Record(ops.NewReshapeOp(x, result))
	return result
}

// Detach returns a copy of x that is disconnected from the graph: no
// operation is recorded and no gradient will flow into it.
func (t *GradientTape) Detach(x *tensor.Tensor) *tensor.Tensor {
	return x.Clone()
}
