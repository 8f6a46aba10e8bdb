package ops

import "github.com/lumen-ml/lumen/internal/tensor"

// ScaleOp represents multiplication by a constant: output = c * x.
//
// The constant carries no gradient; this is how minibatch rescaling factors
// enter log-probability sums without becoming graph nodes themselves.
type ScaleOp struct {
	input  *tensor.Tensor
	output *tensor.Tensor
	c      float64
}

// NewScaleOp creates a new ScaleOp.
func NewScaleOp(x, output *tensor.Tensor, c float64) *ScaleOp {
	return &ScaleOp{input: x, output: output, c: c}
}

// Backward computes the gradient: d(c*x)/dx = c.
func (op *ScaleOp) Backward(outputGrad *tensor.Tensor) []*tensor.Tensor {
	return []*tensor.Tensor{tensor.Scale(outputGrad, op.c)}
}

// Inputs returns the input tensors.
func (op *ScaleOp) Inputs() []*tensor.Tensor { return []*tensor.Tensor{op.input} }

// Output returns the output tensor.
func (op *ScaleOp) Output() *tensor.Tensor { return op.output }

// ShiftOp represents addition of a constant: output = x + c.
type ShiftOp struct {
	input  *tensor.Tensor
	output *tensor.Tensor
}

// NewShiftOp creates a new ShiftOp.
func NewShiftOp(x, output *tensor.Tensor) *ShiftOp {
	return &ShiftOp{input: x, output: output}
}

// Backward passes the gradient through unchanged.
func (op *ShiftOp) Backward(outputGrad *tensor.Tensor) []*tensor.Tensor {
	return []*tensor.Tensor{outputGrad}
}

// Inputs returns the input tensors.
func (op *ShiftOp) Inputs() []*tensor.Tensor { return []*tensor.Tensor{op.input} }

// Output returns the output tensor.
func (op *ShiftOp) Output() *tensor.Tensor { return op.output }
