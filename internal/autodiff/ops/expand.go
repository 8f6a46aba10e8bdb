package ops

import "github.com/lumen-ml/lumen/internal/tensor"

// ExpandOp represents broadcasting to a larger shape (right-aligned, size-1
// dimensions replicated).
//
// Backward:
//
//	grad_x = sum of grad_output over every replicated dimension
//
// This is the batch-dimension workhorse: a [2,1] location parameter expanded
// to [2,N] particles receives the particle-summed gradient.
type ExpandOp struct {
	input  *tensor.Tensor
	output *tensor.Tensor
}

// NewExpandOp creates a new ExpandOp.
func NewExpandOp(x, output *tensor.Tensor) *ExpandOp {
	return &ExpandOp{input: x, output: output}
}

// Backward sums the output gradient down to the input shape.
func (op *ExpandOp) Backward(outputGrad *tensor.Tensor) []*tensor.Tensor {
	return []*tensor.Tensor{tensor.SumTo(outputGrad, op.input.Shape())}
}

// Inputs returns the input tensors.
func (op *ExpandOp) Inputs() []*tensor.Tensor { return []*tensor.Tensor{op.input} }

// Output returns the output tensor.
func (op *ExpandOp) Output() *tensor.Tensor { return op.output }
