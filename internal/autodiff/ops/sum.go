package ops

import "github.com/lumen-ml/lumen/internal/tensor"

// SumOp represents a full reduction: output = sum(x), a one-element tensor.
//
// Backward:
//
//	grad_x[i] = grad_output for every i
//
// Every element contributes linearly to the sum, so the scalar output
// gradient broadcasts back over the input shape.
type SumOp struct {
	input  *tensor.Tensor
	output *tensor.Tensor
}

// NewSumOp creates a new SumOp.
func NewSumOp(x, output *tensor.Tensor) *SumOp {
	return &SumOp{input: x, output: output}
}

// Backward broadcasts the output gradient over the input shape.
func (op *SumOp) Backward(outputGrad *tensor.Tensor) []*tensor.Tensor {
	return []*tensor.Tensor{tensor.Full(op.input.Shape(), outputGrad.Item())}
}

// Inputs returns the input tensors.
func (op *SumOp) Inputs() []*tensor.Tensor { return []*tensor.Tensor{op.input} }

// Output returns the output tensor.
func (op *SumOp) Output() *tensor.Tensor { return op.output }
