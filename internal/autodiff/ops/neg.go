package ops

import "github.com/lumen-ml/lumen/internal/tensor"

// NegOp represents element-wise negation: output = -x.
type NegOp struct {
	input  *tensor.Tensor
	output *tensor.Tensor
}

// NewNegOp creates a new NegOp.
func NewNegOp(x, output *tensor.Tensor) *NegOp {
	return &NegOp{input: x, output: output}
}

// Backward computes the gradient: d(-x)/dx = -1.
func (op *NegOp) Backward(outputGrad *tensor.Tensor) []*tensor.Tensor {
	return []*tensor.Tensor{tensor.Neg(outputGrad)}
}

// Inputs returns the input tensors.
func (op *NegOp) Inputs() []*tensor.Tensor { return []*tensor.Tensor{op.input} }

// Output returns the output tensor.
func (op *NegOp) Output() *tensor.Tensor { return op.output }
