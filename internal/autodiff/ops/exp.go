package ops

import "github.com/lumen-ml/lumen/internal/tensor"

// ExpOp represents the element-wise exponential.
//
// Forward:
//
//	output = exp(input)
//
// Backward:
//
//	dL/dinput = dL/doutput * exp(input) = dL/doutput * output
type ExpOp struct {
	input  *tensor.Tensor
	output *tensor.Tensor
}

// NewExpOp creates a new exp operation.
func NewExpOp(input, output *tensor.Tensor) *ExpOp {
	return &ExpOp{input: input, output: output}
}

// Backward computes the gradient by reusing the forward output.
func (op *ExpOp) Backward(outputGrad *tensor.Tensor) []*tensor.Tensor {
	return []*tensor.Tensor{tensor.Mul(outputGrad, op.output)}
}

// Inputs returns the input tensors.
func (op *ExpOp) Inputs() []*tensor.Tensor { return []*tensor.Tensor{op.input} }

// Output returns the output tensor.
func (op *ExpOp) Output() *tensor.Tensor { return op.output }
