package ops

import "github.com/lumen-ml/lumen/internal/tensor"

// LogOp represents the element-wise natural logarithm.
//
// Forward:
//
//	output = log(input)
//
// Backward:
//
//	dL/dinput = dL/doutput * (1 / input)
//
// Input values must be positive; log-densities are computed from scales and
// probabilities that the distributions keep strictly positive.
type LogOp struct {
	input  *tensor.Tensor
	output *tensor.Tensor
}

// NewLogOp creates a new log operation.
func NewLogOp(input, output *tensor.Tensor) *LogOp {
	return &LogOp{input: input, output: output}
}

// Backward computes the gradient: grad_input = grad_output / input.
func (op *LogOp) Backward(outputGrad *tensor.Tensor) []*tensor.Tensor {
	return []*tensor.Tensor{tensor.Div(outputGrad, op.input)}
}

// Inputs returns the input tensors.
func (op *LogOp) Inputs() []*tensor.Tensor { return []*tensor.Tensor{op.input} }

// Output returns the output tensor.
func (op *LogOp) Output() *tensor.Tensor { return op.output }
