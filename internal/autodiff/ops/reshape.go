package ops

import "github.com/lumen-ml/lumen/internal/tensor"

// ReshapeOp represents a shape change with identical element count.
//
// Even though reshape only reinterprets layout, the result is a new tensor,
// so the operation must be recorded for gradients to reach the original.
type ReshapeOp struct {
	input  *tensor.Tensor
	output *tensor.Tensor
}

// NewReshapeOp creates a new ReshapeOp.
func NewReshapeOp(x, output *tensor.Tensor) *ReshapeOp {
	return &ReshapeOp{input: x, output: output}
}

// Backward reshapes the gradient back to the input shape.
func (op *ReshapeOp) Backward(outputGrad *tensor.Tensor) []*tensor.Tensor {
	return []*tensor.Tensor{outputGrad.Reshape(op.input.Shape())}
}

// Inputs returns the input tensors.
func (op *ReshapeOp) Inputs() []*tensor.Tensor { return []*tensor.Tensor{op.input} }

// Output returns the output tensor.
func (op *ReshapeOp) Output() *tensor.Tensor { return op.output }
