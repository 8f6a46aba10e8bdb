package ops

import "github.com/lumen-ml/lumen/internal/tensor"

// MulOp represents element-wise multiplication: output = a * b.
//
// Backward:
//
//	d(a*b)/da = b, d(a*b)/db = a
type MulOp struct {
	inputs []*tensor.Tensor // [a, b]
	output *tensor.Tensor
}

// NewMulOp creates a new MulOp.
func NewMulOp(a, b, output *tensor.Tensor) *MulOp {
	return &MulOp{inputs: []*tensor.Tensor{a, b}, output: output}
}

// Backward computes input gradients for multiplication.
func (op *MulOp) Backward(outputGrad *tensor.Tensor) []*tensor.Tensor {
	a, b := op.inputs[0], op.inputs[1]
	return []*tensor.Tensor{
		reduceBroadcast(tensor.Mul(outputGrad, b), a.Shape()),
		reduceBroadcast(tensor.Mul(outputGrad, a), b.Shape()),
	}
}

// Inputs returns the input tensors [a, b].
func (op *MulOp) Inputs() []*tensor.Tensor { return op.inputs }

// Output returns the output tensor a * b.
func (op *MulOp) Output() *tensor.Tensor { return op.output }
