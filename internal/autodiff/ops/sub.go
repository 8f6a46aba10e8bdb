package ops

import "github.com/lumen-ml/lumen/internal/tensor"

// SubOp represents element-wise subtraction: output = a - b.
//
// Backward:
//
//	d(a-b)/da = 1, d(a-b)/db = -1
type SubOp struct {
	inputs []*tensor.Tensor // [a, b]
	output *tensor.Tensor
}

// NewSubOp creates a new SubOp.
func NewSubOp(a, b, output *tensor.Tensor) *SubOp {
	return &SubOp{inputs: []*tensor.Tensor{a, b}, output: output}
}

// Backward computes input gradients for subtraction.
func (op *SubOp) Backward(outputGrad *tensor.Tensor) []*tensor.Tensor {
	a, b := op.inputs[0], op.inputs[1]
	return []*tensor.Tensor{
		reduceBroadcast(outputGrad, a.Shape()),
		reduceBroadcast(tensor.Neg(outputGrad), b.Shape()),
	}
}

// Inputs returns the input tensors [a, b].
func (op *SubOp) Inputs() []*tensor.Tensor { return op.inputs }

// Output returns the output tensor a - b.
func (op *SubOp) Output() *tensor.Tensor { return op.output }
