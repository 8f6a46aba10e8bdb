package ops

import "github.com/lumen-ml/lumen/internal/tensor"

// DivOp represents element-wise division: output = a / b.
//
// Backward:
//
//	d(a/b)/da = 1/b
//	d(a/b)/db = -a/b² = -output/b
type DivOp struct {
	inputs []*tensor.Tensor // [a, b]
	output *tensor.Tensor
}

// NewDivOp creates a new DivOp.
func NewDivOp(a, b, output *tensor.Tensor) *DivOp {
	return &DivOp{inputs: []*tensor.Tensor{a, b}, output: output}
}

// Backward computes input gradients for division.
func (op *DivOp) Backward(outputGrad *tensor.Tensor) []*tensor.Tensor {
	a, b := op.inputs[0], op.inputs[1]
	gradA := tensor.Div(outputGrad, b)
	gradB := tensor.Neg(tensor.Div(tensor.Mul(outputGrad, op.output), b))
	return []*tensor.Tensor{
		reduceBroadcast(gradA, a.Shape()),
		reduceBroadcast(gradB, b.Shape()),
	}
}

// Inputs returns the input tensors [a, b].
func (op *DivOp) Inputs() []*tensor.Tensor { return op.inputs }

// Output returns the output tensor a / b.
func (op *DivOp) Output() *tensor.Tensor { return op.output }
