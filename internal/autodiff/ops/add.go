package ops

import "github.com/lumen-ml/lumen/internal/tensor"

// AddOp represents element-wise addition: output = a + b.
//
// Backward:
//
//	d(a+b)/da = 1, d(a+b)/db = 1
type AddOp struct {
	inputs []*tensor.Tensor // [a, b]
	output *tensor.Tensor
}

// NewAddOp creates a new AddOp.
func NewAddOp(a, b, output *tensor.Tensor) *AddOp {
	return &AddOp{inputs: []*tensor.Tensor{a, b}, output: output}
}

// Backward routes the output gradient to both inputs, reducing over any
// broadcast scalar.
func (op *AddOp) Backward(outputGrad *tensor.Tensor) []*tensor.Tensor {
	a, b := op.inputs[0], op.inputs[1]
	return []*tensor.Tensor{
		reduceBroadcast(outputGrad, a.Shape()),
		reduceBroadcast(outputGrad, b.Shape()),
	}
}

// Inputs returns the input tensors [a, b].
func (op *AddOp) Inputs() []*tensor.Tensor { return op.inputs }

// Output returns the output tensor a + b.
func (op *AddOp) Output() *tensor.Tensor { return op.output }
