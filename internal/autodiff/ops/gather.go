package ops

import "github.com/lumen-ml/lumen/internal/tensor"

// GatherOp represents row selection along the leading dimension:
// output = x[indices].
//
// Used for minibatch indexing: a subsampled independence context yields
// indices, and parameters or data are gathered with them. The backward pass
// scatter-adds the output gradient back into the selected rows, leaving
// unselected rows with zero gradient.
type GatherOp struct {
	input   *tensor.Tensor
	output  *tensor.Tensor
	indices []int
}

// NewGatherOp creates a new GatherOp.
func NewGatherOp(x, output *tensor.Tensor, indices []int) *GatherOp {
	return &GatherOp{input: x, output: output, indices: indices}
}

// Backward scatter-adds the output gradient into the gathered rows.
// Duplicate indices accumulate, matching sampling with replacement if a
// caller ever passes repeated rows.
func (op *GatherOp) Backward(outputGrad *tensor.Tensor) []*tensor.Tensor {
	grad := tensor.ZerosLike(op.input)
	tensor.ScatterAddRows(grad, outputGrad, op.indices)
	return []*tensor.Tensor{grad}
}

// Inputs returns the input tensors.
func (op *GatherOp) Inputs() []*tensor.Tensor { return []*tensor.Tensor{op.input} }

// Output returns the output tensor.
func (op *GatherOp) Output() *tensor.Tensor { return op.output }
