// Package ops defines the differentiable operations recorded on the
// gradient tape.
//
// Each operation implements the Operation interface: the forward result is
// computed by the tape front-end (internal/autodiff), and Backward computes
// input gradients from the output gradient during the reverse walk.
//
// Binary operations follow the tensor package's broadcast rule: equal shapes
// or a one-element scalar against anything. When a scalar was broadcast in
// the forward pass its gradient is reduced back down by summation.
package ops

import "github.com/lumen-ml/lumen/internal/tensor"

// Operation represents a differentiable operation in the computation graph.
// Each operation records its inputs and output during the forward pass,
// and computes input gradients during the backward pass.
type Operation interface {
	// Backward computes gradients for inputs given the output gradient.
	// Returns a slice of gradients corresponding to each input tensor.
	// A nil entry means no gradient flows to that input.
	Backward(outputGrad *tensor.Tensor) []*tensor.Tensor

	// Inputs returns the input tensors for this operation.
	Inputs() []*tensor.Tensor

	// Output returns the output tensor produced by this operation.
	Output() *tensor.Tensor
}

// reduceBroadcast reduces a gradient to the shape of the input it belongs
// to. With the scalar-broadcast rule the only reduction ever needed is
// summing everything into the one-element input.
func reduceBroadcast(grad *tensor.Tensor, inShape tensor.Shape) *tensor.Tensor {
	if grad.Shape().Equal(inShape) {
		return grad
	}
	return tensor.Full(inShape, tensor.Sum(grad))
}
