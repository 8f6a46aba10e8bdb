// Package dist provides the probability distributions used by models and
// guides.
//
// Log-densities are assembled from gradient-tape operations, so they
// differentiate with respect to distribution parameters and, for
// reparameterized samples, through the sampling path itself. The raw draws
// come from gonum's distuv samplers over a caller-supplied rand/v2 source,
// keeping every execution seedable.
package dist

import (
	"math/rand/v2"

	"github.com/lumen-ml/lumen/internal/autodiff"
	"github.com/lumen-ml/lumen/internal/tensor"
)

// Distribution is the interface consumed by sample and observe sites.
type Distribution interface {
	// Shape returns the batch shape of one draw.
	Shape() tensor.Shape

	// HasRsample reports whether Sample produces a value connected to the
	// tape, i.e. whether pathwise (reparameterized) gradients are available.
	HasRsample() bool

	// Sample draws one batch of values. Reparameterized distributions build
	// the draw from tape operations; others return a detached constant.
	Sample(tp *autodiff.GradientTape, src rand.Source) *tensor.Tensor

	// LogProb returns the element-wise log-density of value, built on the
	// tape so gradients flow to the distribution parameters.
	LogProb(tp *autodiff.GradientTape, value *tensor.Tensor) *tensor.Tensor
}

// align broadcasts a parameter tensor up to the batch shape. Scalars are
// left alone (the binary kernels broadcast them); anything else is expanded
// on the tape so parameter gradients are reduced correctly.
func align(tp *autodiff.GradientTape, x *tensor.Tensor, shape tensor.Shape) *tensor.Tensor {
	if x.IsScalar() || x.Shape().Equal(shape) {
		return x
	}
	return tp.Expand(x, shape)
}

// broadcastShape resolves the batch shape implied by two parameter tensors.
func broadcastShape(a, b *tensor.Tensor) tensor.Shape {
	if a.IsScalar() {
		return b.Shape()
	}
	return a.Shape()
}
