package dist

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/lumen-ml/lumen/internal/autodiff"
	"github.com/lumen-ml/lumen/internal/tensor"
)

// NonreparamNormal is a normal distribution whose samples are detached from
// the computation graph. Its log-density still differentiates with respect
// to loc and scale, which is exactly what the score-function estimators
// need: gradient information reaches the parameters only through the
// log_prob * downstream-cost surrogate term.
//
// Numerically the draws are identical to Normal's; only the gradient path
// differs. This exists so estimator correctness can be exercised without a
// genuinely non-differentiable sampler.
type NonreparamNormal struct {
	Normal
}

// NewNonreparamNormal creates a non-reparameterized normal.
func NewNonreparamNormal(loc, scale *tensor.Tensor) *NonreparamNormal {
	return &NonreparamNormal{Normal: *NewNormal(loc, scale)}
}

// NewNonreparamNormalScalars creates a non-reparameterized normal from
// plain scalars.
func NewNonreparamNormalScalars(loc, scale float64) *NonreparamNormal {
	return NewNonreparamNormal(tensor.Scalar(loc), tensor.Scalar(scale))
}

// Expand returns a copy with a widened batch shape.
func (n *NonreparamNormal) Expand(shape tensor.Shape) *NonreparamNormal {
	return &NonreparamNormal{Normal: *n.Normal.Expand(shape)}
}

// HasRsample reports pathwise-gradient support; false here.
func (n *NonreparamNormal) HasRsample() bool { return false }

// Sample draws loc + scale*eps using value arithmetic only, returning a
// constant tensor with no tape connection.
func (n *NonreparamNormal) Sample(_ *autodiff.GradientTape, src rand.Source) *tensor.Tensor {
	std := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	out := tensor.New(n.shape)
	loc := n.loc
	if !loc.IsScalar() && !loc.Shape().Equal(n.shape) {
		loc = tensor.Expand(loc, n.shape)
	}
	scale := n.scale
	if !scale.IsScalar() && !scale.Shape().Equal(n.shape) {
		scale = tensor.Expand(scale, n.shape)
	}
	data := out.Data()
	for i := range data {
		l, s := loc.Data()[0], scale.Data()[0]
		if !loc.IsScalar() {
			l = loc.Data()[i]
		}
		if !scale.IsScalar() {
			s = scale.Data()[i]
		}
		data[i] = l + s*std.Rand()
	}
	return out
}
