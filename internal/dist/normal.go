package dist

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/lumen-ml/lumen/internal/autodiff"
	"github.com/lumen-ml/lumen/internal/tensor"
)

const logSqrt2Pi = 0.9189385332046727 // log(sqrt(2*pi))

// Normal is a (diagonal) normal distribution with tensor-valued location and
// scale. Sampling is reparameterized: a draw is loc + scale*eps with eps a
// detached standard-normal tensor, so gradients flow into loc and scale
// through the sampled value.
type Normal struct {
	loc   *tensor.Tensor
	scale *tensor.Tensor
	shape tensor.Shape
}

// NewNormal creates a normal distribution. loc and scale must have equal
// shapes, or either may be a one-element tensor. The batch shape defaults to
// the broader of the two; use Expand to widen it.
func NewNormal(loc, scale *tensor.Tensor) *Normal {
	return &Normal{
		loc:   loc,
		scale: scale,
		shape: broadcastShape(loc, scale),
	}
}

// NewNormalScalars creates a normal from plain scalars.
func NewNormalScalars(loc, scale float64) *Normal {
	return NewNormal(tensor.Scalar(loc), tensor.Scalar(scale))
}

// Expand returns a copy with a widened batch shape. The parameters are
// broadcast lazily at sample/log-prob time.
func (n *Normal) Expand(shape tensor.Shape) *Normal {
	return &Normal{loc: n.loc, scale: n.scale, shape: shape.Clone()}
}

// Shape returns the batch shape of one draw.
func (n *Normal) Shape() tensor.Shape { return n.shape }

// HasRsample reports pathwise-gradient support; true for Normal.
func (n *Normal) HasRsample() bool { return true }

// Loc returns the location parameter.
func (n *Normal) Loc() *tensor.Tensor { return n.loc }

// ScaleParam returns the scale parameter.
func (n *Normal) ScaleParam() *tensor.Tensor { return n.scale }

// stdNormal fills a tensor of the batch shape with unit-normal draws.
func (n *Normal) stdNormal(src rand.Source) *tensor.Tensor {
	std := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	eps := tensor.New(n.shape)
	data := eps.Data()
	for i := range data {
		data[i] = std.Rand()
	}
	return eps
}

// Sample draws loc + scale*eps on the tape (reparameterized).
func (n *Normal) Sample(tp *autodiff.GradientTape, src rand.Source) *tensor.Tensor {
	eps := n.stdNormal(src)
	loc := align(tp, n.loc, n.shape)
	scale := align(tp, n.scale, n.shape)
	return tp.Add(loc, tp.Mul(scale, eps))
}

// LogProb computes the element-wise log-density:
//
//	-((value-loc)/scale)^2 / 2 - log(scale) - log(sqrt(2*pi))
func (n *Normal) LogProb(tp *autodiff.GradientTape, value *tensor.Tensor) *tensor.Tensor {
	loc := align(tp, n.loc, value.Shape())
	scale := align(tp, n.scale, value.Shape())
	z := tp.Div(tp.Sub(value, loc), scale)
	lp := tp.Scale(tp.Mul(z, z), -0.5)
	lp = tp.Sub(lp, tp.Log(scale))
	return tp.Shift(lp, -logSqrt2Pi)
}

// LogProbValue is the closed-form scalar log-density, handy for detached
// computations and cross-checks.
func LogProbValue(value, loc, scale float64) float64 {
	z := (value - loc) / scale
	return -0.5*z*z - math.Log(scale) - logSqrt2Pi
}
