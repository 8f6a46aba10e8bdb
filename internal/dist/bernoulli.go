package dist

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/lumen-ml/lumen/internal/autodiff"
	"github.com/lumen-ml/lumen/internal/tensor"
)

// Bernoulli is a distribution over {0, 1} with tensor-valued success
// probability. Draws are discrete and therefore never reparameterized;
// guides containing Bernoulli sites require the score-function or
// graph-aware estimator.
type Bernoulli struct {
	probs *tensor.Tensor
	shape tensor.Shape
}

// NewBernoulli creates a Bernoulli distribution. Probabilities must lie in
// the open interval (0, 1) for the log-density to be finite.
func NewBernoulli(probs *tensor.Tensor) *Bernoulli {
	return &Bernoulli{probs: probs, shape: probs.Shape().Clone()}
}

// Expand returns a copy with a widened batch shape.
func (b *Bernoulli) Expand(shape tensor.Shape) *Bernoulli {
	return &Bernoulli{probs: b.probs, shape: shape.Clone()}
}

// Shape returns the batch shape of one draw.
func (b *Bernoulli) Shape() tensor.Shape { return b.shape }

// HasRsample reports pathwise-gradient support; false for discrete draws.
func (b *Bernoulli) HasRsample() bool { return false }

// Probs returns the success-probability parameter.
func (b *Bernoulli) Probs() *tensor.Tensor { return b.probs }

// Sample draws a detached 0/1 tensor.
func (b *Bernoulli) Sample(_ *autodiff.GradientTape, src rand.Source) *tensor.Tensor {
	out := tensor.New(b.shape)
	p := b.probs
	if !p.IsScalar() && !p.Shape().Equal(b.shape) {
		p = tensor.Expand(p, b.shape)
	}
	data := out.Data()
	for i := range data {
		pi := p.Data()[0]
		if !p.IsScalar() {
			pi = p.Data()[i]
		}
		data[i] = distuv.Bernoulli{P: pi, Src: src}.Rand()
	}
	return out
}

// LogProb computes v*log(p) + (1-v)*log(1-p) element-wise on the tape.
func (b *Bernoulli) LogProb(tp *autodiff.GradientTape, value *tensor.Tensor) *tensor.Tensor {
	p := align(tp, b.probs, value.Shape())
	one := tensor.Scalar(1)
	hit := tp.Mul(value, tp.Log(p))
	miss := tp.Mul(tensor.Sub(one, value), tp.Log(tp.Sub(one, p)))
	return tp.Add(hit, miss)
}
