package infer

import (
	"github.com/lumen-ml/lumen/internal/autodiff"
	"github.com/lumen-ml/lumen/internal/tensor"
	"github.com/lumen-ml/lumen/internal/trace"
)

// surrogateScore builds the score-function (REINFORCE) surrogate.
//
// Reparameterized guide sites contribute their log-probability pathwise,
// exactly as in the pathwise strategy. Each non-reparameterized site i
// instead contributes
//
//	scale_i * log_prob_i ⊙ detach(downstream_i)
//
// where downstream_i is the element-wise suffix sum ("at or after" i in
// record order, inclusive of i's own terms) of scale-weighted model
// log-probs minus guide log-probs. The downstream cost is a detached value
// computation: gradients reach the parameters only through log_prob_i.
func surrogateScore(tp *autodiff.GradientTape, modelTr, guideTr *trace.Trace) (*tensor.Tensor, float64) {
	modelSuffix := suffixSums(modelTr)
	guideSuffix := suffixSums(guideTr)

	surrogate := modelTr.LogProbSum(tp)
	for name, s := range guideTr.Nodes() {
		if s.Kind != trace.SampleKind {
			continue
		}
		if s.Reparameterized {
			surrogate = tp.Sub(surrogate, tp.Scale(tp.Sum(s.LogProb), s.Scale))
			continue
		}
		down := subBroadcast(modelSuffix[name], guideSuffix[name])
		down = alignCost(down, s.LogProb.Shape())
		// The downstream cost already carries the minibatch scale; the
		// score multiplier stays unscaled or the factor would be squared.
		term := tp.Sum(tp.Mul(s.LogProb, down))
		surrogate = tp.Add(surrogate, term)
	}

	loss := -(modelTr.LogProbSumValue() - guideTr.LogProbSumValue())
	return tp.Neg(surrogate), loss
}

// suffixSums returns, for each sample/observe site, the inclusive suffix
// sum of scale-weighted log-probability values in record order. Sums are
// element-wise: terms of different batch shapes combine by right-aligned
// broadcast, so per-element costs survive inside vectorized contexts.
func suffixSums(tr *trace.Trace) map[string]*tensor.Tensor {
	names := make([]string, 0, tr.Len())
	for name, s := range tr.Nodes() {
		if s.HasLogProb() {
			names = append(names, name)
		}
	}
	out := make(map[string]*tensor.Tensor, len(names))
	var acc *tensor.Tensor
	for i := len(names) - 1; i >= 0; i-- {
		s := tr.Site(names[i])
		term := tensor.Scale(s.LogProb, s.Scale)
		if acc == nil {
			acc = term
		} else {
			acc = addBroadcast(acc, term)
		}
		out[names[i]] = acc
	}
	return out
}

// addBroadcast adds value tensors of possibly different batch shapes by
// right-aligned broadcast.
func addBroadcast(a, b *tensor.Tensor) *tensor.Tensor {
	if a.Shape().Equal(b.Shape()) || a.IsScalar() || b.IsScalar() {
		return tensor.Add(a, b)
	}
	shape := unionShape(a.Shape(), b.Shape())
	return tensor.Add(tensor.Expand(a, shape), tensor.Expand(b, shape))
}

// subBroadcast computes a - b under the same broadcast rules; either side
// may be nil, meaning zero.
func subBroadcast(a, b *tensor.Tensor) *tensor.Tensor {
	if a == nil {
		a = tensor.Scalar(0)
	}
	if b == nil {
		b = tensor.Scalar(0)
	}
	if a.Shape().Equal(b.Shape()) || a.IsScalar() || b.IsScalar() {
		return tensor.Sub(a, b)
	}
	shape := unionShape(a.Shape(), b.Shape())
	return tensor.Sub(tensor.Expand(a, shape), tensor.Expand(b, shape))
}

// unionShape right-aligns two shapes and takes the broader extent per dim.
func unionShape(a, b tensor.Shape) tensor.Shape {
	if len(b) > len(a) {
		a, b = b, a
	}
	out := a.Clone()
	pad := len(a) - len(b)
	for i, d := range b {
		if d > out[pad+i] {
			out[pad+i] = d
		}
	}
	return out
}

// alignCost reduces or broadcasts a downstream cost to the shape of the
// site's log-probability. Vectorized sites keep per-element costs; broader
// costs collapse by summation (every collapsed term depends on the whole
// batch, so it must appear in each element's cost).
func alignCost(down *tensor.Tensor, shape tensor.Shape) *tensor.Tensor {
	switch {
	case down.Shape().Equal(shape) || down.IsScalar():
		return down
	case shape.NumElements() == 1:
		return tensor.Full(shape, tensor.Sum(down))
	default:
		return tensor.SumTo(down, shape)
	}
}
