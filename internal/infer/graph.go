package infer

import (
	"github.com/lumen-ml/lumen/internal/autodiff"
	"github.com/lumen-ml/lumen/internal/tensor"
	"github.com/lumen-ml/lumen/internal/trace"
)

// surrogateGraph builds the graph-aware score-function surrogate.
//
// It differs from surrogateScore in how the downstream cost of a
// non-reparameterized site is attributed: instead of everything "at or
// after" the site, only log-probability terms computationally reachable
// from the site's sampled value are summed. Reachability is walked forward
// over the recorded tape, which encodes exactly the dependency structure
// the traces created — vectorized batch dimensions stay non-orderable, and
// sites that never consume the value (nuisance terms) drop out, reducing
// estimator variance.
//
// An optional decaying-average baseline is subtracted from each site's
// cost; being a constant with respect to the sample it leaves the
// estimator unbiased.
func (e *ELBO) surrogateGraph(tp *autodiff.GradientTape, modelTr, guideTr *trace.Trace) (*tensor.Tensor, float64) {
	surrogate := modelTr.LogProbSum(tp)
	for name, s := range guideTr.Nodes() {
		if s.Kind != trace.SampleKind {
			continue
		}
		if s.Reparameterized {
			surrogate = tp.Sub(surrogate, tp.Scale(tp.Sum(s.LogProb), s.Scale))
			continue
		}

		reach := tp.Reachable(s.Value)
		var modelPart, guidePart *tensor.Tensor
		for _, ms := range dependentSites(modelTr, reach) {
			term := tensor.Scale(ms.LogProb, ms.Scale)
			if modelPart == nil {
				modelPart = term
			} else {
				modelPart = addBroadcast(modelPart, term)
			}
		}
		for _, gs := range dependentSites(guideTr, reach) {
			term := tensor.Scale(gs.LogProb, gs.Scale)
			if guidePart == nil {
				guidePart = term
			} else {
				guidePart = addBroadcast(guidePart, term)
			}
		}

		down := subBroadcast(modelPart, guidePart)
		down = alignCost(down, s.LogProb.Shape())
		// Use the baseline from previous particles, then fold this
		// particle's cost in; subtracting the current cost from itself
		// would correlate baseline and sample and bias the estimator.
		b, haveBaseline := e.baseline(name)
		e.updateBaseline(name, tensor.Mean(down))
		if haveBaseline {
			down = tensor.Shift(down, -b)
		}

		term := tp.Sum(tp.Mul(s.LogProb, down))
		surrogate = tp.Add(surrogate, term)
	}

	loss := -(modelTr.LogProbSumValue() - guideTr.LogProbSumValue())
	return tp.Neg(surrogate), loss
}

// dependentSites returns the trace's sample/observe sites whose
// log-probability lies in the reachable set, in record order.
func dependentSites(tr *trace.Trace, reach map[*tensor.Tensor]bool) []*trace.Site {
	var out []*trace.Site
	for _, s := range tr.Nodes() {
		if s.HasLogProb() && reach[s.LogProb] {
			out = append(out, s)
		}
	}
	return out
}
