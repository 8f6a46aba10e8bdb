package infer

import (
	"github.com/lumen-ml/lumen/internal/autodiff"
	"github.com/lumen-ml/lumen/internal/tensor"
	"github.com/lumen-ml/lumen/internal/trace"
)

// surrogatePathwise builds the reparameterized surrogate:
//
//	root = -(model.LogProbSum - guide.LogProbSum)
//
// all on the tape, so backpropagation differentiates straight through the
// sampling path. Requires every non-observed guide site to be
// reparameterized; anything else would yield silently biased gradients, so
// it is rejected up front.
func surrogatePathwise(tp *autodiff.GradientTape, modelTr, guideTr *trace.Trace) (*tensor.Tensor, float64) {
	for name, s := range guideTr.Nodes() {
		if s.Kind == trace.SampleKind && !s.Reparameterized {
			throw(&NotReparameterizedError{Site: name})
		}
	}
	surrogate := tp.Sub(modelTr.LogProbSum(tp), guideTr.LogProbSum(tp))
	loss := -(modelTr.LogProbSumValue() - guideTr.LogProbSumValue())
	return tp.Neg(surrogate), loss
}
