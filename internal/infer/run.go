// Package infer implements stochastic variational inference: the execution
// runtime for probabilistic programs (sample/observe/param effects,
// independence contexts, trace recording and replay), the ELBO gradient
// estimators, and the SVI driver.
package infer

import (
	"math/rand/v2"

	"github.com/lumen-ml/lumen/internal/autodiff"
	"github.com/lumen-ml/lumen/internal/dist"
	"github.com/lumen-ml/lumen/internal/param"
	"github.com/lumen-ml/lumen/internal/tensor"
	"github.com/lumen-ml/lumen/internal/trace"
)

// Model is a probabilistic program: a plain closure that samples, observes
// and reads parameters through the Run it receives. Both models and guides
// have this signature.
type Model func(r *Run)

// Run is the execution context for one run of a model or guide. It
// instruments every site into a trace, tracks the independence-context
// stack, and carries the gradient tape and RNG for the current particle.
//
// A Run is single-threaded and lives for exactly one execution.
type Run struct {
	tape   *autodiff.GradientTape
	tr     *trace.Trace
	store  *param.Store
	src    rand.Source
	rng    *rand.Rand
	replay *trace.Trace // guide trace during model execution, else nil

	frames []frame        // active independence contexts, outermost first
	dims   map[int]string // occupied vectorized batch dims
}

type frame struct {
	ctx     trace.Context
	indices []int
}

func newRun(tp *autodiff.GradientTape, store *param.Store, src rand.Source) *Run {
	return &Run{
		tape:  tp,
		tr:    trace.New(),
		store: store,
		src:   src,
		rng:   rand.New(src),
		dims:  make(map[int]string),
	}
}

// Tape returns the particle's gradient tape, for models that need custom
// differentiable arithmetic (expanding parameters over batch dims etc.).
func (r *Run) Tape() *autodiff.GradientTape {
	return r.tape
}

// Trace returns the trace built so far.
func (r *Run) Trace() *trace.Trace {
	return r.tr
}

// scale is the product of size/subsample_size over all active contexts.
func (r *Run) scale() float64 {
	s := 1.0
	for _, f := range r.frames {
		s *= float64(f.ctx.Size) / float64(f.ctx.SubsampleSize)
	}
	return s
}

// contexts snapshots the active context stack, outermost first.
func (r *Run) contexts() []trace.Context {
	if len(r.frames) == 0 {
		return nil
	}
	out := make([]trace.Context, len(r.frames))
	for i, f := range r.frames {
		out[i] = f.ctx
	}
	return out
}

func (r *Run) record(s *trace.Site) {
	if err := r.tr.Record(s); err != nil {
		throw(err)
	}
}

// Sample draws a latent value from d and records the site.
//
// During model execution under replay, the guide's sampled value is
// substituted instead of drawing, and its shape must match the model-side
// distribution's batch shape.
func (r *Run) Sample(name string, d dist.Distribution) *tensor.Tensor {
	var value *tensor.Tensor
	reparam := d.HasRsample()

	if r.replay != nil {
		if prev := r.replay.Site(name); prev != nil && prev.Kind == trace.SampleKind {
			if !prev.Value.Shape().Equal(d.Shape()) {
				throw(&ShapeMismatchError{Site: name, Guide: prev.Value.Shape(), Model: d.Shape()})
			}
			value = prev.Value
			reparam = prev.Reparameterized
		}
	}
	if value == nil {
		value = d.Sample(r.tape, r.src)
	}

	lp := d.LogProb(r.tape, value)
	r.record(&trace.Site{
		Name:            name,
		Kind:            trace.SampleKind,
		Value:           value,
		LogProb:         lp,
		Reparameterized: reparam,
		Contexts:        r.contexts(),
		Scale:           r.scale(),
	})
	return value
}

// Observe conditions on a fixed value: records an observed site whose
// log-probability enters every estimator sum but whose value is never
// replayed or differentiated as a latent.
func (r *Run) Observe(name string, d dist.Distribution, value *tensor.Tensor) {
	lp := d.LogProb(r.tape, value)
	r.record(&trace.Site{
		Name:     name,
		Kind:     trace.ObserveKind,
		Value:    value,
		LogProb:  lp,
		Observed: true,
		Contexts: r.contexts(),
		Scale:    r.scale(),
	})
}

// Param returns the named parameter from the store, creating it with init on
// first use anywhere in the process. Repeated access within one execution
// returns the same tensor without re-recording the site.
func (r *Run) Param(name string, init func() *tensor.Tensor) *tensor.Tensor {
	if prev := r.tr.Site(name); prev != nil && prev.Kind == trace.ParamKind {
		return prev.Value
	}
	v := r.store.GetOrInit(name, init)
	r.record(&trace.Site{
		Name:     name,
		Kind:     trace.ParamKind,
		Value:    v,
		Contexts: r.contexts(),
		Scale:    r.scale(),
	})
	return v
}
