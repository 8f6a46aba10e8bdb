package infer

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/lumen-ml/lumen/internal/autodiff"
	"github.com/lumen-ml/lumen/internal/param"
	"github.com/lumen-ml/lumen/internal/tensor"
)

// Estimator selects the gradient-estimation strategy. Strategies are pure
// functions over a (model trace, guide trace) pair; the tag decides which
// one assembles the surrogate loss.
type Estimator int

const (
	// EstimatorPathwise differentiates straight through reparameterized
	// sampling paths. Every non-observed guide site must support
	// reparameterization; violating that is an error, not a silent fallback.
	EstimatorPathwise Estimator = iota

	// EstimatorScore adds score-function (REINFORCE) surrogate terms for
	// non-reparameterized guide sites, using suffix sums of the traces as
	// the downstream cost.
	EstimatorScore

	// EstimatorGraph is EstimatorScore with the downstream cost restricted
	// to sites that computationally depend on the sampled value, which
	// lowers estimator variance.
	EstimatorGraph
)

func (e Estimator) String() string {
	switch e {
	case EstimatorPathwise:
		return "pathwise"
	case EstimatorScore:
		return "score"
	case EstimatorGraph:
		return "graph"
	default:
		return fmt.Sprintf("Estimator(%d)", int(e))
	}
}

// ELBOConfig configures the evidence-lower-bound objective.
type ELBOConfig struct {
	Estimator    Estimator
	NumParticles int    // Independent (model, guide) executions per step (default 1).
	Seed         uint64 // Base RNG seed; particle streams derive from it.
	Parallel     bool   // Evaluate particles on separate goroutines.
	// BaselineDecay enables a per-site decaying-average baseline for the
	// graph-aware estimator's score terms. Zero disables baselines.
	BaselineDecay float64
}

// ELBO estimates the negative evidence lower bound and its parameter
// gradients for a (model, guide) pair.
type ELBO struct {
	cfg ELBOConfig

	mu        sync.Mutex
	baselines map[string]float64
	stream    uint64 // next PCG stream id, advanced per particle
}

// NewELBO creates an ELBO objective, defaulting to one particle.
func NewELBO(cfg ELBOConfig) *ELBO {
	if cfg.NumParticles == 0 {
		cfg.NumParticles = 1
	}
	return &ELBO{cfg: cfg, baselines: make(map[string]float64)}
}

// Config returns the objective's configuration.
func (e *ELBO) Config() ELBOConfig {
	return e.cfg
}

// LossAndGrads runs NumParticles independent executions of guide-then-model,
// assembles the configured surrogate per particle, backpropagates once per
// particle, and accumulates the summed-then-averaged gradients into the
// store. Repeated calls accumulate on top of existing store gradients; the
// SVI driver zeroes them after each optimizer update.
//
// On any fatal condition (duplicate site, invalid subsample, dim conflict,
// shape mismatch, non-reparameterized site under the pathwise strategy) no
// gradient is committed and the error is returned.
func (e *ELBO) LossAndGrads(store *param.Store, model, guide Model) (float64, error) {
	n := e.cfg.NumParticles
	if n < 1 {
		return 0, fmt.Errorf("num particles must be >= 1, got %d", n)
	}

	e.mu.Lock()
	streamBase := e.stream
	e.stream += uint64(n)
	e.mu.Unlock()

	accum := make(map[string]*tensor.Tensor)
	lossSum := 0.0
	var accMu sync.Mutex

	runParticle := func(p int) error {
		loss, grads, err := e.particle(store, model, guide, streamBase+uint64(p))
		if err != nil {
			return err
		}
		accMu.Lock()
		defer accMu.Unlock()
		lossSum += loss
		for name, g := range grads {
			if existing, ok := accum[name]; ok {
				accum[name] = tensor.Add(existing, g)
			} else {
				accum[name] = g
			}
		}
		return nil
	}

	if e.cfg.Parallel && n > 1 {
		var group errgroup.Group
		for p := 0; p < n; p++ {
			group.Go(func() error { return runParticle(p) })
		}
		if err := group.Wait(); err != nil {
			return 0, err
		}
	} else {
		for p := 0; p < n; p++ {
			if err := runParticle(p); err != nil {
				return 0, err
			}
		}
	}

	// Sum across particles, divide by particle count, then commit.
	inv := 1.0 / float64(n)
	for name, g := range accum {
		g = tensor.Scale(g, inv)
		if existing := store.Grad(name); existing != nil {
			g = tensor.Add(existing, g)
		}
		if err := store.SetGrad(name, g); err != nil {
			return 0, err
		}
	}
	return lossSum * inv, nil
}

// particle runs one guide-then-model execution pair on a fresh tape and
// returns the particle loss and its name-keyed parameter gradients.
func (e *ELBO) particle(store *param.Store, model, guide Model, stream uint64) (loss float64, named map[string]*tensor.Tensor, err error) {
	defer catch(&err)

	tp := autodiff.NewGradientTape()
	tp.StartRecording()
	src := rand.NewPCG(e.cfg.Seed, stream)

	guideRun := newRun(tp, store, src)
	guide(guideRun)

	modelRun := newRun(tp, store, src)
	modelRun.replay = guideRun.tr
	model(modelRun)

	var root *tensor.Tensor
	switch e.cfg.Estimator {
	case EstimatorPathwise:
		root, loss = surrogatePathwise(tp, modelRun.tr, guideRun.tr)
	case EstimatorScore:
		root, loss = surrogateScore(tp, modelRun.tr, guideRun.tr)
	case EstimatorGraph:
		root, loss = e.surrogateGraph(tp, modelRun.tr, guideRun.tr)
	default:
		return 0, nil, fmt.Errorf("unknown estimator %v", e.cfg.Estimator)
	}
	tp.StopRecording()

	grads := tp.Backward(root)
	named = make(map[string]*tensor.Tensor)
	for name, t := range store.NamedParameters() {
		if g, ok := grads[t]; ok {
			named[name] = g
		}
	}
	return loss, named, nil
}

// baseline returns the current decaying-average baseline for a site.
func (e *ELBO) baseline(site string) (float64, bool) {
	if e.cfg.BaselineDecay <= 0 {
		return 0, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	b, ok := e.baselines[site]
	return b, ok
}

// updateBaseline folds an observed downstream-cost mean into the site's
// decaying average.
func (e *ELBO) updateBaseline(site string, cost float64) {
	if e.cfg.BaselineDecay <= 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if b, ok := e.baselines[site]; ok {
		d := e.cfg.BaselineDecay
		e.baselines[site] = d*b + (1-d)*cost
	} else {
		e.baselines[site] = cost
	}
}
