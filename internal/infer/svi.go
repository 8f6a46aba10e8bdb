package infer

import (
	"fmt"

	"github.com/lumen-ml/lumen/internal/optim"
	"github.com/lumen-ml/lumen/internal/param"
)

// SVI drives stochastic variational inference: each Step estimates the
// negative ELBO and its gradients with the configured objective, applies
// one optimizer update, and clears the gradient accumulators.
type SVI struct {
	model Model
	guide Model
	store *param.Store
	opt   optim.Optimizer
	elbo  *ELBO
}

// NewSVI creates an SVI driver.
func NewSVI(model, guide Model, store *param.Store, opt optim.Optimizer, elbo *ELBO) *SVI {
	return &SVI{model: model, guide: guide, store: store, opt: opt, elbo: elbo}
}

// Step runs one optimization step and returns the estimated loss
// (negative ELBO averaged over particles).
//
// A step is atomic from the caller's perspective: if the estimator fails,
// no gradient is committed and no parameter is updated.
func (s *SVI) Step() (float64, error) {
	if s.elbo.Config().NumParticles < 1 {
		return 0, fmt.Errorf("num particles must be >= 1, got %d", s.elbo.Config().NumParticles)
	}
	loss, err := s.elbo.LossAndGrads(s.store, s.model, s.guide)
	if err != nil {
		return 0, err
	}
	s.opt.Step(s.store.Grads())
	s.store.ZeroGrad()
	return loss, nil
}

// Run performs n steps, returning the loss of the final one.
func (s *SVI) Run(n int) (float64, error) {
	var loss float64
	var err error
	for i := 0; i < n; i++ {
		if loss, err = s.Step(); err != nil {
			return 0, err
		}
	}
	return loss, nil
}
