package optim

import (
	"gonum.org/v1/gonum/floats"

	"github.com/lumen-ml/lumen/internal/param"
	"github.com/lumen-ml/lumen/internal/tensor"
)

// SGD implements stochastic gradient descent with optional momentum.
//
// Update rule:
//
//	v = momentum * v + grad
//	param = param - lr * v
//
// With momentum 0 this reduces to the plain gradient step.
type SGD struct {
	store    *param.Store
	lr       float64
	momentum float64
	velocity map[string][]float64
}

// SGDConfig contains configuration for the SGD optimizer.
type SGDConfig struct {
	LR       float64 // Learning rate (default 0.01)
	Momentum float64 // Momentum factor (default 0, disabled)
}

// NewSGD creates an SGD optimizer over the given store.
func NewSGD(store *param.Store, config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}
	return &SGD{
		store:    store,
		lr:       config.LR,
		momentum: config.Momentum,
		velocity: make(map[string][]float64),
	}
}

// Step applies one SGD update for every gradient entry.
func (s *SGD) Step(grads map[string]*tensor.Tensor) {
	for name, grad := range grads {
		p := lookup(s.store, name)
		if p == nil || grad == nil {
			continue
		}
		g := grad.Data()
		if s.momentum == 0 {
			floats.AddScaled(p.Data(), -s.lr, g)
			continue
		}
		v, ok := s.velocity[name]
		if !ok {
			v = make([]float64, len(g))
			s.velocity[name] = v
		}
		floats.Scale(s.momentum, v)
		floats.Add(v, g)
		floats.AddScaled(p.Data(), -s.lr, v)
	}
}

// GetLR returns the learning rate.
func (s *SGD) GetLR() float64 {
	return s.lr
}
