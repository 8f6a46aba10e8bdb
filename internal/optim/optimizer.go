// Package optim implements the optimizers driven by the SVI loop.
//
// This package provides:
//   - Optimizer interface: consumes name-keyed gradients, updates the store
//   - SGD: stochastic gradient descent with optional momentum
//   - Adam: adaptive moment estimation
//
// Optimizers update parameter tensors in place; the values handed out by
// the store keep their identity, so tensors captured by models see updates
// on the next execution.
package optim

import (
	"github.com/lumen-ml/lumen/internal/param"
	"github.com/lumen-ml/lumen/internal/tensor"
)

// Optimizer is the interface the SVI driver calls after gradients have been
// accumulated into the parameter store.
type Optimizer interface {
	// Step applies one update using the given name-keyed gradients.
	// Parameters without a gradient are skipped.
	Step(grads map[string]*tensor.Tensor)

	// GetLR returns the current learning rate.
	GetLR() float64
}

// Config is the base configuration shared by all optimizers.
type Config struct {
	LR float64 // Learning rate
}

// lookup resolves a parameter tensor for a gradient entry.
// Returns nil when the store no longer holds the name.
func lookup(store *param.Store, name string) *tensor.Tensor {
	if store == nil {
		return nil
	}
	return store.Get(name)
}
