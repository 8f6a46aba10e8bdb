package optim

import (
	"math"

	"github.com/lumen-ml/lumen/internal/param"
	"github.com/lumen-ml/lumen/internal/tensor"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Update rule:
//
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient       // First moment
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient²      // Second moment
//	m_hat = m_t / (1 - beta1^t)                        // Bias correction
//	v_hat = v_t / (1 - beta2^t)                        // Bias correction
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
type Adam struct {
	store *param.Store
	lr    float64
	beta1 float64
	beta2 float64
	eps   float64
	t     int // Timestep for bias correction
	m     map[string][]float64
	v     map[string][]float64
}

// AdamConfig holds configuration for the Adam optimizer.
type AdamConfig struct {
	LR    float64    // Learning rate (default 0.001)
	Betas [2]float64 // Running-average coefficients (default [0.9, 0.999])
	Eps   float64    // Numerical-stability term (default 1e-8)
}

// NewAdam creates an Adam optimizer over the given store, filling defaults
// for unset configuration values.
func NewAdam(store *param.Store, config AdamConfig) *Adam {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}
	return &Adam{
		store: store,
		lr:    config.LR,
		beta1: config.Betas[0],
		beta2: config.Betas[1],
		eps:   config.Eps,
		m:     make(map[string][]float64),
		v:     make(map[string][]float64),
	}
}

// Step performs a single Adam update for every gradient entry.
func (a *Adam) Step(grads map[string]*tensor.Tensor) {
	a.t++
	bc1 := 1 - math.Pow(a.beta1, float64(a.t))
	bc2 := 1 - math.Pow(a.beta2, float64(a.t))

	for name, grad := range grads {
		p := lookup(a.store, name)
		if p == nil || grad == nil {
			continue
		}
		g := grad.Data()
		m, ok := a.m[name]
		if !ok {
			m = make([]float64, len(g))
			a.m[name] = m
		}
		v, ok := a.v[name]
		if !ok {
			v = make([]float64, len(g))
			a.v[name] = v
		}
		data := p.Data()
		for i, gi := range g {
			m[i] = a.beta1*m[i] + (1-a.beta1)*gi
			v[i] = a.beta2*v[i] + (1-a.beta2)*gi*gi
			mHat := m[i] / bc1
			vHat := v[i] / bc2
			data[i] -= a.lr * mHat / (math.Sqrt(vHat) + a.eps)
		}
	}
}

// GetLR returns the learning rate.
func (a *Adam) GetLR() float64 {
	return a.lr
}
