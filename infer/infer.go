// Copyright 2025 Lumen ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package infer provides the public API for stochastic variational
// inference: the probabilistic-program runtime, the ELBO objective with its
// pluggable gradient estimators, and the SVI driver.
//
// Example:
//
//	store := param.NewStore()
//	model := func(r *infer.Run) { ... }
//	guide := func(r *infer.Run) { ... }
//	elbo := infer.NewELBO(infer.ELBOConfig{Estimator: infer.EstimatorPathwise, NumParticles: 10})
//	svi := infer.NewSVI(model, guide, store, optim.NewAdam(store, optim.AdamConfig{LR: 0.1}), elbo)
//	loss, err := svi.Step()
package infer

import (
	"github.com/lumen-ml/lumen/internal/infer"
)

// Model is a probabilistic program; models and guides share the signature.
type Model = infer.Model

// Run is the execution context handed to a running model or guide.
type Run = infer.Run

// Indep is an active vectorized independence context.
type Indep = infer.Indep

// IndepOption configures an independence context.
type IndepOption = infer.IndepOption

// ELBO is the evidence-lower-bound objective.
type ELBO = infer.ELBO

// ELBOConfig configures the objective.
type ELBOConfig = infer.ELBOConfig

// Estimator selects the gradient-estimation strategy.
type Estimator = infer.Estimator

// Estimator strategies.
const (
	EstimatorPathwise = infer.EstimatorPathwise
	EstimatorScore    = infer.EstimatorScore
	EstimatorGraph    = infer.EstimatorGraph
)

// SVI is the optimization driver.
type SVI = infer.SVI

// Fatal error types surfaced by LossAndGrads and Step.
type (
	DuplicateSiteError      = infer.DuplicateSiteError
	InvalidSubsampleError   = infer.InvalidSubsampleError
	DimConflictError        = infer.DimConflictError
	ShapeMismatchError      = infer.ShapeMismatchError
	NotReparameterizedError = infer.NotReparameterizedError
)

// Constructors and context options.
var (
	NewELBO       = infer.NewELBO
	NewSVI        = infer.NewSVI
	WithSubsample = infer.WithSubsample
	WithDim       = infer.WithDim
	WithIndices   = infer.WithIndices
)
