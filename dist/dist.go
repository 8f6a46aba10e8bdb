// Copyright 2025 Lumen ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package dist provides the public API for the distributions usable at
// sample and observe sites.
package dist

import (
	"github.com/lumen-ml/lumen/internal/dist"
)

// Distribution is the interface consumed by sample and observe sites.
type Distribution = dist.Distribution

// Normal is a reparameterized (diagonal) normal distribution.
type Normal = dist.Normal

// NonreparamNormal is a normal whose samples are detached from the graph;
// it exercises the score-function estimators.
type NonreparamNormal = dist.NonreparamNormal

// Bernoulli is a distribution over {0, 1}.
type Bernoulli = dist.Bernoulli

// Constructors.
var (
	NewNormal                  = dist.NewNormal
	NewNormalScalars           = dist.NewNormalScalars
	NewNonreparamNormal        = dist.NewNonreparamNormal
	NewNonreparamNormalScalars = dist.NewNonreparamNormalScalars
	NewBernoulli               = dist.NewBernoulli
)
