// Copyright 2025 Lumen ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides the public API for reverse-mode automatic
// differentiation.
//
// Operations are recorded onto a gradient tape during the forward pass;
// Backward walks the tape in reverse and returns a gradient per tensor.
// Models and guides normally receive a tape through infer.Run and never
// construct one directly.
//
// Example:
//
//	tp := autodiff.NewGradientTape()
//	tp.StartRecording()
//	y := tp.Mul(x, x)
//	grads := tp.Backward(tp.Sum(y))
//	dx := grads[x] // 2x
package autodiff

import (
	"github.com/lumen-ml/lumen/internal/autodiff"
)

// GradientTape records operations and computes gradients by reverse walk.
type GradientTape = autodiff.GradientTape

// NewGradientTape creates a new gradient tape.
var NewGradientTape = autodiff.NewGradientTape
