// Copyright 2025 Lumen ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for tensor values in the Lumen
// probabilistic programming framework.
//
// Example:
//
//	mu, _ := tensor.FromSlice([]float64{0, 0}, tensor.Shape{2})
//	z := tensor.Add(mu, tensor.Ones(tensor.Shape{2}))
package tensor

import (
	"github.com/lumen-ml/lumen/internal/tensor"
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// Tensor is a dense row-major float64 tensor.
type Tensor = tensor.Tensor

// Creation helpers.
var (
	New       = tensor.New
	FromSlice = tensor.FromSlice
	Zeros     = tensor.Zeros
	Ones      = tensor.Ones
	Full      = tensor.Full
	Scalar    = tensor.Scalar
	ZerosLike = tensor.ZerosLike
	OnesLike  = tensor.OnesLike
)

// Element-wise value kernels (detached; use a gradient tape for
// differentiable arithmetic).
var (
	Add    = tensor.Add
	Sub    = tensor.Sub
	Mul    = tensor.Mul
	Div    = tensor.Div
	Neg    = tensor.Neg
	Scale  = tensor.Scale
	Shift  = tensor.Shift
	Log    = tensor.Log
	Exp    = tensor.Exp
	Sum    = tensor.Sum
	Mean   = tensor.Mean
	Gather = tensor.Gather
	Expand = tensor.Expand
)
