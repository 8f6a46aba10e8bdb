// Copyright 2025 Lumen ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package param provides the public API for the parameter store.
package param

import (
	"github.com/lumen-ml/lumen/internal/param"
)

// Store is a process-lifetime registry of trainable tensors with gradient
// accumulators.
type Store = param.Store

// NewStore creates an empty parameter store.
var NewStore = param.NewStore
