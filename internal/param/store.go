// Package param implements the process-lifetime parameter store.
//
// Parameters are created lazily by name, persist until Clear, and carry a
// gradient accumulator that the estimator populates once per step and the
// optimizer consumes. The store is an explicit object rather than package
// state; callers that want one registry per process hold one Store.
package param

import (
	"fmt"
	"sort"
	"sync"

	"github.com/lumen-ml/lumen/internal/tensor"
)

// Store is a named registry of trainable tensors with gradient accumulators.
// Reads are safe for concurrent particles; gradient accumulation happens
// under the store lock.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

type entry struct {
	value *tensor.Tensor
	grad  *tensor.Tensor // nil until populated
}

// NewStore creates an empty parameter store.
func NewStore() *Store {
	return &Store{entries: make(map[string]*entry)}
}

// GetOrInit returns the named parameter, creating it with init on first
// request. The initializer is only called when the entry does not exist.
func (s *Store) GetOrInit(name string, init func() *tensor.Tensor) *tensor.Tensor {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[name]; ok {
		return e.value
	}
	v := init()
	s.entries[name] = &entry{value: v}
	return v
}

// Get returns the named parameter or nil.
func (s *Store) Get(name string) *tensor.Tensor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.entries[name]; ok {
		return e.value
	}
	return nil
}

// NamedParameters returns a name-to-tensor snapshot of the store.
func (s *Store) NamedParameters() map[string]*tensor.Tensor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]*tensor.Tensor, len(s.entries))
	for name, e := range s.entries {
		out[name] = e.value
	}
	return out
}

// Names returns the sorted parameter names.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Grad returns the accumulated gradient for name, or nil if none has been
// populated since the last ZeroGrad.
func (s *Store) Grad(name string) *tensor.Tensor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.entries[name]; ok {
		return e.grad
	}
	return nil
}

// Grads returns a snapshot of all populated gradients by name.
func (s *Store) Grads() map[string]*tensor.Tensor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]*tensor.Tensor)
	for name, e := range s.entries {
		if e.grad != nil {
			out[name] = e.grad
		}
	}
	return out
}

// SetGrad installs a gradient for name, replacing any previous one.
func (s *Store) SetGrad(name string, grad *tensor.Tensor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[name]
	if !ok {
		return fmt.Errorf("param %q not in store", name)
	}
	e.grad = grad
	return nil
}

// ZeroGrad clears every gradient accumulator. Called at the end of each
// optimization step so the next accumulation starts clean.
func (s *Store) ZeroGrad() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		e.grad = nil
	}
}

// Clear removes every parameter. Intended for test isolation and explicit
// lifecycle resets.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*entry)
}

// Len returns the number of stored parameters.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
