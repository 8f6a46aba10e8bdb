package infer

import (
	"github.com/lumen-ml/lumen/internal/trace"
)

// IndepOption configures an independence context.
type IndepOption func(*indepConfig)

type indepConfig struct {
	subsampleSize int
	dim           int
	hasDim        bool
	indices       []int
}

// WithSubsample requests a uniform minibatch of n indices drawn without
// replacement. Sites inside the context are rescaled by size/n.
func WithSubsample(n int) IndepOption {
	return func(c *indepConfig) { c.subsampleSize = n }
}

// WithDim pins the vectorized context to a specific batch dimension
// (negative, counting from the right). Without it, dims are auto-assigned
// right-to-left among the free dimensions.
func WithDim(dim int) IndepOption {
	return func(c *indepConfig) { c.dim = dim; c.hasDim = true }
}

// WithIndices supplies the minibatch explicitly instead of drawing it.
// Implies a subsample of len(indices) when that is smaller than the size.
func WithIndices(indices []int) IndepOption {
	return func(c *indepConfig) { c.indices = indices }
}

// Indep is an active vectorized independence context: a declaration that a
// named batch axis holds conditionally-independent draws. It exists from
// Indep() to Exit() and is never persisted across executions.
type Indep struct {
	r       *Run
	Name    string
	Size    int
	Dim     int
	Indices []int
}

// Indep enters a vectorized independence context and returns it. Callers
// must Exit it (usually via defer); WithIndep wraps the pair.
//
// The realized indices are all of [0, size) without subsampling, else a
// uniform draw without replacement. Indices drawn in the guide are recorded
// in the trace and replayed into the model execution so both programs see
// the same minibatch.
func (r *Run) Indep(name string, size int, opts ...IndepOption) *Indep {
	cfg := indepConfig{subsampleSize: size}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.indices != nil && len(cfg.indices) < size {
		cfg.subsampleSize = len(cfg.indices)
	}
	if cfg.subsampleSize > size {
		throw(&InvalidSubsampleError{Context: name, Size: size, SubsampleSize: cfg.subsampleSize})
	}

	dim := r.allocDim(name, cfg)
	indices := r.resolveIndices(name, size, cfg)

	r.frames = append(r.frames, frame{
		ctx: trace.Context{
			Name:          name,
			Size:          size,
			SubsampleSize: len(indices),
			Dim:           dim,
			Vectorized:    true,
		},
		indices: indices,
	})
	r.dims[dim] = name

	return &Indep{r: r, Name: name, Size: size, Dim: dim, Indices: indices}
}

// Exit leaves the context, restoring the dim-allocation table and the
// context stack.
func (ip *Indep) Exit() {
	r := ip.r
	for i := len(r.frames) - 1; i >= 0; i-- {
		if r.frames[i].ctx.Name == ip.Name && r.frames[i].ctx.Vectorized {
			delete(r.dims, r.frames[i].ctx.Dim)
			r.frames = append(r.frames[:i], r.frames[i+1:]...)
			return
		}
	}
}

// WithIndep runs body inside a vectorized independence context, passing the
// realized indices. The context is exited even if body panics.
func (r *Run) WithIndep(name string, size int, body func(indices []int), opts ...IndepOption) {
	ip := r.Indep(name, size, opts...)
	defer ip.Exit()
	body(ip.Indices)
}

// ForRange runs body once per subsampled index inside a sequential
// independence context. Each iteration carries the size/subsampleSize
// rescaling; site names inside the body must be made unique per index by
// the caller (a duplicate name fails the execution).
func (r *Run) ForRange(name string, size, subsampleSize int, body func(i int)) {
	if subsampleSize <= 0 {
		subsampleSize = size
	}
	if subsampleSize > size {
		throw(&InvalidSubsampleError{Context: name, Size: size, SubsampleSize: subsampleSize})
	}
	indices := r.resolveIndices(name, size, indepConfig{subsampleSize: subsampleSize})

	ctx := trace.Context{Name: name, Size: size, SubsampleSize: subsampleSize}
	for _, idx := range indices {
		func() {
			r.frames = append(r.frames, frame{ctx: ctx, indices: []int{idx}})
			defer func() { r.frames = r.frames[:len(r.frames)-1] }()
			body(idx)
		}()
	}
}

// allocDim reserves a vectorized batch dimension, auto-assigning
// right-to-left when none was pinned.
func (r *Run) allocDim(name string, cfg indepConfig) int {
	if cfg.hasDim {
		if other, taken := r.dims[cfg.dim]; taken {
			throw(&DimConflictError{Context: name, Other: other, Dim: cfg.dim})
		}
		return cfg.dim
	}
	dim := -1
	for {
		if _, taken := r.dims[dim]; !taken {
			return dim
		}
		dim--
	}
}

// resolveIndices produces the realized minibatch: explicit indices, a replay
// of the guide's draw, or a fresh uniform draw without replacement.
func (r *Run) resolveIndices(name string, size int, cfg indepConfig) []int {
	// Re-entering a context (or replaying the guide's entry) reuses the
	// realized minibatch so every entry sees the same indices.
	if prev := r.tr.Site(name); prev != nil && prev.Kind == trace.SubsampleKind {
		return prev.Indices
	}

	var indices []int
	switch {
	case cfg.indices != nil:
		indices = cfg.indices
	case r.replayedIndices(name) != nil:
		indices = r.replayedIndices(name)
	case cfg.subsampleSize == size:
		indices = make([]int, size)
		for i := range indices {
			indices[i] = i
		}
	default:
		indices = r.rng.Perm(size)[:cfg.subsampleSize]
	}

	r.record(&trace.Site{
		Name:     name,
		Kind:     trace.SubsampleKind,
		Indices:  indices,
		Contexts: r.contexts(),
		Scale:    r.scale(),
	})
	return indices
}

func (r *Run) replayedIndices(name string) []int {
	if r.replay == nil {
		return nil
	}
	if s := r.replay.Site(name); s != nil && s.Kind == trace.SubsampleKind {
		return s.Indices
	}
	return nil
}
