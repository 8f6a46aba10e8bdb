// Package trace records the sites encountered during one execution of a
// probabilistic program.
//
// A Trace is built incrementally as the program runs and consumed once by a
// gradient estimator; nothing is retained across executions. Recording is
// the only way sites enter a trace.
package trace

import (
	"fmt"
	"iter"

	"github.com/lumen-ml/lumen/internal/autodiff"
	"github.com/lumen-ml/lumen/internal/tensor"
)

// SiteKind distinguishes the record types a trace can hold.
type SiteKind int

const (
	// SampleKind marks a latent sample site.
	SampleKind SiteKind = iota
	// ObserveKind marks an observed sample site.
	ObserveKind
	// ParamKind marks a parameter access.
	ParamKind
	// SubsampleKind marks the realized indices of an independence context.
	SubsampleKind
)

func (k SiteKind) String() string {
	switch k {
	case SampleKind:
		return "sample"
	case ObserveKind:
		return "observe"
	case ParamKind:
		return "param"
	case SubsampleKind:
		return "subsample"
	default:
		return fmt.Sprintf("SiteKind(%d)", int(k))
	}
}

// Context is a snapshot of one independence context enclosing a site.
type Context struct {
	Name          string
	Size          int
	SubsampleSize int
	Dim           int  // Negative batch dim for vectorized contexts, 0 otherwise.
	Vectorized    bool // False for sequential (one-index-at-a-time) contexts.
}

// Site is one record in a trace.
type Site struct {
	Name     string
	Kind     SiteKind
	Value    *tensor.Tensor
	LogProb  *tensor.Tensor // nil for param and subsample sites
	Observed bool
	// Reparameterized reports whether the value is tape-connected to the
	// distribution parameters (pathwise gradients available).
	Reparameterized bool
	// Contexts is the ordered stack of independence contexts active when
	// the site was recorded, outermost first.
	Contexts []Context
	// Scale is the minibatch rescaling factor: the product of
	// size/subsample_size over all enclosing contexts.
	Scale float64
	// Indices holds the realized minibatch for subsample sites.
	Indices []int
}

// DuplicateSiteError reports a site name recorded twice in one execution.
type DuplicateSiteError struct {
	Name string
}

func (e *DuplicateSiteError) Error() string {
	return fmt.Sprintf("duplicate site name %q within a single execution", e.Name)
}

// Trace maps site names to records, preserving first-recorded order.
type Trace struct {
	order []string
	sites map[string]*Site
}

// New creates an empty trace.
func New() *Trace {
	return &Trace{sites: make(map[string]*Site)}
}

// Record appends a site. Returns DuplicateSiteError if the name is taken.
func (t *Trace) Record(s *Site) error {
	if _, exists := t.sites[s.Name]; exists {
		return &DuplicateSiteError{Name: s.Name}
	}
	t.order = append(t.order, s.Name)
	t.sites[s.Name] = s
	return nil
}

// Site returns the named site, or nil.
func (t *Trace) Site(name string) *Site {
	return t.sites[name]
}

// Len returns the number of recorded sites.
func (t *Trace) Len() int {
	return len(t.order)
}

// Nodes yields (name, site) pairs in first-recorded order.
func (t *Trace) Nodes() iter.Seq2[string, *Site] {
	return func(yield func(string, *Site) bool) {
		for _, name := range t.order {
			if !yield(name, t.sites[name]) {
				return
			}
		}
	}
}

// HasLogProb reports whether a site contributes a log-density term.
func (s *Site) HasLogProb() bool {
	return s.Kind == SampleKind || s.Kind == ObserveKind
}

// LogProbSum returns the scale-weighted sum of every sample/observe site's
// log-probability, built on the tape:
//
//	sum over sites of site.Scale * sum(site.LogProb)
func (t *Trace) LogProbSum(tp *autodiff.GradientTape) *tensor.Tensor {
	total := tensor.Scalar(0)
	for _, name := range t.order {
		s := t.sites[name]
		if !s.HasLogProb() {
			continue
		}
		total = tp.Add(total, tp.Scale(tp.Sum(s.LogProb), s.Scale))
	}
	return total
}

// LogProbSumValue is the detached counterpart of LogProbSum, used for loss
// reporting without touching the tape.
func (t *Trace) LogProbSumValue() float64 {
	total := 0.0
	for _, name := range t.order {
		s := t.sites[name]
		if !s.HasLogProb() {
			continue
		}
		total += s.Scale * tensor.Sum(s.LogProb)
	}
	return total
}
