package infer

import (
	"fmt"

	"github.com/lumen-ml/lumen/internal/tensor"
	"github.com/lumen-ml/lumen/internal/trace"
)

// DuplicateSiteError re-exports the trace-level duplicate-name failure so
// callers only need this package to match on estimator errors.
type DuplicateSiteError = trace.DuplicateSiteError

// InvalidSubsampleError reports a subsample size exceeding the full size of
// an independence context. Raised before any index is drawn.
type InvalidSubsampleError struct {
	Context       string
	Size          int
	SubsampleSize int
}

func (e *InvalidSubsampleError) Error() string {
	return fmt.Sprintf("independence context %q: subsample size %d exceeds size %d",
		e.Context, e.SubsampleSize, e.Size)
}

// DimConflictError reports two simultaneously-active vectorized contexts
// claiming the same batch dimension.
type DimConflictError struct {
	Context string
	Other   string
	Dim     int
}

func (e *DimConflictError) Error() string {
	return fmt.Sprintf("independence context %q: dim %d already occupied by context %q",
		e.Context, e.Dim, e.Other)
}

// ShapeMismatchError reports a paired guide/model site whose replayed value
// does not match the model-side distribution's batch shape.
type ShapeMismatchError struct {
	Site  string
	Guide tensor.Shape
	Model tensor.Shape
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("site %q: guide value shape %v does not match model shape %v",
		e.Site, e.Guide, e.Model)
}

// NotReparameterizedError reports a non-observed guide site without pathwise
// gradients under the pathwise estimator, which would silently bias results.
type NotReparameterizedError struct {
	Site string
}

func (e *NotReparameterizedError) Error() string {
	return fmt.Sprintf("pathwise estimator requires reparameterized guide sites, but %q is not", e.Site)
}

// Model functions are plain closures with no error return, so fatal
// conditions inside an execution are raised as panics carrying an error and
// recovered at the LossAndGrads boundary. modelError wraps them so the
// recover handler never swallows an unrelated panic.
type modelError struct {
	err error
}

func throw(err error) {
	panic(modelError{err: err})
}

// catch converts a modelError panic into *errp, repanicking on anything else.
// Use as: defer catch(&err).
func catch(errp *error) {
	if r := recover(); r != nil {
		if me, ok := r.(modelError); ok {
			*errp = me.err
			return
		}
		panic(r)
	}
}
