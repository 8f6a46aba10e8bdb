package infer_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumen-ml/lumen/internal/dist"
	"github.com/lumen-ml/lumen/internal/infer"
	"github.com/lumen-ml/lumen/internal/optim"
	"github.com/lumen-ml/lumen/internal/param"
	"github.com/lumen-ml/lumen/internal/tensor"
)

// Conjugate normal-normal fit: prior N(0,1), four unit-noise observations.
// The exact posterior is N(sum/(n+1), 1/(n+1)).
func TestSVIConvergence(t *testing.T) {
	data := []float64{-0.5, 2.0, 1.0, 0.25}
	sum := 0.0
	for _, x := range data {
		sum += x
	}
	postLoc := sum / float64(len(data)+1)
	postScale := math.Sqrt(1.0 / float64(len(data)+1))

	model := func(r *infer.Run) {
		z := r.Sample("z", dist.NewNormalScalars(0, 1))
		for i, x := range data {
			r.Observe(fmt.Sprintf("x_%d", i), dist.NewNormal(z, tensor.Scalar(1)), tensor.Scalar(x))
		}
	}
	guide := func(r *infer.Run) {
		loc := r.Param("loc", func() *tensor.Tensor { return tensor.Scalar(0) })
		logScale := r.Param("log_scale", func() *tensor.Tensor { return tensor.Scalar(0) })
		r.Sample("z", dist.NewNormal(loc, r.Tape().Exp(logScale)))
	}

	store := param.NewStore()
	elbo := infer.NewELBO(infer.ELBOConfig{
		Estimator:    infer.EstimatorPathwise,
		NumParticles: 10,
		Seed:         1,
	})
	svi := infer.NewSVI(model, guide, store, optim.NewAdam(store, optim.AdamConfig{LR: 0.05}), elbo)

	_, err := svi.Run(600)
	require.NoError(t, err)

	assert.InDelta(t, postLoc, store.Get("loc").Item(), 0.2)
	assert.InDelta(t, postScale, math.Exp(store.Get("log_scale").Item()), 0.2)
}

func TestStepClearsGradients(t *testing.T) {
	model := func(r *infer.Run) {
		r.Sample("z", dist.NewNormalScalars(0, 1))
	}
	guide := func(r *infer.Run) {
		loc := r.Param("loc", func() *tensor.Tensor { return tensor.Scalar(0.5) })
		r.Sample("z", dist.NewNormal(loc, tensor.Scalar(1)))
	}

	store := param.NewStore()
	elbo := infer.NewELBO(infer.ELBOConfig{Estimator: infer.EstimatorPathwise, Seed: 2})
	svi := infer.NewSVI(model, guide, store, optim.NewSGD(store, optim.SGDConfig{LR: 0.1}), elbo)

	_, err := svi.Step()
	require.NoError(t, err)

	assert.Empty(t, store.Grads(), "gradients must be cleared after the optimizer update")
}

// A failed step must leave parameters and gradients untouched.
func TestStepAtomicOnFailure(t *testing.T) {
	model := func(r *infer.Run) {
		r.Sample("z", dist.NewNormalScalars(0, 1))
		r.Sample("z", dist.NewNormalScalars(0, 1)) // duplicate
	}
	guide := func(r *infer.Run) {
		loc := r.Param("loc", func() *tensor.Tensor { return tensor.Scalar(0.5) })
		r.Sample("z", dist.NewNormal(loc, tensor.Scalar(1)))
	}

	store := param.NewStore()
	elbo := infer.NewELBO(infer.ELBOConfig{Estimator: infer.EstimatorPathwise, Seed: 3})
	svi := infer.NewSVI(model, guide, store, optim.NewSGD(store, optim.SGDConfig{LR: 0.1}), elbo)

	_, err := svi.Step()

	var dup *infer.DuplicateSiteError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "z", dup.Name)
	assert.Equal(t, 0.5, store.Get("loc").Item(), "parameter must be unchanged")
	assert.Empty(t, store.Grads(), "no gradient may be committed")
}

func TestStepInvalidParticleCount(t *testing.T) {
	store := param.NewStore()
	elbo := infer.NewELBO(infer.ELBOConfig{NumParticles: -1})
	svi := infer.NewSVI(func(*infer.Run) {}, func(*infer.Run) {}, store,
		optim.NewSGD(store, optim.SGDConfig{}), elbo)

	_, err := svi.Step()
	assert.Error(t, err)
}

func TestPathwiseRejectsNonReparameterized(t *testing.T) {
	model := func(r *infer.Run) {
		r.Sample("z", dist.NewNormalScalars(0, 1))
	}
	guide := func(r *infer.Run) {
		r.Sample("z", dist.NewNonreparamNormalScalars(0, 1))
	}

	elbo := infer.NewELBO(infer.ELBOConfig{Estimator: infer.EstimatorPathwise, Seed: 4})
	_, err := elbo.LossAndGrads(param.NewStore(), model, guide)

	var nr *infer.NotReparameterizedError
	require.ErrorAs(t, err, &nr)
	assert.Equal(t, "z", nr.Site)
}

func TestShapeMismatchBetweenGuideAndModel(t *testing.T) {
	model := func(r *infer.Run) {
		r.Sample("z", dist.NewNormalScalars(0, 1).Expand(tensor.Shape{3}))
	}
	guide := func(r *infer.Run) {
		r.Sample("z", dist.NewNormalScalars(0, 1).Expand(tensor.Shape{2}))
	}

	elbo := infer.NewELBO(infer.ELBOConfig{Estimator: infer.EstimatorPathwise, Seed: 5})
	_, err := elbo.LossAndGrads(param.NewStore(), model, guide)

	var sm *infer.ShapeMismatchError
	require.ErrorAs(t, err, &sm)
	assert.Equal(t, "z", sm.Site)
	assert.Equal(t, tensor.Shape{2}, sm.Guide)
	assert.Equal(t, tensor.Shape{3}, sm.Model)
}

func TestInvalidSubsampleSurfaces(t *testing.T) {
	guide := func(r *infer.Run) {
		r.WithIndep("data", 2, func([]int) {}, infer.WithSubsample(5))
	}

	elbo := infer.NewELBO(infer.ELBOConfig{Estimator: infer.EstimatorPathwise, Seed: 6})
	_, err := elbo.LossAndGrads(param.NewStore(), func(*infer.Run) {}, guide)

	var invalid *infer.InvalidSubsampleError
	require.ErrorAs(t, err, &invalid)
}

func TestDimConflictSurfaces(t *testing.T) {
	guide := func(r *infer.Run) {
		r.WithIndep("a", 2, func([]int) {
			r.WithIndep("b", 2, func([]int) {}, infer.WithDim(-1))
		}, infer.WithDim(-1))
	}

	elbo := infer.NewELBO(infer.ELBOConfig{Estimator: infer.EstimatorPathwise, Seed: 7})
	_, err := elbo.LossAndGrads(param.NewStore(), func(*infer.Run) {}, guide)

	var conflict *infer.DimConflictError
	require.ErrorAs(t, err, &conflict)
}

// Guide draws replay into the model: both executions must see the same
// latent values.
func TestReplaySharesValues(t *testing.T) {
	var guideZ, modelZ *tensor.Tensor
	model := func(r *infer.Run) {
		modelZ = r.Sample("z", dist.NewNormalScalars(0, 1))
	}
	guide := func(r *infer.Run) {
		guideZ = r.Sample("z", dist.NewNormalScalars(3, 2))
	}

	elbo := infer.NewELBO(infer.ELBOConfig{Estimator: infer.EstimatorPathwise, Seed: 8})
	_, err := elbo.LossAndGrads(param.NewStore(), model, guide)
	require.NoError(t, err)

	assert.Same(t, guideZ, modelZ)
}

func TestRunLoopReportsFinalLoss(t *testing.T) {
	model := func(r *infer.Run) {
		r.Sample("z", dist.NewNormalScalars(0, 1))
	}
	guide := func(r *infer.Run) {
		loc := r.Param("loc", func() *tensor.Tensor { return tensor.Scalar(2) })
		r.Sample("z", dist.NewNormal(loc, tensor.Scalar(1)))
	}

	store := param.NewStore()
	elbo := infer.NewELBO(infer.ELBOConfig{Estimator: infer.EstimatorPathwise, NumParticles: 5, Seed: 9})
	svi := infer.NewSVI(model, guide, store, optim.NewSGD(store, optim.SGDConfig{LR: 0.05}), elbo)

	loss, err := svi.Run(100)
	require.NoError(t, err)
	assert.False(t, math.IsNaN(loss))
	// The guide location drifts towards the prior mean.
	assert.Less(t, math.Abs(store.Get("loc").Item()), 2.0)
}
