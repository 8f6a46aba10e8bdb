package param_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumen-ml/lumen/internal/param"
	"github.com/lumen-ml/lumen/internal/tensor"
)

func TestGetOrInitLazy(t *testing.T) {
	store := param.NewStore()
	calls := 0
	init := func() *tensor.Tensor {
		calls++
		return tensor.Scalar(1.5)
	}

	first := store.GetOrInit("loc", init)
	second := store.GetOrInit("loc", init)

	assert.Same(t, first, second, "repeated access must return the same tensor")
	assert.Equal(t, 1, calls, "initializer must run exactly once")
	assert.Equal(t, 1, store.Len())
}

func TestGetMissing(t *testing.T) {
	store := param.NewStore()
	assert.Nil(t, store.Get("missing"))
	assert.Nil(t, store.Grad("missing"))
}

func TestNamesSorted(t *testing.T) {
	store := param.NewStore()
	store.GetOrInit("sigma", func() *tensor.Tensor { return tensor.Scalar(1) })
	store.GetOrInit("loc", func() *tensor.Tensor { return tensor.Scalar(0) })

	assert.Equal(t, []string{"loc", "sigma"}, store.Names())
}

func TestGradLifecycle(t *testing.T) {
	store := param.NewStore()
	store.GetOrInit("loc", func() *tensor.Tensor { return tensor.Scalar(0) })

	require.NoError(t, store.SetGrad("loc", tensor.Scalar(0.5)))
	assert.Equal(t, 0.5, store.Grad("loc").Item())
	assert.Len(t, store.Grads(), 1)

	store.ZeroGrad()
	assert.Nil(t, store.Grad("loc"))
	assert.Empty(t, store.Grads())
	assert.NotNil(t, store.Get("loc"), "ZeroGrad must not drop parameters")
}

func TestSetGradUnknownName(t *testing.T) {
	store := param.NewStore()
	assert.Error(t, store.SetGrad("missing", tensor.Scalar(1)))
}

func TestNamedParametersSnapshot(t *testing.T) {
	store := param.NewStore()
	loc := store.GetOrInit("loc", func() *tensor.Tensor { return tensor.Scalar(0) })

	snap := store.NamedParameters()
	require.Len(t, snap, 1)
	assert.Same(t, loc, snap["loc"])
}

func TestClear(t *testing.T) {
	store := param.NewStore()
	store.GetOrInit("loc", func() *tensor.Tensor { return tensor.Scalar(0) })

	store.Clear()

	assert.Zero(t, store.Len())
	assert.Nil(t, store.Get("loc"))
}
