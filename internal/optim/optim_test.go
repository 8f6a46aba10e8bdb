package optim_test

import (
	"math"
	"testing"

	"github.com/lumen-ml/lumen/internal/optim"
	"github.com/lumen-ml/lumen/internal/param"
	"github.com/lumen-ml/lumen/internal/tensor"
)

// Helper to check float equality with tolerance.
func floatEqual(a, b, eps float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < eps
}

func storeWith(t *testing.T, name string, value float64) *param.Store {
	t.Helper()
	store := param.NewStore()
	store.GetOrInit(name, func() *tensor.Tensor { return tensor.Scalar(value) })
	return store
}

// TestSGD_SimpleUpdate tests SGD without momentum.
func TestSGD_SimpleUpdate(t *testing.T) {
	store := storeWith(t, "x", 2.0)
	optimizer := optim.NewSGD(store, optim.SGDConfig{LR: 0.1})

	optimizer.Step(map[string]*tensor.Tensor{"x": tensor.Scalar(1.0)})

	// Expected: x_new = x_old - lr * grad = 2.0 - 0.1 * 1.0 = 1.9
	if got := store.Get("x").Item(); !floatEqual(got, 1.9, 1e-9) {
		t.Errorf("SGD update: got %f, want 1.9", got)
	}
}

// TestSGD_WithMomentum tests SGD with momentum over two steps.
func TestSGD_WithMomentum(t *testing.T) {
	store := storeWith(t, "x", 2.0)
	optimizer := optim.NewSGD(store, optim.SGDConfig{LR: 0.1, Momentum: 0.9})
	grads := map[string]*tensor.Tensor{"x": tensor.Scalar(1.0)}

	// Step 1: v = 1.0, x = 2.0 - 0.1*1.0 = 1.9
	optimizer.Step(grads)
	if got := store.Get("x").Item(); !floatEqual(got, 1.9, 1e-9) {
		t.Fatalf("step 1: got %f, want 1.9", got)
	}

	// Step 2: v = 0.9*1.0 + 1.0 = 1.9, x = 1.9 - 0.1*1.9 = 1.71
	optimizer.Step(grads)
	if got := store.Get("x").Item(); !floatEqual(got, 1.71, 1e-9) {
		t.Errorf("step 2: got %f, want 1.71", got)
	}
}

// TestSGD_Defaults checks the default learning rate.
func TestSGD_Defaults(t *testing.T) {
	optimizer := optim.NewSGD(param.NewStore(), optim.SGDConfig{})
	if optimizer.GetLR() != 0.01 {
		t.Errorf("default LR = %f, want 0.01", optimizer.GetLR())
	}
}

// TestAdam_FirstStep tests Adam's bias-corrected first update.
func TestAdam_FirstStep(t *testing.T) {
	store := storeWith(t, "x", 2.0)
	optimizer := optim.NewAdam(store, optim.AdamConfig{LR: 0.001})

	optimizer.Step(map[string]*tensor.Tensor{"x": tensor.Scalar(1.0)})

	// After bias correction m_hat = v_hat = grad^2 = 1, so the first step
	// is almost exactly lr: x = 2.0 - 0.001 * 1/(1 + eps)
	if got := store.Get("x").Item(); !floatEqual(got, 2.0-0.001, 1e-6) {
		t.Errorf("Adam first step: got %f, want %f", got, 2.0-0.001)
	}
}

// TestAdam_ConvergesOnQuadratic minimizes f(x) = (x-3)^2.
func TestAdam_ConvergesOnQuadratic(t *testing.T) {
	store := storeWith(t, "x", 0.0)
	optimizer := optim.NewAdam(store, optim.AdamConfig{LR: 0.1})

	x := store.Get("x")
	for i := 0; i < 500; i++ {
		grad := tensor.Scalar(2 * (x.Item() - 3))
		optimizer.Step(map[string]*tensor.Tensor{"x": grad})
	}

	if got := x.Item(); math.Abs(got-3) > 0.01 {
		t.Errorf("Adam did not converge: x = %f, want 3", got)
	}
}

// TestAdam_Defaults checks default hyperparameters.
func TestAdam_Defaults(t *testing.T) {
	optimizer := optim.NewAdam(param.NewStore(), optim.AdamConfig{})
	if optimizer.GetLR() != 0.001 {
		t.Errorf("default LR = %f, want 0.001", optimizer.GetLR())
	}
}

// TestStep_UnknownName ensures gradients for dropped parameters are skipped.
func TestStep_UnknownName(t *testing.T) {
	store := storeWith(t, "x", 1.0)
	optimizer := optim.NewSGD(store, optim.SGDConfig{LR: 0.1})

	optimizer.Step(map[string]*tensor.Tensor{"ghost": tensor.Scalar(1.0)})

	if got := store.Get("x").Item(); got != 1.0 {
		t.Errorf("unrelated parameter modified: %f", got)
	}
}

// TestStep_VectorParameter updates multi-element parameters element-wise.
func TestStep_VectorParameter(t *testing.T) {
	store := param.NewStore()
	store.GetOrInit("w", func() *tensor.Tensor {
		w, _ := tensor.FromSlice([]float64{1, 2, 3}, tensor.Shape{3})
		return w
	})
	optimizer := optim.NewSGD(store, optim.SGDConfig{LR: 0.5})

	grad, _ := tensor.FromSlice([]float64{2, 0, -2}, tensor.Shape{3})
	optimizer.Step(map[string]*tensor.Tensor{"w": grad})

	want := []float64{0, 2, 4}
	for i, v := range store.Get("w").Data() {
		if !floatEqual(v, want[i], 1e-9) {
			t.Errorf("w[%d] = %f, want %f", i, v, want[i])
		}
	}
}
