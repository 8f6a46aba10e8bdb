package autodiff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumen-ml/lumen/internal/autodiff"
	"github.com/lumen-ml/lumen/internal/tensor"
)

func recordingTape() *autodiff.GradientTape {
	tp := autodiff.NewGradientTape()
	tp.StartRecording()
	return tp
}

func fromSlice(t *testing.T, data ...float64) *tensor.Tensor {
	t.Helper()
	x, err := tensor.FromSlice(data, tensor.Shape{len(data)})
	require.NoError(t, err)
	return x
}

// d/dx sum(x*x) = 2x
func TestSquareGradient(t *testing.T) {
	tp := recordingTape()
	x := fromSlice(t, 1, 2, 3)

	y := tp.Sum(tp.Mul(x, x))
	grads := tp.Backward(y)

	require.Contains(t, grads, x)
	assert.Equal(t, []float64{2, 4, 6}, grads[x].Data())
}

// d/da sum(a*b + exp(a)) = b + exp(a), d/db = a
func TestCompositeGradient(t *testing.T) {
	tp := recordingTape()
	a := fromSlice(t, 0, 1)
	b := fromSlice(t, 3, 4)

	y := tp.Sum(tp.Add(tp.Mul(a, b), tp.Exp(a)))
	grads := tp.Backward(y)

	wantA := []float64{3 + 1, 4 + 2.718281828459045}
	for i, v := range grads[a].Data() {
		assert.InDelta(t, wantA[i], v, 1e-12)
	}
	assert.Equal(t, []float64{0, 1}, grads[b].Data())
}

// d/dx sum(log(x)) = 1/x
func TestLogGradient(t *testing.T) {
	tp := recordingTape()
	x := fromSlice(t, 1, 2, 4)

	grads := tp.Backward(tp.Sum(tp.Log(x)))

	assert.Equal(t, []float64{1, 0.5, 0.25}, grads[x].Data())
}

// A broadcast scalar receives the summed gradient.
func TestScalarBroadcastGradient(t *testing.T) {
	tp := recordingTape()
	a := fromSlice(t, 1, 2, 3)
	s := tensor.Scalar(2)

	grads := tp.Backward(tp.Sum(tp.Mul(a, s)))

	assert.Equal(t, []float64{2, 2, 2}, grads[a].Data())
	assert.Equal(t, []float64{6}, grads[s].Data()) // sum(a)
}

func TestScaleAndNegGradient(t *testing.T) {
	tp := recordingTape()
	x := fromSlice(t, 1, 2)

	grads := tp.Backward(tp.Sum(tp.Neg(tp.Scale(x, 3))))

	assert.Equal(t, []float64{-3, -3}, grads[x].Data())
}

func TestDivGradient(t *testing.T) {
	tp := recordingTape()
	a := fromSlice(t, 1, 2)
	b := fromSlice(t, 2, 4)

	grads := tp.Backward(tp.Sum(tp.Div(a, b)))

	// d(a/b)/da = 1/b, d(a/b)/db = -a/b^2
	assert.Equal(t, []float64{0.5, 0.25}, grads[a].Data())
	assert.Equal(t, []float64{-0.25, -0.125}, grads[b].Data())
}

// Gather scatter-adds the gradient into the selected rows; duplicates
// accumulate, unselected rows stay zero.
func TestGatherGradient(t *testing.T) {
	tp := recordingTape()
	x := fromSlice(t, 10, 20, 30, 40)

	grads := tp.Backward(tp.Sum(tp.Gather(x, []int{1, 3, 3})))

	assert.Equal(t, []float64{0, 1, 0, 2}, grads[x].Data())
}

// Expand sums the gradient back down over the replicated dimensions.
func TestExpandGradient(t *testing.T) {
	tp := recordingTape()
	x := fromSlice(t, 1, 2, 3)

	grads := tp.Backward(tp.Sum(tp.Expand(x, tensor.Shape{4, 3})))

	assert.Equal(t, []float64{4, 4, 4}, grads[x].Data())
}

// A tensor feeding two operations accumulates both gradients.
func TestGradientAccumulation(t *testing.T) {
	tp := recordingTape()
	x := fromSlice(t, 1, 2, 3)

	// sum(x*x + x) -> 2x + 1
	grads := tp.Backward(tp.Sum(tp.Add(tp.Mul(x, x), x)))

	assert.Equal(t, []float64{3, 5, 7}, grads[x].Data())
}

func TestDetachBlocksGradient(t *testing.T) {
	tp := recordingTape()
	x := fromSlice(t, 1, 2)

	d := tp.Detach(x)
	grads := tp.Backward(tp.Sum(tp.Mul(d, d)))

	assert.NotContains(t, grads, x)
}

func TestNoRecordingNoGradients(t *testing.T) {
	tp := autodiff.NewGradientTape() // never started
	x := fromSlice(t, 1, 2)

	y := tp.Sum(tp.Mul(x, x))
	grads := tp.Backward(y)

	assert.Empty(t, grads)
	assert.Zero(t, tp.NumOps())
}

func TestClearPreservesRecordingState(t *testing.T) {
	tp := recordingTape()
	x := fromSlice(t, 1, 2)
	tp.Mul(x, x)
	require.Equal(t, 1, tp.NumOps())

	tp.Clear()

	assert.Zero(t, tp.NumOps())
	assert.True(t, tp.IsRecording())
}

func TestReachable(t *testing.T) {
	tp := recordingTape()
	x := fromSlice(t, 1, 2)
	c := fromSlice(t, 3, 4)

	y := tp.Mul(x, x)     // derived from x
	z := tp.Add(c, c)     // independent of x
	w := tp.Add(y, z)     // derived from both

	reach := tp.Reachable(x)
	assert.True(t, reach[x])
	assert.True(t, reach[y])
	assert.True(t, reach[w])
	assert.False(t, reach[z])
	assert.False(t, reach[c])
}

func TestReshapeGradient(t *testing.T) {
	tp := recordingTape()
	x, err := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2})
	require.NoError(t, err)

	r := tp.Reshape(x, tensor.Shape{4})
	grads := tp.Backward(tp.Sum(tp.Mul(r, r)))

	require.Contains(t, grads, x)
	assert.Equal(t, tensor.Shape{2, 2}, grads[x].Shape())
	assert.Equal(t, []float64{2, 4, 6, 8}, grads[x].Data())
}
