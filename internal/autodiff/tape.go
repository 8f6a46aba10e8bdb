package autodiff

import (
	"github.com/lumen-ml/lumen/internal/autodiff/ops"
	"github.com/lumen-ml/lumen/internal/tensor"
)

// GradientTape records operations during the forward pass and computes
// gradients during the backward pass using reverse-mode automatic
// differentiation.
//
// One tape covers one estimator particle: the guide execution, the replayed
// model execution, and the surrogate-loss assembly all record onto the same
// tape, so a single reverse walk reaches every parameter either execution
// touched. Tapes are not safe for concurrent use; parallel particles each
// get their own.
type GradientTape struct {
	operations []ops.Operation // Recorded operations (in execution order)
	recording  bool            // Whether tape is currently recording
}

// NewGradientTape creates a new gradient tape.
func NewGradientTape() *GradientTape {
	return &GradientTape{
		operations: make([]ops.Operation, 0, 64),
		recording:  false,
	}
}

// StartRecording enables operation recording.
func (t *GradientTape) StartRecording() {
	t.recording = true
}

// StopRecording disables operation recording.
func (t *GradientTape) StopRecording() {
	t.recording = false
}

// IsRecording returns true if the tape is currently recording operations.
func (t *GradientTape) IsRecording() bool {
	return t.recording
}

// Record adds an operation to the tape.
// Only records if the tape is currently recording.
func (t *GradientTape) Record(op ops.Operation) {
	if t.recording {
		t.operations = append(t.operations, op)
	}
}

// Clear resets the tape, removing all recorded operations.
// Recording state is preserved.
func (t *GradientTape) Clear() {
	t.operations = t.operations[:0]
}

// NumOps returns the number of recorded operations.
func (t *GradientTape) NumOps() int {
	return len(t.operations)
}

// Backward computes gradients of root with respect to every tensor in the
// recorded graph by walking the tape in reverse.
//
// Algorithm:
//  1. Seed the root (a one-element surrogate loss) with gradient 1
//  2. Walk operations in reverse order
//  3. For each operation with a gradient on its output, compute input
//     gradients via the chain rule
//  4. Accumulate gradients when the same tensor feeds multiple operations
//
// Returns a map from tensor to its accumulated gradient. Leaves never used
// in a recorded operation are absent from the map.
func (t *GradientTape) Backward(root *tensor.Tensor) map[*tensor.Tensor]*tensor.Tensor {
	grads := make(map[*tensor.Tensor]*tensor.Tensor)
	if len(t.operations) == 0 {
		return grads
	}

	// Stop recording so gradient arithmetic is not itself recorded.
	wasRecording := t.recording
	t.recording = false
	defer func() { t.recording = wasRecording }()

	grads[root] = tensor.OnesLike(root)

	for i := len(t.operations) - 1; i >= 0; i-- {
		op := t.operations[i]
		outputGrad, ok := grads[op.Output()]
		if !ok {
			continue // No gradient flows through this operation.
		}
		inputGrads := op.Backward(outputGrad)
		inputs := op.Inputs()
		for j, input := range inputs {
			if j >= len(inputGrads) || inputGrads[j] == nil {
				continue
			}
			if existing, found := grads[input]; found {
				grads[input] = tensor.Add(existing, inputGrads[j])
			} else {
				grads[input] = inputGrads[j]
			}
		}
	}

	return grads
}

// Reachable returns the set of tensors computationally derived from src,
// including src itself. A single forward pass over the recorded operations
// suffices because the tape is stored in execution order.
//
// The graph-aware estimator uses this to decide which log-probability terms
// depend on a given sampled value.
func (t *GradientTape) Reachable(src *tensor.Tensor) map[*tensor.Tensor]bool {
	reach := map[*tensor.Tensor]bool{src: true}
	for _, op := range t.operations {
		for _, in := range op.Inputs() {
			if reach[in] {
				reach[op.Output()] = true
				break
			}
		}
	}
	return reach
}
