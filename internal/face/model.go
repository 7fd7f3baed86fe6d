package face

import (
	"context"
)

// Tensor is a dense float32 tensor with its shape.
type Tensor struct {
	Shape []int
	Data  []float32
}

// NewScalar returns a one element tensor.
func NewScalar(v float32) Tensor {
	return Tensor{Shape: []int{1}, Data: []float32{v}}
}

// Outputs maps output tensor names to their flattened values.
type Outputs map[string][]float32

// Model is a loaded inference model. Implementations must be safe for
// concurrent use by multiple goroutines.
type Model interface {
	// InputNames returns the declared input tensor names.
	InputNames() []string
	// OutputNames returns the declared output tensor names.
	OutputNames() []string
	// Run feeds the named inputs and returns all outputs.
	Run(ctx context.Context, inputs map[string]Tensor) (Outputs, error)
}
