package face

import (
	"math"

	"github.com/tidwall/gjson"
	"gonum.org/v1/gonum/floats"
)

// Embedding is a face embedding vector.
type Embedding []float64

// NewEmbedding converts raw model output to an embedding.
func NewEmbedding(values []float32) Embedding {
	result := make(Embedding, len(values))

	for i, v := range values {
		result[i] = float64(v)
	}

	return result
}

// Norm returns the Euclidean length.
func (e Embedding) Norm() float64 {
	if len(e) == 0 {
		return 0
	}

	return floats.Norm(e, 2)
}

// Finite tests if all values are finite numbers.
func (e Embedding) Finite() bool {
	for _, v := range e {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}

// L2Normalize scales the values to unit length and returns the original norm.
// A zero vector keeps its values since the norm is floored to 1.
func L2Normalize(e Embedding) (Embedding, float64) {
	norm := e.Norm()
	div := norm

	if div == 0 {
		div = 1
	}

	result := make(Embedding, len(e))
	copy(result, e)
	floats.Scale(1/div, result)

	return result, norm
}

// Average returns the elementwise mean of two equal length embeddings.
func Average(a, b Embedding) Embedding {
	result := make(Embedding, len(a))
	floats.ScaleTo(result, 0.5, a)
	floats.AddScaled(result, 0.5, b)

	return result
}

// ValidateEmbedding checks the caller facing contract: EmbeddingDim finite values.
func ValidateEmbedding(values []float64) (Embedding, error) {
	if len(values) != EmbeddingDim {
		return nil, ErrInvalidEmbeddingFormat.Withf("expected %d values, got %d", EmbeddingDim, len(values))
	}

	e := Embedding(values)

	if !e.Finite() {
		return nil, ErrInvalidEmbeddingFormat.Withf("values must be finite numbers")
	}

	return e, nil
}

// ParseEmbedding reads a JSON array of numbers and validates it.
func ParseEmbedding(raw []byte) (Embedding, error) {
	if !gjson.ValidBytes(raw) {
		return nil, ErrInvalidEmbeddingFormat.Withf("malformed json")
	}

	return ParseEmbeddingResult(gjson.ParseBytes(raw))
}

// ParseEmbeddingResult validates an already parsed JSON value.
func ParseEmbeddingResult(r gjson.Result) (Embedding, error) {
	if !r.IsArray() {
		return nil, ErrInvalidEmbeddingFormat.Withf("expected an array")
	}

	items := r.Array()
	values := make([]float64, len(items))

	for i, item := range items {
		if item.Type != gjson.Number {
			return nil, ErrInvalidEmbeddingFormat.Withf("value %d is not a number", i)
		}

		values[i] = item.Float()
	}

	return ValidateEmbedding(values)
}
