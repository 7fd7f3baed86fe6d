package face

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unit returns an EmbeddingDim vector with a single 1 at index i.
func unit(i int) Embedding {
	e := make(Embedding, EmbeddingDim)
	e[i] = 1

	return e
}

func TestL2Normalize(t *testing.T) {
	t.Run("Unit", func(t *testing.T) {
		e := make(Embedding, EmbeddingDim)

		for i := range e {
			e[i] = float64(i%7) - 3
		}

		result, norm := L2Normalize(e)

		assert.Greater(t, norm, 0.0)
		assert.InDelta(t, 1.0, result.Norm(), 1e-4)
		assert.Equal(t, -3.0, e[0])
	})
	t.Run("Zero", func(t *testing.T) {
		result, norm := L2Normalize(make(Embedding, 4))

		assert.Equal(t, 0.0, norm)
		assert.Equal(t, Embedding{0, 0, 0, 0}, result)
	})
}

func TestAverage(t *testing.T) {
	assert.Equal(t, Embedding{1, 2, 3}, Average(Embedding{0, 2, 4}, Embedding{2, 2, 2}))
}

func TestValidateEmbedding(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		e, err := ValidateEmbedding(unit(3))

		require.NoError(t, err)
		assert.Len(t, e, EmbeddingDim)
	})
	t.Run("Short", func(t *testing.T) {
		_, err := ValidateEmbedding(make([]float64, 511))

		assert.True(t, errors.Is(err, ErrInvalidEmbeddingFormat))
		assert.Equal(t, ValidationError, KindOf(err))
	})
	t.Run("NaN", func(t *testing.T) {
		e := unit(0)
		e[5] = math.NaN()

		_, err := ValidateEmbedding(e)
		assert.True(t, errors.Is(err, ErrInvalidEmbeddingFormat))
	})
	t.Run("Inf", func(t *testing.T) {
		e := unit(0)
		e[5] = math.Inf(-1)

		_, err := ValidateEmbedding(e)
		assert.True(t, errors.Is(err, ErrInvalidEmbeddingFormat))
	})
}

func TestParseEmbedding(t *testing.T) {
	numbers := func(n int, v string) string {
		return "[" + strings.TrimSuffix(strings.Repeat(v+",", n), ",") + "]"
	}

	t.Run("Valid", func(t *testing.T) {
		e, err := ParseEmbedding([]byte(numbers(EmbeddingDim, "0.5")))

		require.NoError(t, err)
		assert.Len(t, e, EmbeddingDim)
		assert.Equal(t, 0.5, e[511])
	})
	t.Run("String", func(t *testing.T) {
		_, err := ParseEmbedding([]byte(numbers(EmbeddingDim, `"0.5"`)))
		assert.True(t, errors.Is(err, ErrInvalidEmbeddingFormat))
	})
	t.Run("Object", func(t *testing.T) {
		_, err := ParseEmbedding([]byte(`{"a": 1}`))
		assert.True(t, errors.Is(err, ErrInvalidEmbeddingFormat))
	})
	t.Run("Malformed", func(t *testing.T) {
		_, err := ParseEmbedding([]byte(`[1, 2`))
		assert.True(t, errors.Is(err, ErrInvalidEmbeddingFormat))
	})
	t.Run("Length", func(t *testing.T) {
		_, err := ParseEmbedding([]byte(numbers(10, "1")))
		assert.True(t, errors.Is(err, ErrInvalidEmbeddingFormat))
	})
}
