package face

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigmoid(t *testing.T) {
	assert.Equal(t, 0.5, sigmoid(0))
	assert.InDelta(t, 0.8808, sigmoid(2), 1e-4)
	assert.InDelta(t, 0, sigmoid(-1000), 1e-12)
}

func TestSoftmax2(t *testing.T) {
	assert.Equal(t, 0.5, softmax2(0, 0))
	assert.Equal(t, 0.5, softmax2(1000, 1000))
	assert.InDelta(t, 1, softmax2(0, 1000), 1e-12)
	assert.InDelta(t, 0.7311, softmax2(0, 1), 1e-4)
	assert.False(t, math.IsNaN(softmax2(-1e308, 1e308)))
}

// regressor returns a 16 value regressor row with the given box deltas.
func regressor(dx, dy, dw, dh float32) []float32 {
	r := make([]float32, 16)
	r[0], r[1], r[2], r[3] = dx, dy, dw, dh

	return r
}

func testDecoder(kind SchemaKind, maps []FeatureMap) *Decoder {
	c := DefaultSchemaConfig()

	s := Schema{Kind: SchemaDirect, First: c.Boxes, Second: c.Scores}

	if kind == SchemaAnchor {
		s = Schema{Kind: SchemaAnchor, First: c.Regressors, Second: c.Classificators}
	}

	return &Decoder{
		Schema:  s,
		Anchors: NewAnchors(maps, 128),
		Options: DecodeOptions{ConfidenceThreshold: 0.5, MinFaceSize: 0.03, MaxFaceSize: 1.0},
	}
}

func TestDecoder_Decode(t *testing.T) {
	single := []FeatureMap{{GridSize: 1, Stride: 128, AnchorsPerCell: 1}}
	size := ImageSize{Width: 100, Height: 100}
	l := NewLetterbox(size, 128)

	t.Run("AnchorSigmoid", func(t *testing.T) {
		d := testDecoder(SchemaAnchor, single)

		result, err := d.Decode(Outputs{
			"regressors":     regressor(0, 0, 64, 64),
			"classificators": {2},
		}, l, size)

		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.InDelta(t, 0.25, result[0].Box.X, 1e-9)
		assert.InDelta(t, 0.25, result[0].Box.Y, 1e-9)
		assert.InDelta(t, 0.5, result[0].Box.W, 1e-9)
		assert.InDelta(t, 0.5, result[0].Box.H, 1e-9)
		assert.InDelta(t, 0.8808, result[0].Score, 1e-4)
	})
	t.Run("AnchorOffset", func(t *testing.T) {
		d := testDecoder(SchemaAnchor, single)

		result, err := d.Decode(Outputs{
			"regressors":     regressor(12.8, -12.8, 32, 32),
			"classificators": {3},
		}, l, size)

		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.InDelta(t, 0.475, result[0].Box.X, 1e-6)
		assert.InDelta(t, 0.275, result[0].Box.Y, 1e-6)
		assert.InDelta(t, 0.25, result[0].Box.W, 1e-6)
	})
	t.Run("NegativeSize", func(t *testing.T) {
		d := testDecoder(SchemaAnchor, single)

		result, err := d.Decode(Outputs{
			"regressors":     regressor(0, 0, -64, -64),
			"classificators": {2},
		}, l, size)

		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.InDelta(t, 0.5, result[0].Box.W, 1e-9)
	})
	t.Run("Softmax", func(t *testing.T) {
		d := testDecoder(SchemaAnchor, single)

		result, err := d.Decode(Outputs{
			"regressors":     regressor(0, 0, 64, 64),
			"classificators": {0, 1},
		}, l, size)

		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.InDelta(t, 0.7311, result[0].Score, 1e-4)
	})
	t.Run("LowScore", func(t *testing.T) {
		d := testDecoder(SchemaAnchor, single)

		result, err := d.Decode(Outputs{
			"regressors":     regressor(0, 0, 64, 64),
			"classificators": {-2},
		}, l, size)

		require.NoError(t, err)
		assert.Empty(t, result)
	})
	t.Run("TooSmall", func(t *testing.T) {
		d := testDecoder(SchemaAnchor, single)

		result, err := d.Decode(Outputs{
			"regressors":     regressor(0, 0, 1, 1),
			"classificators": {5},
		}, l, size)

		require.NoError(t, err)
		assert.Empty(t, result)
	})
	t.Run("TooLarge", func(t *testing.T) {
		d := testDecoder(SchemaAnchor, single)
		d.Options.MaxFaceSize = 0.4

		result, err := d.Decode(Outputs{
			"regressors":     regressor(0, 0, 64, 64),
			"classificators": {5},
		}, l, size)

		require.NoError(t, err)
		assert.Empty(t, result)
	})
	t.Run("Padding", func(t *testing.T) {
		wide := ImageSize{Width: 200, Height: 100}
		d := testDecoder(SchemaAnchor, single)

		// Centered in the top padding band, maps to zero height.
		result, err := d.Decode(Outputs{
			"regressors":     regressor(0, -57.6, 20, 6.4),
			"classificators": {5},
		}, NewLetterbox(wide, 128), wide)

		require.NoError(t, err)
		assert.Empty(t, result)
	})
	t.Run("BlazeFace", func(t *testing.T) {
		d := testDecoder(SchemaAnchor, DefaultFeatureMaps)
		regressors := make([]float32, 896*16)
		classificators := make([]float32, 896)

		for i := range classificators {
			classificators[i] = -10
		}

		// Anchor 512 is the first cell of the 8x8 grid.
		copy(regressors[512*16:], regressor(0, 0, 16, 16))
		classificators[512] = 4

		result, err := d.Decode(Outputs{"regressors": regressors, "classificators": classificators}, l, size)

		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.InDelta(t, 0, result[0].Box.X, 1e-9)
		assert.InDelta(t, 0.125, result[0].Box.W, 1e-9)
	})
	t.Run("AnchorMismatch", func(t *testing.T) {
		d := testDecoder(SchemaAnchor, DefaultFeatureMaps)

		_, err := d.Decode(Outputs{
			"regressors":     make([]float32, 100),
			"classificators": make([]float32, 896),
		}, l, size)

		assert.True(t, errors.Is(err, ErrInference))
		assert.Equal(t, ModelError, KindOf(err))
	})
	t.Run("ClassMismatch", func(t *testing.T) {
		d := testDecoder(SchemaAnchor, single)

		_, err := d.Decode(Outputs{
			"regressors":     regressor(0, 0, 64, 64),
			"classificators": {1, 2, 3},
		}, l, size)

		assert.Equal(t, ModelError, KindOf(err))
	})
	t.Run("MissingOutput", func(t *testing.T) {
		d := testDecoder(SchemaAnchor, single)

		_, err := d.Decode(Outputs{"regressors": regressor(0, 0, 64, 64)}, l, size)

		assert.True(t, errors.Is(err, ErrInference))
	})
	t.Run("Direct", func(t *testing.T) {
		d := testDecoder(SchemaDirect, nil)

		result, err := d.Decode(Outputs{
			"boxes":  {0.25, 0.25, 0.75, 0.75, 0.1, 0.1, 0.2, 0.2},
			"scores": {0.9, 0.2},
		}, l, size)

		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.InDelta(t, 0.25, result[0].Box.X, 1e-6)
		assert.InDelta(t, 0.5, result[0].Box.W, 1e-6)
		assert.InDelta(t, 0.9, result[0].Score, 1e-6)
	})
	t.Run("DirectMismatch", func(t *testing.T) {
		d := testDecoder(SchemaDirect, nil)

		_, err := d.Decode(Outputs{
			"boxes":  {0.25, 0.25, 0.75},
			"scores": {0.9},
		}, l, size)

		assert.Equal(t, ModelError, KindOf(err))
	})
}
