package face

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
)

func TestNewLetterbox(t *testing.T) {
	t.Run("Landscape", func(t *testing.T) {
		l := NewLetterbox(ImageSize{Width: 200, Height: 100}, 128)

		assert.InDelta(t, 0.64, l.Scale, 1e-9)
		assert.Equal(t, 0, l.PadLeft)
		assert.Equal(t, 32, l.PadTop)
		assert.Equal(t, 128, l.TargetSize)
	})
	t.Run("Portrait", func(t *testing.T) {
		l := NewLetterbox(ImageSize{Width: 300, Height: 600}, 128)

		assert.InDelta(t, 128.0/600.0, l.Scale, 1e-9)
		assert.Equal(t, 32, l.PadLeft)
		assert.Equal(t, 0, l.PadTop)
	})
	t.Run("Square", func(t *testing.T) {
		l := NewLetterbox(ImageSize{Width: 256, Height: 256}, 128)

		assert.InDelta(t, 0.5, l.Scale, 1e-9)
		assert.Equal(t, 0, l.PadLeft)
		assert.Equal(t, 0, l.PadTop)
	})
}

func TestLetterbox_Unmap(t *testing.T) {
	size := ImageSize{Width: 200, Height: 100}
	l := NewLetterbox(size, 128)

	t.Run("Content", func(t *testing.T) {
		b := l.Unmap(0.5, 0.5, 1, 0.5, size)

		assert.InDelta(t, 0, b.X, 1e-9)
		assert.InDelta(t, 0, b.Y, 1e-9)
		assert.InDelta(t, 1, b.W, 1e-9)
		assert.InDelta(t, 1, b.H, 1e-9)
	})
	t.Run("Inner", func(t *testing.T) {
		b := l.Unmap(0.25, 0.5, 0.25, 0.25, size)

		assert.InDelta(t, 0.125, b.X, 1e-9)
		assert.InDelta(t, 0.25, b.Y, 1e-9)
		assert.InDelta(t, 0.25, b.W, 1e-9)
		assert.InDelta(t, 0.5, b.H, 1e-9)
	})
	t.Run("Padding", func(t *testing.T) {
		b := l.Unmap(0.5, 0.05, 0.2, 0.05, size)

		assert.Equal(t, 0.0, b.Y)
		assert.Equal(t, 0.0, b.H)
	})
	t.Run("Overflow", func(t *testing.T) {
		b := l.Unmap(0.95, 0.5, 0.3, 0.25, size)

		assert.LessOrEqual(t, b.X+b.W, 1.0+1e-9)
		assert.GreaterOrEqual(t, b.W, 0.0)
	})
}

func TestLetterboxImage(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	img := imaging.New(200, 100, red)

	result, l := LetterboxImage(img, 128)

	assert.Equal(t, image.Rect(0, 0, 128, 128), result.Bounds())
	assert.Equal(t, 32, l.PadTop)
	assert.Equal(t, color.NRGBA{A: 255}, result.NRGBAAt(64, 10))
	assert.Equal(t, red, result.NRGBAAt(64, 64))
	assert.Equal(t, color.NRGBA{A: 255}, result.NRGBAAt(64, 120))
}
