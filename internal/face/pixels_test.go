package face

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalization_Apply(t *testing.T) {
	assert.Equal(t, float32(-0.99609375), NormInsight.Apply(0))
	assert.Equal(t, float32(0.99609375), NormInsight.Apply(255))
	assert.Equal(t, float32(0), NormZeroOne.Apply(0))
	assert.Equal(t, float32(1), NormZeroOne.Apply(255))
	assert.Equal(t, float32(-1), NormTorch.Apply(0))
	assert.Equal(t, float32(1), NormTorch.Apply(255))
	assert.True(t, NormTorch.Valid())
	assert.False(t, Normalization("imagenet").Valid())
}

func TestPixels_RGB(t *testing.T) {
	t.Run("Alpha", func(t *testing.T) {
		p := Pixels{Width: 2, Height: 1, Channels: 4, Data: []uint8{1, 2, 3, 255, 4, 5, 6, 0}}
		result, err := p.RGB()

		require.NoError(t, err)
		assert.Equal(t, 3, result.Channels)
		assert.Equal(t, []uint8{1, 2, 3, 4, 5, 6}, result.Data)
	})
	t.Run("Gray", func(t *testing.T) {
		p := Pixels{Width: 2, Height: 1, Channels: 1, Data: []uint8{7, 9}}
		result, err := p.RGB()

		require.NoError(t, err)
		assert.Equal(t, []uint8{7, 7, 7, 9, 9, 9}, result.Data)
	})
	t.Run("SizeMismatch", func(t *testing.T) {
		_, err := Pixels{Width: 2, Height: 2, Channels: 3, Data: []uint8{1, 2, 3}}.RGB()
		assert.Error(t, err)
	})
	t.Run("Channels", func(t *testing.T) {
		_, err := Pixels{Width: 1, Height: 1, Channels: 2, Data: []uint8{1, 2}}.RGB()
		assert.Error(t, err)
	})
}

func TestPixels_Planar(t *testing.T) {
	p := Pixels{Width: 2, Height: 1, Channels: 3, Data: []uint8{0, 51, 255, 255, 102, 0}}

	t.Run("RGB", func(t *testing.T) {
		result, err := p.Planar(NormZeroOne, OrderRGB)

		require.NoError(t, err)
		assert.InDeltaSlice(t, []float32{0, 1, 0.2, 0.4, 1, 0}, result, 1e-6)
	})
	t.Run("BGR", func(t *testing.T) {
		result, err := p.Planar(NormZeroOne, OrderBGR)

		require.NoError(t, err)
		assert.InDeltaSlice(t, []float32{1, 0, 0.2, 0.4, 0, 1}, result, 1e-6)
	})
	t.Run("Interleaved", func(t *testing.T) {
		result, err := p.Interleaved(NormZeroOne, OrderRGB)

		require.NoError(t, err)
		assert.InDeltaSlice(t, []float32{0, 0.2, 1, 1, 0.4, 0}, result, 1e-6)
	})
}

func TestPixels_Mirror(t *testing.T) {
	p := Pixels{Width: 3, Height: 2, Channels: 1, Data: []uint8{1, 2, 3, 4, 5, 6}}

	assert.Equal(t, []uint8{3, 2, 1, 6, 5, 4}, p.Mirror().Data)
	assert.Equal(t, p.Data, p.Mirror().Mirror().Data)
}

func TestExportPixels(t *testing.T) {
	t.Run("Offset", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(10, 10, 12, 11))
		img.Set(10, 10, color.RGBA{R: 255, A: 255})
		img.Set(11, 10, color.RGBA{B: 255, A: 255})

		p := ExportPixels(img)

		assert.True(t, p.Valid())
		assert.Equal(t, 2, p.Width)
		assert.Equal(t, 1, p.Height)
		assert.Equal(t, []uint8{255, 0, 0, 255, 0, 0, 255, 255}, p.Data)
	})
	t.Run("SubImage", func(t *testing.T) {
		img := imaging.New(4, 4, color.NRGBA{G: 255, A: 255})
		img.Set(2, 2, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

		p := ExportPixels(img.SubImage(image.Rect(2, 2, 3, 3)))

		assert.True(t, p.Valid())
		assert.Equal(t, []uint8{10, 20, 30, 255}, p.Data)
	})
	t.Run("Gray", func(t *testing.T) {
		img := image.NewGray(image.Rect(0, 0, 1, 1))
		img.Pix[0] = 128

		p := ExportPixels(img)

		assert.Equal(t, 4, p.Channels)
		assert.Equal(t, []uint8{128, 128, 128, 255}, p.Data)
	})
}

func TestCropFace(t *testing.T) {
	img := imaging.New(400, 300, color.NRGBA{G: 255, A: 255})

	t.Run("Success", func(t *testing.T) {
		result, err := CropFace(img, Area{X: 100, Y: 50, W: 200, H: 200}, CropSize)

		require.NoError(t, err)
		assert.Equal(t, 112, result.Bounds().Dx())
		assert.Equal(t, 112, result.Bounds().Dy())
	})
	t.Run("Outside", func(t *testing.T) {
		_, err := CropFace(img, Area{X: 500, Y: 500, W: 20, H: 20}, CropSize)

		assert.Error(t, err)
	})
}
