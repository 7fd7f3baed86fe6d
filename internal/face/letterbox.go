package face

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Letterbox describes how an image was resized and padded into the square model input.
type Letterbox struct {
	Scale      float64 `json:"scale"`
	PadLeft    int     `json:"pad_left"`
	PadTop     int     `json:"pad_top"`
	TargetSize int     `json:"target_size"`
}

// NewLetterbox returns the transform that fits size into a targetSize square.
func NewLetterbox(size ImageSize, targetSize int) Letterbox {
	if !size.Valid() || targetSize <= 0 {
		return Letterbox{Scale: 1, TargetSize: targetSize}
	}

	scale := float64(targetSize) / math.Max(float64(size.Width), float64(size.Height))
	w, h := resized(size, scale)

	return Letterbox{
		Scale:      scale,
		PadLeft:    (targetSize - w) / 2,
		PadTop:     (targetSize - h) / 2,
		TargetSize: targetSize,
	}
}

func resized(size ImageSize, scale float64) (int, int) {
	w := int(math.Round(float64(size.Width) * scale))
	h := int(math.Round(float64(size.Height) * scale))

	if w < 1 {
		w = 1
	}

	if h < 1 {
		h = 1
	}

	return w, h
}

// Unmap converts a center based box in normalized model input space back to
// a box relative to the original image. Corners are clamped to [0,1].
func (l Letterbox) Unmap(cx, cy, w, h float64, size ImageSize) Box {
	if !size.Valid() || l.Scale <= 0 {
		return Box{}
	}

	t := float64(l.TargetSize)

	px, py := cx*t, cy*t
	pw, ph := w*t, h*t

	fw, fh := float64(size.Width), float64(size.Height)
	padLeft, padTop := float64(l.PadLeft), float64(l.PadTop)

	x1 := clamp01((px - pw/2 - padLeft) / l.Scale / fw)
	y1 := clamp01((py - ph/2 - padTop) / l.Scale / fh)
	x2 := clamp01((px + pw/2 - padLeft) / l.Scale / fw)
	y2 := clamp01((py + ph/2 - padTop) / l.Scale / fh)

	return Box{
		X: x1,
		Y: y1,
		W: math.Max(0, x2-x1),
		H: math.Max(0, y2-y1),
	}
}

// LetterboxImage resizes img to fit a targetSize square and pads the rest with black.
func LetterboxImage(img image.Image, targetSize int) (*image.NRGBA, Letterbox) {
	b := img.Bounds()
	size := ImageSize{Width: b.Dx(), Height: b.Dy()}
	l := NewLetterbox(size, targetSize)
	w, h := resized(size, l.Scale)

	canvas := imaging.New(targetSize, targetSize, color.NRGBA{A: 255})
	scaled := imaging.Resize(img, w, h, imaging.Linear)

	return imaging.Paste(canvas, scaled, image.Pt(l.PadLeft, l.PadTop)), l
}
