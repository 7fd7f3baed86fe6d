package thumb

import (
	"image"
	"math"
	"path/filepath"
	"strings"

	"github.com/carck/gg"
	"github.com/disintegration/imaging"

	"github.com/photoprism/faceverify/internal/face"
)

// DrawAreas returns a copy of img with the selected face area outlined in
// green and all other candidates in red.
func DrawAreas(img image.Image, selected face.Area, candidates face.Candidates) image.Image {
	b := img.Bounds()
	size := face.ImageSize{Width: b.Dx(), Height: b.Dy()}

	dc := gg.NewContextForImage(img)
	lineWidth := math.Max(2, float64(size.MinSide())/200)

	dc.SetLineWidth(lineWidth)
	dc.SetRGB(1, 0, 0)

	for _, c := range candidates {
		a := c.Box.Pixels(size)
		dc.DrawRectangle(float64(a.X), float64(a.Y), float64(a.W), float64(a.H))
		dc.Stroke()
	}

	if selected.W > 0 && selected.H > 0 {
		dc.SetRGB(0, 1, 0)
		dc.DrawRectangle(float64(selected.X), float64(selected.Y), float64(selected.W), float64(selected.H))
		dc.Stroke()
	}

	return dc.Image()
}

// Save writes img to fileName, the format is derived from the extension.
func Save(img image.Image, fileName string) error {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".jpg", ".jpeg":
		return imaging.Save(img, fileName, imaging.JPEGQuality(90))
	default:
		return imaging.Save(img, fileName)
	}
}
