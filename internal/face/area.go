package face

import (
	"fmt"
	"image"
	"math"
)

// Area is a face bounding box in pixels of the original image.
type Area struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// String returns the area as string.
func (a Area) String() string {
	return fmt.Sprintf("%d-%d-%d-%d", a.X, a.Y, a.W, a.H)
}

// Rect returns the area as image rectangle.
func (a Area) Rect() image.Rectangle {
	return image.Rect(a.X, a.Y, a.X+a.W, a.Y+a.H)
}

// Center returns the area center.
func (a Area) Center() (float64, float64) {
	return float64(a.X) + float64(a.W)/2, float64(a.Y) + float64(a.H)/2
}

// Relative returns the area with coordinates relative to the image size.
func (a Area) Relative(size ImageSize) Box {
	if !size.Valid() {
		return Box{}
	}

	return Box{
		X: float64(a.X) / float64(size.Width),
		Y: float64(a.Y) / float64(size.Height),
		W: float64(a.W) / float64(size.Width),
		H: float64(a.H) / float64(size.Height),
	}
}

// Clamp returns the area limited to [0, width] x [0, height].
func (a Area) Clamp(size ImageSize) Area {
	x0 := clampInt(a.X, 0, size.Width)
	y0 := clampInt(a.Y, 0, size.Height)
	x1 := clampInt(a.X+a.W, 0, size.Width)
	y1 := clampInt(a.Y+a.H, 0, size.Height)

	return Area{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Expand grows the area by ratio around its center and clamps the result.
func (a Area) Expand(ratio float64, size ImageSize) Area {
	if ratio <= 0 {
		return a.Clamp(size)
	}

	ex := int(math.Round(float64(a.W) * ratio / 2))
	ey := int(math.Round(float64(a.H) * ratio / 2))

	return Area{X: a.X - ex, Y: a.Y - ey, W: a.W + 2*ex, H: a.H + 2*ey}.Clamp(size)
}

// Square returns a center preserving square that stays inside the image.
// The position is clamped first, the side only shrinks if the image is smaller.
func (a Area) Square(size ImageSize) Area {
	side := int(math.Round(math.Max(float64(a.W), float64(a.H))))

	if m := size.MinSide(); side > m {
		side = m
	}

	cx, cy := a.Center()

	x := int(math.Round(cx - float64(side)/2))
	y := int(math.Round(cy - float64(side)/2))

	return Area{
		X: clampInt(x, 0, size.Width-side),
		Y: clampInt(y, 0, size.Height-side),
		W: side,
		H: side,
	}
}

// Validate returns ErrFaceTooSmall if a side is below minSize pixels.
func (a Area) Validate(minSize int) error {
	if a.W < minSize || a.H < minSize || a.W <= 0 || a.H <= 0 {
		return ErrFaceTooSmall.Withf("%dx%d px, min %d px", a.W, a.H, minSize)
	}

	return nil
}

// GeometryOptions configures FaceArea.
type GeometryOptions struct {
	ExpandRatio    float64
	MaxExpandRatio float64
	Square         bool
	MinPixelSize   int
}

// FaceArea expands, optionally squares and validates a detected face area.
func FaceArea(a Area, size ImageSize, opt GeometryOptions) (Area, error) {
	ratio := opt.ExpandRatio

	if opt.MaxExpandRatio > 0 && ratio > opt.MaxExpandRatio {
		ratio = opt.MaxExpandRatio
	}

	result := a.Expand(ratio, size)

	if opt.Square {
		result = result.Square(size)
	}

	if err := result.Validate(opt.MinPixelSize); err != nil {
		return result, err
	}

	return result, nil
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}

	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
