package face

import (
	"fmt"
	"math"
)

// Box is a bounding box relative to the original image, all values in [0,1].
type Box struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// String returns the box as string.
func (b Box) String() string {
	return fmt.Sprintf("%.4f-%.4f-%.4f-%.4f", b.X, b.Y, b.W, b.H)
}

// Area returns the box surface.
func (b Box) Area() float64 {
	if b.W <= 0 || b.H <= 0 {
		return 0
	}

	return b.W * b.H
}

// Pixels converts the box to a pixel area and clamps it to the image bounds.
func (b Box) Pixels(size ImageSize) Area {
	a := Area{
		X: int(math.Round(b.X * float64(size.Width))),
		Y: int(math.Round(b.Y * float64(size.Height))),
		W: int(math.Round(b.W * float64(size.Width))),
		H: int(math.Round(b.H * float64(size.Height))),
	}

	return a.Clamp(size)
}

// IoU returns the intersection over union of two boxes, 0 if the union is empty.
func IoU(a, b Box) float64 {
	x1 := math.Max(a.X, b.X)
	y1 := math.Max(a.Y, b.Y)
	x2 := math.Min(a.X+a.W, b.X+b.W)
	y2 := math.Min(a.Y+a.H, b.Y+b.H)

	var intersection float64

	if x2 > x1 && y2 > y1 {
		intersection = (x2 - x1) * (y2 - y1)
	}

	union := a.Area() + b.Area() - intersection

	if union <= 0 {
		return 0
	}

	return intersection / union
}
