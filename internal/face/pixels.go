package face

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Normalization is the pixel value mapping applied before inference.
type Normalization string

const (
	NormInsight Normalization = "insight"
	NormZeroOne Normalization = "zero_one"
	NormTorch   Normalization = "torch"
)

// Apply maps a 0-255 sample to the model value range.
func (n Normalization) Apply(v uint8) float32 {
	switch n {
	case NormZeroOne:
		return float32(float64(v) / 255.0)
	case NormTorch:
		return float32(2*(float64(v)/255.0) - 1.0)
	default:
		return float32((float64(v) - 127.5) / 128.0)
	}
}

// Valid tests if the mode is known.
func (n Normalization) Valid() bool {
	switch n {
	case NormInsight, NormZeroOne, NormTorch:
		return true
	default:
		return false
	}
}

// ChannelOrder is the color channel order a model expects.
type ChannelOrder string

const (
	OrderRGB ChannelOrder = "rgb"
	OrderBGR ChannelOrder = "bgr"
)

// Pixels is a raw interleaved, row major pixel buffer with 1, 3 or 4 channels.
type Pixels struct {
	Width    int
	Height   int
	Channels int
	Data     []uint8
}

// Valid tests if the buffer size matches the dimensions.
func (p Pixels) Valid() bool {
	return p.Width > 0 && p.Height > 0 && p.Channels > 0 && len(p.Data) == p.Width*p.Height*p.Channels
}

// ExportPixels returns the RGBA samples of img.
func ExportPixels(img image.Image) Pixels {
	b := img.Bounds()

	nrgba, ok := img.(*image.NRGBA)

	if !ok || nrgba.Rect.Min != (image.Point{}) || nrgba.Stride != 4*b.Dx() {
		nrgba = imaging.Clone(img)
	}

	return Pixels{Width: b.Dx(), Height: b.Dy(), Channels: 4, Data: nrgba.Pix}
}

// RGB strips alpha from 4 channel data and broadcasts grayscale to 3 channels.
func (p Pixels) RGB() (Pixels, error) {
	if !p.Valid() {
		return p, fmt.Errorf("faces: invalid pixel buffer %dx%dx%d with %d bytes", p.Width, p.Height, p.Channels, len(p.Data))
	}

	switch p.Channels {
	case 3:
		return p, nil
	case 1, 4:
		n := p.Width * p.Height
		out := make([]uint8, 3*n)

		for i := 0; i < n; i++ {
			if p.Channels == 1 {
				v := p.Data[i]
				out[3*i], out[3*i+1], out[3*i+2] = v, v, v
			} else {
				copy(out[3*i:3*i+3], p.Data[4*i:4*i+3])
			}
		}

		return Pixels{Width: p.Width, Height: p.Height, Channels: 3, Data: out}, nil
	default:
		return p, fmt.Errorf("faces: unsupported channel count %d", p.Channels)
	}
}

// Mirror flips the interleaved data horizontally.
func (p Pixels) Mirror() Pixels {
	out := make([]uint8, len(p.Data))
	c := p.Channels

	for y := 0; y < p.Height; y++ {
		row := y * p.Width * c

		for x := 0; x < p.Width; x++ {
			src := row + x*c
			dst := row + (p.Width-1-x)*c
			copy(out[dst:dst+c], p.Data[src:src+c])
		}
	}

	return Pixels{Width: p.Width, Height: p.Height, Channels: c, Data: out}
}

// channelIndex returns the source channel for output channel ch.
func channelIndex(ch int, order ChannelOrder) int {
	if order == OrderBGR {
		return 2 - ch
	}

	return ch
}

// Planar converts 3 channel data to a normalized channel first tensor.
func (p Pixels) Planar(mode Normalization, order ChannelOrder) ([]float32, error) {
	rgb, err := p.RGB()

	if err != nil {
		return nil, err
	}

	n := rgb.Width * rgb.Height
	out := make([]float32, 3*n)

	for i := 0; i < n; i++ {
		for ch := 0; ch < 3; ch++ {
			out[ch*n+i] = mode.Apply(rgb.Data[3*i+channelIndex(ch, order)])
		}
	}

	return out, nil
}

// Interleaved converts 3 channel data to a normalized channel last tensor.
func (p Pixels) Interleaved(mode Normalization, order ChannelOrder) ([]float32, error) {
	rgb, err := p.RGB()

	if err != nil {
		return nil, err
	}

	n := rgb.Width * rgb.Height
	out := make([]float32, 3*n)

	for i := 0; i < n; i++ {
		for ch := 0; ch < 3; ch++ {
			out[3*i+ch] = mode.Apply(rgb.Data[3*i+channelIndex(ch, order)])
		}
	}

	return out, nil
}

// CropFace extracts the area from img and resizes it to size.
func CropFace(img image.Image, a Area, size ImageSize) (image.Image, error) {
	b := img.Bounds()
	r := a.Rect().Add(b.Min).Intersect(b)

	if r.Empty() {
		return nil, ErrFaceTooSmall.Withf("empty crop %s", a)
	}

	return imaging.Resize(imaging.Crop(img, r), size.Width, size.Height, imaging.Lanczos), nil
}
