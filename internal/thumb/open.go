package thumb

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/mandykoh/prism/meta/autometa"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/photoprism/faceverify/internal/face"
	"github.com/photoprism/faceverify/pkg/fs"
)

// Info describes a decoded image.
type Info struct {
	Format  fs.ImageFormat `json:"format"`
	Width   int            `json:"width"`
	Height  int            `json:"height"`
	Profile string         `json:"profile,omitempty"`
}

// Open reads and decodes an image file.
func Open(fileName string) (image.Image, Info, error) {
	if fileName == "" {
		return nil, Info{}, fmt.Errorf("filename missing")
	}

	data, err := os.ReadFile(fileName)

	if err != nil {
		return nil, Info{}, err
	}

	img, info, err := Decode(data)

	if err != nil {
		return nil, info, fmt.Errorf("%s in %s", err, filepath.Base(fileName))
	}

	return img, info, nil
}

// Decode decodes image data, applies the Exif orientation and reads the
// color profile name if present.
func Decode(data []byte) (result image.Image, info Info, err error) {
	if len(data) == 0 {
		return nil, info, face.ErrInvalidImage.Withf("empty file")
	}

	info.Format = fs.ImageType(data)

	if !info.Format.Decodable() {
		return nil, info, face.ErrInvalidImage.Withf("unsupported format %s", info.Format)
	}

	switch info.Format {
	case fs.ImageJPEG, fs.ImagePNG, fs.ImageWebP:
		info.Profile = colorProfile(data)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))

	if err != nil {
		return nil, info, face.ErrInvalidImage.Withf("%s", err)
	}

	b := img.Bounds()
	info.Width, info.Height = b.Dx(), b.Dy()

	if info.Width <= 0 || info.Height <= 0 {
		return nil, info, face.ErrInvalidImage.Withf("empty image")
	}

	if MaxSize > 0 && (info.Width > MaxSize || info.Height > MaxSize) {
		return nil, info, face.ErrInvalidImage.Withf("%dx%d px exceeds %d px", info.Width, info.Height, MaxSize)
	}

	return img, info, nil
}

// colorProfile returns the ICC profile description, or an empty string.
func colorProfile(data []byte) string {
	md, _, err := autometa.Load(bytes.NewReader(data))

	if err != nil || md == nil {
		log.Tracef("thumb: %s (read color metadata)", err)
		return ""
	}

	iccProfile, err := md.ICCProfile()

	if err != nil || iccProfile == nil {
		log.Tracef("thumb: image has no color profile")
		return ""
	}

	profile, err := iccProfile.Description()

	if err != nil {
		return ""
	}

	log.Tracef("thumb: image has color profile %s", profile)

	return profile
}
