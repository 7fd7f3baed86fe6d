package fs

import (
	"strings"

	"github.com/h2non/filetype"
)

// ImageFormat is an image file format detected from its content.
type ImageFormat string

const (
	ImageJPEG    ImageFormat = "jpg"
	ImagePNG     ImageFormat = "png"
	ImageGIF     ImageFormat = "gif"
	ImageWebP    ImageFormat = "webp"
	ImageBMP     ImageFormat = "bmp"
	ImageTIFF    ImageFormat = "tif"
	ImageHEIF    ImageFormat = "heif"
	ImageUnknown ImageFormat = ""
)

// decodable lists the formats the image decoder supports.
var decodable = map[ImageFormat]bool{
	ImageJPEG: true,
	ImagePNG:  true,
	ImageGIF:  true,
	ImageWebP: true,
	ImageBMP:  true,
	ImageTIFF: true,
}

// String returns the format name.
func (f ImageFormat) String() string {
	if f == ImageUnknown {
		return "unknown"
	}

	return string(f)
}

// Decodable tests if the format can be decoded.
func (f ImageFormat) Decodable() bool {
	return decodable[f]
}

// ImageType returns the image format of data based on its magic bytes.
func ImageType(data []byte) ImageFormat {
	if !filetype.IsImage(data) {
		return ImageUnknown
	}

	kind, err := filetype.Match(data)

	if err != nil {
		return ImageUnknown
	}

	switch ext := strings.ToLower(kind.Extension); ext {
	case "jpeg":
		return ImageJPEG
	case "tiff":
		return ImageTIFF
	default:
		return ImageFormat(ext)
	}
}

// FileImageType returns the image format of a file based on its content.
func FileImageType(fileName string) ImageFormat {
	kind, err := filetype.MatchFile(fileName)

	if err != nil || kind.MIME.Type != "image" {
		return ImageUnknown
	}

	switch ext := strings.ToLower(kind.Extension); ext {
	case "jpeg":
		return ImageJPEG
	case "tiff":
		return ImageTIFF
	default:
		return ImageFormat(ext)
	}
}
