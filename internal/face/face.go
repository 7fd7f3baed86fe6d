/*
Package face turns images into unit length face embeddings and compares them.

The detector output is decoded into candidates, suppressed with NMS and reduced
to the best scoring face. Its area is expanded, squared, cropped to CropSize
and normalized into a planar tensor for the recognizer. Embeddings are L2
normalized and compared by cosine similarity.
*/
package face

import (
	"github.com/photoprism/faceverify/internal/event"
)

var log = event.Log

// EmbeddingDim is the number of values in a face embedding.
const EmbeddingDim = 512

// CropSize is the recognizer input size in pixels.
var CropSize = ImageSize{Width: 112, Height: 112}

// ImageSize represents the dimensions of an orientation corrected image.
type ImageSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Valid tests if both dimensions are positive.
func (s ImageSize) Valid() bool {
	return s.Width > 0 && s.Height > 0
}

// MinSide returns the smaller dimension.
func (s ImageSize) MinSide() int {
	if s.Width < s.Height {
		return s.Width
	}

	return s.Height
}
