//go:build !tflite
// +build !tflite

package infer

import (
	"fmt"
	"path/filepath"

	"github.com/photoprism/faceverify/internal/face"
)

// TFLiteEnabled tests if the binary includes the TensorFlow Lite engine.
const TFLiteEnabled = false

// NewTFLiteModel returns an error since this binary was built without the tflite tag.
func NewTFLiteModel(fileName string, threads int) (face.Model, error) {
	return nil, fmt.Errorf("infer: %s needs a binary built with the tflite tag", filepath.Base(fileName))
}
