package config

import (
	"path/filepath"

	"github.com/photoprism/faceverify/internal/infer"
)

// ModelsPath returns the base path of relative model file names.
func (c *Config) ModelsPath() string {
	if c.options.ModelsPath == "" {
		return "."
	}

	return c.options.ModelsPath
}

// modelSource returns source unchanged if it is a url or an absolute path.
func (c *Config) modelSource(source string) string {
	if source == "" || infer.Remote(source) || filepath.IsAbs(source) {
		return source
	}

	return filepath.Join(c.ModelsPath(), source)
}

// DetectorModelPath returns the face detector file name or server url.
func (c *Config) DetectorModelPath() string {
	return c.modelSource(c.options.DetectorModel)
}

// RecognizerModelPath returns the face recognizer file name or server url.
func (c *Config) RecognizerModelPath() string {
	return c.modelSource(c.options.RecognizerModel)
}

// InferOptions returns the options used to open models.
func (c *Config) InferOptions() infer.Options {
	return infer.Options{
		Timeout: c.InferenceTimeout(),
		Threads: c.Threads(),
	}
}

// EngineVersion returns the name of the local inference engine.
func (c *Config) EngineVersion() string {
	if infer.TFLiteEnabled {
		return "tflite"
	}

	return "remote"
}
