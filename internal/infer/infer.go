/*
Package infer provides inference engine adapters that implement face.Model.

Models are either served by a remote HTTP inference server or, when built
with the tflite tag, run in process by the TensorFlow Lite interpreter.
*/
package infer

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/photoprism/faceverify/internal/event"
	"github.com/photoprism/faceverify/internal/face"
)

var log = event.Log

// Options configures how models are opened.
type Options struct {
	Timeout time.Duration
	Threads int
	Client  *http.Client
}

// Remote tests if the model source is an http(s) url.
func Remote(source string) bool {
	s := strings.ToLower(source)

	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Open loads the model found at source, which is either a server url or a
// .tflite file path.
func Open(ctx context.Context, source string, opt Options) (face.Model, error) {
	switch {
	case source == "":
		return nil, fmt.Errorf("infer: model source is empty")
	case Remote(source):
		client := opt.Client

		if client == nil {
			client = &http.Client{Timeout: opt.Timeout}
		}

		m, err := NewRemoteModel(ctx, source, client)

		if err != nil {
			return nil, err
		}

		return m, nil
	case strings.EqualFold(filepath.Ext(source), ".tflite"):
		return NewTFLiteModel(source, opt.Threads)
	default:
		return nil, fmt.Errorf("infer: unsupported model source %s", filepath.Base(source))
	}
}
