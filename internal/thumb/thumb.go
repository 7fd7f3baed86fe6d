/*
Package thumb decodes uploaded images and renders detection overlays.
*/
package thumb

import (
	"github.com/photoprism/faceverify/internal/event"
)

var log = event.Log

// DefaultMaxSize is the default max pixel width and height of a decoded image.
const DefaultMaxSize = 8192

// MaxSize is the max pixel width and height of a decoded image.
var MaxSize = DefaultMaxSize
