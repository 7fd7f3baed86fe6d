/*
Package api provides the REST handlers for face encoding, detection and comparison.

	POST /api/v1/encode   multipart "image"
	POST /api/v1/detect   multipart "image"
	POST /api/v1/verify   multipart "a" and "b"
	POST /api/v1/compare  JSON {"a": [...], "b": [...], "threshold": 0.45}
	GET  /api/v1/status
*/
package api

import (
	"context"
	"image"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"

	"github.com/photoprism/faceverify/internal/config"
	"github.com/photoprism/faceverify/internal/event"
	"github.com/photoprism/faceverify/internal/face"
)

var log = event.Log

// Faces is the face pipeline used by the handlers, usually a *face.Net.
type Faces interface {
	Detect(ctx context.Context, img image.Image) (face.Detection, error)
	Encode(ctx context.Context, img image.Image) (face.Result, error)
	Compare(a, b face.Embedding) (face.Comparison, error)
	Options() face.Options
	Schema() face.Schema
}

// Env holds the dependencies of the handlers.
type Env struct {
	Faces Faces
	Conf  *config.Config
	cache *gocache.Cache
}

// NewEnv returns a handler environment with an encode result cache if enabled.
func NewEnv(faces Faces, conf *config.Config) *Env {
	env := &Env{Faces: faces, Conf: conf}

	if ttl := conf.HttpCacheTTL(); ttl > 0 {
		env.cache = gocache.New(ttl, 2*ttl)
	}

	return env
}

// Register adds all routes to the router group.
func Register(router *gin.RouterGroup, env *Env) {
	router.Use(RequestID())

	GetStatus(router, env)
	EncodeFace(router, env)
	DetectFace(router, env)
	VerifyFaces(router, env)
	CompareFaces(router, env)
}

// timeout returns the request context with the inference timeout applied.
func (env *Env) timeout(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), env.Conf.InferenceTimeout())
}
