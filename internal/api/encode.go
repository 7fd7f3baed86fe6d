package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"

	"github.com/photoprism/faceverify/internal/event"
	"github.com/photoprism/faceverify/internal/face"
)

// FaceResponse describes one encoded face.
type FaceResponse struct {
	Embedding  face.Embedding `json:"embedding,omitempty"`
	Box        face.Box       `json:"box"`
	Area       face.Area      `json:"area"`
	Score      float64        `json:"score"`
	Confidence float64        `json:"confidence"`
	Norm       float64        `json:"norm,omitempty"`
	Size       face.ImageSize `json:"size"`
	Cached     bool           `json:"cached"`
}

// EncodeResponse is the body of a successful encode request.
type EncodeResponse struct {
	FaceResponse
	RequestID string `json:"request_id"`
}

// NewFaceResponse converts an encode result.
func NewFaceResponse(r face.Result, cached bool) FaceResponse {
	return FaceResponse{
		Embedding:  r.Embedding,
		Box:        r.Box(),
		Area:       r.Area,
		Score:      face.Round4(r.Detection.Selection.Score),
		Confidence: face.Round4(r.Detection.Selection.Candidate.Score),
		Norm:       face.Round4(r.Norm),
		Size:       r.Detection.Size,
		Cached:     cached,
	}
}

// encode returns the encode result of an upload, using the cache if enabled.
func (env *Env) encode(ctx context.Context, u upload) (result face.Result, cached bool, err error) {
	key := "encode:" + u.Hash

	if env.cache != nil {
		if hit, ok := env.cache.Get(key); ok {
			return hit.(face.Result), true, nil
		}
	}

	start := time.Now()

	if result, err = env.Faces.Encode(ctx, u.Image); err != nil {
		return result, false, err
	}

	log.Debugf("api: encoded %s face in %s", u.Info.Format, time.Since(start))

	if env.cache != nil {
		env.cache.Set(key, result, gocache.DefaultExpiration)
	}

	return result, false, nil
}

// EncodeFace returns the embedding of the best face in an uploaded image.
//
// POST /api/v1/encode
func EncodeFace(router *gin.RouterGroup, env *Env) {
	router.POST("/encode", func(c *gin.Context) {
		u, err := readImage(c, "image")

		if err != nil {
			Abort(c, err)
			return
		}

		ctx, cancel := env.timeout(c)
		defer cancel()

		result, cached, err := env.encode(ctx, u)

		if err != nil {
			Abort(c, err)
			return
		}

		event.Publish("face.encoded", event.Data{
			"request_id": requestID(c),
			"hash":       u.Hash,
			"area":       result.Area.String(),
			"cached":     cached,
		})

		c.JSON(http.StatusOK, EncodeResponse{FaceResponse: NewFaceResponse(result, cached), RequestID: requestID(c)})
	})
}

// DetectResponse is the body of a successful detect request.
type DetectResponse struct {
	Box        face.Box       `json:"box"`
	Area       face.Area      `json:"area"`
	Score      float64        `json:"score"`
	Confidence float64        `json:"confidence"`
	Candidates int            `json:"candidates"`
	Size       face.ImageSize `json:"size"`
	RequestID  string         `json:"request_id"`
}

// DetectFace returns the best face in an uploaded image without encoding it.
//
// POST /api/v1/detect
func DetectFace(router *gin.RouterGroup, env *Env) {
	router.POST("/detect", func(c *gin.Context) {
		u, err := readImage(c, "image")

		if err != nil {
			Abort(c, err)
			return
		}

		ctx, cancel := env.timeout(c)
		defer cancel()

		result, err := env.Faces.Detect(ctx, u.Image)

		if err != nil {
			Abort(c, err)
			return
		}

		s := result.Selection

		c.JSON(http.StatusOK, DetectResponse{
			Box:        s.Area.Relative(result.Size),
			Area:       s.Area,
			Score:      face.Round4(s.Score),
			Confidence: face.Round4(s.Candidate.Score),
			Candidates: result.Candidates.Count(),
			Size:       result.Size,
			RequestID:  requestID(c),
		})
	})
}
