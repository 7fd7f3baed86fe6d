package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"

	"github.com/photoprism/faceverify/internal/event"
	"github.com/photoprism/faceverify/internal/face"
)

// CompareResponse is the body of a successful compare request.
type CompareResponse struct {
	face.Comparison
	RequestID string `json:"request_id"`
}

// VerifyResponse is the body of a successful verify request.
type VerifyResponse struct {
	face.Comparison
	A         FaceResponse `json:"a"`
	B         FaceResponse `json:"b"`
	RequestID string       `json:"request_id"`
}

// threshold returns the threshold member of a request, or the configured default.
func (env *Env) threshold(r gjson.Result) (float64, error) {
	if !r.Exists() || r.Type == gjson.Null {
		return env.Faces.Options().MatchThreshold, nil
	}

	if r.Type != gjson.Number {
		return 0, ErrInvalidRequest.Withf("threshold must be a number")
	}

	if v := r.Float(); v < -1 || v > 1 {
		return 0, ErrInvalidRequest.Withf("threshold must be in [-1,1]")
	} else {
		return v, nil
	}
}

// CompareFaces compares two embeddings.
//
// POST /api/v1/compare
func CompareFaces(router *gin.RouterGroup, env *Env) {
	router.POST("/compare", func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)

		if err != nil || !gjson.ValidBytes(body) {
			Abort(c, ErrInvalidRequest.Withf("malformed json"))
			return
		}

		req := gjson.ParseBytes(body)

		if !req.IsObject() {
			Abort(c, ErrInvalidRequest.Withf("expected an object"))
			return
		}

		a, err := face.ParseEmbeddingResult(req.Get("a"))

		if err != nil {
			Abort(c, err)
			return
		}

		b, err := face.ParseEmbeddingResult(req.Get("b"))

		if err != nil {
			Abort(c, err)
			return
		}

		threshold, err := env.threshold(req.Get("threshold"))

		if err != nil {
			Abort(c, err)
			return
		}

		result, err := face.Compare(a, b, threshold)

		if err != nil {
			Abort(c, err)
			return
		}

		event.Publish("face.compared", event.Data{
			"request_id": requestID(c),
			"similarity": result.Similarity,
			"match":      result.IsMatch,
		})

		c.JSON(http.StatusOK, CompareResponse{Comparison: result, RequestID: requestID(c)})
	})
}

// VerifyFaces encodes the best face of two uploaded images and compares them.
//
// POST /api/v1/verify
func VerifyFaces(router *gin.RouterGroup, env *Env) {
	router.POST("/verify", func(c *gin.Context) {
		ua, err := readImage(c, "a")

		if err != nil {
			Abort(c, err)
			return
		}

		ub, err := readImage(c, "b")

		if err != nil {
			Abort(c, err)
			return
		}

		ctx, cancel := env.timeout(c)
		defer cancel()

		ra, cachedA, err := env.encode(ctx, ua)

		if err != nil {
			Abort(c, err)
			return
		}

		rb, cachedB, err := env.encode(ctx, ub)

		if err != nil {
			Abort(c, err)
			return
		}

		result, err := env.Faces.Compare(ra.Embedding, rb.Embedding)

		if err != nil {
			Abort(c, err)
			return
		}

		event.Publish("face.compared", event.Data{
			"request_id": requestID(c),
			"similarity": result.Similarity,
			"match":      result.IsMatch,
		})

		a, b := NewFaceResponse(ra, cachedA), NewFaceResponse(rb, cachedB)
		a.Embedding, b.Embedding = nil, nil

		c.JSON(http.StatusOK, VerifyResponse{Comparison: result, A: a, B: b, RequestID: requestID(c)})
	})
}
