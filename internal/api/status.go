package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/photoprism/faceverify/internal/config"
	"github.com/photoprism/faceverify/internal/face"
)

// StatusResponse reports the loaded pipeline.
type StatusResponse struct {
	Status         string  `json:"status"`
	Version        string  `json:"version"`
	Engine         string  `json:"engine"`
	Schema         string  `json:"schema"`
	TargetSize     int     `json:"target_size"`
	Anchors        int     `json:"anchors"`
	EmbeddingDim   int     `json:"embedding_dim"`
	MatchThreshold float64 `json:"match_threshold"`
	FlipTest       bool    `json:"flip_test"`
}

// GetStatus reports the server status and model schema.
//
// GET /api/v1/status
func GetStatus(router *gin.RouterGroup, env *Env) {
	router.GET("/status", func(c *gin.Context) {
		opt := env.Faces.Options()
		schema := env.Faces.Schema()

		resp := StatusResponse{
			Status:         "operational",
			Version:        config.Version,
			Engine:         env.Conf.EngineVersion(),
			Schema:         schema.String(),
			TargetSize:     opt.TargetSize,
			EmbeddingDim:   face.EmbeddingDim,
			MatchThreshold: opt.MatchThreshold,
			FlipTest:       opt.FlipTest,
		}

		if schema.Kind == face.SchemaAnchor {
			resp.Anchors = face.AnchorCount(opt.FeatureMaps)
		}

		c.JSON(http.StatusOK, resp)
	})
}
