package api

import (
	"image"
	"io"

	"github.com/gin-gonic/gin"
	uuid "github.com/satori/go.uuid"

	"github.com/photoprism/faceverify/internal/face"
	"github.com/photoprism/faceverify/internal/thumb"
	"github.com/photoprism/faceverify/pkg/fs"
)

const (
	RequestIDHeader = "X-Request-Id"
	requestIDKey    = "request_id"
)

// RequestID adds a request id header to every response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)

		if id == "" {
			id = uuid.NewV4().String()
		}

		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// requestID returns the id set by the RequestID middleware.
func requestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// upload is a decoded image from a multipart form.
type upload struct {
	Hash  string
	Image image.Image
	Info  thumb.Info
}

// readImage reads and decodes the uploaded file in field.
func readImage(c *gin.Context, field string) (result upload, err error) {
	fh, err := c.FormFile(field)

	if err != nil {
		return result, face.ErrInvalidImage.Withf("missing %s file", field)
	}

	f, err := fh.Open()

	if err != nil {
		return result, face.ErrInvalidImage.Withf("%s", err)
	}

	defer f.Close()

	data, err := io.ReadAll(f)

	if err != nil {
		return result, face.ErrInvalidImage.Withf("%s", err)
	}

	result.Hash = fs.HashBytes(data)

	if result.Image, result.Info, err = thumb.Decode(data); err != nil {
		return result, err
	}

	return result, nil
}
