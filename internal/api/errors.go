package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mdobak/go-xerrors"

	"github.com/photoprism/faceverify/internal/face"
)

// ErrInvalidRequest is returned for malformed request bodies.
var ErrInvalidRequest = &face.Error{Kind: face.ValidationError, Code: "InvalidRequest", Msg: "invalid request"}

// Response is the error response body.
type Response struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Detail    string `json:"detail,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// StatusCode returns the http status for err.
func StatusCode(err error) int {
	switch face.KindOf(err) {
	case face.ValidationError:
		return http.StatusBadRequest
	case face.DetectionError:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Abort writes the error response. Caller errors include their detail, all
// other errors are logged with diagnostics and answered with a generic message.
func Abort(c *gin.Context, err error) {
	status := StatusCode(err)
	resp := Response{Code: face.CodeOf(err), RequestID: requestID(c)}

	var e *face.Error

	if face.KindOf(err).CallerError() && errors.As(err, &e) {
		resp.Error = e.Msg
		resp.Detail = e.Detail
		log.Debugf("api: %s [%s]", err, resp.RequestID)
	} else {
		resp.Error = "internal error"

		if resp.Code == "" {
			resp.Code = "InternalError"
		}

		log.Errorf("api: %s [%s]", xerrors.Sprint(err), resp.RequestID)
	}

	c.AbortWithStatusJSON(status, resp)
}
