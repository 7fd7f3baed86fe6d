package server

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger logs requests with the package logger.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()

		switch {
		case status >= http.StatusInternalServerError:
			log.Errorf("server: %s %s (%d) [%s]", c.Request.Method, path, status, time.Since(start))
		case status >= http.StatusBadRequest:
			log.Infof("server: %s %s (%d) [%s]", c.Request.Method, path, status, time.Since(start))
		default:
			log.Debugf("server: %s %s (%d) [%s]", c.Request.Method, path, status, time.Since(start))
		}
	}
}

// Recovery turns handler panics into 500 responses.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Errorf("server: %s (panic)\nstack: %s", r, debug.Stack())
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error", "code": "InternalError"})
			}
		}()

		c.Next()
	}
}
