/*
Package server provides the HTTP server for the face verification api.
*/
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/photoprism/faceverify/internal/api"
	"github.com/photoprism/faceverify/internal/config"
	"github.com/photoprism/faceverify/internal/event"
)

var log = event.Log

// MaxUploadMemory is the max size of multipart form data kept in memory.
const MaxUploadMemory = 32 << 20

// NewRouter returns a gin engine with all api routes registered.
func NewRouter(conf *config.Config, faces api.Faces) *gin.Engine {
	gin.SetMode(conf.HttpMode())

	router := gin.New()
	router.MaxMultipartMemory = MaxUploadMemory
	router.Use(Logger(), Recovery())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	api.Register(router.Group("/api/v1"), api.NewEnv(faces, conf))

	return router
}

// Start runs the web server until ctx is canceled.
func Start(ctx context.Context, conf *config.Config, faces api.Faces) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("server: %s (panic)\nstack: %s", r, debug.Stack())
		}
	}()

	start := time.Now()

	srv := &http.Server{
		Addr:              conf.HttpAddr(),
		Handler:           NewRouter(conf, faces),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go LogEvents(ctx)

	errs := make(chan error, 1)

	go func() {
		log.Infof("server: listening on %s [%s]", srv.Addr, time.Since(start))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}

		close(errs)
	}()

	select {
	case err = <-errs:
		return err
	case <-ctx.Done():
	}

	log.Info("server: shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info("server: shutdown complete")

	return nil
}
