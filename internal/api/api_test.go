package api

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/photoprism/faceverify/internal/config"
	"github.com/photoprism/faceverify/internal/face"
)

// fakeFaces returns a fixed face for every image.
type fakeFaces struct {
	err     error
	encodes int32
}

func (f *fakeFaces) Detect(ctx context.Context, img image.Image) (face.Detection, error) {
	if f.err != nil {
		return face.Detection{}, f.err
	}

	b := img.Bounds()
	size := face.ImageSize{Width: b.Dx(), Height: b.Dy()}
	area := face.Area{X: size.Width / 4, Y: size.Height / 4, W: size.Width / 2, H: size.Height / 2}

	return face.Detection{
		Size:       size,
		Candidates: face.Candidates{{Box: area.Relative(size), Score: 0.9}},
		Selection: face.Selection{
			Candidate: face.Candidate{Box: area.Relative(size), Score: 0.9},
			Area:      area,
			Score:     0.839,
		},
	}, nil
}

func (f *fakeFaces) Encode(ctx context.Context, img image.Image) (result face.Result, err error) {
	atomic.AddInt32(&f.encodes, 1)

	if result.Detection, err = f.Detect(ctx, img); err != nil {
		return result, err
	}

	result.Area = result.Detection.Selection.Area
	result.Embedding = testEmbedding(0)
	result.Norm = 20

	return result, nil
}

func (f *fakeFaces) Compare(a, b face.Embedding) (face.Comparison, error) {
	return face.Compare(a, b, face.DefaultMatchThreshold)
}

func (f *fakeFaces) Options() face.Options {
	return face.DefaultOptions()
}

func (f *fakeFaces) Schema() face.Schema {
	return face.Schema{Kind: face.SchemaAnchor, First: "regressors", Second: "classificators"}
}

func testEmbedding(i int) face.Embedding {
	e := make(face.Embedding, face.EmbeddingDim)
	e[i] = 1

	return e
}

func embeddingJSON(t *testing.T, e face.Embedding) string {
	data, err := json.Marshal(e)
	require.NoError(t, err)

	return string(data)
}

// newTestRouter returns a router with all api routes.
func newTestRouter(faces Faces) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	Register(r.Group("/api/v1"), NewEnv(faces, config.NewTestConfig()))

	return r
}

func testImage(t *testing.T, w, h int) []byte {
	buf := new(bytes.Buffer)
	img := imaging.New(w, h, color.NRGBA{R: 180, G: 140, B: 120, A: 255})

	require.NoError(t, imaging.Encode(buf, img, imaging.PNG))

	return buf.Bytes()
}

// multipartRequest builds a POST request with one file per field.
func multipartRequest(t *testing.T, url string, files map[string][]byte) *http.Request {
	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)

	for field, data := range files {
		part, err := w.CreateFormFile(field, field+".png")
		require.NoError(t, err)

		_, err = part.Write(data)
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, url, body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	return req
}

func performRequest(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func jsonRequest(url, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	return req
}

func httptestGet(url string) *http.Request {
	return httptest.NewRequest(http.MethodGet, url, nil)
}
