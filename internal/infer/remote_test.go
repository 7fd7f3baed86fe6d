package infer

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/photoprism/faceverify/internal/face"
)

func testServer(t *testing.T, predict http.HandlerFunc) *httptest.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/metadata", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = io.WriteString(w, `{"inputs":["input","conf_threshold"],"outputs":["regressors","classificators"]}`)
	})

	if predict != nil {
		mux.HandleFunc("/predict", predict)
	}

	s := httptest.NewServer(mux)
	t.Cleanup(s.Close)

	return s
}

func TestNewRemoteModel(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		s := testServer(t, nil)

		m, err := NewRemoteModel(context.Background(), s.URL+"/", s.Client())

		require.NoError(t, err)
		assert.Equal(t, []string{"input", "conf_threshold"}, m.InputNames())
		assert.Equal(t, []string{"regressors", "classificators"}, m.OutputNames())
	})
	t.Run("NotFound", func(t *testing.T) {
		s := httptest.NewServer(http.NotFoundHandler())
		defer s.Close()

		_, err := NewRemoteModel(context.Background(), s.URL, s.Client())

		assert.Error(t, err)
	})
	t.Run("NoOutputs", func(t *testing.T) {
		s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"inputs":["input"],"outputs":[]}`)
		}))
		defer s.Close()

		_, err := NewRemoteModel(context.Background(), s.URL, s.Client())

		assert.Error(t, err)
	})
}

func TestRemoteModel_Run(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		s := testServer(t, func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)

			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.Equal(t, `[1,2,2,1]`, gjson.GetBytes(body, "inputs.input.shape").Raw)
			assert.Equal(t, 0.5, gjson.GetBytes(body, "inputs.conf_threshold.data.0").Float())

			_, _ = io.WriteString(w, `{"outputs":{"regressors":[1,2.5,-3],"classificators":[0.25]}}`)
		})

		m, err := NewRemoteModel(context.Background(), s.URL, s.Client())
		require.NoError(t, err)

		out, err := m.Run(context.Background(), map[string]face.Tensor{
			"input":          {Shape: []int{1, 2, 2, 1}, Data: []float32{0, 1, 2, 3}},
			"conf_threshold": face.NewScalar(0.5),
		})

		require.NoError(t, err)
		assert.Equal(t, []float32{1, 2.5, -3}, out["regressors"])
		assert.Equal(t, []float32{0.25}, out["classificators"])
	})
	t.Run("MissingOutput", func(t *testing.T) {
		s := testServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"outputs":{"regressors":[1]}}`)
		})

		m, err := NewRemoteModel(context.Background(), s.URL, s.Client())
		require.NoError(t, err)

		_, err = m.Run(context.Background(), nil)

		assert.Error(t, err)
	})
	t.Run("ServerError", func(t *testing.T) {
		s := testServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		m, err := NewRemoteModel(context.Background(), s.URL, s.Client())
		require.NoError(t, err)

		_, err = m.Run(context.Background(), nil)

		assert.Error(t, err)
	})
	t.Run("Malformed", func(t *testing.T) {
		s := testServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"outputs":`)
		})

		m, err := NewRemoteModel(context.Background(), s.URL, s.Client())
		require.NoError(t, err)

		_, err = m.Run(context.Background(), nil)

		assert.Error(t, err)
	})
	t.Run("Canceled", func(t *testing.T) {
		s := testServer(t, func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"outputs": map[string][]float32{}})
		})

		m, err := NewRemoteModel(context.Background(), s.URL, s.Client())
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err = m.Run(ctx, nil)

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestOpen(t *testing.T) {
	t.Run("Remote", func(t *testing.T) {
		s := testServer(t, nil)

		m, err := Open(context.Background(), s.URL, Options{Client: s.Client()})

		require.NoError(t, err)
		assert.Len(t, m.OutputNames(), 2)
	})
	t.Run("Empty", func(t *testing.T) {
		_, err := Open(context.Background(), "", Options{})
		assert.Error(t, err)
	})
	t.Run("Unsupported", func(t *testing.T) {
		_, err := Open(context.Background(), "/models/detector.onnx", Options{})
		assert.Error(t, err)
	})
	t.Run("TFLite", func(t *testing.T) {
		if TFLiteEnabled {
			t.Skip("tflite engine enabled")
		}

		_, err := Open(context.Background(), "/models/detector.tflite", Options{})
		assert.Error(t, err)
	})
}

func TestRemote(t *testing.T) {
	assert.True(t, Remote("http://localhost:8500/detector"))
	assert.True(t, Remote("HTTPS://models.local"))
	assert.False(t, Remote("/models/detector.tflite"))
}
