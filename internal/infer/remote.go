package infer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/photoprism/faceverify/internal/face"
)

// RemoteModel runs inference on an HTTP model server.
type RemoteModel struct {
	url     string
	client  *http.Client
	inputs  []string
	outputs []string
}

type remoteTensor struct {
	Shape []int     `json:"shape"`
	Data  []float32 `json:"data"`
}

type remoteRequest struct {
	Inputs map[string]remoteTensor `json:"inputs"`
}

// NewRemoteModel fetches the model metadata from url and returns the model.
func NewRemoteModel(ctx context.Context, url string, client *http.Client) (*RemoteModel, error) {
	m := &RemoteModel{url: strings.TrimRight(url, "/"), client: client}

	if m.client == nil {
		m.client = http.DefaultClient
	}

	body, err := m.do(ctx, http.MethodGet, "/metadata", nil)

	if err != nil {
		return nil, err
	}

	meta := gjson.ParseBytes(body)

	m.inputs = names(meta.Get("inputs"))
	m.outputs = names(meta.Get("outputs"))

	if len(m.outputs) == 0 {
		return nil, fmt.Errorf("infer: %s declares no outputs", m.url)
	}

	log.Infof("infer: remote model %s with inputs %s and outputs %s", m.url, strings.Join(m.inputs, ", "), strings.Join(m.outputs, ", "))

	return m, nil
}

func names(r gjson.Result) (result []string) {
	for _, item := range r.Array() {
		if item.Type == gjson.String && item.String() != "" {
			result = append(result, item.String())
		}
	}

	return result
}

// InputNames returns the declared input tensor names.
func (m *RemoteModel) InputNames() []string {
	return m.inputs
}

// OutputNames returns the declared output tensor names.
func (m *RemoteModel) OutputNames() []string {
	return m.outputs
}

// Run posts the inputs to the server and returns the declared outputs.
func (m *RemoteModel) Run(ctx context.Context, inputs map[string]face.Tensor) (face.Outputs, error) {
	req := remoteRequest{Inputs: make(map[string]remoteTensor, len(inputs))}

	for name, t := range inputs {
		req.Inputs[name] = remoteTensor{Shape: t.Shape, Data: t.Data}
	}

	payload, err := json.Marshal(req)

	if err != nil {
		return nil, err
	}

	body, err := m.do(ctx, http.MethodPost, "/predict", payload)

	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("infer: invalid response from %s", m.url)
	}

	result := make(face.Outputs, len(m.outputs))

	gjson.GetBytes(body, "outputs").ForEach(func(key, value gjson.Result) bool {
		items := value.Array()
		values := make([]float32, len(items))

		for i, v := range items {
			values[i] = float32(v.Float())
		}

		result[key.String()] = values

		return true
	})

	for _, name := range m.outputs {
		if _, ok := result[name]; !ok {
			return nil, fmt.Errorf("infer: response from %s lacks output %s", m.url, name)
		}
	}

	return result, nil
}

func (m *RemoteModel) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var body io.Reader

	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, m.url+path, body)

	if err != nil {
		return nil, err
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := m.client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)

	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("infer: %s %s returned %s", method, path, resp.Status)
	}

	return data, nil
}
