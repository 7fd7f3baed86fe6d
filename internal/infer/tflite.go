//go:build tflite
// +build tflite

package infer

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime/debug"
	"sync"

	"github.com/mattn/go-tflite"
	"github.com/mattn/go-tflite/delegates/xnnpack"

	"github.com/photoprism/faceverify/internal/face"
)

// TFLiteEnabled tests if the binary includes the TensorFlow Lite engine.
const TFLiteEnabled = true

// TFLiteModel runs a TensorFlow Lite model in process. The interpreter is not
// goroutine-safe, so Run is serialized.
type TFLiteModel struct {
	mu          sync.Mutex
	model       *tflite.Model
	options     *tflite.InterpreterOptions
	interpreter *tflite.Interpreter
	inputs      []string
	outputs     []string
}

// NewTFLiteModel loads the model file and allocates its tensors.
func NewTFLiteModel(fileName string, threads int) (face.Model, error) {
	if threads < 1 {
		threads = 1
	}

	log.Infof("infer: loading %s with %d threads", filepath.Base(fileName), threads)

	model := tflite.NewModelFromFile(fileName)

	if model == nil {
		return nil, fmt.Errorf("infer: load model failed, stack: %s", debug.Stack())
	}

	options := tflite.NewInterpreterOptions()
	options.AddDelegate(xnnpack.New(xnnpack.DelegateOptions{NumThreads: int32(threads)}))
	options.SetNumThread(threads)
	options.SetErrorReporter(func(msg string, userData interface{}) {
		log.Warnf("infer: %s", msg)
	}, nil)

	interpreter := tflite.NewInterpreter(model, options)

	if interpreter == nil {
		options.Delete()
		model.Delete()
		return nil, fmt.Errorf("infer: create interpreter failed, stack: %s", debug.Stack())
	}

	if status := interpreter.AllocateTensors(); status != tflite.OK {
		interpreter.Delete()
		options.Delete()
		model.Delete()
		return nil, fmt.Errorf("infer: allocate tensors failed, stack: %s", debug.Stack())
	}

	m := &TFLiteModel{model: model, options: options, interpreter: interpreter}

	for i := 0; i < interpreter.GetInputTensorCount(); i++ {
		m.inputs = append(m.inputs, interpreter.GetInputTensor(i).Name())
	}

	for i := 0; i < interpreter.GetOutputTensorCount(); i++ {
		m.outputs = append(m.outputs, interpreter.GetOutputTensor(i).Name())
	}

	return m, nil
}

// InputNames returns the declared input tensor names.
func (m *TFLiteModel) InputNames() []string {
	return m.inputs
}

// OutputNames returns the declared output tensor names.
func (m *TFLiteModel) OutputNames() []string {
	return m.outputs
}

// Run copies the inputs into the interpreter, invokes it and copies the outputs.
func (m *TFLiteModel) Run(ctx context.Context, inputs map[string]face.Tensor) (face.Outputs, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.interpreter == nil {
		return nil, fmt.Errorf("infer: model closed")
	}

	for i, name := range m.inputs {
		t, ok := inputs[name]

		if !ok {
			continue
		}

		tensor := m.interpreter.GetInputTensor(i)

		if tensor.Type() != tflite.Float32 {
			return nil, fmt.Errorf("infer: input %s is not float32", name)
		}

		buf := tensor.Float32s()

		if len(buf) != len(t.Data) {
			return nil, fmt.Errorf("infer: input %s expects %d values, got %d", name, len(buf), len(t.Data))
		}

		copy(buf, t.Data)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if status := m.interpreter.Invoke(); status != tflite.OK {
		return nil, fmt.Errorf("infer: invoke failed with status %d", status)
	}

	result := make(face.Outputs, len(m.outputs))

	for i, name := range m.outputs {
		tensor := m.interpreter.GetOutputTensor(i)

		if tensor.Type() != tflite.Float32 {
			return nil, fmt.Errorf("infer: output %s is not float32", name)
		}

		values := make([]float32, len(tensor.Float32s()))
		copy(values, tensor.Float32s())
		result[name] = values
	}

	return result, nil
}

// Close releases the interpreter.
func (m *TFLiteModel) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.interpreter == nil {
		return nil
	}

	m.interpreter.Delete()
	m.options.Delete()
	m.model.Delete()
	m.interpreter = nil

	return nil
}
