package face

import (
	"context"
	"fmt"
	"image"
	"io"
	"runtime/debug"
	"sync"
	"time"

	"github.com/dustin/go-humanize/english"
	"github.com/mdobak/go-xerrors"
)

// Net owns the loaded detector and recognizer together with everything that
// is derived from them once at load time. It is read-only after NewNet.
type Net struct {
	detector         Model
	recognizer       Model
	opt              Options
	schema           Schema
	anchors          Anchors
	decoder          Decoder
	detectorInput    string
	detectorScalars  map[string]float32
	recognizerInput  string
	recognizerOutput string
}

// Detection is the outcome of running the detector on one image.
type Detection struct {
	Size        ImageSize  `json:"size"`
	Letterbox   Letterbox  `json:"letterbox"`
	Candidates  Candidates `json:"candidates"`
	Selection   Selection  `json:"selection"`
	Uncertainty int        `json:"uncertainty"`
}

// Result is the outcome of encoding one image.
type Result struct {
	Detection Detection `json:"detection"`
	Area      Area      `json:"area"`
	Embedding Embedding `json:"embedding"`
	Norm      float64   `json:"norm"`
}

// Box returns the face area relative to the image size.
func (r Result) Box() Box {
	return r.Area.Relative(r.Detection.Size)
}

// Verification is the outcome of comparing the faces of two images.
type Verification struct {
	A          Result     `json:"a"`
	B          Result     `json:"b"`
	Comparison Comparison `json:"comparison"`
}

// NewNet validates the options against the declared model inputs and outputs
// and precomputes the anchors and output schema.
func NewNet(detector, recognizer Model, opt Options) (*Net, error) {
	if detector == nil || recognizer == nil {
		return nil, fmt.Errorf("faces: detector and recognizer are required")
	}

	if err := opt.Validate(); err != nil {
		return nil, err
	}

	schema, err := ResolveSchema(detector.OutputNames(), opt.Schema)

	if err != nil {
		return nil, err
	}

	t := &Net{
		detector:        detector,
		recognizer:      recognizer,
		opt:             opt,
		schema:          schema,
		detectorScalars: make(map[string]float32),
	}

	if schema.Kind == SchemaAnchor {
		if AnchorCount(opt.FeatureMaps) == 0 {
			return nil, fmt.Errorf("faces: anchor layout needs feature maps")
		}

		t.anchors = NewAnchors(opt.FeatureMaps, opt.TargetSize)
	}

	t.decoder = Decoder{Schema: schema, Anchors: t.anchors, Options: opt.Decode}

	inputs := detector.InputNames()

	for _, name := range inputs {
		switch name {
		case "":
			continue
		case opt.DetectorScoreInput:
			t.detectorScalars[name] = float32(opt.Decode.ConfidenceThreshold)
		case opt.DetectorIoUInput:
			t.detectorScalars[name] = float32(opt.NMSThreshold)
		default:
			if t.detectorInput == "" {
				t.detectorInput = name
			}
		}
	}

	if opt.DetectorInput != "" {
		t.detectorInput = opt.DetectorInput
	}

	if t.detectorInput == "" {
		return nil, fmt.Errorf("faces: detector declares no image input")
	}

	if t.recognizerInput, err = pick(opt.RecognizerInput, recognizer.InputNames(), "input"); err != nil {
		return nil, err
	}

	if t.recognizerOutput, err = pick(opt.RecognizerOutput, recognizer.OutputNames(), "output"); err != nil {
		return nil, err
	}

	log.Infof("faces: detector schema %s with %s", schema, english.Plural(len(t.anchors), "anchor", "anchors"))

	if len(t.detectorScalars) > 0 {
		log.Debugf("faces: detector threshold inputs %v", t.detectorScalars)
	}

	return t, nil
}

// pick returns name if declared, or the first declared name if name is empty.
func pick(name string, declared []string, kind string) (string, error) {
	if name == "" {
		if len(declared) == 0 {
			return "", fmt.Errorf("faces: recognizer declares no %s", kind)
		}

		return declared[0], nil
	}

	for _, n := range declared {
		if n == name {
			return name, nil
		}
	}

	return "", fmt.Errorf("faces: recognizer has no %s named %s", kind, name)
}

// Schema returns the resolved detector output schema.
func (t *Net) Schema() Schema {
	return t.schema
}

// Anchors returns the anchor sequence. Callers must not modify it.
func (t *Net) Anchors() Anchors {
	return t.anchors
}

// Options returns the pipeline options.
func (t *Net) Options() Options {
	return t.opt
}

// Close releases the models if they hold resources.
func (t *Net) Close() error {
	var err error

	for _, m := range []Model{t.detector, t.recognizer} {
		if c, ok := m.(io.Closer); ok {
			if e := c.Close(); e != nil && err == nil {
				err = e
			}
		}
	}

	return err
}

// run invokes a model and converts failures and panics to model errors.
func (t *Net) run(ctx context.Context, m Model, inputs map[string]Tensor) (out Outputs, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = ErrInference.Wrap(xerrors.New(fmt.Sprintf("%s (inference panic)\nstack: %s", r, debug.Stack())))
		}
	}()

	if err = ctx.Err(); err != nil {
		return nil, ErrInference.Wrap(err)
	}

	if out, err = m.Run(ctx, inputs); err != nil {
		return nil, ErrInference.Wrap(xerrors.New(err))
	}

	return out, nil
}

// Detect runs the detector and returns the best face candidate.
func (t *Net) Detect(ctx context.Context, img image.Image) (result Detection, err error) {
	if img == nil {
		return result, ErrInvalidImage.Withf("no image")
	}

	b := img.Bounds()
	result.Size = ImageSize{Width: b.Dx(), Height: b.Dy()}

	if !result.Size.Valid() {
		return result, ErrInvalidImage.Withf("empty image")
	}

	start := time.Now()

	boxed, l := LetterboxImage(img, t.opt.TargetSize)
	result.Letterbox = l

	data, err := ExportPixels(boxed).Interleaved(t.opt.DetectorNormalization, OrderRGB)

	if err != nil {
		return result, ErrInvalidImage.Wrap(err)
	}

	inputs := map[string]Tensor{
		t.detectorInput: {Shape: []int{1, t.opt.TargetSize, t.opt.TargetSize, 3}, Data: data},
	}

	for name, v := range t.detectorScalars {
		inputs[name] = NewScalar(v)
	}

	out, err := t.run(ctx, t.detector, inputs)

	if err != nil {
		return result, err
	}

	candidates, err := t.decoder.Decode(out, l, result.Size)

	if err != nil {
		return result, err
	}

	result.Candidates = NMS(candidates, t.opt.NMSThreshold)
	result.Uncertainty = result.Candidates.Uncertainty()

	selection, ok := Select(result.Candidates, result.Size, t.opt.Select)

	if !ok {
		return result, ErrNoFaceDetected.Withf("%s, none passed the filters", english.Plural(len(result.Candidates), "candidate", "candidates"))
	}

	result.Selection = selection

	log.Debugf("faces: selected %s with score %.3f out of %s, %d%% uncertainty [%s]", selection.Area, selection.Score, english.Plural(len(result.Candidates), "candidate", "candidates"), result.Uncertainty, time.Since(start))

	return result, nil
}

// Encode detects the best face in img and returns its normalized embedding.
func (t *Net) Encode(ctx context.Context, img image.Image) (result Result, err error) {
	if result.Detection, err = t.Detect(ctx, img); err != nil {
		return result, err
	}

	if result.Area, err = FaceArea(result.Detection.Selection.Area, result.Detection.Size, t.opt.Geometry); err != nil {
		return result, err
	}

	crop, err := CropFace(img, result.Area, CropSize)

	if err != nil {
		return result, err
	}

	result.Embedding, result.Norm, err = t.Embed(ctx, ExportPixels(crop))

	return result, err
}

// Embed runs the recognizer on a CropSize face, optionally together with its
// mirror image, and returns the unit length embedding with its original norm.
func (t *Net) Embed(ctx context.Context, p Pixels) (Embedding, float64, error) {
	rgb, err := p.RGB()

	if err != nil {
		return nil, 0, ErrInvalidImage.Wrap(err)
	}

	if rgb.Width != CropSize.Width || rgb.Height != CropSize.Height {
		return nil, 0, ErrInvalidImage.Withf("face must be %dx%d px, got %dx%d", CropSize.Width, CropSize.Height, rgb.Width, rgb.Height)
	}

	var raw Embedding

	if !t.opt.FlipTest {
		if raw, err = t.embed(ctx, rgb); err != nil {
			return nil, 0, err
		}
	} else {
		var a, b Embedding
		var errA, errB error

		wg := new(sync.WaitGroup)
		wg.Add(2)

		go func() {
			defer wg.Done()
			a, errA = t.embed(ctx, rgb)
		}()

		go func() {
			defer wg.Done()
			b, errB = t.embed(ctx, rgb.Mirror())
		}()

		wg.Wait()

		if errA != nil {
			return nil, 0, errA
		} else if errB != nil {
			return nil, 0, errB
		}

		if len(a) != len(b) {
			return nil, 0, ErrInvalidEmbeddingShape.Withf("flipped embedding has %d values, expected %d", len(b), len(a))
		}

		raw = Average(a, b)
	}

	if len(raw) != EmbeddingDim {
		return nil, 0, ErrInvalidEmbeddingShape.Withf("expected %d values, got %d", EmbeddingDim, len(raw))
	}

	if !raw.Finite() {
		return nil, 0, ErrInvalidEmbeddingShape.Withf("embedding contains non-finite values")
	}

	e, norm := L2Normalize(raw)

	return e, norm, nil
}

// embed runs the recognizer once on 3 channel pixels.
func (t *Net) embed(ctx context.Context, rgb Pixels) (Embedding, error) {
	data, err := rgb.Planar(t.opt.Normalization, t.opt.ChannelOrder)

	if err != nil {
		return nil, ErrInvalidImage.Wrap(err)
	}

	out, err := t.run(ctx, t.recognizer, map[string]Tensor{
		t.recognizerInput: {Shape: []int{1, 3, rgb.Height, rgb.Width}, Data: data},
	})

	if err != nil {
		return nil, err
	}

	values, ok := out[t.recognizerOutput]

	if !ok {
		return nil, ErrInference.Withf("missing output %s", t.recognizerOutput)
	}

	return NewEmbedding(values), nil
}

// Compare compares two embeddings with the configured match threshold.
func (t *Net) Compare(a, b Embedding) (Comparison, error) {
	return Compare(a, b, t.opt.MatchThreshold)
}

// Verify encodes the best face of both images and compares them.
func (t *Net) Verify(ctx context.Context, a, b image.Image) (result Verification, err error) {
	if result.A, err = t.Encode(ctx, a); err != nil {
		return result, err
	}

	if result.B, err = t.Encode(ctx, b); err != nil {
		return result, err
	}

	result.Comparison, err = t.Compare(result.A.Embedding, result.B.Embedding)

	return result, err
}
