package face

import (
	"math"
)

// DecodeOptions configures the detection decoder.
type DecodeOptions struct {
	ConfidenceThreshold float64
	// MinFaceSize and MaxFaceSize are fractions of the letterboxed input.
	MinFaceSize float64
	MaxFaceSize float64
}

// Decoder converts raw detector outputs into candidates relative to the original image.
type Decoder struct {
	Schema  Schema
	Anchors Anchors
	Options DecodeOptions
}

// Decode reads the tensors named by the schema and returns all candidates
// that pass the confidence and size filters.
func (d *Decoder) Decode(out Outputs, l Letterbox, size ImageSize) (Candidates, error) {
	first, ok := out[d.Schema.First]

	if !ok {
		return nil, ErrInference.Withf("missing output %s", d.Schema.First)
	}

	second, ok := out[d.Schema.Second]

	if !ok {
		return nil, ErrInference.Withf("missing output %s", d.Schema.Second)
	}

	switch d.Schema.Kind {
	case SchemaDirect:
		return d.direct(first, second, l, size)
	case SchemaAnchor:
		return d.anchor(first, second, l, size)
	default:
		return nil, ErrUnknownSchema.Withf("unsupported layout %s", d.Schema.Kind)
	}
}

// direct decodes [x1,y1,x2,y2] quads with parallel scores.
func (d *Decoder) direct(boxes, scores []float32, l Letterbox, size ImageSize) (result Candidates, err error) {
	n := len(scores)

	if len(boxes) != 4*n {
		return nil, ErrInference.Withf("%d box values for %d scores", len(boxes), n)
	}

	for i := 0; i < n; i++ {
		score := float64(scores[i])

		if score < d.Options.ConfidenceThreshold {
			continue
		}

		x1, y1 := float64(boxes[4*i]), float64(boxes[4*i+1])
		x2, y2 := float64(boxes[4*i+2]), float64(boxes[4*i+3])

		box := l.Unmap((x1+x2)/2, (y1+y2)/2, x2-x1, y2-y1, size)

		if box.W <= 0 || box.H <= 0 {
			continue
		}

		result = append(result, Candidate{Box: box, Score: score})
	}

	return result, nil
}

// anchor decodes per anchor box deltas and class logits.
func (d *Decoder) anchor(regressors, classificators []float32, l Letterbox, size ImageSize) (result Candidates, err error) {
	n := len(d.Anchors)

	if n == 0 {
		return nil, ErrInference.Withf("no anchors")
	}

	if len(regressors)%n != 0 || len(regressors)/n < 4 {
		return nil, ErrInference.Withf("%d regressor values for %d anchors", len(regressors), n)
	}

	stride := len(regressors) / n
	classes := len(classificators) / n

	if len(classificators)%n != 0 || classes < 1 || classes > 2 {
		return nil, ErrInference.Withf("%d classificator values for %d anchors", len(classificators), n)
	}

	t := float64(l.TargetSize)
	opt := d.Options

	for i, a := range d.Anchors {
		var score float64

		if classes == 1 {
			score = sigmoid(float64(classificators[i]))
		} else {
			score = softmax2(float64(classificators[2*i]), float64(classificators[2*i+1]))
		}

		if score < opt.ConfidenceThreshold {
			continue
		}

		r := regressors[i*stride : i*stride+4]

		cx := a.CX + float64(r[0])/t
		cy := a.CY + float64(r[1])/t
		w := math.Abs(float64(r[2])) / t
		h := math.Abs(float64(r[3])) / t

		if w < opt.MinFaceSize || h < opt.MinFaceSize || w > opt.MaxFaceSize || h > opt.MaxFaceSize {
			continue
		}

		box := l.Unmap(cx, cy, w, h, size)

		if box.W <= 0 || box.H <= 0 {
			continue
		}

		result = append(result, Candidate{Box: box, Score: score})
	}

	return result, nil
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// softmax2 returns the probability of the second class.
func softmax2(a, b float64) float64 {
	m := math.Max(a, b)
	ea := math.Exp(a - m)
	eb := math.Exp(b - m)

	return eb / (ea + eb)
}
