package face

import (
	"math"
)

// SelectOptions configures the face candidate selector.
type SelectOptions struct {
	MinPixelSize     int
	MinSideRatio     float64
	MaxSideRatio     float64
	EdgeMarginRatio  float64
	AspectRatioMin   float64
	AspectRatioMax   float64
	ConfidenceWeight float64
	CenterWeight     float64
	SizeWeight       float64
}

// Selection is the best face candidate with its pixel area and composite score.
type Selection struct {
	Candidate Candidate `json:"candidate"`
	Area      Area      `json:"area"`
	Score     float64   `json:"score"`
}

// Accept tests a pixel area against the size, edge margin and aspect ratio filters.
func (o SelectOptions) Accept(a Area, size ImageSize) bool {
	if a.W <= 0 || a.H <= 0 {
		return false
	}

	minSide := float64(size.MinSide())
	lower := math.Max(float64(o.MinPixelSize), o.MinSideRatio*minSide)
	upper := o.MaxSideRatio * minSide

	w, h := float64(a.W), float64(a.H)

	if w < lower || h < lower || w > upper || h > upper {
		return false
	}

	mx := o.EdgeMarginRatio * float64(size.Width)
	my := o.EdgeMarginRatio * float64(size.Height)

	if float64(a.X) < mx || float64(a.Y) < my {
		return false
	}

	if float64(a.X+a.W) > float64(size.Width)-mx || float64(a.Y+a.H) > float64(size.Height)-my {
		return false
	}

	aspect := w / h

	return aspect >= o.AspectRatioMin && aspect <= o.AspectRatioMax
}

// Score returns the weighted sum of confidence, centrality and relative size.
func (o SelectOptions) Score(c Candidate, a Area, size ImageSize) float64 {
	halfW, halfH := float64(size.Width)/2, float64(size.Height)/2
	cx, cy := a.Center()

	dx := (cx - halfW) / halfW
	dy := (cy - halfH) / halfH

	centrality := 1 - math.Min(1, math.Sqrt(dx*dx+dy*dy))
	sizeRatio := math.Min(1, float64(a.W*a.H)/float64(size.Width*size.Height))

	return o.ConfidenceWeight*c.Score + o.CenterWeight*centrality + o.SizeWeight*sizeRatio
}

// Select returns the best scoring candidate that passes all filters.
// The second return value is false if no candidate survives.
func Select(candidates Candidates, size ImageSize, opt SelectOptions) (Selection, bool) {
	var best Selection

	if !size.Valid() {
		return best, false
	}

	found := false

	for _, c := range candidates {
		a := c.Box.Pixels(size)

		if !opt.Accept(a, size) {
			log.Tracef("faces: skipped candidate %s with score %.3f", a, c.Score)
			continue
		}

		score := opt.Score(c, a, size)

		if !found || score > best.Score {
			best = Selection{Candidate: c, Area: a, Score: score}
			found = true
		}
	}

	return best, found
}
