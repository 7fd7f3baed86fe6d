package face

import (
	"math"
)

// Candidate is a detected face box with its confidence score.
type Candidate struct {
	Box   Box     `json:"box"`
	Score float64 `json:"score"`
}

// Candidates is a list of detection candidates.
type Candidates []Candidate

// Count returns the number of candidates.
func (c Candidates) Count() int {
	return len(c)
}

// Uncertainty returns the max detection uncertainty in percent.
func (c Candidates) Uncertainty() int {
	if len(c) < 1 {
		return 100
	}

	maxScore := 0.0

	for _, f := range c {
		if f.Score > maxScore {
			maxScore = f.Score
		}
	}

	return 100 - int(math.Round(maxScore*100))
}
