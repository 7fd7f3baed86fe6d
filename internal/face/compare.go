package face

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultMatchThreshold is the minimum cosine similarity of a match.
const DefaultMatchThreshold = 0.45

const cosineEpsilon = 1e-12

// Comparison is the outcome of comparing two embeddings.
type Comparison struct {
	Similarity float64 `json:"similarity"`
	Distance   float64 `json:"distance"`
	IsMatch    bool    `json:"is_match"`
	Threshold  float64 `json:"threshold"`
}

// Cosine returns the cosine similarity of two equal length vectors in [-1,1].
// It is 0 if either vector has zero length.
func Cosine(a, b Embedding) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, ErrSimilarityUndefined.Withf("empty vector")
	}

	if len(a) != len(b) {
		return 0, ErrSimilarityUndefined.Withf("length %d and %d differ", len(a), len(b))
	}

	na, nb := floats.Norm(a, 2), floats.Norm(b, 2)

	if na == 0 || nb == 0 {
		return 0, nil
	}

	sim := floats.Dot(a, b) / (na * nb)

	// Rounding leaves parallel vectors a few ulp short of 1.
	switch {
	case sim > 1-cosineEpsilon:
		return 1, nil
	case sim < cosineEpsilon-1:
		return -1, nil
	}

	return sim, nil
}

// Compare returns the similarity of two embeddings and the match decision.
// The match uses full precision, the reported values are rounded to 4 decimals.
func Compare(a, b Embedding, threshold float64) (Comparison, error) {
	sim, err := Cosine(a, b)

	if err != nil {
		return Comparison{}, err
	}

	return Comparison{
		Similarity: Round4(sim),
		Distance:   Round4(floats.Distance(a, b, 2)),
		IsMatch:    sim >= threshold,
		Threshold:  threshold,
	}, nil
}

// Round4 rounds to 4 decimal places.
func Round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
