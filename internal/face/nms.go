package face

import (
	"sort"
)

// NMS keeps the best scoring candidate of each overlapping cluster. Equal
// scores keep their input order, so the result is deterministic.
func NMS(candidates Candidates, threshold float64) Candidates {
	if len(candidates) == 0 {
		return Candidates{}
	}

	remaining := make(Candidates, len(candidates))
	copy(remaining, candidates)

	sort.SliceStable(remaining, func(i, j int) bool {
		return remaining[i].Score > remaining[j].Score
	})

	kept := make(Candidates, 0, len(remaining))

	for len(remaining) > 0 {
		best := remaining[0]
		kept = append(kept, best)

		next := remaining[:0]

		for _, c := range remaining[1:] {
			if IoU(best.Box, c.Box) <= threshold {
				next = append(next, c)
			}
		}

		remaining = next
	}

	return kept
}
