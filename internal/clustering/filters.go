package clustering

import (
	"github.com/epruesse/gocanopy/domain"
	"github.com/epruesse/gocanopy/internal/numeric"
)

// FilterByMaxShare removes every canopy whose center fails
// numeric.MaxShareBelow(center, x), and returns the surviving slice.
func FilterByMaxShare(canopies []*domain.Canopy, x float64) []*domain.Canopy {
	kept := canopies[:0]
	for _, c := range canopies {
		if numeric.MaxShareBelow(c.Center, x) {
			kept = append(kept, c)
		}
	}
	return kept
}

// FilterBySparsity removes every canopy whose center fails
// numeric.NonZeroCountAtLeast(center, minNonZero), and returns the
// surviving slice.
func FilterBySparsity(canopies []*domain.Canopy, minNonZero int) []*domain.Canopy {
	kept := canopies[:0]
	for _, c := range canopies {
		if numeric.NonZeroCountAtLeast(c.Center, minNonZero) {
			kept = append(kept, c)
		}
	}
	return kept
}
