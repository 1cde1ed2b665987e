package numeric

import (
	"sort"

	"github.com/epruesse/gocanopy/domain"
)

// BuildCentroid computes the coordinate-wise median of points and returns a
// freshly allocated synthetic point with domain.GeneratedPointID as its id
// and freshly precomputed correlation stats. points must be non-empty and
// every point must share the same dimension; both are contract violations
// and panic rather than return an error.
//
// Per-component median: v_{(n-1)/2} for odd n, (v_mid + v_mid+1)/2 for even
// n with mid=(n-1)/2, over the fully sorted column. The source derives this
// from an nth_element partition rather than a full sort, but the two are
// equivalent order statistics; must match bit-for-bit for regression tests.
func BuildCentroid(points []*domain.Point) *domain.Point {
	if len(points) == 0 {
		panic("numeric: BuildCentroid requires a non-empty point list")
	}

	n := len(points)
	d := points[0].Dim()
	for _, p := range points[1:] {
		if p.Dim() != d {
			panic("numeric: mismatched point dimensions in BuildCentroid")
		}
	}

	medians := make([]float64, d)
	column := make([]float64, n)
	mid := (n - 1) / 2

	for i := 0; i < d; i++ {
		for j, p := range points {
			column[j] = p.Samples[i]
		}
		sort.Float64s(column)

		if n%2 == 1 {
			medians[i] = column[mid]
		} else {
			medians[i] = (column[mid] + column[mid+1]) / 2
		}
	}

	return &domain.Point{
		ID:        domain.GeneratedPointID,
		Samples:   medians,
		CorrStats: PrecomputeCorrStats(medians),
	}
}
