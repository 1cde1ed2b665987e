package numeric

import (
	"sort"

	"github.com/epruesse/gocanopy/domain"
)

// nonZeroThreshold is the component value above which a sample counts as
// non-zero for NonZeroCountAtLeast.
const nonZeroThreshold = 1e-7

// top3ShareEpsilon and sumEpsilon match the source's tolerance for the
// top-3-share predicate: strictly-less-than comparisons are nudged by
// top3ShareEpsilon, and a total at or below sumEpsilon is treated as zero.
const (
	top3ShareEpsilon = 1e-10
	sumEpsilon       = 1e-10
)

// NonZeroCountAtLeast reports whether at least x components of p.Samples
// exceed nonZeroThreshold (a signed comparison; samples are non-negative).
func NonZeroCountAtLeast(p *domain.Point, x int) bool {
	count := 0
	for _, v := range p.Samples {
		if v > nonZeroThreshold {
			count++
		}
	}
	return count >= x
}

// MaxShareBelow reports whether the largest component of p.Samples, divided
// by the sum of all components, is strictly less than x. Undefined when the
// sum is zero; returns false in that case.
func MaxShareBelow(p *domain.Point, x float64) bool {
	var sum, max float64
	for _, v := range p.Samples {
		sum += v
		if v > max {
			max = v
		}
	}
	if sum == 0 {
		return false
	}
	return max/sum < x
}

// Top3ShareBelow reports whether the sum of the three largest components of
// p.Samples, divided by the total sum, is strictly less than x-top3ShareEpsilon.
// Returns false if the total is at or below sumEpsilon.
func Top3ShareBelow(p *domain.Point, x float64) bool {
	n := len(p.Samples)
	sorted := make([]float64, n)
	copy(sorted, p.Samples)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	var sum float64
	for _, v := range p.Samples {
		sum += v
	}
	if sum <= sumEpsilon {
		return false
	}

	var top3 float64
	for i := 0; i < n && i < 3; i++ {
		top3 += sorted[i]
	}

	return top3/sum < x-top3ShareEpsilon
}
