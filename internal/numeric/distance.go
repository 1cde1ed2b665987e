// Package numeric implements the two pure functions the canopy clustering
// core consumes from its numeric collaborator: the correlation-based
// distance oracle and the correlation-stats precomputation, plus the
// centroid builder and point predicates built on top of them.
package numeric

import (
	"math"

	"github.com/epruesse/gocanopy/domain"
)

// zeroVarianceEpsilon bounds the norm below which a sample vector is
// treated as constant (including all-zero): correlation against a constant
// vector is undefined, so its precomputed stats are left at zero, which
// makes every dot product against it evaluate to zero and therefore every
// Distance involving it evaluate to 1.0 (spec.md §7's zero-norm guarantee).
const zeroVarianceEpsilon = 1e-12

// PrecomputeCorrStats derives the centered, L2-normalized form of samples:
// stats[i] = (samples[i] - mean) / norm, where norm is the L2 norm of the
// centered vector. The dot product of two such vectors equals their Pearson
// correlation, so Distance becomes an O(D) dot product instead of an O(D)
// correlation recomputation per pair.
//
// If samples is constant (zero variance, norm below zeroVarianceEpsilon),
// PrecomputeCorrStats returns a zero vector rather than dividing by zero.
func PrecomputeCorrStats(samples []float64) []float64 {
	n := len(samples)
	stats := make([]float64, n)
	if n == 0 {
		return stats
	}

	var mean float64
	for _, v := range samples {
		mean += v
	}
	mean /= float64(n)

	var sumSq float64
	for i, v := range samples {
		d := v - mean
		stats[i] = d
		sumSq += d * d
	}

	norm := math.Sqrt(sumSq)
	if norm < zeroVarianceEpsilon {
		for i := range stats {
			stats[i] = 0
		}
		return stats
	}

	for i := range stats {
		stats[i] /= norm
	}
	return stats
}

// Distance computes 1 - |pearson_correlation(a, b)| from precomputed
// correlation stats, in O(D). Range is [0, 2] in principle, effectively
// [0, 1] since the correlation lies in [-1, 1]. Symmetric; Distance(p, p)
// is 0 for any non-constant p. Requires a.Dim() == b.Dim(); mismatched
// dimensions are a contract violation (spec.md §7) and panic rather than
// return an error, since the collaborator that constructs points is
// responsible for rejecting mismatched D at load time.
func Distance(a, b *domain.Point) float64 {
	return dotDistance(a.CorrStats, b.CorrStats)
}

func dotDistance(aStats, bStats []float64) float64 {
	if len(aStats) != len(bStats) {
		panic("numeric: mismatched point dimensions")
	}

	var dot float64
	for i := range aStats {
		dot += aStats[i] * bStats[i]
	}

	if dot > 1 {
		dot = 1
	} else if dot < -1 {
		dot = -1
	}

	return 1 - math.Abs(dot)
}
