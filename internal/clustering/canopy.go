// Package clustering implements the parallel canopy-discovery loop, the
// serial merger, and the post-hoc filters that together form the canopy
// clustering core.
package clustering

import (
	"github.com/epruesse/gocanopy/domain"
	"github.com/epruesse/gocanopy/internal/numeric"
)

// Scratch is a per-worker reusable buffer for the close-set cache. Discovery
// allocates one Scratch per concurrent worker and reuses it across every
// origin that worker processes, avoiding per-iteration allocation.
type Scratch struct {
	Close []*domain.Point
}

// NewScratch allocates a Scratch preallocated to capacity.
func NewScratch(capacity int) *Scratch {
	return &Scratch{Close: make([]*domain.Point, 0, capacity)}
}

// CreateCanopy builds a Canopy around origin.
//
// In both modes origin itself is skipped while scanning, since it is
// appended explicitly below and would otherwise be double-counted (its
// distance to itself is 0).
//
// When recomputeClose is true, the entire pool is scanned: scratch.Close
// is rebuilt with origin followed by every other point within rClose, and
// neighbors collects the subset within rCanopy. When recomputeClose is false, only
// scratch.Close from the previous call is scanned (no pool rescan); a point
// qualifies as a neighbor only if it is within rCanopy AND is not the
// synthetic-centroid sentinel. That second condition is a defensive no-op
// here: after a recompute=true pass at a real input origin, scratch.Close can
// only contain real input points, so the filter never actually excludes
// anything. Kept anyway, to match the reference implementation it was ported
// from.
//
// origin is always appended to the neighbor list, regardless of distance.
func CreateCanopy(origin *domain.Point, pool []*domain.Point, scratch *Scratch, rCanopy, rClose float64, recomputeClose bool) *domain.Canopy {
	var neighbors []*domain.Point

	if recomputeClose {
		scratch.Close = scratch.Close[:0]
		scratch.Close = append(scratch.Close, origin)

		for _, candidate := range pool {
			if candidate == origin {
				continue
			}
			dist := numeric.Distance(origin, candidate)
			if dist < rClose {
				scratch.Close = append(scratch.Close, candidate)
				if dist < rCanopy {
					neighbors = append(neighbors, candidate)
				}
			}
		}
	} else {
		for _, candidate := range scratch.Close {
			if candidate == origin {
				continue
			}
			dist := numeric.Distance(origin, candidate)
			if dist < rCanopy && !candidate.IsGenerated() {
				neighbors = append(neighbors, candidate)
			}
		}
	}

	neighbors = append(neighbors, origin)

	center := origin
	if len(neighbors) > 1 {
		center = numeric.BuildCentroid(neighbors)
	}

	return &domain.Canopy{
		Origin:    origin,
		Center:    center,
		Neighbors: neighbors,
	}
}
