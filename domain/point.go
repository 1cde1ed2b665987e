// Package domain defines the wire types and service interfaces shared
// between the clustering core, the orchestration services and the CLI.
// It carries no algorithmic logic of its own.
package domain

// GeneratedPointID is the sentinel id assigned to every synthetic centroid
// produced by the centroid builder. A point carrying this id did not come
// from the input pool.
const GeneratedPointID = "!GENERATED!"

// Point is a single profile: an opaque id and a fixed-length vector of
// non-negative sample values, plus the precomputed correlation statistics
// that let Distance run in O(D). Point is immutable after construction;
// nothing under internal/clustering ever mutates an existing Point.
type Point struct {
	// ID is opaque except for the GeneratedPointID sentinel.
	ID string

	// Samples holds the raw, non-negative sample vector. Length D is
	// identical across every point in a single run.
	Samples []float64

	// CorrStats holds the centered, L2-normalized form of Samples, derived
	// solely from Samples, precomputed once so Distance is a dot product.
	CorrStats []float64
}

// IsGenerated reports whether p is a synthetic centroid produced by the
// centroid builder rather than an input point.
func (p *Point) IsGenerated() bool {
	return p.ID == GeneratedPointID
}

// Dim returns the number of samples (D) carried by p.
func (p *Point) Dim() int {
	return len(p.Samples)
}

// Canopy is an overlapping cluster: an origin, a center, and the set of
// points within the canopy radius of that center. Canopy is built by
// internal/clustering and, after the discovery walk, never referenced by
// its intermediate (discarded) centers — only the final center survives.
type Canopy struct {
	// Origin is the point this canopy was built around: an input point, or,
	// for a later step of the discovery walk, the previous step's synthetic
	// center. It is always a member of Neighbors, regardless of its distance
	// to Center.
	Origin *Point

	// Center is either Origin itself (single-member canopy) or a synthetic
	// centroid owned exclusively by this Canopy.
	Center *Point

	// Neighbors holds every point within the canopy radius of Center, plus
	// Origin. References into the input pool, or into Center.
	Neighbors []*Point
}

// Size returns the number of neighbors (including Origin) in c.
func (c *Canopy) Size() int {
	return len(c.Neighbors)
}
