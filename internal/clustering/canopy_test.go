package clustering

import (
	"testing"

	"github.com/epruesse/gocanopy/domain"
	"github.com/epruesse/gocanopy/internal/numeric"
)

func newPoint(id string, samples []float64) *domain.Point {
	return &domain.Point{
		ID:        id,
		Samples:   samples,
		CorrStats: numeric.PrecomputeCorrStats(samples),
	}
}

func TestCreateCanopy_SingleMemberCenterIsOrigin(t *testing.T) {
	origin := newPoint("A", []float64{10, 1, 1})
	far := newPoint("B", []float64{1, 10, 1})
	pool := []*domain.Point{origin, far}

	scratch := NewScratch(len(pool))
	c := CreateCanopy(origin, pool, scratch, 0.1, 0.4, true)

	if c.Center != origin {
		t.Fatalf("expected single-member canopy center to be origin itself")
	}
	if len(c.Neighbors) != 1 {
		t.Fatalf("Neighbors = %d, want 1", len(c.Neighbors))
	}
}

func TestCreateCanopy_RecomputeFalseFiltersGenerated(t *testing.T) {
	origin := newPoint("A", []float64{1, 2, 3})
	synthetic := newPoint(domain.GeneratedPointID, []float64{1, 2, 3})

	scratch := &Scratch{Close: []*domain.Point{origin, synthetic}}
	c := CreateCanopy(origin, nil, scratch, 0.5, 0.5, false)

	for _, n := range c.Neighbors {
		if n.IsGenerated() {
			t.Fatalf("synthetic centroid leaked into neighbor list")
		}
	}
}

func TestCreateCanopy_OriginAlwaysIncluded(t *testing.T) {
	origin := newPoint("A", []float64{1, 0, 0})
	far := newPoint("B", []float64{0, 1, 0})
	pool := []*domain.Point{origin, far}

	scratch := NewScratch(len(pool))
	c := CreateCanopy(origin, pool, scratch, 0.01, 0.02, true)

	found := false
	for _, n := range c.Neighbors {
		if n == origin {
			found = true
		}
	}
	if !found {
		t.Fatal("origin must always be a member of its own canopy")
	}
}
