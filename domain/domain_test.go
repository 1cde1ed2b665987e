package domain

import "testing"

func TestPoint_IsGenerated(t *testing.T) {
	p := &Point{ID: GeneratedPointID}
	if !p.IsGenerated() {
		t.Error("expected point with GeneratedPointID to report IsGenerated() == true")
	}

	real := &Point{ID: "sample-1"}
	if real.IsGenerated() {
		t.Error("expected point with a real id to report IsGenerated() == false")
	}
}

func TestPoint_Dim(t *testing.T) {
	p := &Point{Samples: []float64{1, 2, 3}}
	if p.Dim() != 3 {
		t.Errorf("Dim() = %d, want 3", p.Dim())
	}

	empty := &Point{}
	if empty.Dim() != 0 {
		t.Errorf("Dim() = %d, want 0 for empty samples", empty.Dim())
	}
}

func TestCanopy_Size(t *testing.T) {
	origin := &Point{ID: "origin"}
	c := &Canopy{
		Origin:    origin,
		Center:    origin,
		Neighbors: []*Point{origin, {ID: "a"}, {ID: "b"}},
	}
	if c.Size() != 3 {
		t.Errorf("Size() = %d, want 3", c.Size())
	}
}
