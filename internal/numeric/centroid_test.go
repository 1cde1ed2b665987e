package numeric

import (
	"math"
	"testing"

	"github.com/epruesse/gocanopy/domain"
)

func TestBuildCentroid_OddCount(t *testing.T) {
	points := []*domain.Point{
		point([]float64{1, 10, 100}),
		point([]float64{3, 30, 300}),
		point([]float64{2, 20, 200}),
	}

	c := BuildCentroid(points)

	want := []float64{2, 20, 200}
	for i, w := range want {
		if math.Abs(c.Samples[i]-w) > 1e-9 {
			t.Fatalf("Samples[%d] = %v, want %v", i, c.Samples[i], w)
		}
	}
	if c.ID != domain.GeneratedPointID {
		t.Fatalf("ID = %q, want %q", c.ID, domain.GeneratedPointID)
	}
	if len(c.CorrStats) != len(want) {
		t.Fatalf("CorrStats length = %d, want %d", len(c.CorrStats), len(want))
	}
}

func TestBuildCentroid_EvenCount(t *testing.T) {
	points := []*domain.Point{
		point([]float64{1}),
		point([]float64{2}),
		point([]float64{3}),
		point([]float64{4}),
	}

	c := BuildCentroid(points)

	// n=4, mid=(4-1)/2=1 -> average of sorted[1] and sorted[2] = (2+3)/2 = 2.5
	if math.Abs(c.Samples[0]-2.5) > 1e-9 {
		t.Fatalf("Samples[0] = %v, want 2.5", c.Samples[0])
	}
}

func TestBuildCentroid_SinglePoint(t *testing.T) {
	p := point([]float64{5, 6, 7})
	c := BuildCentroid([]*domain.Point{p})

	for i, v := range p.Samples {
		if c.Samples[i] != v {
			t.Fatalf("Samples[%d] = %v, want %v", i, c.Samples[i], v)
		}
	}
}

func TestBuildCentroid_EmptyInputPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on empty input")
		}
	}()
	BuildCentroid(nil)
}

func TestBuildCentroid_MismatchedDimensionsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on mismatched dimensions")
		}
	}()
	BuildCentroid([]*domain.Point{
		point([]float64{1, 2, 3}),
		point([]float64{1, 2}),
	})
}
