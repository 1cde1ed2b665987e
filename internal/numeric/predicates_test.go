package numeric

import (
	"testing"
)

func TestNonZeroCountAtLeast(t *testing.T) {
	tests := []struct {
		name    string
		samples []float64
		x       int
		want    bool
	}{
		{"exact count", []float64{1, 0, 1, 0, 1}, 3, true},
		{"below threshold values don't count", []float64{1e-8, 1, 1}, 2, true},
		{"not enough", []float64{1, 0, 0, 0}, 2, false},
		{"all zero", []float64{0, 0, 0}, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := point(tt.samples)
			if got := NonZeroCountAtLeast(p, tt.x); got != tt.want {
				t.Errorf("NonZeroCountAtLeast() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMaxShareBelow(t *testing.T) {
	tests := []struct {
		name    string
		samples []float64
		x       float64
		want    bool
	}{
		{"even spread passes", []float64{1, 1, 1, 1}, 0.5, true},
		{"dominant component fails", []float64{10, 0.1, 0.1, 0.1, 0.1}, 0.5, false},
		{"zero sum undefined returns false", []float64{0, 0, 0}, 0.5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := point(tt.samples)
			if got := MaxShareBelow(p, tt.x); got != tt.want {
				t.Errorf("MaxShareBelow() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTop3ShareBelow(t *testing.T) {
	tests := []struct {
		name    string
		samples []float64
		x       float64
		want    bool
	}{
		{"spread across many components", []float64{1, 1, 1, 1, 1, 1}, 0.9, true},
		{"top three dominate", []float64{10, 10, 10, 0.1, 0.1}, 0.5, false},
		{"zero sum returns false", []float64{0, 0, 0}, 0.9, false},
		{"fewer than three components", []float64{1, 1}, 0.9, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := point(tt.samples)
			if got := Top3ShareBelow(p, tt.x); got != tt.want {
				t.Errorf("Top3ShareBelow() = %v, want %v", got, tt.want)
			}
		})
	}
}
