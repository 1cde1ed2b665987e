// Package testutil provides helper functions for testing canopy clustering
// components.
package testutil

import (
	"fmt"
	"testing"

	"github.com/epruesse/gocanopy/domain"
	"github.com/epruesse/gocanopy/internal/numeric"
)

// NewPoint builds a domain.Point with precomputed correlation stats.
func NewPoint(id string, samples []float64) *domain.Point {
	return &domain.Point{
		ID:        id,
		Samples:   samples,
		CorrStats: numeric.PrecomputeCorrStats(samples),
	}
}

// GeneratePoints builds n synthetic points of dimension d, each a scaled
// copy of a base pattern so every point correlates with the others
// (distance ~0), useful for exercising a single large canopy.
func GeneratePoints(n, d int) []*domain.Point {
	points := make([]*domain.Point, n)
	for i := 0; i < n; i++ {
		samples := make([]float64, d)
		for j := 0; j < d; j++ {
			samples[j] = float64((j%10)+1) * float64(i+1)
		}
		points[i] = NewPoint(fmt.Sprintf("p%d", i), samples)
	}
	return points
}

// GenerateOrthogonalPoints builds d axis-aligned points of dimension d
// (point i has a 1 in position i, 0 elsewhere). Each pair has Pearson
// correlation -1/(d-1), so for larger d the points are far apart.
func GenerateOrthogonalPoints(d int) []*domain.Point {
	points := make([]*domain.Point, d)
	for i := 0; i < d; i++ {
		samples := make([]float64, d)
		samples[i] = 1
		points[i] = NewPoint(fmt.Sprintf("axis%d", i), samples)
	}
	return points
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("Expected error but got nil")
	}
}

// AssertEqual fails the test if expected != actual.
func AssertEqual(t *testing.T, expected, actual any) {
	t.Helper()
	if expected != actual {
		t.Errorf("Expected %v, got %v", expected, actual)
	}
}

// AssertTrue fails the test if condition is false.
func AssertTrue(t *testing.T, condition bool, msg string) {
	t.Helper()
	if !condition {
		t.Error(msg)
	}
}

// AssertFalse fails the test if condition is true.
func AssertFalse(t *testing.T, condition bool, msg string) {
	t.Helper()
	if condition {
		t.Error(msg)
	}
}
