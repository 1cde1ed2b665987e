// Package ingest parses gene-abundance profile files into domain.Point
// values, and is the collaborator responsible for rejecting mismatched
// dimensions before any point reaches the clustering core.
package ingest

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/epruesse/gocanopy/domain"
	"github.com/epruesse/gocanopy/internal/numeric"
)

// ParsePoints reads one point per line from r. Each line is the point's id
// followed by whitespace-separated sample values (a gene-abundance profile
// row: gene id, then one abundance value per sample column). Blank lines
// are skipped. Every parsed point's CorrStats is precomputed immediately.
//
// ParsePoints rejects the input if any two points have a different sample
// count: mismatched dimensions must never reach the clustering core.
func ParsePoints(r io.Reader) ([]*domain.Point, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var points []*domain.Point
	dim := -1
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		p, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("ingest: line %d: %w", lineNo, err)
		}

		if dim == -1 {
			dim = p.Dim()
		} else if p.Dim() != dim {
			return nil, fmt.Errorf("ingest: line %d: point %q has %d samples, want %d", lineNo, p.ID, p.Dim(), dim)
		}

		points = append(points, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ingest: reading profiles: %w", err)
	}

	return points, nil
}

func parseLine(line string) (*domain.Point, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return nil, fmt.Errorf("expected an id followed by at least one sample, got %d fields", len(fields))
	}

	id := fields[0]
	samples := make([]float64, len(fields)-1)
	for i, f := range fields[1:] {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("sample %d (%q): %w", i, f, err)
		}
		if v < 0 {
			return nil, fmt.Errorf("sample %d (%q): negative sample values are not allowed", i, f)
		}
		samples[i] = v
	}

	return &domain.Point{
		ID:        id,
		Samples:   samples,
		CorrStats: numeric.PrecomputeCorrStats(samples),
	}, nil
}
