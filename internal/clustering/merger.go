package clustering

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/epruesse/gocanopy/domain"
	"github.com/epruesse/gocanopy/internal/numeric"
)

// Merge fuses canopies whose centers lie within rMerge of each other. The
// outer loop is strictly sequential, since each iteration mutates the
// pending list; only the inner distance scan against the current pivot
// runs in parallel. workers must be positive.
//
// Merged neighbor lists are the straight concatenation of the bag's
// neighbor lists, duplicates preserved: two overlapping canopies sharing a
// point contribute that point twice, which then biases the next
// coordinate-wise median. Preserved as-is for regression equivalence with
// the reference implementation.
func Merge(ctx context.Context, raw []*domain.Canopy, rMerge float64, workers int) ([]*domain.Canopy, error) {
	if workers <= 0 {
		panic("clustering: Merge requires a positive worker count")
	}

	pending := make([]*domain.Canopy, len(raw))
	copy(pending, raw)

	var merged []*domain.Canopy

	for len(pending) > 0 {
		pivot := pending[0]

		matches, err := scanForMerge(ctx, pivot, pending, rMerge, workers)
		if err != nil {
			return nil, err
		}

		if len(matches) == 0 {
			merged = append(merged, pivot)
			pending = pending[1:]
			continue
		}

		bag := make([]*domain.Canopy, 0, len(matches)+1)
		bag = append(bag, pivot)
		for _, idx := range matches {
			bag = append(bag, pending[idx])
		}

		pending = removeIndices(pending, matches)
		pending = pending[1:] // drop the pivot itself

		var neighbors []*domain.Point
		for _, c := range bag {
			neighbors = append(neighbors, c.Neighbors...)
		}

		newCanopy := &domain.Canopy{
			Origin:    pivot.Origin,
			Center:    numeric.BuildCentroid(neighbors),
			Neighbors: neighbors,
		}

		pending = append([]*domain.Canopy{newCanopy}, pending...)
	}

	return merged, nil
}

// scanForMerge computes, in parallel, the indices i > 0 in pending whose
// center lies within rMerge of pivot's center.
func scanForMerge(ctx context.Context, pivot *domain.Canopy, pending []*domain.Canopy, rMerge float64, workers int) ([]int, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var mu sync.Mutex
	var matches []int

	for i := 1; i < len(pending); i++ {
		i := i
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			if numeric.Distance(pivot.Center, pending[i].Center) < rMerge {
				mu.Lock()
				matches = append(matches, i)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Ints(matches)
	return matches, nil
}

// removeIndices removes the (already sorted ascending) indices from s,
// highest first so earlier indices stay valid.
func removeIndices(s []*domain.Canopy, indices []int) []*domain.Canopy {
	for k := len(indices) - 1; k >= 0; k-- {
		idx := indices[k]
		s = append(s[:idx], s[idx+1:]...)
	}
	return s
}
