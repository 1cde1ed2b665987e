package clustering

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/epruesse/gocanopy/domain"
	"github.com/epruesse/gocanopy/internal/numeric"
)

// DiscoveryResult is the output of Discover: the raw canopy list plus the
// supplemented jump-count reporting (SPEC_FULL.md §12).
type DiscoveryResult struct {
	Canopies     []*domain.Canopy
	JumpCount    int64
	AverageJumps float64
}

// discoveryState holds every piece of mutable state the discovery loop
// shares across workers, guarded by a single mutex so the commit step below
// stays a single critical section, mirroring the source's one #pragma omp
// critical region covering both the marked set and the canopy list.
type discoveryState struct {
	mu       sync.Mutex
	marked   map[*domain.Point]struct{}
	canopies []*domain.Canopy
}

func newDiscoveryState(capacity int) *discoveryState {
	return &discoveryState{marked: make(map[*domain.Point]struct{}, capacity)}
}

// isMarked is a locked pre-check taken before the walk. Its answer can go
// stale before commit; that only wastes work on a point that commit then
// rejects, never corrupts state.
func (s *discoveryState) isMarked(p *domain.Point) bool {
	s.mu.Lock()
	_, ok := s.marked[p]
	s.mu.Unlock()
	return ok
}

// commit is the single critical section of the discovery loop: it re-checks
// origin against the marked set, and if still unclaimed, records final and
// marks every point c1 claimed. Note this marks c1.Neighbors, the
// penultimate canopy, not final.Neighbors -- preserved as a known quirk (see
// SPEC_FULL.md §13).
func (s *discoveryState) commit(origin *domain.Point, c1, final *domain.Canopy) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, already := s.marked[origin]; already {
		return
	}

	s.marked[origin] = struct{}{}
	s.canopies = append(s.canopies, final)

	for _, n := range c1.Neighbors {
		s.marked[n] = struct{}{}
	}

	if final.Origin.IsGenerated() {
		s.marked[c1.Origin] = struct{}{}
	}
}

// Discover runs the parallel canopy-discovery loop over pool: for each
// unclaimed origin, it walks create_canopy to a stable center and commits
// the result. workers must be positive; a non-positive worker count is a
// contract violation and panics.
func Discover(ctx context.Context, pool []*domain.Point, params domain.ClusteringParams) (*DiscoveryResult, error) {
	if params.Workers <= 0 {
		panic("clustering: Discover requires a positive worker count")
	}
	if len(pool) == 0 {
		return &DiscoveryResult{}, nil
	}

	state := newDiscoveryState(len(pool))
	var jumps int64

	jobs := make(chan int)
	g, gctx := errgroup.WithContext(ctx)

	for w := 0; w < params.Workers; w++ {
		g.Go(func() error {
			scratch := NewScratch(len(pool))
			for {
				select {
				case <-gctx.Done():
					return gctx.Err()
				case i, ok := <-jobs:
					if !ok {
						return nil
					}
					discoverOne(pool, i, params, scratch, state, &jumps)
				}
			}
		})
	}

	g.Go(func() error {
		defer close(jobs)
		for i := range pool {
			select {
			case jobs <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &DiscoveryResult{
		Canopies:  state.canopies,
		JumpCount: jumps,
	}
	if n := len(result.Canopies); n > 0 {
		result.AverageJumps = float64(jumps) / float64(n)
	}
	return result, nil
}

// discoverOne runs the walk-to-stability loop for a single origin and
// attempts to commit the result.
func discoverOne(pool []*domain.Point, originIdx int, params domain.ClusteringParams, scratch *Scratch, state *discoveryState, jumps *int64) {
	origin := pool[originIdx]
	if state.isMarked(origin) {
		return
	}

	c1 := CreateCanopy(origin, pool, scratch, params.RCanopy, params.RClose, true)
	c2 := CreateCanopy(c1.Center, pool, scratch, params.RCanopy, params.RClose, false)

	for numeric.Distance(c1.Center, c2.Center) > params.RStep {
		c1 = c2
		atomic.AddInt64(jumps, 1)
		c2 = CreateCanopy(c1.Center, pool, scratch, params.RCanopy, params.RClose, false)
	}

	final := c2
	if len(c1.Neighbors) > len(c2.Neighbors) {
		final = c1
	}

	state.commit(origin, c1, final)
}
