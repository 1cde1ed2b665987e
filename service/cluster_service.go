package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/epruesse/gocanopy/domain"
	"github.com/epruesse/gocanopy/internal/clustering"
	"github.com/epruesse/gocanopy/internal/logging"
)

// ClusterServiceImpl implements domain.ClusterService: discovery, merge,
// and the requested post-hoc filters, in that order.
type ClusterServiceImpl struct {
	progress domain.ProgressManager
	logger   *logging.Logger
}

// NewClusterService creates a cluster service with no-op progress and a
// default logger.
func NewClusterService() *ClusterServiceImpl {
	return &ClusterServiceImpl{
		progress: &NoOpProgressManager{},
		logger:   logging.Default(),
	}
}

// NewClusterServiceWithProgress creates a cluster service reporting
// discovery/merge progress through pm and logging through logger.
func NewClusterServiceWithProgress(pm domain.ProgressManager, logger *logging.Logger) *ClusterServiceImpl {
	if pm == nil {
		pm = &NoOpProgressManager{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ClusterServiceImpl{progress: pm, logger: logger}
}

// Run executes discovery, merge, and the configured filters over
// req.Points, in that order.
func (s *ClusterServiceImpl) Run(ctx context.Context, req *domain.ClusterRequest) (*domain.ClusterResponse, error) {
	start := time.Now()

	pool := req.Points
	if req.Clustering.Shuffle {
		pool = shuffled(pool, req.Clustering.Seed)
	}

	s.logger.Infof("discovering canopies over %d points", len(pool))
	task := s.progress.StartTask("Discovering canopies", len(pool))
	discovery, err := clustering.Discover(ctx, pool, req.Clustering)
	task.Complete()
	if err != nil {
		return nil, fmt.Errorf("canopy discovery failed: %w", err)
	}
	rawCount := len(discovery.Canopies)
	s.logger.Infof("discovered %d raw canopies, %d jumps (avg %.2f)", rawCount, discovery.JumpCount, discovery.AverageJumps)

	mergeTask := s.progress.StartTask("Merging canopies", rawCount)
	merged, err := clustering.Merge(ctx, discovery.Canopies, req.Clustering.RMerge, req.Clustering.Workers)
	mergeTask.Complete()
	if err != nil {
		return nil, fmt.Errorf("canopy merge failed: %w", err)
	}
	mergedCount := len(merged)
	s.logger.Infof("merged to %d canopies", mergedCount)

	final := merged
	if req.Filters.MaxShareEnabled {
		final = clustering.FilterByMaxShare(final, req.Filters.MaxShare)
	}
	if req.Filters.SparsityEnabled {
		final = clustering.FilterBySparsity(final, req.Filters.MinNonZero)
	}

	return &domain.ClusterResponse{
		Canopies:          final,
		PointCount:        len(pool),
		RawCanopyCount:    rawCount,
		MergedCanopyCount: mergedCount,
		FinalCanopyCount:  len(final),
		JumpCount:         discovery.JumpCount,
		AverageJumps:      discovery.AverageJumps,
		DurationMs:        time.Since(start).Milliseconds(),
	}, nil
}

// shuffled returns a seeded Fisher-Yates shuffle of pool, leaving pool
// itself untouched.
func shuffled(pool []*domain.Point, seed int64) []*domain.Point {
	out := make([]*domain.Point, len(pool))
	copy(out, pool)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
