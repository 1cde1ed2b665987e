package app

import (
	"context"
	"fmt"
	"os"

	"github.com/epruesse/gocanopy/domain"
	"github.com/epruesse/gocanopy/internal/ingest"
	"github.com/epruesse/gocanopy/service"
)

// ClusterUseCase orchestrates the end-to-end clustering workflow: resolve
// input paths, parse profile points, and run the clustering pipeline.
type ClusterUseCase struct {
	service    domain.ClusterService
	fileHelper *FileHelper
	executor   domain.ParallelExecutor
}

// NewClusterUseCase creates a new cluster use case. Profile files are parsed
// concurrently through a default-configured service.ParallelExecutor.
func NewClusterUseCase(clusterService domain.ClusterService) *ClusterUseCase {
	return NewClusterUseCaseWithExecutor(clusterService, service.NewParallelExecutor())
}

// NewClusterUseCaseWithExecutor creates a cluster use case whose profile
// files are parsed concurrently through executor, e.g. one built from
// config.PerformanceConfig via service.NewParallelExecutorFromConfig.
func NewClusterUseCaseWithExecutor(clusterService domain.ClusterService, executor domain.ParallelExecutor) *ClusterUseCase {
	return &ClusterUseCase{
		service:    clusterService,
		fileHelper: NewFileHelper(),
		executor:   executor,
	}
}

// ClusterUseCaseRequest bundles the use case's input paths with the
// clustering/filter parameters for a single run.
type ClusterUseCaseRequest struct {
	Paths           []string
	Recursive       bool
	ExcludePatterns []string
	Clustering      domain.ClusteringParams
	Filters         domain.FilterParams
}

// Execute resolves req.Paths to profile files, parses every point they
// contain, and runs the clustering pipeline over the combined pool.
func (uc *ClusterUseCase) Execute(ctx context.Context, req ClusterUseCaseRequest) (*domain.ClusterResponse, error) {
	if len(req.Paths) == 0 {
		return nil, fmt.Errorf("no input paths specified")
	}

	files, err := ResolveFilePaths(uc.fileHelper, req.Paths, req.Recursive, req.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to collect profile files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no profile files found in the specified paths")
	}

	points, err := uc.parseFiles(ctx, files)
	if err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("no points parsed from profile files")
	}

	return uc.service.Run(ctx, &domain.ClusterRequest{
		Points:     points,
		Clustering: req.Clustering,
		Filters:    req.Filters,
	})
}

// parseFiles parses every profile file concurrently through uc.executor and
// concatenates the resulting points in file order, rejecting a pool whose
// files disagree on dimensionality.
func (uc *ClusterUseCase) parseFiles(ctx context.Context, files []string) ([]*domain.Point, error) {
	perFile := make([][]*domain.Point, len(files))
	tasks := make([]domain.ExecutableTask, len(files))
	for i, path := range files {
		tasks[i] = &parseFileTask{path: path, dest: &perFile[i]}
	}

	if err := uc.executor.Execute(ctx, tasks); err != nil {
		return nil, fmt.Errorf("failed to parse profile files: %w", err)
	}

	var all []*domain.Point
	dim := -1

	for i, points := range perFile {
		for _, p := range points {
			if dim == -1 {
				dim = p.Dim()
			} else if p.Dim() != dim {
				return nil, fmt.Errorf("%s: point %q has dimension %d, expected %d", files[i], p.ID, p.Dim(), dim)
			}
		}
		all = append(all, points...)
	}

	return all, nil
}

// parseFileTask implements domain.ExecutableTask: parsing a single profile
// file. Results are written to dest, a pointer into a per-file slot
// preallocated by parseFiles, rather than returned through Execute, since
// service.ParallelExecutor discards a task's return value and only
// aggregates its error.
type parseFileTask struct {
	path string
	dest *[]*domain.Point
}

func (t *parseFileTask) Name() string { return t.path }

func (t *parseFileTask) IsEnabled() bool { return true }

func (t *parseFileTask) Execute(ctx context.Context) (interface{}, error) {
	f, err := os.Open(t.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", t.path, err)
	}

	points, err := ingest.ParsePoints(f)
	closeErr := f.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", t.path, err)
	}
	if closeErr != nil {
		return nil, fmt.Errorf("failed to close %s: %w", t.path, closeErr)
	}

	*t.dest = points
	return nil, nil
}
