package domain

import (
	"context"
	"io"
	"time"
)

// OutputFormat selects how a ClusterResponse is rendered.
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatTSV  OutputFormat = "tsv"
)

// ClusteringParams are the five tunables of run_canopy_clustering (spec.md
// §6). Constraint: RClose > RCanopy >= RMerge, and RStep > 0; violations are
// a programming error (see Config.Validate / service validation), not a
// runtime condition.
type ClusteringParams struct {
	// RCanopy is the membership radius.
	RCanopy float64 `json:"r_canopy" yaml:"r_canopy"`

	// RClose is the close-set radius; must be > RCanopy.
	RClose float64 `json:"r_close" yaml:"r_close"`

	// RMerge is the merge radius; must be <= RCanopy.
	RMerge float64 `json:"r_merge" yaml:"r_merge"`

	// RStep is the walk-stable threshold.
	RStep float64 `json:"r_step" yaml:"r_step"`

	// Workers is the worker pool size for discovery and merge scans.
	Workers int `json:"workers" yaml:"workers"`

	// Shuffle, if true, seeds-shuffles the input point order before
	// discovery (spec.md §9). Off by default: points are processed in the
	// order given, matching the original implementation's default.
	Shuffle bool `json:"shuffle" yaml:"shuffle"`

	// Seed is the PRNG seed used when Shuffle is true.
	Seed int64 `json:"seed" yaml:"seed"`
}

// FilterParams configure the two post-hoc filters (spec.md §4.G).
type FilterParams struct {
	// MaxShareEnabled enables filter_by_max_share.
	MaxShareEnabled bool `json:"max_share_enabled" yaml:"max_share_enabled"`
	MaxShare        float64 `json:"max_share" yaml:"max_share"`

	// SparsityEnabled enables filter_by_sparsity.
	SparsityEnabled bool `json:"sparsity_enabled" yaml:"sparsity_enabled"`
	MinNonZero      int  `json:"min_non_zero" yaml:"min_non_zero"`
}

// ClusterRequest is the input to ClusterService.Run.
type ClusterRequest struct {
	Points     []*Point
	Clustering ClusteringParams
	Filters    FilterParams
}

// ClusterResponse is the output of ClusterService.Run. Fields beyond
// Canopies surface the supplemented original-source reporting (SPEC_FULL.md
// §12): jump counts and before/after merge counts.
type ClusterResponse struct {
	Canopies []*Canopy `json:"-"`

	PointCount        int     `json:"point_count"`
	RawCanopyCount    int     `json:"raw_canopy_count"`
	MergedCanopyCount int     `json:"merged_canopy_count"`
	FinalCanopyCount  int     `json:"final_canopy_count"`
	JumpCount         int64   `json:"jump_count"`
	AverageJumps      float64 `json:"average_jumps"`
	DurationMs        int64   `json:"duration_ms"`
}

// ClusterService runs the full pipeline: discovery, merge, and the
// requested filters.
type ClusterService interface {
	Run(ctx context.Context, req *ClusterRequest) (*ClusterResponse, error)
}

// OutputFormatter renders a ClusterResponse.
type OutputFormatter interface {
	Write(resp *ClusterResponse, format OutputFormat, writer io.Writer) error
}

// ConfigurationLoader loads and merges clustering configuration.
type ConfigurationLoader interface {
	LoadConfig(path string) (*ClusteringParams, *FilterParams, error)
	LoadDefaultConfig() (*ClusteringParams, *FilterParams)
	ValidateClustering(p *ClusteringParams) error
}

// ProgressManager creates progress-reporting tasks for long-running phases
// (discovery, merge). Mirrors the teacher's interface so both an
// interactive (progressbar-backed) and a no-op implementation can satisfy
// it transparently to callers.
type ProgressManager interface {
	StartTask(description string, total int) TaskProgress
	IsInteractive() bool
	Close()
}

// TaskProgress tracks progress within a single phase.
type TaskProgress interface {
	Increment(n int)
	Describe(description string)
	Complete()
}

// ExecutableTask is one unit of work handed to a ParallelExecutor.
type ExecutableTask interface {
	Name() string
	Execute(ctx context.Context) (interface{}, error)
	IsEnabled() bool
}

// ParallelExecutor runs a batch of ExecutableTask with bounded concurrency.
type ParallelExecutor interface {
	Execute(ctx context.Context, tasks []ExecutableTask) error
	SetMaxConcurrency(max int)
	SetTimeout(timeout time.Duration)
}
