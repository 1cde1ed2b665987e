package domain

// CheckResult represents the result of a canopy-run quality gate, the
// `canopy check` CI entry point.
type CheckResult struct {
	Passed      bool             `json:"passed"`
	ExitCode    int              `json:"exit_code"`
	Violations  []CheckViolation `json:"violations"`
	Summary     CheckSummary     `json:"summary"`
	Duration    int64            `json:"duration_ms"`
	GeneratedAt string           `json:"generated_at"`
	Version     string           `json:"version"`
}

// CheckViolation represents a single threshold violation.
type CheckViolation struct {
	Category  string `json:"category"` // canopy-count, skew
	Rule      string `json:"rule"`     // min-canopies, max-singletons
	Severity  string `json:"severity"` // error, warning
	Message   string `json:"message"`
	Actual    string `json:"actual"`
	Threshold string `json:"threshold,omitempty"`
}

// CheckSummary provides aggregate statistics of the checked run.
type CheckSummary struct {
	PointsAnalyzed    int `json:"points_analyzed"`
	TotalViolations   int `json:"total_violations"`
	CanopyCount       int `json:"canopy_count"`
	SingletonCanopies int `json:"singleton_canopies"`
}

// CheckService evaluates a ClusterResponse against configured thresholds.
type CheckService interface {
	Check(resp *ClusterResponse, points []*Point) *CheckResult
}
