package service

import (
	"fmt"
	"time"

	"github.com/epruesse/gocanopy/domain"
	"github.com/epruesse/gocanopy/internal/config"
	"github.com/epruesse/gocanopy/internal/version"
)

// CheckServiceImpl implements domain.CheckService: the `canopy check` CI
// quality gate, evaluating a finished run against configured thresholds.
type CheckServiceImpl struct {
	cfg config.CheckConfig
}

// NewCheckService creates a check service from a CheckConfig.
func NewCheckService(cfg config.CheckConfig) *CheckServiceImpl {
	return &CheckServiceImpl{cfg: cfg}
}

// Check evaluates resp against the configured min-canopies and
// max-singleton-ratio thresholds. Check never errors: a disabled or
// unconfigured gate always passes. points, when non-nil, overrides
// resp.PointCount for the reported PointsAnalyzed count (callers that
// already hold the parsed pool can avoid a second pass over it).
func (s *CheckServiceImpl) Check(resp *domain.ClusterResponse, points []*domain.Point) *domain.CheckResult {
	start := time.Now()

	pointsAnalyzed := resp.PointCount
	if points != nil {
		pointsAnalyzed = len(points)
	}

	singletons := 0
	for _, c := range resp.Canopies {
		if c.Size() <= 1 {
			singletons++
		}
	}

	var violations []domain.CheckViolation
	if s.cfg.Enabled {
		if resp.FinalCanopyCount < s.cfg.MinCanopies {
			violations = append(violations, domain.CheckViolation{
				Category:  "canopy-count",
				Rule:      "min-canopies",
				Severity:  "error",
				Message:   "fewer canopies were produced than the configured minimum",
				Actual:    fmt.Sprintf("%d", resp.FinalCanopyCount),
				Threshold: fmt.Sprintf("%d", s.cfg.MinCanopies),
			})
		}

		if resp.FinalCanopyCount > 0 {
			ratio := float64(singletons) / float64(resp.FinalCanopyCount)
			if ratio > s.cfg.MaxSingletonRatio {
				violations = append(violations, domain.CheckViolation{
					Category:  "skew",
					Rule:      "max-singletons",
					Severity:  "error",
					Message:   "the fraction of singleton canopies exceeds the configured maximum",
					Actual:    fmt.Sprintf("%.4f", ratio),
					Threshold: fmt.Sprintf("%.4f", s.cfg.MaxSingletonRatio),
				})
			}
		}
	}

	passed := len(violations) == 0
	exitCode := 0
	if !passed {
		exitCode = 1
	}

	return &domain.CheckResult{
		Passed:     passed,
		ExitCode:   exitCode,
		Violations: violations,
		Summary: domain.CheckSummary{
			PointsAnalyzed:    pointsAnalyzed,
			TotalViolations:   len(violations),
			CanopyCount:       resp.FinalCanopyCount,
			SingletonCanopies: singletons,
		},
		Duration:    time.Since(start).Milliseconds(),
		GeneratedAt: start.UTC().Format(time.RFC3339),
		Version:     version.GetVersion(),
	}
}
