package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/epruesse/gocanopy/app"
	"github.com/epruesse/gocanopy/domain"
	"github.com/epruesse/gocanopy/internal/config"
	"github.com/epruesse/gocanopy/service"
	"github.com/spf13/cobra"
)

// CheckExitError carries an explicit process exit code out of runCheck, so
// main can distinguish "violations found" (1) from "could not run" (2).
type CheckExitError struct {
	Code    int
	Message string
}

func (e *CheckExitError) Error() string {
	return e.Message
}

var (
	checkConfigPath string
	checkRecursive  bool
	checkExclude    []string
	checkJSON       bool
	checkVerbose    bool
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "CI quality gate over a clustering run",
		Long: `Run canopy clustering and evaluate the result against the configured
min-canopies and max-singleton-ratio thresholds.

Exit codes:
  0 - All checks pass
  1 - A threshold was violated
  2 - Could not run (bad paths, parse error, invalid parameters)

Examples:
  canopy check data/
  canopy check --json data/`,
		RunE:          runCheck,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVarP(&checkConfigPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().BoolVarP(&checkRecursive, "recursive", "r", false,
		"Recurse into subdirectories")
	cmd.Flags().StringSliceVar(&checkExclude, "exclude", nil,
		"Exclude patterns (comma-separated)")
	cmd.Flags().BoolVar(&checkJSON, "json", false,
		"Output the check result as JSON")
	cmd.Flags().BoolVarP(&checkVerbose, "verbose", "v", false,
		"Show detailed output")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return &CheckExitError{Code: 2, Message: "no paths specified"}
	}

	cfg, err := config.LoadConfigWithTarget(checkConfigPath, args[0])
	if err != nil {
		return &CheckExitError{Code: 2, Message: fmt.Sprintf("failed to load configuration: %v", err)}
	}

	loader := service.NewConfigurationLoader()
	clustering, filters := (domain.ClusteringParams{
		RCanopy: cfg.Clustering.RCanopy,
		RClose:  cfg.Clustering.RClose,
		RMerge:  cfg.Clustering.RMerge,
		RStep:   cfg.Clustering.RStep,
		Workers: cfg.Clustering.Workers,
		Shuffle: cfg.Clustering.Shuffle,
		Seed:    cfg.Clustering.Seed,
	}), (domain.FilterParams{
		MaxShareEnabled: cfg.Filters.MaxShareEnabled,
		MaxShare:        cfg.Filters.MaxShare,
		SparsityEnabled: cfg.Filters.SparsityEnabled,
		MinNonZero:      cfg.Filters.MinNonZero,
	})
	if err := loader.ValidateClustering(&clustering); err != nil {
		return &CheckExitError{Code: 2, Message: fmt.Sprintf("invalid clustering parameters: %v", err)}
	}

	pm := service.NewProgressManager(!checkJSON)
	defer pm.Close()

	logger := loggerFor(checkVerbose)
	svc := service.NewClusterServiceWithProgress(pm, logger)
	executor := service.NewParallelExecutorFromConfig(cfg.Performance)
	uc := app.NewClusterUseCaseWithExecutor(svc, executor)

	resp, err := uc.Execute(context.Background(), app.ClusterUseCaseRequest{
		Paths:           args,
		Recursive:       checkRecursive,
		ExcludePatterns: checkExclude,
		Clustering:      clustering,
		Filters:         filters,
	})
	if err != nil {
		return &CheckExitError{Code: 2, Message: fmt.Sprintf("clustering failed: %v", err)}
	}

	checkSvc := service.NewCheckService(cfg.Check)
	result := checkSvc.Check(resp, nil)

	if checkJSON {
		return outputCheckJSON(result)
	}
	return outputCheckText(result)
}

func outputCheckJSON(result *domain.CheckResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return &CheckExitError{Code: 2, Message: fmt.Sprintf("failed to encode JSON: %v", err)}
	}
	if !result.Passed {
		return &CheckExitError{Code: 1, Message: ""}
	}
	return nil
}

func outputCheckText(result *domain.CheckResult) error {
	if result.Passed {
		fmt.Println("PASS: canopy check passed")
		if checkVerbose {
			fmt.Printf("  Points analyzed: %d\n", result.Summary.PointsAnalyzed)
			fmt.Printf("  Canopies:        %d\n", result.Summary.CanopyCount)
			fmt.Printf("  Singletons:      %d\n", result.Summary.SingletonCanopies)
			fmt.Printf("  Duration:        %dms\n", result.Duration)
		}
		return nil
	}

	fmt.Println("FAIL: canopy check failed")
	fmt.Printf("  Violations: %d\n", result.Summary.TotalViolations)
	for _, v := range result.Violations {
		fmt.Printf("  [%s] %s: %s (actual=%s, threshold=%s)\n",
			v.Severity, v.Rule, v.Message, v.Actual, v.Threshold)
	}

	return &CheckExitError{Code: 1, Message: ""}
}
