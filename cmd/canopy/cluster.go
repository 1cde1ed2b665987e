package main

import (
	"context"
	"fmt"
	"os"

	"github.com/epruesse/gocanopy/app"
	"github.com/epruesse/gocanopy/domain"
	"github.com/epruesse/gocanopy/internal/config"
	"github.com/epruesse/gocanopy/service"
	"github.com/spf13/cobra"
)

var (
	clusterConfigPath     string
	clusterRecursive      bool
	clusterExclude        []string
	clusterFormat         string
	clusterOutputPath     string
	clusterShowDetails    bool
	clusterWorkers        int
	clusterRCanopy        float64
	clusterRClose         float64
	clusterRMerge         float64
	clusterRStep          float64
	clusterShuffle        bool
	clusterSeed           int64
	clusterMaxShare       float64
	clusterSparsityMin    int
	clusterEnableMaxShare bool
	clusterEnableSparsity bool
	clusterVerbose        bool
)

func clusterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cluster [path...]",
		Short: "Cluster gene-abundance profiles into canopies",
		Long: `Run the canopy clustering engine over one or more gene-abundance profile
files or directories.

Examples:
  # Cluster a single profile file with default radii
  canopy cluster profiles.tsv

  # Cluster a directory of profile files recursively
  canopy cluster -r data/

  # Write a JSON report instead of text to stdout
  canopy cluster --format json -o report.json data/

  # Apply both post-hoc filters
  canopy cluster --max-share 0.5 --min-non-zero 3 data/`,
		RunE: runCluster,
	}

	cmd.Flags().StringVarP(&clusterConfigPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().BoolVarP(&clusterRecursive, "recursive", "r", false,
		"Recurse into subdirectories")
	cmd.Flags().StringSliceVar(&clusterExclude, "exclude", nil,
		"Exclude patterns (comma-separated)")
	cmd.Flags().StringVarP(&clusterFormat, "format", "f", "",
		"Output format: text, json, tsv (default from config, text)")
	cmd.Flags().StringVarP(&clusterOutputPath, "output", "o", "",
		"Output file path (default: stdout)")
	cmd.Flags().BoolVar(&clusterShowDetails, "details", false,
		"Include per-canopy member ids in the report")
	cmd.Flags().IntVar(&clusterWorkers, "workers", 0,
		"Worker pool size (0 = use config/default)")
	cmd.Flags().Float64Var(&clusterRCanopy, "r-canopy", 0,
		"Membership radius (0 = use config/default)")
	cmd.Flags().Float64Var(&clusterRClose, "r-close", 0,
		"Close-set radius, must be > r-canopy (0 = use config/default)")
	cmd.Flags().Float64Var(&clusterRMerge, "r-merge", 0,
		"Merge radius, must be <= r-canopy (0 = use config/default)")
	cmd.Flags().Float64Var(&clusterRStep, "r-step", 0,
		"Walk-stable threshold (0 = use config/default)")
	cmd.Flags().BoolVar(&clusterShuffle, "shuffle", false,
		"Seed-shuffle input points before discovery")
	cmd.Flags().Int64Var(&clusterSeed, "seed", 0,
		"Seed for --shuffle")
	cmd.Flags().BoolVar(&clusterEnableMaxShare, "max-share-filter", false,
		"Enable the max-share skew filter")
	cmd.Flags().Float64Var(&clusterMaxShare, "max-share", 0,
		"Max-share threshold (implies --max-share-filter)")
	cmd.Flags().BoolVar(&clusterEnableSparsity, "sparsity-filter", false,
		"Enable the sparsity filter")
	cmd.Flags().IntVar(&clusterSparsityMin, "min-non-zero", 0,
		"Minimum non-zero component count (implies --sparsity-filter)")
	cmd.Flags().BoolVarP(&clusterVerbose, "verbose", "v", false,
		"Log discovery/merge progress at debug level")

	return cmd
}

func runCluster(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no paths specified")
	}

	cfg, err := config.LoadConfigWithTarget(clusterConfigPath, args[0])
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	clusteringParams, filterParams := resolveParams(cmd, cfg)

	loader := service.NewConfigurationLoader()
	if err := loader.ValidateClustering(&clusteringParams); err != nil {
		return fmt.Errorf("invalid clustering parameters: %w", err)
	}

	format := domain.OutputFormat(cfg.Output.Format)
	if clusterFormat != "" {
		format = domain.OutputFormat(clusterFormat)
	}

	showDetails := cfg.Output.ShowDetails || clusterShowDetails

	pm := service.NewProgressManager(format != domain.OutputFormatJSON)
	defer pm.Close()

	logger := loggerFor(clusterVerbose)
	svc := service.NewClusterServiceWithProgress(pm, logger)
	executor := service.NewParallelExecutorFromConfig(cfg.Performance)
	uc := app.NewClusterUseCaseWithExecutor(svc, executor)

	resp, err := uc.Execute(context.Background(), app.ClusterUseCaseRequest{
		Paths:           args,
		Recursive:       clusterRecursive,
		ExcludePatterns: clusterExclude,
		Clustering:      clusteringParams,
		Filters:         filterParams,
	})
	if err != nil {
		return fmt.Errorf("clustering failed: %w", err)
	}

	formatter := &service.OutputFormatterImpl{ShowDetails: showDetails}

	out := os.Stdout
	if clusterOutputPath != "" {
		f, createErr := os.Create(clusterOutputPath)
		if createErr != nil {
			return fmt.Errorf("failed to create output file: %w", createErr)
		}
		defer f.Close()
		if err := formatter.Write(resp, format, f); err != nil {
			return err
		}
		fmt.Printf("Wrote report to %s\n", clusterOutputPath)
		return nil
	}

	return formatter.Write(resp, format, out)
}

// resolveParams merges config defaults with any explicitly-set CLI flags,
// flags taking precedence.
func resolveParams(cmd *cobra.Command, cfg *config.Config) (domain.ClusteringParams, domain.FilterParams) {
	clustering := domain.ClusteringParams{
		RCanopy: cfg.Clustering.RCanopy,
		RClose:  cfg.Clustering.RClose,
		RMerge:  cfg.Clustering.RMerge,
		RStep:   cfg.Clustering.RStep,
		Workers: cfg.Clustering.Workers,
		Shuffle: cfg.Clustering.Shuffle,
		Seed:    cfg.Clustering.Seed,
	}
	filters := domain.FilterParams{
		MaxShareEnabled: cfg.Filters.MaxShareEnabled,
		MaxShare:        cfg.Filters.MaxShare,
		SparsityEnabled: cfg.Filters.SparsityEnabled,
		MinNonZero:      cfg.Filters.MinNonZero,
	}

	if cmd.Flags().Changed("r-canopy") {
		clustering.RCanopy = clusterRCanopy
	}
	if cmd.Flags().Changed("r-close") {
		clustering.RClose = clusterRClose
	}
	if cmd.Flags().Changed("r-merge") {
		clustering.RMerge = clusterRMerge
	}
	if cmd.Flags().Changed("r-step") {
		clustering.RStep = clusterRStep
	}
	if cmd.Flags().Changed("workers") {
		clustering.Workers = clusterWorkers
	}
	if cmd.Flags().Changed("shuffle") {
		clustering.Shuffle = clusterShuffle
	}
	if cmd.Flags().Changed("seed") {
		clustering.Seed = clusterSeed
	}

	if cmd.Flags().Changed("max-share-filter") {
		filters.MaxShareEnabled = clusterEnableMaxShare
	}
	if cmd.Flags().Changed("max-share") {
		filters.MaxShare = clusterMaxShare
		filters.MaxShareEnabled = true
	}
	if cmd.Flags().Changed("sparsity-filter") {
		filters.SparsityEnabled = clusterEnableSparsity
	}
	if cmd.Flags().Changed("min-non-zero") {
		filters.MinNonZero = clusterSparsityMin
		filters.SparsityEnabled = true
	}

	return clustering, filters
}
