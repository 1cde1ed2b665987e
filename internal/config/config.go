package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"

	"github.com/epruesse/gocanopy/internal/constants"
)

// Config represents the full on-disk configuration for a clustering run.
type Config struct {
	// Clustering holds the five core-algorithm tunables.
	Clustering ClusteringConfig `json:"clustering" mapstructure:"clustering" yaml:"clustering"`

	// Filters holds the post-hoc filter thresholds.
	Filters FiltersConfig `json:"filters" mapstructure:"filters" yaml:"filters"`

	// Output holds output formatting configuration.
	Output OutputConfig `json:"output" mapstructure:"output" yaml:"output"`

	// Check holds the CI quality-gate thresholds.
	Check CheckConfig `json:"check" mapstructure:"check" yaml:"check"`

	// Performance holds tunables for bounded-concurrency task execution,
	// reused for parallel profile-file loading.
	Performance PerformanceConfig `json:"performance" mapstructure:"performance" yaml:"performance"`
}

// PerformanceConfig configures a service.ParallelExecutorImpl.
type PerformanceConfig struct {
	// MaxGoroutines caps concurrent tasks; <= 0 falls back to
	// service.DefaultMaxConcurrency.
	MaxGoroutines int `json:"max_goroutines" mapstructure:"max_goroutines" yaml:"max_goroutines"`

	// TimeoutSeconds bounds a single Execute call; <= 0 falls back to
	// service.DefaultTimeout.
	TimeoutSeconds int `json:"timeout_seconds" mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// ClusteringConfig mirrors domain.ClusteringParams with mapstructure/yaml
// tags so viper can unmarshal it directly.
type ClusteringConfig struct {
	RCanopy float64 `json:"r_canopy" mapstructure:"r_canopy" yaml:"r_canopy"`
	RClose  float64 `json:"r_close" mapstructure:"r_close" yaml:"r_close"`
	RMerge  float64 `json:"r_merge" mapstructure:"r_merge" yaml:"r_merge"`
	RStep   float64 `json:"r_step" mapstructure:"r_step" yaml:"r_step"`
	Workers int     `json:"workers" mapstructure:"workers" yaml:"workers"`
	Shuffle bool    `json:"shuffle" mapstructure:"shuffle" yaml:"shuffle"`
	Seed    int64   `json:"seed" mapstructure:"seed" yaml:"seed"`
}

// FiltersConfig mirrors domain.FilterParams.
type FiltersConfig struct {
	MaxShareEnabled bool    `json:"max_share_enabled" mapstructure:"max_share_enabled" yaml:"max_share_enabled"`
	MaxShare        float64 `json:"max_share" mapstructure:"max_share" yaml:"max_share"`
	SparsityEnabled bool    `json:"sparsity_enabled" mapstructure:"sparsity_enabled" yaml:"sparsity_enabled"`
	MinNonZero      int     `json:"min_non_zero" mapstructure:"min_non_zero" yaml:"min_non_zero"`
}

// OutputConfig holds configuration for rendering a cluster run's results.
type OutputConfig struct {
	// Format specifies the output format: text, json, tsv.
	Format string `json:"format" mapstructure:"format" yaml:"format"`

	// ShowDetails controls whether per-canopy neighbor ids are printed.
	ShowDetails bool `json:"show_details" mapstructure:"show_details" yaml:"show_details"`

	// Directory is loaded from the config file but no command reads it;
	// `canopy cluster` writes its report to --output or to stdout.
	Directory string `json:"directory" mapstructure:"directory" yaml:"directory"`
}

// CheckConfig holds thresholds for the `canopy check` CI quality gate.
type CheckConfig struct {
	// Enabled controls whether the check command enforces these rules.
	Enabled bool `json:"enabled" mapstructure:"enabled" yaml:"enabled"`

	// MinCanopies fails the run if fewer canopies are produced.
	MinCanopies int `json:"min_canopies" mapstructure:"min_canopies" yaml:"min_canopies"`

	// MaxSingletonRatio fails the run if more than this fraction of
	// canopies end up as singletons.
	MaxSingletonRatio float64 `json:"max_singleton_ratio" mapstructure:"max_singleton_ratio" yaml:"max_singleton_ratio"`
}

// DefaultConfig returns the default configuration, matching the reference
// implementation's commented-out defaults (constants.DefaultR*).
func DefaultConfig() *Config {
	return &Config{
		Clustering: ClusteringConfig{
			RCanopy: constants.DefaultRCanopy,
			RClose:  constants.DefaultRClose,
			RMerge:  constants.DefaultRMerge,
			RStep:   constants.DefaultRStep,
			Workers: constants.DefaultWorkers,
			Shuffle: false,
			Seed:    0,
		},
		Filters: FiltersConfig{
			MaxShareEnabled: false,
			MaxShare:        constants.DefaultMaxShare,
			SparsityEnabled: false,
			MinNonZero:      constants.DefaultMinNonZero,
		},
		Output: OutputConfig{
			Format:      constants.OutputFormatText,
			ShowDetails: false,
		},
		Check: CheckConfig{
			Enabled:           false,
			MinCanopies:       1,
			MaxSingletonRatio: 1.0,
		},
		Performance: PerformanceConfig{
			MaxGoroutines:  0,
			TimeoutSeconds: 300,
		},
	}
}

// LoadConfig loads configuration from file or returns the default config.
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// LoadConfigWithTarget loads configuration with target-path context:
// discovery walks upward from targetPath when configPath is empty.
func LoadConfigWithTarget(configPath string, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = discoverConfigFile(targetPath)
	}
	return loadConfigFromFile(configPath)
}

// loadConfigFromFile reads and parses a configuration file.
func loadConfigFromFile(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}

	v := viper.New()
	config := DefaultConfig()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// workers: 0 in the on-disk config means "auto-detect" (see
	// GetFullConfigTemplate); resolve it before Validate, which otherwise
	// rejects a non-positive worker count.
	if config.Clustering.Workers <= 0 {
		config.Clustering.Workers = runtime.NumCPU()
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// discoverConfigFile finds the appropriate config file path.
func discoverConfigFile(targetPath string) string {
	return findDefaultConfig(targetPath)
}

// searchConfigInDirectory searches for configuration files in a specific
// directory.
func searchConfigInDirectory(dir string, candidates []string) string {
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// findDefaultConfig looks for default configuration files in common
// locations, searching from targetPath upward when provided.
func findDefaultConfig(targetPath string) string {
	candidates := []string{
		"canopy.yaml",
		"canopy.yml",
		constants.ConfigFileName,
		"canopy.json",
	}

	if targetPath != "" {
		absPath, err := filepath.Abs(targetPath)
		if err == nil {
			info, err := os.Stat(absPath)
			if err == nil && !info.IsDir() {
				absPath = filepath.Dir(absPath)
			}

			volume := filepath.VolumeName(absPath)
			for dir := absPath; ; dir = filepath.Dir(dir) {
				if config := searchConfigInDirectory(dir, candidates); config != "" {
					return config
				}

				parent := filepath.Dir(dir)
				if parent == dir ||
					dir == volume ||
					(volume != "" && dir == volume+string(filepath.Separator)) {
					break
				}
			}
		}
	}

	if config := searchConfigInDirectory(".", candidates); config != "" {
		return config
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		if config := searchConfigInDirectory(filepath.Join(xdgConfig, constants.ToolName), candidates); config != "" {
			return config
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		configDir := filepath.Join(home, ".config", constants.ToolName)
		if config := searchConfigInDirectory(configDir, candidates); config != "" {
			return config
		}
		if config := searchConfigInDirectory(home, candidates); config != "" {
			return config
		}
	}

	if envConfig := os.Getenv(constants.EnvVarPrefix + "_CONFIG"); envConfig != "" {
		if _, err := os.Stat(envConfig); err == nil {
			return envConfig
		}
	}

	return ""
}

// Validate validates the configuration values against the core's
// constraint: r_close > r_canopy >= r_merge, and r_step > 0.
func (c *Config) Validate() error {
	cl := c.Clustering

	if cl.RClose <= cl.RCanopy {
		return fmt.Errorf("clustering.r_close (%v) must be > r_canopy (%v)", cl.RClose, cl.RCanopy)
	}
	if cl.RCanopy < cl.RMerge {
		return fmt.Errorf("clustering.r_canopy (%v) must be >= r_merge (%v)", cl.RCanopy, cl.RMerge)
	}
	if cl.RStep <= 0 {
		return fmt.Errorf("clustering.r_step must be > 0, got %v", cl.RStep)
	}
	if cl.Workers <= 0 {
		return fmt.Errorf("clustering.workers must be > 0, got %d", cl.Workers)
	}

	validFormats := map[string]bool{
		constants.OutputFormatText: true,
		constants.OutputFormatJSON: true,
		constants.OutputFormatTSV:  true,
	}
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output.format %q, must be one of: text, json, tsv", c.Output.Format)
	}

	if c.Filters.MaxShareEnabled && (c.Filters.MaxShare <= 0 || c.Filters.MaxShare >= 1) {
		return fmt.Errorf("filters.max_share must be in (0, 1), got %v", c.Filters.MaxShare)
	}
	if c.Filters.SparsityEnabled && c.Filters.MinNonZero < 0 {
		return fmt.Errorf("filters.min_non_zero must be >= 0, got %d", c.Filters.MinNonZero)
	}

	if c.Check.MaxSingletonRatio < 0 || c.Check.MaxSingletonRatio > 1 {
		return fmt.Errorf("check.max_singleton_ratio must be in [0, 1], got %v", c.Check.MaxSingletonRatio)
	}

	return nil
}

// SaveConfig saves configuration to a YAML file.
func SaveConfig(config *Config, path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("clustering", config.Clustering)
	v.Set("filters", config.Filters)
	v.Set("output", config.Output)
	v.Set("check", config.Check)
	v.Set("performance", config.Performance)

	return v.WriteConfig()
}
