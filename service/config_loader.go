package service

import (
	"fmt"

	"github.com/epruesse/gocanopy/domain"
	"github.com/epruesse/gocanopy/internal/config"
)

// ConfigurationLoaderImpl implements domain.ConfigurationLoader.
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service.
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads configuration from path, or discovers one relative to
// the current directory when path is empty.
func (c *ConfigurationLoaderImpl) LoadConfig(path string) (*domain.ClusteringParams, *domain.FilterParams, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	clustering, filters := toDomain(cfg)
	return clustering, filters, nil
}

// LoadDefaultConfig returns the hardcoded default configuration.
func (c *ConfigurationLoaderImpl) LoadDefaultConfig() (*domain.ClusteringParams, *domain.FilterParams) {
	return toDomain(config.DefaultConfig())
}

// ValidateClustering validates clustering parameters against the core's
// constraint: r_close > r_canopy >= r_merge, and r_step > 0.
func (c *ConfigurationLoaderImpl) ValidateClustering(p *domain.ClusteringParams) error {
	if p.RClose <= p.RCanopy {
		return fmt.Errorf("r_close (%v) must be > r_canopy (%v)", p.RClose, p.RCanopy)
	}
	if p.RCanopy < p.RMerge {
		return fmt.Errorf("r_canopy (%v) must be >= r_merge (%v)", p.RCanopy, p.RMerge)
	}
	if p.RStep <= 0 {
		return fmt.Errorf("r_step must be > 0, got %v", p.RStep)
	}
	if p.Workers <= 0 {
		return fmt.Errorf("workers must be > 0, got %d", p.Workers)
	}
	return nil
}

// toDomain converts an on-disk config.Config to the domain types consumed
// by ClusterService.
func toDomain(cfg *config.Config) (*domain.ClusteringParams, *domain.FilterParams) {
	clustering := &domain.ClusteringParams{
		RCanopy: cfg.Clustering.RCanopy,
		RClose:  cfg.Clustering.RClose,
		RMerge:  cfg.Clustering.RMerge,
		RStep:   cfg.Clustering.RStep,
		Workers: cfg.Clustering.Workers,
		Shuffle: cfg.Clustering.Shuffle,
		Seed:    cfg.Clustering.Seed,
	}
	filters := &domain.FilterParams{
		MaxShareEnabled: cfg.Filters.MaxShareEnabled,
		MaxShare:        cfg.Filters.MaxShare,
		SparsityEnabled: cfg.Filters.SparsityEnabled,
		MinNonZero:      cfg.Filters.MinNonZero,
	}
	return clustering, filters
}
