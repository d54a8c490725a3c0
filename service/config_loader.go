package service

import (
	"fmt"

	"github.com/editguard/editguard/domain"
	"github.com/editguard/editguard/internal/config"
)

// ConfigurationLoaderImpl implements the ConfigurationLoader interface
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads scan request defaults from the specified config file
func (c *ConfigurationLoaderImpl) LoadConfig(path string) (*domain.ScanRequest, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}

	req := c.convertToScanRequest(cfg)
	req.ConfigPath = path
	return req, nil
}

// LoadDefaultConfig loads defaults, preferring a discovered config file
func (c *ConfigurationLoaderImpl) LoadDefaultConfig() *domain.ScanRequest {
	cfg, err := config.LoadConfigWithTarget("", "")
	if err != nil {
		// Fall back to hardcoded default configuration
		cfg = config.DefaultConfig()
	}
	return c.convertToScanRequest(cfg)
}

// MergeConfig merges CLI flags with configuration file defaults
func (c *ConfigurationLoaderImpl) MergeConfig(base *domain.ScanRequest, override *domain.ScanRequest) *domain.ScanRequest {
	// Start with base configuration
	merged := *base

	// Always override paths as they come from command arguments
	if len(override.Paths) > 0 {
		merged.Paths = override.Paths
	}

	// Output configuration
	if override.OutputFormat != "" {
		merged.OutputFormat = override.OutputFormat
	}

	if override.OutputWriter != nil {
		merged.OutputWriter = override.OutputWriter
	}

	if override.ShowDetails {
		merged.ShowDetails = override.ShowDetails
	}

	// Gate overrides
	if override.FailOn != "" {
		merged.FailOn = override.FailOn
	}

	if override.NoCache {
		merged.NoCache = override.NoCache
	}

	// Scope overrides
	if len(override.IncludePatterns) > 0 {
		merged.IncludePatterns = override.IncludePatterns
	}

	if len(override.ExcludePatterns) > 0 {
		merged.ExcludePatterns = override.ExcludePatterns
	}

	if override.FollowSymlinks {
		merged.FollowSymlinks = override.FollowSymlinks
	}

	// Config path is always from override if provided
	if override.ConfigPath != "" {
		merged.ConfigPath = override.ConfigPath
	}

	return &merged
}

// FromConfig converts an already-loaded Config to scan request defaults
func (c *ConfigurationLoaderImpl) FromConfig(cfg *config.Config) *domain.ScanRequest {
	return c.convertToScanRequest(cfg)
}

// convertToScanRequest converts a Config to a ScanRequest
func (c *ConfigurationLoaderImpl) convertToScanRequest(cfg *config.Config) *domain.ScanRequest {
	return &domain.ScanRequest{
		// Paths are set by the caller, not from config
		Paths: []string{},

		// Output settings
		OutputFormat: domain.OutputFormat(cfg.Output.Format),
		ShowDetails:  cfg.Output.ShowDetails,

		// Scope settings
		Recursive:       cfg.Analysis.Recursive,
		IncludePatterns: cfg.Analysis.IncludePatterns,
		ExcludePatterns: cfg.Analysis.ExcludePatterns,
		FollowSymlinks:  cfg.Analysis.FollowSymlinks,
	}
}

// ValidateConfig validates the merged scan request
func (c *ConfigurationLoaderImpl) ValidateConfig(req *domain.ScanRequest) error {
	// Validate output format
	validFormats := map[domain.OutputFormat]bool{
		domain.OutputFormatText: true,
		domain.OutputFormatJSON: true,
		domain.OutputFormatYAML: true,
	}

	if !validFormats[req.OutputFormat] {
		return fmt.Errorf("invalid output format: %s (must be one of: text, json, yaml)",
			req.OutputFormat)
	}

	// Validate the fail-on override when set
	if req.FailOn != "" && !req.FailOn.IsValid() {
		return fmt.Errorf("invalid fail-on severity: %s (must be one of: critical, error, warning, info)",
			req.FailOn)
	}

	if len(req.IncludePatterns) == 0 {
		return fmt.Errorf("include patterns cannot be empty")
	}

	return nil
}
