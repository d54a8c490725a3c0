package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the main configuration structure
type Config struct {
	// Security holds configuration for the security check
	Security SecurityConfig `json:"security" mapstructure:"security" yaml:"security"`

	// Quality holds configuration for the quality check
	Quality QualityConfig `json:"quality" mapstructure:"quality" yaml:"quality"`

	// Accessibility holds configuration for the accessibility check
	Accessibility AccessibilityConfig `json:"accessibility" mapstructure:"accessibility" yaml:"accessibility"`

	// Advanced holds configuration for the advanced pattern check
	Advanced AdvancedConfig `json:"advanced" mapstructure:"advanced" yaml:"advanced"`

	// Cache holds verdict cache configuration
	Cache CacheConfig `json:"cache" mapstructure:"cache" yaml:"cache"`

	// Hook holds hook-mode configuration
	Hook HookConfig `json:"hook" mapstructure:"hook" yaml:"hook"`

	// Output holds output formatting configuration
	Output OutputConfig `json:"output" mapstructure:"output" yaml:"output"`

	// Analysis holds general analysis scope configuration
	Analysis AnalysisConfig `json:"analysis" mapstructure:"analysis" yaml:"analysis"`
}

// SecurityConfig holds configuration for the security check
type SecurityConfig struct {
	// Enabled controls whether the security check runs
	Enabled bool `json:"enabled" mapstructure:"enabled" yaml:"enabled"`

	// FailOnCritical blocks the edit on critical findings (leaked secrets).
	// Turning this off makes the security check advisory, which weakens the
	// gate; it exists for fail-open operation, not as a recommendation.
	FailOnCritical bool `json:"failOnCritical" mapstructure:"failOnCritical" yaml:"failOnCritical"`

	// FailOnError blocks the edit on error-level findings (unsafe exec, raw HTML)
	FailOnError bool `json:"failOnError" mapstructure:"failOnError" yaml:"failOnError"`

	// FlagConsole reports console statements as info-level findings
	FlagConsole bool `json:"flagConsole" mapstructure:"flagConsole" yaml:"flagConsole"`
}

// QualityConfig holds configuration for the quality check
type QualityConfig struct {
	// Enabled controls whether the quality check runs
	Enabled bool `json:"enabled" mapstructure:"enabled" yaml:"enabled"`

	// FailOnViolations blocks the edit on error-level quality findings
	FailOnViolations bool `json:"failOnViolations" mapstructure:"failOnViolations" yaml:"failOnViolations"`

	// MaxFileLines is the maximum file length before a warning (0 = no limit)
	MaxFileLines int `json:"maxFileLines" mapstructure:"maxFileLines" yaml:"maxFileLines"`

	// MaxComponentLines is the maximum component length before a warning (0 = no limit)
	MaxComponentLines int `json:"maxComponentLines" mapstructure:"maxComponentLines" yaml:"maxComponentLines"`

	// MaxComplexity caps the approximate per-file branch count (0 = no limit)
	MaxComplexity int `json:"maxComplexity" mapstructure:"maxComplexity" yaml:"maxComplexity"`

	// MaxNestingDepth caps the brace nesting depth (0 = no limit)
	MaxNestingDepth int `json:"maxNestingDepth" mapstructure:"maxNestingDepth" yaml:"maxNestingDepth"`
}

// AccessibilityConfig holds configuration for the accessibility check
type AccessibilityConfig struct {
	// Enabled controls whether the accessibility check runs
	Enabled bool `json:"enabled" mapstructure:"enabled" yaml:"enabled"`

	// FailOnViolations blocks the edit on error-level accessibility findings
	FailOnViolations bool `json:"failOnViolations" mapstructure:"failOnViolations" yaml:"failOnViolations"`

	// LinterCommand is an optional external a11y linter to merge with the
	// built-in heuristics (empty = heuristics only). The command must emit
	// ESLint-compatible JSON on stdout.
	LinterCommand string `json:"linterCommand" mapstructure:"linterCommand" yaml:"linterCommand"`

	// LinterArgs are extra arguments passed before the file path
	LinterArgs []string `json:"linterArgs" mapstructure:"linterArgs" yaml:"linterArgs"`

	// LinterTimeoutSeconds bounds the external linter run
	LinterTimeoutSeconds int `json:"linterTimeoutSeconds" mapstructure:"linterTimeoutSeconds" yaml:"linterTimeoutSeconds"`
}

// AdvancedConfig holds configuration for the advanced pattern check
type AdvancedConfig struct {
	// Enabled controls whether the advanced check runs
	Enabled bool `json:"enabled" mapstructure:"enabled" yaml:"enabled"`

	// FailOnViolations blocks the edit on error-level advanced findings
	FailOnViolations bool `json:"failOnViolations" mapstructure:"failOnViolations" yaml:"failOnViolations"`

	// CentralCacheModule names the project's shared cache facility. When set,
	// ad hoc module-level caches are flagged with a consolidation hint.
	CentralCacheModule string `json:"centralCacheModule" mapstructure:"centralCacheModule" yaml:"centralCacheModule"`
}

// CacheConfig holds verdict cache configuration
type CacheConfig struct {
	// Enabled controls whether verdicts are cached between runs
	Enabled bool `json:"enabled" mapstructure:"enabled" yaml:"enabled"`

	// Directory overrides the cache location (empty = XDG cache dir)
	Directory string `json:"directory" mapstructure:"directory" yaml:"directory"`

	// MaxAgeMinutes is how long a cached verdict stays valid
	MaxAgeMinutes int `json:"maxAgeMinutes" mapstructure:"maxAgeMinutes" yaml:"maxAgeMinutes"`
}

// HookConfig holds hook-mode configuration
type HookConfig struct {
	// TimeoutSeconds bounds a single hook run end to end
	TimeoutSeconds int `json:"timeoutSeconds" mapstructure:"timeoutSeconds" yaml:"timeoutSeconds"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the scan output format: text, json, yaml
	Format string `json:"format" mapstructure:"format" yaml:"format"`

	// ShowDetails controls whether to show per-issue suggestions
	ShowDetails bool `json:"showDetails" mapstructure:"showDetails" yaml:"showDetails"`

	// MaxWarningsShown caps the warnings printed in full (the rest are counted)
	MaxWarningsShown int `json:"maxWarningsShown" mapstructure:"maxWarningsShown" yaml:"maxWarningsShown"`

	// Colorize controls terminal colors (disable for CI logs)
	Colorize bool `json:"colorize" mapstructure:"colorize" yaml:"colorize"`
}

// AnalysisConfig holds general analysis scope configuration
type AnalysisConfig struct {
	// IncludePatterns specifies file glob patterns to include
	IncludePatterns []string `json:"include" mapstructure:"include" yaml:"include"`

	// ExcludePatterns specifies file glob patterns to exclude
	ExcludePatterns []string `json:"exclude" mapstructure:"exclude" yaml:"exclude"`

	// Recursive controls whether to scan directories recursively
	Recursive bool `json:"recursive" mapstructure:"recursive" yaml:"recursive"`

	// FollowSymlinks controls whether to follow symbolic links
	FollowSymlinks bool `json:"followSymlinks" mapstructure:"followSymlinks" yaml:"followSymlinks"`
}

// LoadConfig loads configuration from file or returns default config
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// discoverConfigFile finds the appropriate config file path
// Single responsibility: configuration file discovery only
func discoverConfigFile(targetPath string) string {
	return findDefaultConfig(targetPath)
}

// loadConfigFromFile reads and parses a configuration file
// Single responsibility: file loading and parsing only
func loadConfigFromFile(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}

	// Create a new viper instance to avoid race conditions
	v := viper.New()
	config := DefaultConfig()

	// JSON configs may carry // comments (the init templates do), which
	// encoding/json rejects. Strip them before handing the bytes to viper.
	if strings.EqualFold(filepath.Ext(configPath), ".json") {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
		v.SetConfigType("json")
		if err := v.ReadConfig(bytes.NewReader(stripJSONComments(data))); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	} else {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	// Unmarshal into config struct
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// LoadConfigWithTarget loads configuration with target path context
// Orchestrates discovery and loading but delegates specific concerns
func LoadConfigWithTarget(configPath string, targetPath string) (*Config, error) {
	// If no config path specified, discover one
	if configPath == "" {
		configPath = discoverConfigFile(targetPath)
	}

	// Load the configuration from the determined path
	return loadConfigFromFile(configPath)
}

// stripJSONComments removes // line comments outside string literals
func stripJSONComments(data []byte) []byte {
	out := make([]byte, 0, len(data))
	inString := false
	escaped := false
	for i := 0; i < len(data); i++ {
		c := data[i]
		if inString {
			out = append(out, c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
			out = append(out, c)
			continue
		}
		if c == '/' && i+1 < len(data) && data[i+1] == '/' {
			for i < len(data) && data[i] != '\n' {
				i++
			}
			if i < len(data) {
				out = append(out, '\n')
			}
			continue
		}
		out = append(out, c)
	}
	return out
}

// searchConfigInDirectory searches for configuration files in a specific directory
func searchConfigInDirectory(dir string, candidates []string) string {
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// findDefaultConfig looks for default configuration files in common locations
// targetPath is the path being analyzed (e.g. the edited file or a directory)
func findDefaultConfig(targetPath string) string {
	candidates := []string{
		"editguard.config.json",
		"editguard.yaml",
		"editguard.yml",
		".editguard.yaml",
		".editguard.json",
	}

	// If targetPath is provided, search from there upward
	if targetPath != "" {
		// Convert to absolute path
		absPath, err := filepath.Abs(targetPath)
		if err == nil {
			// If it's a file, start from its directory
			info, err := os.Stat(absPath)
			if err == nil && !info.IsDir() {
				absPath = filepath.Dir(absPath)
			}

			// Search from target directory up to root with robust termination
			// Handle Windows edge cases: volume roots (C:\), UNC paths (\\server\share), long paths
			volume := filepath.VolumeName(absPath)
			for dir := absPath; ; dir = filepath.Dir(dir) {
				if config := searchConfigInDirectory(dir, candidates); config != "" {
					return config
				}

				// Robust termination conditions for cross-platform compatibility
				parent := filepath.Dir(dir)
				if parent == dir || // Unix-style root reached (/), Windows UNC root (\\server)
					dir == volume || // Windows volume root reached (C:\)
					(volume != "" && dir == volume+string(filepath.Separator)) { // Alternative volume root format
					break
				}
			}
		}
	}

	// Fallback to current directory
	if config := searchConfigInDirectory(".", candidates); config != "" {
		return config
	}

	// Check XDG config directory (Linux/Mac standard)
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		if config := searchConfigInDirectory(filepath.Join(xdgConfig, "editguard"), candidates); config != "" {
			return config
		}
	}

	// Check ~/.config/editguard/ (XDG default)
	if home, err := os.UserHomeDir(); err == nil {
		configDir := filepath.Join(home, ".config", "editguard")
		if config := searchConfigInDirectory(configDir, candidates); config != "" {
			return config
		}

		// Check home directory (backward compatibility)
		if config := searchConfigInDirectory(home, candidates); config != "" {
			return config
		}
	}

	// Check EDITGUARD_CONFIG environment variable as fallback
	if envConfig := os.Getenv("EDITGUARD_CONFIG"); envConfig != "" {
		if _, err := os.Stat(envConfig); err == nil {
			return envConfig
		}
	}

	return ""
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	// Validate quality thresholds
	if c.Quality.MaxFileLines < 0 {
		return fmt.Errorf("quality.maxFileLines must be >= 0, got %d", c.Quality.MaxFileLines)
	}

	if c.Quality.MaxComponentLines < 0 {
		return fmt.Errorf("quality.maxComponentLines must be >= 0, got %d", c.Quality.MaxComponentLines)
	}

	if c.Quality.MaxFileLines > 0 && c.Quality.MaxComponentLines > c.Quality.MaxFileLines {
		return fmt.Errorf("quality.maxComponentLines (%d) must be <= maxFileLines (%d)",
			c.Quality.MaxComponentLines, c.Quality.MaxFileLines)
	}

	if c.Quality.MaxComplexity < 0 {
		return fmt.Errorf("quality.maxComplexity must be >= 0, got %d", c.Quality.MaxComplexity)
	}

	if c.Quality.MaxNestingDepth < 0 {
		return fmt.Errorf("quality.maxNestingDepth must be >= 0, got %d", c.Quality.MaxNestingDepth)
	}

	// Validate accessibility linter settings
	if c.Accessibility.LinterTimeoutSeconds < 1 {
		return fmt.Errorf("accessibility.linterTimeoutSeconds must be >= 1, got %d", c.Accessibility.LinterTimeoutSeconds)
	}

	// Validate cache settings
	if c.Cache.MaxAgeMinutes < 1 {
		return fmt.Errorf("cache.maxAgeMinutes must be >= 1, got %d", c.Cache.MaxAgeMinutes)
	}

	// Validate hook settings
	if c.Hook.TimeoutSeconds < 1 {
		return fmt.Errorf("hook.timeoutSeconds must be >= 1, got %d", c.Hook.TimeoutSeconds)
	}

	// Validate output format
	validFormats := map[string]bool{
		"text": true,
		"json": true,
		"yaml": true,
	}

	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output.format '%s', must be one of: text, json, yaml", c.Output.Format)
	}

	if c.Output.MaxWarningsShown < 0 {
		return fmt.Errorf("output.maxWarningsShown must be >= 0, got %d", c.Output.MaxWarningsShown)
	}

	// Validate include patterns (at least one must be specified)
	if len(c.Analysis.IncludePatterns) == 0 {
		return fmt.Errorf("analysis.include cannot be empty")
	}

	return nil
}

// CacheDir resolves the effective cache directory.
// Precedence: config value, EDITGUARD_CACHE_DIR, XDG cache dir, ~/.cache.
func (c *CacheConfig) CacheDir() string {
	if c.Directory != "" {
		return c.Directory
	}
	if envDir := os.Getenv("EDITGUARD_CACHE_DIR"); envDir != "" {
		return envDir
	}
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return filepath.Join(xdgCache, "editguard")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".cache", "editguard")
	}
	return filepath.Join(os.TempDir(), "editguard-cache")
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(config *Config, path string) error {
	// Create a new viper instance to avoid race conditions
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set all config values in viper
	v.Set("security", config.Security)
	v.Set("quality", config.Quality)
	v.Set("accessibility", config.Accessibility)
	v.Set("advanced", config.Advanced)
	v.Set("cache", config.Cache)
	v.Set("hook", config.Hook)
	v.Set("output", config.Output)
	v.Set("analysis", config.Analysis)

	return v.WriteConfig()
}
