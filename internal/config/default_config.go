package config

// Default quality thresholds
const (
	// DefaultMaxFileLines is the maximum file length before a warning
	DefaultMaxFileLines = 400

	// DefaultMaxComponentLines is the maximum component length before a warning
	DefaultMaxComponentLines = 150

	// DefaultMaxComplexity caps the approximate per-file branch count.
	// The count is keyword-based, so the ceiling is deliberately generous.
	DefaultMaxComplexity = 60

	// DefaultMaxNestingDepth caps brace nesting before a warning
	DefaultMaxNestingDepth = 5
)

// Default cache and hook settings
const (
	// DefaultCacheMaxAgeMinutes is how long a cached verdict stays valid
	DefaultCacheMaxAgeMinutes = 60

	// DefaultHookTimeoutSeconds bounds a single hook run
	DefaultHookTimeoutSeconds = 30

	// DefaultLinterTimeoutSeconds bounds an external a11y linter run
	DefaultLinterTimeoutSeconds = 10
)

// Default output settings
const (
	// DefaultMaxWarningsShown caps the warnings printed in full
	DefaultMaxWarningsShown = 5
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	config := &Config{
		Security: SecurityConfig{
			Enabled:        true,
			FailOnCritical: true,
			FailOnError:    true,
			FlagConsole:    true,
		},
		Quality: QualityConfig{
			Enabled:           true,
			FailOnViolations:  true,
			MaxFileLines:      DefaultMaxFileLines,
			MaxComponentLines: DefaultMaxComponentLines,
			MaxComplexity:     DefaultMaxComplexity,
			MaxNestingDepth:   DefaultMaxNestingDepth,
		},
		Accessibility: AccessibilityConfig{
			Enabled:              true,
			FailOnViolations:     true,
			LinterCommand:        "",
			LinterArgs:           []string{},
			LinterTimeoutSeconds: DefaultLinterTimeoutSeconds,
		},
		Advanced: AdvancedConfig{
			Enabled:            true,
			FailOnViolations:   true,
			CentralCacheModule: "",
		},
		Cache: CacheConfig{
			Enabled:       true,
			Directory:     "",
			MaxAgeMinutes: DefaultCacheMaxAgeMinutes,
		},
		Hook: HookConfig{
			TimeoutSeconds: DefaultHookTimeoutSeconds,
		},
		Output: OutputConfig{
			Format:           "text",
			ShowDetails:      true,
			MaxWarningsShown: DefaultMaxWarningsShown,
			Colorize:         true,
		},
		Analysis: AnalysisConfig{
			IncludePatterns: []string{
				"**/*.js", "**/*.ts", "**/*.jsx", "**/*.tsx",
				"**/*.mjs", "**/*.cjs", "**/*.mts", "**/*.cts",
			},
			ExcludePatterns: []string{
				// Package managers and dependencies
				"node_modules",
				"vendor",
				// Build outputs
				"dist",
				"build",
				"out",
				".output",
				// Framework-specific
				".next",
				".nuxt",
				".vercel",
				// Cache directories
				".cache",
				".turbo",
				"coverage",
				// Version control
				".git",
				// Generated code
				"__generated__",
				// Minified and bundled files
				"*.min.js",
				"*.min.mjs",
				"*.min.cjs",
				"*.bundle.js",
				// Source maps
				"*.map",
			},
			Recursive:      true,
			FollowSymlinks: false,
		},
	}

	return config
}
