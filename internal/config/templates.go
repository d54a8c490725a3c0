package config

import (
	"strconv"
)

// ProjectType represents the type of JavaScript/TypeScript project
type ProjectType string

const (
	ProjectTypeGeneric     ProjectType = "generic"
	ProjectTypeReact       ProjectType = "react"
	ProjectTypeNodeBackend ProjectType = "node"
)

// Strictness represents the gate strictness level
type Strictness string

const (
	StrictnessRelaxed  Strictness = "relaxed"
	StrictnessStandard Strictness = "standard"
	StrictnessStrict   Strictness = "strict"
)

// ProjectPreset holds configuration presets for different project types
type ProjectPreset struct {
	IncludePatterns      []string
	ExcludePatterns      []string
	AccessibilityEnabled bool
}

// StrictnessPreset holds threshold values for different strictness levels
type StrictnessPreset struct {
	MaxFileLines      int
	MaxComponentLines int
	MaxComplexity     int
	MaxNestingDepth   int
	FailOnViolations  bool
}

// GetProjectPresets returns presets for different project types
func GetProjectPresets() map[ProjectType]ProjectPreset {
	return map[ProjectType]ProjectPreset{
		ProjectTypeGeneric: {
			IncludePatterns: []string{
				"**/*.js",
				"**/*.ts",
				"**/*.jsx",
				"**/*.tsx",
			},
			ExcludePatterns: []string{
				"**/node_modules/**",
				"**/dist/**",
				"**/build/**",
				"**/*.min.js",
				"**/*.bundle.js",
			},
			AccessibilityEnabled: true,
		},
		ProjectTypeReact: {
			IncludePatterns: []string{
				"**/*.js",
				"**/*.ts",
				"**/*.jsx",
				"**/*.tsx",
			},
			ExcludePatterns: []string{
				"**/node_modules/**",
				"**/dist/**",
				"**/build/**",
				"**/.next/**",
				"**/coverage/**",
				"**/*.min.js",
				"**/*.bundle.js",
			},
			AccessibilityEnabled: true,
		},
		ProjectTypeNodeBackend: {
			IncludePatterns: []string{
				"**/*.js",
				"**/*.ts",
				"**/*.mjs",
				"**/*.cjs",
			},
			ExcludePatterns: []string{
				"**/node_modules/**",
				"**/dist/**",
				"**/build/**",
				"**/*.min.js",
				"**/*.bundle.js",
			},
			AccessibilityEnabled: false,
		},
	}
}

// GetStrictnessPresets returns presets for different strictness levels
func GetStrictnessPresets() map[Strictness]StrictnessPreset {
	return map[Strictness]StrictnessPreset{
		StrictnessRelaxed: {
			MaxFileLines:      600,
			MaxComponentLines: 250,
			MaxComplexity:     80,
			MaxNestingDepth:   6,
			FailOnViolations:  false,
		},
		StrictnessStandard: {
			MaxFileLines:      DefaultMaxFileLines,
			MaxComponentLines: DefaultMaxComponentLines,
			MaxComplexity:     DefaultMaxComplexity,
			MaxNestingDepth:   DefaultMaxNestingDepth,
			FailOnViolations:  true,
		},
		StrictnessStrict: {
			MaxFileLines:      300,
			MaxComponentLines: 100,
			MaxComplexity:     40,
			MaxNestingDepth:   4,
			FailOnViolations:  true,
		},
	}
}

// GetFullConfigTemplate returns the documented config template as JSONC
func GetFullConfigTemplate(projectType ProjectType, strictness Strictness) string {
	projectPresets := GetProjectPresets()
	strictnessPresets := GetStrictnessPresets()

	preset := projectPresets[projectType]
	strict := strictnessPresets[strictness]

	// Build include patterns string
	includePatterns := formatJSONArray(preset.IncludePatterns)
	excludePatterns := formatJSONArray(preset.ExcludePatterns)

	failOn := strconv.FormatBool(strict.FailOnViolations)
	a11yEnabled := strconv.FormatBool(preset.AccessibilityEnabled)

	return `{
  // editguard Configuration
  // Documentation: https://github.com/editguard/editguard

  // ============================================================================
  // SECURITY CHECK
  // ============================================================================
  // Detects hardcoded secrets, unsafe execution, and unsanitized HTML.
  // Runs on every JavaScript/TypeScript file, tests and config included.
  "security": {
    // Enable/disable the security check
    "enabled": true,

    // Block edits on critical findings (leaked secrets).
    // Turn off only for fail-open operation.
    "failOnCritical": true,

    // Block edits on error-level findings (eval, raw innerHTML)
    "failOnError": true,

    // Report console statements as info-level findings
    "flagConsole": true
  },

  // ============================================================================
  // QUALITY CHECK
  // ============================================================================
  // Typing hygiene, React hook dependencies, list keys, and structural metrics.
  // Skips test and config files.
  "quality": {
    // Enable/disable the quality check
    "enabled": true,

    // Block edits on error-level quality findings
    "failOnViolations": ` + failOn + `,

    // Maximum file length before a warning (0 = no limit)
    "maxFileLines": ` + strconv.Itoa(strict.MaxFileLines) + `,

    // Maximum component length before a warning (0 = no limit)
    "maxComponentLines": ` + strconv.Itoa(strict.MaxComponentLines) + `,

    // Approximate per-file branch count ceiling (0 = no limit)
    "maxComplexity": ` + strconv.Itoa(strict.MaxComplexity) + `,

    // Maximum brace nesting depth (0 = no limit)
    "maxNestingDepth": ` + strconv.Itoa(strict.MaxNestingDepth) + `
  },

  // ============================================================================
  // ACCESSIBILITY CHECK
  // ============================================================================
  // WCAG-oriented heuristics for JSX/TSX files: alt text, labels, keyboard
  // handlers, autoplay, vague link text.
  "accessibility": {
    // Enable/disable the accessibility check
    "enabled": ` + a11yEnabled + `,

    // Block edits on error-level accessibility findings
    "failOnViolations": ` + failOn + `,

    // Optional external a11y linter merged with the built-in heuristics.
    // Must emit ESLint-compatible JSON. Missing binaries are skipped silently.
    "linterCommand": "",
    "linterArgs": [],
    "linterTimeoutSeconds": 10
  },

  // ============================================================================
  // ADVANCED PATTERN CHECK
  // ============================================================================
  // Lifecycle leaks (missing cleanup), async race conditions, and
  // type-system escape hatches.
  "advanced": {
    // Enable/disable the advanced check
    "enabled": true,

    // Block edits on error-level advanced findings
    "failOnViolations": ` + failOn + `,

    // Name of your shared cache module. When set, ad hoc module-level
    // caches are flagged with a consolidation hint.
    "centralCacheModule": ""
  },

  // ============================================================================
  // VERDICT CACHE
  // ============================================================================
  // Caches per-file verdicts by content hash so unchanged files skip analysis.
  "cache": {
    "enabled": true,

    // Cache location (empty = XDG cache dir, e.g. ~/.cache/editguard)
    "directory": "",

    // How long a cached verdict stays valid
    "maxAgeMinutes": 60
  },

  // ============================================================================
  // HOOK SETTINGS
  // ============================================================================
  "hook": {
    // Upper bound for a single hook run
    "timeoutSeconds": 30
  },

  // ============================================================================
  // OUTPUT SETTINGS
  // ============================================================================
  "output": {
    // Scan output format: "text", "json", "yaml"
    "format": "text",

    // Show per-issue remediation suggestions
    "showDetails": true,

    // Warnings printed in full before truncating to a count
    "maxWarningsShown": 5,

    // Use colors in terminal output (disable for CI logs)
    "colorize": true
  },

  // ============================================================================
  // ANALYSIS SCOPE
  // ============================================================================
  // Controls which files the scan command visits
  "analysis": {
    // File patterns to include (glob patterns)
    "include": ` + includePatterns + `,

    // File patterns to exclude (glob patterns)
    "exclude": ` + excludePatterns + `
  }
}
`
}

// GetMinimalConfigTemplate returns a minimal config template
func GetMinimalConfigTemplate() string {
	return `{
  // editguard Configuration (minimal)
  // See full options: https://github.com/editguard/editguard

  "security": {
    "enabled": true,
    "failOnError": true
  },

  "quality": {
    "enabled": true,
    "maxFileLines": 400,
    "maxComponentLines": 150
  },

  "accessibility": {
    "enabled": true
  },

  "advanced": {
    "enabled": true
  },

  "cache": {
    "enabled": true,
    "maxAgeMinutes": 60
  }
}
`
}

// formatJSONArray formats a string slice as a JSON array with proper indentation
func formatJSONArray(items []string) string {
	if len(items) == 0 {
		return "[]"
	}

	result := "[\n"
	for i, item := range items {
		result += `      "` + item + `"`
		if i < len(items)-1 {
			result += ","
		}
		result += "\n"
	}
	result += "    ]"
	return result
}
