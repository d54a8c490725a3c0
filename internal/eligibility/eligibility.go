// Package eligibility decides which checks apply to a file path.
// Every function is a pure predicate over the path string; no file
// I/O happens here, so decisions are deterministic and cheap enough
// to recompute wherever they are needed.
package eligibility

import (
	"path/filepath"
	"strings"

	"github.com/editguard/editguard/domain"
)

// skipFragments are path segments that exclude a file from all checks
var skipFragments = []string{
	"/node_modules/",
	"/dist/",
	"/build/",
	"/out/",
	"/.next/",
	"/.nuxt/",
	"/coverage/",
	"/vendor/",
	"/__generated__/",
	"/.git/",
}

// skipSuffixes are file endings that exclude a file from all checks
var skipSuffixes = []string{
	".min.js",
	".min.mjs",
	".min.cjs",
	".bundle.js",
	".map",
	".d.ts",
}

// jsExtensions are the JavaScript/TypeScript file extensions we analyze
var jsExtensions = map[string]bool{
	".js":  true,
	".jsx": true,
	".ts":  true,
	".tsx": true,
	".mjs": true,
	".cjs": true,
	".mts": true,
	".cts": true,
}

// configBasenames are exact config file names not covered by *.config.*
var configBasenames = map[string]bool{
	".eslintrc.js":   true,
	".eslintrc.cjs":  true,
	".prettierrc.js": true,
	".babelrc.js":    true,
}

// ShouldSkip reports whether the path is excluded from all checks
// (generated output, dependencies, minified bundles, declarations)
func ShouldSkip(path string) bool {
	slashed := "/" + filepath.ToSlash(path) + "/"
	for _, fragment := range skipFragments {
		if strings.Contains(slashed, fragment) {
			return true
		}
	}

	lower := strings.ToLower(filepath.ToSlash(path))
	for _, suffix := range skipSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}

	return false
}

// Decide returns the per-check eligibility flags for a file path.
// Skipped and non-JS files get the zero value (no checks apply).
func Decide(path string) domain.Eligibility {
	if ShouldSkip(path) || !IsJSFile(path) {
		return domain.Eligibility{}
	}

	isTest := IsTestFile(path)
	isConfig := IsConfigFile(path)
	isJSX := IsJSXFile(path)

	return domain.Eligibility{
		// Security covers everything, tests and config included: a leaked
		// key in a test fixture is still a leaked key.
		Security: true,

		Quality:       !isTest && !isConfig,
		Accessibility: isJSX && !isTest && !isConfig,
		ReactQuality:  isJSX && !isTest && !isConfig && IsComponentFile(path),
		Advanced:      !isTest && !isConfig,
	}
}

// IsJSFile reports whether the path has a JavaScript/TypeScript extension
func IsJSFile(path string) bool {
	return jsExtensions[strings.ToLower(filepath.Ext(path))]
}

// IsJSXFile reports whether the path can contain JSX markup
func IsJSXFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".jsx" || ext == ".tsx"
}

// IsTestFile reports whether the path looks like a test or mock file
func IsTestFile(path string) bool {
	slashed := "/" + filepath.ToSlash(path) + "/"
	if strings.Contains(slashed, "/__tests__/") || strings.Contains(slashed, "/__mocks__/") {
		return true
	}

	base := strings.ToLower(filepath.Base(path))
	return strings.Contains(base, ".test.") ||
		strings.Contains(base, ".spec.") ||
		strings.Contains(base, "_test.")
}

// IsConfigFile reports whether the path looks like build or tool configuration
func IsConfigFile(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	if configBasenames[base] {
		return true
	}

	// vite.config.ts, jest.config.js, next.config.mjs, ...
	if strings.Contains(base, ".config.") {
		return true
	}

	slashed := "/" + filepath.ToSlash(path) + "/"
	return strings.Contains(slashed, "/config/")
}

// IsComponentFile reports whether a JSX/TSX path looks like a React
// component: a capitalized basename or a components directory segment.
func IsComponentFile(path string) bool {
	if !IsJSXFile(path) {
		return false
	}

	slashed := "/" + filepath.ToSlash(path) + "/"
	if strings.Contains(slashed, "/components/") {
		return true
	}

	base := filepath.Base(path)
	if base == "" {
		return false
	}
	first := base[0]
	return first >= 'A' && first <= 'Z'
}
