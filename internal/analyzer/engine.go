// Package analyzer implements the four line-oriented check engines:
// security, quality, accessibility, and advanced safety. Every engine
// shares the same contract: split content into lines, apply declarative
// rule tables per line, and look at most a bounded window ahead or
// behind to resolve multi-line constructs. No AST is built; the engines
// trade precision for millisecond runtimes.
package analyzer

import (
	"regexp"
	"strings"

	"github.com/editguard/editguard/domain"
	"github.com/editguard/editguard/internal/config"
	"go.uber.org/zap"
)

// Engines returns the four check engines in canonical order, each bound
// to its section of the configuration
func Engines(cfg *config.Config, logger *zap.Logger) []domain.Engine {
	return []domain.Engine{
		NewSecurityEngine(&cfg.Security, logger),
		NewQualityEngine(&cfg.Quality, logger),
		NewAccessibilityEngine(&cfg.Accessibility, logger),
		NewAdvancedEngine(&cfg.Advanced, logger),
	}
}

// rule is one declarative pattern entry. Engines iterate rule tables
// generically so adding a detection is a table entry, not new control
// flow.
type rule struct {
	re         *regexp.Regexp
	category   string
	severity   domain.Severity
	message    string
	suggestion string
	dimension  domain.Dimension
	suppress   func(line string) bool
}

// runRules applies a rule table line by line and collects one issue per
// matching rule per line.
func runRules(check domain.CheckKind, rules []rule, lines []string) []domain.Issue {
	var issues []domain.Issue
	for i, line := range lines {
		for _, r := range rules {
			if !r.re.MatchString(line) {
				continue
			}
			if r.suppress != nil && r.suppress(line) {
				continue
			}
			issues = append(issues, domain.Issue{
				Check:      check,
				Category:   r.category,
				Severity:   r.severity,
				Line:       i + 1,
				Message:    r.message,
				Suggestion: r.suggestion,
				Dimension:  r.dimension,
			})
		}
	}
	return issues
}

// runRulesFirstMatch is runRules with at most one issue per line, used
// for tables whose rules overlap (a secret that matches two key formats
// is still one secret).
func runRulesFirstMatch(check domain.CheckKind, rules []rule, lines []string) []domain.Issue {
	var issues []domain.Issue
	for i, line := range lines {
		for _, r := range rules {
			if !r.re.MatchString(line) {
				continue
			}
			if r.suppress != nil && r.suppress(line) {
				continue
			}
			issues = append(issues, domain.Issue{
				Check:      check,
				Category:   r.category,
				Severity:   r.severity,
				Line:       i + 1,
				Message:    r.message,
				Suggestion: r.suggestion,
				Dimension:  r.dimension,
			})
			break
		}
	}
	return issues
}

// guard runs one sub-scan under a recover barrier. A panicking sub-scan
// contributes zero issues while the engine's other sub-scans still
// report.
func guard(logger *zap.Logger, scanName string, scan func() []domain.Issue) (issues []domain.Issue) {
	defer func() {
		if r := recover(); r != nil {
			if logger != nil {
				logger.Debug("sub-scan recovered from panic",
					zap.String("scan", scanName),
					zap.Any("panic", r))
			}
			issues = nil
		}
	}()
	return scan()
}

// splitLines splits content preserving 1-based line addressing
// (lines[i] is line i+1)
func splitLines(content string) []string {
	return strings.Split(content, "\n")
}

// window joins lines[start:start+n] into one searchable string. start
// is a 0-based index; out-of-range portions are clipped.
func window(lines []string, start, n int) string {
	if start < 0 {
		start = 0
	}
	if start >= len(lines) {
		return ""
	}
	end := start + n
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[start:end], "\n")
}

// windowBefore joins the n lines preceding the 0-based index end,
// inclusive of end itself
func windowBefore(lines []string, end, n int) string {
	start := end - n
	if start < 0 {
		start = 0
	}
	return window(lines, start, end-start+1)
}

// isCommentLine reports whether the line is (the start of) a comment
func isCommentLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "//") ||
		strings.HasPrefix(trimmed, "/*") ||
		strings.HasPrefix(trimmed, "*") ||
		strings.HasPrefix(trimmed, "#")
}

// placeholderWords suppress findings on lines that are clearly
// illustrative rather than live values
var placeholderWords = []string{
	"example",
	"placeholder",
	"dummy",
	"sample",
	"your_",
	"your-",
	"xxx",
	"changeme",
}

// looksLikePlaceholder reports whether the line reads as documentation
// or a fill-in template rather than a real value
func looksLikePlaceholder(line string) bool {
	lower := strings.ToLower(line)
	for _, word := range placeholderWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}
