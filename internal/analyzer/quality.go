package analyzer

import (
	"fmt"
	"regexp"

	"github.com/editguard/editguard/domain"
	"github.com/editguard/editguard/internal/config"
	"github.com/editguard/editguard/internal/constants"
	"github.com/editguard/editguard/internal/eligibility"
	"go.uber.org/zap"
)

// QualityEngine checks React component hygiene (typed props, hook
// dependency arrays, iteration keys, component size) and structural
// metrics (file length, approximate complexity, nesting depth). The
// React sub-scans only run for component files; the structural metrics
// apply to every eligible source file.
type QualityEngine struct {
	cfg    *config.QualityConfig
	logger *zap.Logger
}

var _ domain.Engine = (*QualityEngine)(nil)

// NewQualityEngine creates a quality engine bound to its config section
func NewQualityEngine(cfg *config.QualityConfig, logger *zap.Logger) *QualityEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QualityEngine{cfg: cfg, logger: logger}
}

func (e *QualityEngine) Name() domain.CheckKind {
	return domain.CheckQuality
}

func (e *QualityEngine) Analyze(filePath, content string) []domain.Issue {
	lines := splitLines(content)

	var issues []domain.Issue
	if eligibility.IsComponentFile(filePath) {
		issues = append(issues, guard(e.logger, "untyped-props", func() []domain.Issue {
			return runRules(domain.CheckQuality, untypedPropsRules, lines)
		})...)
		issues = append(issues, guard(e.logger, "hook-deps", func() []domain.Issue {
			return e.scanHookDeps(lines)
		})...)
		issues = append(issues, guard(e.logger, "list-keys", func() []domain.Issue {
			return e.scanMissingKeys(lines)
		})...)
		issues = append(issues, guard(e.logger, "component-size", func() []domain.Issue {
			return e.scanComponentSize(lines)
		})...)
	}
	issues = append(issues, guard(e.logger, "file-length", func() []domain.Issue {
		return e.scanFileLength(lines)
	})...)
	issues = append(issues, guard(e.logger, "complexity", func() []domain.Issue {
		return e.scanComplexity(lines)
	})...)
	issues = append(issues, guard(e.logger, "nesting", func() []domain.Issue {
		return e.scanNestingDepth(lines)
	})...)
	return issues
}

var untypedPropsRules = []rule{
	{
		re:         regexp.MustCompile(`\bprops\s*:\s*any\b`),
		category:   "untyped-props",
		severity:   domain.SeverityError,
		message:    "Component props typed as any",
		suggestion: "Declare a props interface instead of any",
		suppress:   isCommentLine,
	},
	{
		re:         regexp.MustCompile(`React\.FC<any>`),
		category:   "untyped-props",
		severity:   domain.SeverityError,
		message:    "React.FC<any> erases the component's prop types",
		suggestion: "Parameterize React.FC with a props interface",
		suppress:   isCommentLine,
	},
	{
		re:         regexp.MustCompile(`\bfunction\s+[A-Z][A-Za-z0-9]*\s*\(\s*props\s*\)`),
		category:   "untyped-props",
		severity:   domain.SeverityError,
		message:    "Component takes untyped props",
		suggestion: "Annotate the props parameter with an interface",
		suppress:   isCommentLine,
	},
}

var (
	hookCallRe = regexp.MustCompile(`\buse(Effect|LayoutEffect|Callback|Memo)\s*\(`)

	// "}, [" or "), [" closes a hook body and opens its dependency array
	depArrayRe = regexp.MustCompile(`[)}]\s*,\s*\[`)

	// dependency array whose first entries include an inline object or
	// array literal
	literalDepRe = regexp.MustCompile(`[)}]\s*,\s*\[[^\]]*[{[]`)

	// "})" ending a line closes the hook call without a dependency array
	bareCloseRe = regexp.MustCompile(`\}\s*\)\s*;?\s*$`)
)

// scanHookDeps walks each hook call and resolves its dependency array
// within a bounded look-ahead window. An inline literal in the array is
// referentially unstable (new identity every render); a useEffect that
// closes without any array re-runs on every render.
func (e *QualityEngine) scanHookDeps(lines []string) []domain.Issue {
	var issues []domain.Issue
	for i, line := range lines {
		m := hookCallRe.FindStringSubmatch(line)
		if m == nil || isCommentLine(line) {
			continue
		}
		hook := "use" + m[1]

		for j := i; j < len(lines) && j <= i+constants.ContextWindowLines; j++ {
			if literalDepRe.MatchString(lines[j]) {
				issues = append(issues, domain.Issue{
					Check:      domain.CheckQuality,
					Category:   "unstable-dependency",
					Severity:   domain.SeverityError,
					Line:       j + 1,
					Message:    fmt.Sprintf("Inline object or array literal in %s dependency array re-creates every render", hook),
					Suggestion: "Hoist the literal out of the component or memoize it",
				})
				break
			}
			if depArrayRe.MatchString(lines[j]) {
				break
			}
			if bareCloseRe.MatchString(lines[j]) {
				if hook == "useEffect" || hook == "useLayoutEffect" {
					issues = append(issues, domain.Issue{
						Check:      domain.CheckQuality,
						Category:   "missing-deps",
						Severity:   domain.SeverityWarning,
						Line:       i + 1,
						Message:    hook + " has no dependency array and re-runs after every render",
						Suggestion: "Add a dependency array, [] if the effect should run once",
					})
				}
				break
			}
		}
	}
	return issues
}

var (
	mapCallRe = regexp.MustCompile(`\.map\s*\(`)
	jsxOpenRe = regexp.MustCompile(`<[A-Za-z]`)
	keyAttrRe = regexp.MustCompile(`\bkey\s*=`)
)

// scanMissingKeys flags .map() callbacks that return JSX without a key
// prop within the tag window
func (e *QualityEngine) scanMissingKeys(lines []string) []domain.Issue {
	var issues []domain.Issue
	for i, line := range lines {
		if !mapCallRe.MatchString(line) || isCommentLine(line) {
			continue
		}
		win := window(lines, i, 1+constants.TagWindowLines)
		if jsxOpenRe.MatchString(win) && !keyAttrRe.MatchString(win) {
			issues = append(issues, domain.Issue{
				Check:      domain.CheckQuality,
				Category:   "missing-key",
				Severity:   domain.SeverityError,
				Line:       i + 1,
				Message:    "JSX returned from .map() without a key prop",
				Suggestion: "Add a stable key prop to the outermost rendered element",
			})
		}
	}
	return issues
}

var componentStartRe = regexp.MustCompile(`^(?:export\s+)?(?:default\s+)?(?:async\s+)?(?:function\s+([A-Z][A-Za-z0-9]*)|const\s+([A-Z][A-Za-z0-9]*)\s*(?::[^=]*)?=)`)

// scanComponentSize measures each component body by brace tracking from
// its declaration line and flags bodies over the configured limit
func (e *QualityEngine) scanComponentSize(lines []string) []domain.Issue {
	if e.cfg.MaxComponentLines <= 0 {
		return nil
	}
	var issues []domain.Issue
	for i, line := range lines {
		m := componentStartRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := m[1]
		if name == "" {
			name = m[2]
		}

		end := braceSpanEnd(lines, i)
		length := end - i + 1
		if length > e.cfg.MaxComponentLines {
			issues = append(issues, domain.Issue{
				Check:      domain.CheckQuality,
				Category:   "large-component",
				Severity:   domain.SeverityWarning,
				Line:       i + 1,
				Message:    fmt.Sprintf("Component %s spans %d lines (limit %d)", name, length, e.cfg.MaxComponentLines),
				Suggestion: "Extract sub-components or custom hooks, and memoize pure children",
			})
		}
	}
	return issues
}

// braceSpanEnd returns the 0-based index of the line on which the brace
// block opened at or after start closes. Unbalanced input runs to EOF.
func braceSpanEnd(lines []string, start int) int {
	depth := 0
	opened := false
	for j := start; j < len(lines); j++ {
		for _, ch := range lines[j] {
			switch ch {
			case '{':
				depth++
				opened = true
			case '}':
				depth--
			}
		}
		if opened && depth <= 0 {
			return j
		}
	}
	return len(lines) - 1
}

func (e *QualityEngine) scanFileLength(lines []string) []domain.Issue {
	if e.cfg.MaxFileLines <= 0 {
		return nil
	}
	count := lineCount(lines)
	if count <= e.cfg.MaxFileLines {
		return nil
	}
	return []domain.Issue{{
		Check:      domain.CheckQuality,
		Category:   "file-length",
		Severity:   domain.SeverityWarning,
		Line:       1,
		Message:    fmt.Sprintf("File is %d lines (limit %d)", count, e.cfg.MaxFileLines),
		Suggestion: "Split the file along responsibility boundaries",
	}}
}

// lineCount ignores a trailing empty element produced by a final newline
func lineCount(lines []string) int {
	count := len(lines)
	if count > 0 && lines[count-1] == "" {
		count--
	}
	return count
}

var branchTokenRe = regexp.MustCompile(`\b(?:if|for|while|case|catch)\b|&&|\|\||\?\?`)

// scanComplexity approximates cyclomatic complexity by counting branch
// keywords and short-circuit operators across the file
func (e *QualityEngine) scanComplexity(lines []string) []domain.Issue {
	if e.cfg.MaxComplexity <= 0 {
		return nil
	}
	total := 0
	for _, line := range lines {
		if isCommentLine(line) {
			continue
		}
		total += len(branchTokenRe.FindAllString(line, -1))
	}
	if total <= e.cfg.MaxComplexity {
		return nil
	}
	return []domain.Issue{{
		Check:      domain.CheckQuality,
		Category:   "high-complexity",
		Severity:   domain.SeverityWarning,
		Line:       1,
		Message:    fmt.Sprintf("File has %d branch points (limit %d)", total, e.cfg.MaxComplexity),
		Suggestion: "Extract decision-heavy logic into smaller functions",
	}}
}

// scanNestingDepth tracks brace depth line by line and flags the
// deepest line when it exceeds the configured limit
func (e *QualityEngine) scanNestingDepth(lines []string) []domain.Issue {
	if e.cfg.MaxNestingDepth <= 0 {
		return nil
	}
	depth := 0
	maxDepth := 0
	maxLine := 1
	for i, line := range lines {
		for _, ch := range line {
			switch ch {
			case '{':
				depth++
				if depth > maxDepth {
					maxDepth = depth
					maxLine = i + 1
				}
			case '}':
				if depth > 0 {
					depth--
				}
			}
		}
	}
	if maxDepth <= e.cfg.MaxNestingDepth {
		return nil
	}
	return []domain.Issue{{
		Check:      domain.CheckQuality,
		Category:   "deep-nesting",
		Severity:   domain.SeverityWarning,
		Line:       maxLine,
		Message:    fmt.Sprintf("Nesting reaches depth %d (limit %d)", maxDepth, e.cfg.MaxNestingDepth),
		Suggestion: "Flatten with early returns or extracted helpers",
	}}
}
