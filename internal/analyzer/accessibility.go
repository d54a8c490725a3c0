package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/editguard/editguard/domain"
	"github.com/editguard/editguard/internal/config"
	"github.com/editguard/editguard/internal/constants"
	"go.uber.org/zap"
)

// AccessibilityEngine checks JSX markup for common accessibility
// defects: images without alt text, unnamed icon buttons, unlabeled
// inputs, mouse-only interaction, autoplaying media, and vague link
// text. When an external linter is configured and present it runs too,
// and its findings are merged with the manual heuristics; when it is
// missing or fails, the engine degrades to heuristics only.
type AccessibilityEngine struct {
	cfg    *config.AccessibilityConfig
	logger *zap.Logger
}

var _ domain.Engine = (*AccessibilityEngine)(nil)

// NewAccessibilityEngine creates an accessibility engine bound to its
// config section
func NewAccessibilityEngine(cfg *config.AccessibilityConfig, logger *zap.Logger) *AccessibilityEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccessibilityEngine{cfg: cfg, logger: logger}
}

func (e *AccessibilityEngine) Name() domain.CheckKind {
	return domain.CheckAccessibility
}

func (e *AccessibilityEngine) Analyze(filePath, content string) []domain.Issue {
	lines := splitLines(content)

	var issues []domain.Issue
	issues = append(issues, guard(e.logger, "img-alt", func() []domain.Issue {
		return scanImgAlt(lines)
	})...)
	issues = append(issues, guard(e.logger, "icon-buttons", func() []domain.Issue {
		return scanIconButtons(lines)
	})...)
	issues = append(issues, guard(e.logger, "input-labels", func() []domain.Issue {
		return scanInputLabels(lines)
	})...)
	issues = append(issues, guard(e.logger, "click-handlers", func() []domain.Issue {
		return scanClickHandlers(lines)
	})...)
	issues = append(issues, guard(e.logger, "autoplay", func() []domain.Issue {
		return scanAutoplay(lines)
	})...)
	issues = append(issues, guard(e.logger, "vague-links", func() []domain.Issue {
		return scanVagueLinks(lines)
	})...)

	if e.cfg.LinterCommand != "" {
		issues = mergeByLineCategory(issues, e.runLinter(filePath))
	}
	return issues
}

// tagWindow returns the tag window starting at the 0-based line index:
// the line itself plus the bounded look-ahead, enough for a multi-line
// JSX tag.
func tagWindow(lines []string, i int) string {
	return window(lines, i, 1+constants.TagWindowLines)
}

var (
	imgTagRe     = regexp.MustCompile(`<img\b`)
	altAttrRe    = regexp.MustCompile(`\balt\s*=`)
	spreadAttrRe = regexp.MustCompile(`\{\s*\.\.\.`)
)

func scanImgAlt(lines []string) []domain.Issue {
	var issues []domain.Issue
	for i, line := range lines {
		if !imgTagRe.MatchString(line) || isCommentLine(line) {
			continue
		}
		win := tagWindow(lines, i)
		// A props spread may carry alt; give it the benefit of the doubt
		if altAttrRe.MatchString(win) || spreadAttrRe.MatchString(win) {
			continue
		}
		issues = append(issues, domain.Issue{
			Check:      domain.CheckAccessibility,
			Category:   "missing-alt",
			Severity:   domain.SeverityError,
			Line:       i + 1,
			Message:    "Image without alt text",
			Suggestion: `Describe the image, or use alt="" if it is decorative`,
		})
	}
	return issues
}

var (
	buttonTagRe   = regexp.MustCompile(`<(?:button|IconButton)\b`)
	iconContentRe = regexp.MustCompile(`<svg\b|<[A-Z][A-Za-z]*Icon\b|<Icon\b`)
	ariaNameRe    = regexp.MustCompile(`\baria-label(?:ledby)?\s*=|\btitle\s*=`)
)

func scanIconButtons(lines []string) []domain.Issue {
	var issues []domain.Issue
	for i, line := range lines {
		if !buttonTagRe.MatchString(line) || isCommentLine(line) {
			continue
		}
		win := tagWindow(lines, i)
		if !iconContentRe.MatchString(win) || ariaNameRe.MatchString(win) {
			continue
		}
		issues = append(issues, domain.Issue{
			Check:      domain.CheckAccessibility,
			Category:   "icon-button-name",
			Severity:   domain.SeverityError,
			Line:       i + 1,
			Message:    "Icon-only button has no accessible name",
			Suggestion: "Add an aria-label describing the action",
		})
	}
	return issues
}

var (
	inputTagRe     = regexp.MustCompile(`<input\b`)
	nonTextInputRe = regexp.MustCompile(`type\s*=\s*["'](?:hidden|submit|button|reset)["']`)
	labelTieRe     = regexp.MustCompile(`\bid\s*=|\baria-label(?:ledby)?\s*=`)
)

func scanInputLabels(lines []string) []domain.Issue {
	var issues []domain.Issue
	for i, line := range lines {
		if !inputTagRe.MatchString(line) || isCommentLine(line) {
			continue
		}
		win := tagWindow(lines, i)
		if nonTextInputRe.MatchString(win) || labelTieRe.MatchString(win) || spreadAttrRe.MatchString(win) {
			continue
		}
		issues = append(issues, domain.Issue{
			Check:      domain.CheckAccessibility,
			Category:   "missing-label",
			Severity:   domain.SeverityError,
			Line:       i + 1,
			Message:    "Form input has no associated label",
			Suggestion: "Add an id referenced by a <label htmlFor>, or an aria-label",
		})
	}
	return issues
}

var (
	staticElementRe = regexp.MustCompile(`<(?:div|span|li|p|section|article|tr|td)\b`)
	clickAttrRe     = regexp.MustCompile(`\bonClick\s*=`)
	keyboardAttrRe  = regexp.MustCompile(`\bonKey(?:Down|Press|Up)\s*=|\brole\s*=`)
)

func scanClickHandlers(lines []string) []domain.Issue {
	var issues []domain.Issue
	for i, line := range lines {
		if !staticElementRe.MatchString(line) || isCommentLine(line) {
			continue
		}
		win := tagWindow(lines, i)
		if !clickAttrRe.MatchString(win) || keyboardAttrRe.MatchString(win) {
			continue
		}
		issues = append(issues, domain.Issue{
			Check:      domain.CheckAccessibility,
			Category:   "click-without-keyboard",
			Severity:   domain.SeverityWarning,
			Line:       i + 1,
			Message:    "Click handler on a non-interactive element without keyboard support",
			Suggestion: `Add onKeyDown and role="button", or use a real <button>`,
		})
	}
	return issues
}

var (
	autoplayAttrRe = regexp.MustCompile(`\bauto[Pp]lay\b`)
	mutedAttrRe    = regexp.MustCompile(`\bmuted\b`)
)

func scanAutoplay(lines []string) []domain.Issue {
	var issues []domain.Issue
	for i, line := range lines {
		if !autoplayAttrRe.MatchString(line) || isCommentLine(line) {
			continue
		}
		if mutedAttrRe.MatchString(tagWindow(lines, i)) {
			continue
		}
		issues = append(issues, domain.Issue{
			Check:      domain.CheckAccessibility,
			Category:   "autoplay-media",
			Severity:   domain.SeverityWarning,
			Line:       i + 1,
			Message:    "Media autoplays with sound",
			Suggestion: "Add muted, or let the user start playback",
		})
	}
	return issues
}

var (
	linkTagRe   = regexp.MustCompile(`<(?:a|Link)\b`)
	vagueTextRe = regexp.MustCompile(`(?i)>\s*(?:click here|here|read more|learn more|more)\s*<`)
)

func scanVagueLinks(lines []string) []domain.Issue {
	var issues []domain.Issue
	for i, line := range lines {
		if !linkTagRe.MatchString(line) || isCommentLine(line) {
			continue
		}
		if !vagueTextRe.MatchString(tagWindow(lines, i)) {
			continue
		}
		issues = append(issues, domain.Issue{
			Check:      domain.CheckAccessibility,
			Category:   "vague-link",
			Severity:   domain.SeverityWarning,
			Line:       i + 1,
			Message:    "Link text does not describe its destination",
			Suggestion: "Name the destination in the link text",
		})
	}
	return issues
}

// linterFile and linterMessage mirror the ESLint JSON output format
type linterFile struct {
	FilePath string          `json:"filePath"`
	Messages []linterMessage `json:"messages"`
}

type linterMessage struct {
	RuleID   string `json:"ruleId"`
	Severity int    `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line"`
}

// runLinter shells out to the configured accessibility linter and
// translates its JSON findings. Every failure path returns nil after a
// debug log; the plugin is optional tooling and must never break the
// gate.
func (e *AccessibilityEngine) runLinter(filePath string) []domain.Issue {
	bin, err := exec.LookPath(e.cfg.LinterCommand)
	if err != nil {
		e.logger.Debug("accessibility linter not on PATH",
			zap.String("command", e.cfg.LinterCommand))
		return nil
	}

	timeout := time.Duration(e.cfg.LinterTimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	args := append(append([]string{}, e.cfg.LinterArgs...), filePath)
	out, err := exec.CommandContext(ctx, bin, args...).Output()
	// Linters exit non-zero when they find problems; only an empty
	// stdout means the run itself failed.
	if len(out) == 0 {
		if err != nil {
			e.logger.Debug("accessibility linter failed",
				zap.String("command", bin),
				zap.Error(err))
		}
		return nil
	}

	issues, err := parseLinterOutput(out)
	if err != nil {
		e.logger.Debug("accessibility linter output unparsable",
			zap.String("command", bin),
			zap.Error(err))
		return nil
	}
	return issues
}

func parseLinterOutput(data []byte) ([]domain.Issue, error) {
	var files []linterFile
	if err := json.Unmarshal(data, &files); err != nil {
		return nil, fmt.Errorf("decode linter output: %w", err)
	}

	var issues []domain.Issue
	for _, f := range files {
		for _, msg := range f.Messages {
			severity := domain.SeverityWarning
			if msg.Severity >= 2 {
				severity = domain.SeverityError
			}
			issues = append(issues, domain.Issue{
				Check:    domain.CheckAccessibility,
				Category: categoryForLintRule(msg.RuleID),
				Severity: severity,
				Line:     msg.Line,
				Message:  msg.Message,
			})
		}
	}
	return issues, nil
}

// lintRuleCategories maps well-known jsx-a11y rule IDs onto the
// categories the manual scans emit so duplicates collapse in the merge
var lintRuleCategories = map[string]string{
	"alt-text":                       "missing-alt",
	"img-redundant-alt":              "missing-alt",
	"label-has-associated-control":   "missing-label",
	"label-has-for":                  "missing-label",
	"click-events-have-key-events":   "click-without-keyboard",
	"no-static-element-interactions": "click-without-keyboard",
	"media-has-caption":              "autoplay-media",
	"anchor-ambiguous-text":          "vague-link",
	"anchor-is-valid":                "vague-link",
}

func categoryForLintRule(ruleID string) string {
	id := strings.TrimPrefix(ruleID, "jsx-a11y/")
	if category, ok := lintRuleCategories[id]; ok {
		return category
	}
	if id == "" {
		return "linter"
	}
	return id
}

// mergeByLineCategory appends linter findings that do not collide with
// a manual finding on the same (line, category) pair
func mergeByLineCategory(manual, linted []domain.Issue) []domain.Issue {
	if len(linted) == 0 {
		return manual
	}
	seen := make(map[string]bool, len(manual))
	for _, issue := range manual {
		seen[fmt.Sprintf("%d:%s", issue.Line, issue.Category)] = true
	}
	merged := manual
	for _, issue := range linted {
		key := fmt.Sprintf("%d:%s", issue.Line, issue.Category)
		if seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, issue)
	}
	return merged
}
