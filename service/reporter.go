package service

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/editguard/editguard/domain"
	"github.com/editguard/editguard/internal/config"
)

// Reporter renders gate results as terminal text for the hook. Blocking
// issues are always printed in full; warnings are truncated past the
// configured limit and info findings are reduced to a count.
type Reporter struct {
	blockHeader *color.Color
	warnHeader  *color.Color
	passHeader  *color.Color
	label       *color.Color
	dim         *color.Color
	showDetails bool
	maxWarnings int
}

// NewReporter creates a reporter honoring the output configuration
func NewReporter(cfg *config.OutputConfig) *Reporter {
	r := &Reporter{
		blockHeader: color.New(color.FgRed, color.Bold),
		warnHeader:  color.New(color.FgYellow, color.Bold),
		passHeader:  color.New(color.FgGreen, color.Bold),
		label:       color.New(color.FgCyan),
		dim:         color.New(color.Faint),
		showDetails: cfg.ShowDetails,
		maxWarnings: cfg.MaxWarningsShown,
	}
	if !cfg.Colorize {
		for _, c := range []*color.Color{r.blockHeader, r.warnHeader, r.passHeader, r.label, r.dim} {
			c.DisableColor()
		}
	}
	return r
}

// Render formats a gate result as a terminal report. Skipped files and
// clean passes render as an empty string so a quiet edit stays quiet.
func (r *Reporter) Render(result *domain.GateResult) string {
	if result.Skipped || result.Partition.Total() == 0 {
		return ""
	}

	var sb strings.Builder
	p := &result.Partition

	switch {
	case !result.Passed:
		r.blockHeader.Fprintf(&sb, "❌ editguard blocked this edit\n")
	case len(p.Warnings) > 0:
		r.warnHeader.Fprintf(&sb, "⚠️  editguard passed with warnings\n")
	default:
		r.passHeader.Fprintf(&sb, "✓ editguard passed\n")
	}
	fmt.Fprintf(&sb, "%s\n\n", result.FilePath)

	for _, issue := range p.Blocking {
		r.writeIssue(&sb, "❌", issue)
	}

	shown := len(p.Warnings)
	if shown > r.maxWarnings {
		shown = r.maxWarnings
	}
	for _, issue := range p.Warnings[:shown] {
		r.writeIssue(&sb, "⚠️ ", issue)
	}
	if hidden := len(p.Warnings) - shown; hidden > 0 {
		r.dim.Fprintf(&sb, "  +%d more warning%s\n", hidden, plural(hidden))
	}

	if n := len(p.Info); n > 0 {
		r.dim.Fprintf(&sb, "  ℹ️  %d informational finding%s\n", n, plural(n))
	}

	sb.WriteString("\n")
	sb.WriteString(r.summaryLine(result))
	sb.WriteString("\n")
	return sb.String()
}

// Write renders the result and writes it to w
func (r *Reporter) Write(w io.Writer, result *domain.GateResult) error {
	report := r.Render(result)
	if report == "" {
		return nil
	}
	if _, err := io.WriteString(w, report); err != nil {
		return domain.NewOutputError("failed to write report", err)
	}
	return nil
}

// writeIssue renders a single finding with its gate symbol
func (r *Reporter) writeIssue(sb *strings.Builder, symbol string, issue domain.Issue) {
	sb.WriteString("  " + symbol + " ")
	r.label.Fprintf(sb, "[%s/%s]", issue.Check, issue.Category)
	if issue.Line > 0 {
		fmt.Fprintf(sb, " line %d", issue.Line)
	}
	fmt.Fprintf(sb, ": %s\n", issue.Message)
	if r.showDetails && issue.Suggestion != "" {
		r.dim.Fprintf(sb, "     ↳ %s\n", issue.Suggestion)
	}
}

// summaryLine condenses the run statistics into one trailing line
func (r *Reporter) summaryLine(result *domain.GateResult) string {
	s := result.Summary

	var parts []string
	if s.BlockingIssues > 0 {
		parts = append(parts, fmt.Sprintf("%d blocking", s.BlockingIssues))
	}
	if s.WarningIssues > 0 {
		parts = append(parts, fmt.Sprintf("%d warning%s", s.WarningIssues, plural(s.WarningIssues)))
	}
	if s.InfoIssues > 0 {
		parts = append(parts, fmt.Sprintf("%d info", s.InfoIssues))
	}

	checks := fmt.Sprintf("%d check%s in %dms", s.ChecksRun, plural(s.ChecksRun), result.Duration)
	if s.CacheHits > 0 {
		checks += fmt.Sprintf(", %d cached", s.CacheHits)
	}
	return fmt.Sprintf("%s (%s)", strings.Join(parts, ", "), checks)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
