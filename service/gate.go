package service

import (
	"github.com/editguard/editguard/domain"
	"github.com/editguard/editguard/internal/config"
)

// blocks reports whether a single issue fails the gate under cfg.
// Severity alone does not decide: each check carries its own blocking
// switches, so a critical security finding passes when failOnCritical is
// off while an error-level quality finding blocks when failOnViolations
// is on.
func blocks(issue domain.Issue, cfg *config.Config) bool {
	switch issue.Check {
	case domain.CheckSecurity:
		if issue.Severity == domain.SeverityCritical {
			return cfg.Security.FailOnCritical
		}
		return issue.Severity == domain.SeverityError && cfg.Security.FailOnError
	case domain.CheckQuality:
		return cfg.Quality.FailOnViolations && issue.Severity.AtLeast(domain.SeverityError)
	case domain.CheckAccessibility:
		return cfg.Accessibility.FailOnViolations && issue.Severity.AtLeast(domain.SeverityError)
	case domain.CheckAdvanced:
		return cfg.Advanced.FailOnViolations && issue.Severity.AtLeast(domain.SeverityError)
	default:
		return false
	}
}

// Partition buckets issues by how the gate treats them under cfg.
// Non-blocking critical and error findings land in Warnings so they stay
// visible even when their check is advisory. Each bucket comes back in
// report order.
func Partition(issues []domain.Issue, cfg *config.Config) domain.SeverityPartition {
	var p domain.SeverityPartition
	for _, issue := range issues {
		switch {
		case blocks(issue, cfg):
			p.Blocking = append(p.Blocking, issue)
		case issue.Severity == domain.SeverityInfo:
			p.Info = append(p.Info, issue)
		default:
			p.Warnings = append(p.Warnings, issue)
		}
	}
	domain.SortIssues(p.Blocking)
	domain.SortIssues(p.Warnings)
	domain.SortIssues(p.Info)
	return p
}

// verdictFor summarizes one check's issues under the current blocking
// rules. Passed is informational: cached verdicts are re-partitioned
// against the live configuration on every run, so a config change takes
// effect without invalidating the cache.
func verdictFor(issues []domain.Issue, cfg *config.Config) domain.Verdict {
	v := domain.Verdict{Passed: true, Issues: issues}
	if v.Issues == nil {
		v.Issues = []domain.Issue{}
	}
	for _, issue := range issues {
		if blocks(issue, cfg) {
			v.Passed = false
			break
		}
	}
	return v
}
