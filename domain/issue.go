package domain

import "sort"

// Severity represents the severity level of an issue
type Severity string

const (
	// SeverityCritical represents issues that must never be committed (e.g. leaked credentials)
	SeverityCritical Severity = "critical"

	// SeverityError represents issues that should block the edit
	SeverityError Severity = "error"

	// SeverityWarning represents issues that should be reviewed but do not block
	SeverityWarning Severity = "warning"

	// SeverityInfo represents purely informational findings
	SeverityInfo Severity = "info"
)

// Rank returns the severity as an integer for comparison.
// Higher values are more severe; unknown severities rank lowest.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityError:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether s is at least as severe as other
func (s Severity) AtLeast(other Severity) bool {
	return s.Rank() >= other.Rank()
}

// IsValid reports whether s is a known severity level
func (s Severity) IsValid() bool {
	return s.Rank() > 0
}

// CheckKind identifies one of the analysis checks
type CheckKind string

const (
	// CheckSecurity covers secrets, unsafe execution, and unsanitized HTML
	CheckSecurity CheckKind = "security"

	// CheckQuality covers typing, React hygiene, and structural metrics
	CheckQuality CheckKind = "quality"

	// CheckAccessibility covers WCAG-oriented JSX heuristics
	CheckAccessibility CheckKind = "accessibility"

	// CheckAdvanced covers lifecycle, async, and type-safety patterns
	CheckAdvanced CheckKind = "advanced"
)

// AllChecks lists every check in reporting order
func AllChecks() []CheckKind {
	return []CheckKind{CheckSecurity, CheckQuality, CheckAccessibility, CheckAdvanced}
}

// Dimension classifies advanced findings by the kind of defect
type Dimension string

const (
	// DimensionMemory marks potential leaks (missing cleanup for subscriptions/timers)
	DimensionMemory Dimension = "memory"

	// DimensionAsync marks race-prone async state updates
	DimensionAsync Dimension = "async"

	// DimensionTypeSafety marks type-system escape hatches
	DimensionTypeSafety Dimension = "type-safety"
)

// Issue represents a single finding produced by an analysis check
type Issue struct {
	// Check is the check that produced this issue
	Check CheckKind `json:"check" yaml:"check"`

	// Category is the rule family within the check (e.g. "secrets", "img-alt")
	Category string `json:"category" yaml:"category"`

	// Severity is the ranked severity of the finding
	Severity Severity `json:"severity" yaml:"severity"`

	// Line is the 1-based line number of the finding (0 for file-level findings)
	Line int `json:"line,omitempty" yaml:"line,omitempty"`

	// Message is the human-readable description
	Message string `json:"message" yaml:"message"`

	// Suggestion is an optional remediation hint
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`

	// Dimension classifies advanced findings (memory, async, type-safety)
	Dimension Dimension `json:"dimension,omitempty" yaml:"dimension,omitempty"`
}

// Verdict represents one check's aggregated result for a single file
type Verdict struct {
	// Passed is false when at least one issue reaches the check's blocking severity
	Passed bool `json:"passed" yaml:"passed"`

	// Issues are the findings, in source order
	Issues []Issue `json:"issues" yaml:"issues"`
}

// SeverityPartition buckets issues by how the gate treats them
type SeverityPartition struct {
	// Blocking are the issues that fail the gate
	Blocking []Issue `json:"blocking" yaml:"blocking"`

	// Warnings are reported but never block
	Warnings []Issue `json:"warnings" yaml:"warnings"`

	// Info are surfaced as counts only
	Info []Issue `json:"info" yaml:"info"`
}

// Total returns the number of issues across all buckets
func (p *SeverityPartition) Total() int {
	return len(p.Blocking) + len(p.Warnings) + len(p.Info)
}

// HasBlocking reports whether any issue fails the gate
func (p *SeverityPartition) HasBlocking() bool {
	return len(p.Blocking) > 0
}

// All returns every issue across the buckets, in source order
func (p *SeverityPartition) All() []Issue {
	all := make([]Issue, 0, p.Total())
	all = append(all, p.Blocking...)
	all = append(all, p.Warnings...)
	all = append(all, p.Info...)
	SortIssues(all)
	return all
}

// checkRank maps checks to their reporting order
var checkRank = map[CheckKind]int{
	CheckSecurity:      0,
	CheckQuality:       1,
	CheckAccessibility: 2,
	CheckAdvanced:      3,
}

// SortIssues orders issues by line, then check reporting order, then category
func SortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if checkRank[a.Check] != checkRank[b.Check] {
			return checkRank[a.Check] < checkRank[b.Check]
		}
		return a.Category < b.Category
	})
}

// PartitionWithFloor buckets issues against a flat severity floor,
// ignoring per-check blocking rules. Issues at or above the floor block,
// info findings stay informational, and everything else is a warning.
func PartitionWithFloor(issues []Issue, floor Severity) SeverityPartition {
	var p SeverityPartition
	for _, issue := range issues {
		switch {
		case issue.Severity.AtLeast(floor):
			p.Blocking = append(p.Blocking, issue)
		case issue.Severity == SeverityInfo:
			p.Info = append(p.Info, issue)
		default:
			p.Warnings = append(p.Warnings, issue)
		}
	}
	SortIssues(p.Blocking)
	SortIssues(p.Warnings)
	SortIssues(p.Info)
	return p
}

// Eligibility records which checks apply to a file
type Eligibility struct {
	// Security applies to every JavaScript/TypeScript file, tests and config included
	Security bool `json:"security"`

	// Quality applies to production source files
	Quality bool `json:"quality"`

	// Accessibility applies to JSX/TSX files
	Accessibility bool `json:"accessibility"`

	// ReactQuality applies to JSX/TSX files that look like components
	ReactQuality bool `json:"react_quality"`

	// Advanced applies to production source files
	Advanced bool `json:"advanced"`
}

// Any reports whether at least one check applies
func (e Eligibility) Any() bool {
	return e.Security || e.Quality || e.Accessibility || e.ReactQuality || e.Advanced
}
