package domain

import "context"

// ToolInput carries the file-level arguments of a host tool call
type ToolInput struct {
	// FilePath is the file the tool created or modified (may be empty)
	FilePath string `json:"file_path"`
}

// HookInput is the JSON payload the host writes to stdin after a tool call
type HookInput struct {
	// ToolName is the host tool that ran (e.g. "Write", "Edit")
	ToolName string `json:"tool_name"`

	// ToolInput holds the tool's arguments
	ToolInput ToolInput `json:"tool_input"`
}

// Invocation is the normalized form of a hook input
type Invocation struct {
	// ToolName is the host tool that triggered the hook
	ToolName string

	// FilePath is the edited file, empty when the tool touched no file
	FilePath string
}

// Invocation converts the wire payload to its normalized form
func (h *HookInput) Invocation() Invocation {
	return Invocation{
		ToolName: h.ToolName,
		FilePath: h.ToolInput.FilePath,
	}
}

// CheckOutcome is one check's verdict for a file, with cache provenance
type CheckOutcome struct {
	// Check identifies the analysis check
	Check CheckKind `json:"check" yaml:"check"`

	// FromCache is true when the verdict was served from the result cache
	FromCache bool `json:"from_cache" yaml:"from_cache"`

	// Verdict is the check's result
	Verdict Verdict `json:"verdict" yaml:"verdict"`
}

// GateSummary provides aggregate statistics for a single gate run
type GateSummary struct {
	ChecksRun      int `json:"checks_run" yaml:"checks_run"`
	CacheHits      int `json:"cache_hits" yaml:"cache_hits"`
	TotalIssues    int `json:"total_issues" yaml:"total_issues"`
	BlockingIssues int `json:"blocking_issues" yaml:"blocking_issues"`
	WarningIssues  int `json:"warning_issues" yaml:"warning_issues"`
	InfoIssues     int `json:"info_issues" yaml:"info_issues"`
}

// GateResult represents the outcome of gating a single edited file
type GateResult struct {
	// RunID correlates log lines from one hook invocation
	RunID string `json:"run_id" yaml:"run_id"`

	// FilePath is the file that was gated
	FilePath string `json:"file_path" yaml:"file_path"`

	// Skipped is true when eligibility excluded the file entirely
	Skipped bool `json:"skipped" yaml:"skipped"`

	// Passed is false when any blocking issue was found
	Passed bool `json:"passed" yaml:"passed"`

	// ExitCode is the process exit code the gate maps to
	ExitCode int `json:"exit_code" yaml:"exit_code"`

	// Outcomes are the per-check verdicts in reporting order
	Outcomes []CheckOutcome `json:"outcomes" yaml:"outcomes"`

	// Partition buckets all issues by gate treatment
	Partition SeverityPartition `json:"partition" yaml:"partition"`

	// Summary provides aggregate statistics
	Summary GateSummary `json:"summary" yaml:"summary"`

	// Duration is the wall-clock analysis time in milliseconds
	Duration int64 `json:"duration_ms" yaml:"duration_ms"`

	// GeneratedAt is the RFC3339 completion timestamp
	GeneratedAt string `json:"generated_at" yaml:"generated_at"`

	// Version is the editguard version that produced this result
	Version string `json:"version" yaml:"version"`
}

// GateService defines the core business logic for gating edited files
type GateService interface {
	// RunFile reads and gates a single file
	RunFile(ctx context.Context, filePath string) (*GateResult, error)

	// RunContent gates already-read content, bypassing file I/O
	RunContent(ctx context.Context, filePath string, content string) (*GateResult, error)
}
