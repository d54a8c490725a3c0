package domain

import (
	"context"
	"io"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// ScanRequest represents a request for a batch scan
type ScanRequest struct {
	// Input files or directories to scan
	Paths []string

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	ShowDetails  bool

	// FailOn overrides the configured blocking severity (empty = use config)
	FailOn Severity

	// NoCache disables verdict cache reads and writes for this scan
	NoCache bool

	// Analysis options
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string
	FollowSymlinks  bool

	// Configuration
	ConfigPath string
}

// FileResult represents the gate outcome for one scanned file
type FileResult struct {
	// FilePath is the scanned file
	FilePath string `json:"file_path" yaml:"file_path"`

	// Passed is false when the file has blocking issues
	Passed bool `json:"passed" yaml:"passed"`

	// Issues are all findings for the file, in source order
	Issues []Issue `json:"issues" yaml:"issues"`

	// CacheHits counts checks served from the verdict cache
	CacheHits int `json:"cache_hits" yaml:"cache_hits"`
}

// ScanSummary represents aggregate statistics for a batch scan
type ScanSummary struct {
	FilesScanned   int `json:"files_scanned" yaml:"files_scanned"`
	FilesPassed    int `json:"files_passed" yaml:"files_passed"`
	FilesFailed    int `json:"files_failed" yaml:"files_failed"`
	FilesSkipped   int `json:"files_skipped" yaml:"files_skipped"`
	TotalIssues    int `json:"total_issues" yaml:"total_issues"`
	BlockingIssues int `json:"blocking_issues" yaml:"blocking_issues"`
	WarningIssues  int `json:"warning_issues" yaml:"warning_issues"`
	InfoIssues     int `json:"info_issues" yaml:"info_issues"`
	CacheHits      int `json:"cache_hits" yaml:"cache_hits"`
}

// ScanResponse represents the complete result of a batch scan
type ScanResponse struct {
	// Files are the per-file results in path order
	Files []FileResult `json:"files" yaml:"files"`

	// Summary provides aggregate statistics
	Summary ScanSummary `json:"summary" yaml:"summary"`

	// Warnings and errors encountered while scanning
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Errors   []string `json:"errors,omitempty" yaml:"errors,omitempty"`

	// Metadata
	GeneratedAt string `json:"generated_at" yaml:"generated_at"`
	Version     string `json:"version" yaml:"version"`
	DurationMs  int64  `json:"duration_ms" yaml:"duration_ms"`
}

// ScanService defines the core business logic for batch scanning
type ScanService interface {
	// Scan gates every eligible file under the request paths
	Scan(ctx context.Context, req ScanRequest) (*ScanResponse, error)
}

// OutputFormatter defines the interface for formatting scan results
type OutputFormatter interface {
	// Write writes the formatted scan response to the writer
	Write(response *ScanResponse, format OutputFormat, writer io.Writer) error
}

// ConfigurationLoader loads scan request defaults and merges CLI overrides
type ConfigurationLoader interface {
	// LoadConfig loads request defaults from the specified config file
	LoadConfig(path string) (*ScanRequest, error)

	// LoadDefaultConfig loads defaults, preferring a discovered config file
	LoadDefaultConfig() *ScanRequest

	// MergeConfig merges override values into the base request
	MergeConfig(base *ScanRequest, override *ScanRequest) *ScanRequest

	// ValidateConfig validates the merged request
	ValidateConfig(req *ScanRequest) error
}
