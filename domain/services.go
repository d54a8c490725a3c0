package domain

import (
	"context"
	"time"
)

// Engine defines a single analysis check over one file's content.
// Implementations are line-oriented and must never panic across the
// Analyze boundary; a failing sub-scan degrades to zero findings.
type Engine interface {
	// Name identifies the check this engine implements
	Name() CheckKind

	// Analyze scans the content and returns findings in source order
	Analyze(filePath string, content string) []Issue
}

// VerdictCache defines content-addressed storage for check verdicts.
// Implementations treat every storage failure as a miss (Get) or a
// no-op (Set); the cache must never fail a gate run.
type VerdictCache interface {
	// Get returns the cached verdict when the entry is valid for content
	Get(check CheckKind, filePath string, content string) (*Verdict, bool)

	// Set stores a fresh verdict for the given content
	Set(check CheckKind, filePath string, content string, verdict Verdict)
}

// CacheStats describes the on-disk state of a verdict cache
type CacheStats struct {
	// Entries is the number of stored verdicts
	Entries int `json:"entries" yaml:"entries"`

	// SizeBytes is the total size of all entries
	SizeBytes int64 `json:"size_bytes" yaml:"size_bytes"`

	// Oldest is the timestamp of the least recently written entry
	Oldest time.Time `json:"oldest,omitempty" yaml:"oldest,omitempty"`
}

// ExecutableTask represents a unit of work for the parallel executor
type ExecutableTask interface {
	// Name identifies the task in error reports
	Name() string

	// IsEnabled reports whether the task should run
	IsEnabled() bool

	// Execute runs the task
	Execute(ctx context.Context) (any, error)
}

// ParallelExecutor runs tasks concurrently with bounded parallelism
type ParallelExecutor interface {
	Execute(ctx context.Context, tasks []ExecutableTask) error
}

// ProgressManager creates progress displays for long-running operations
type ProgressManager interface {
	// StartTask creates a new progress task with a description and total count
	StartTask(description string, total int) TaskProgress

	// IsInteractive returns true if progress is rendered to a terminal
	IsInteractive() bool

	// Close cleans up all tasks
	Close()
}

// TaskProgress tracks progress of a single task
type TaskProgress interface {
	// Increment adds n to the current progress
	Increment(n int)

	// Describe updates the current item description
	Describe(description string)

	// Complete marks the task as finished
	Complete()
}
