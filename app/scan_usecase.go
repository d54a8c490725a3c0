package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/editguard/editguard/domain"
	"github.com/editguard/editguard/internal/version"
)

// ScanUseCase orchestrates the batch scan workflow: collect files, gate
// each one through the check pipeline, and aggregate the outcomes.
type ScanUseCase struct {
	gate       domain.GateService
	executor   domain.ParallelExecutor
	fileHelper *FileHelper
}

// NewScanUseCase creates a new scan use case
func NewScanUseCase(gate domain.GateService, executor domain.ParallelExecutor) *ScanUseCase {
	return &ScanUseCase{
		gate:       gate,
		executor:   executor,
		fileHelper: NewFileHelper(),
	}
}

// fileTask gates one file. The executor runs tasks concurrently; each
// task writes only its own fields, which are read back after Execute
// returns.
type fileTask struct {
	gate     domain.GateService
	filePath string

	result *domain.GateResult
	err    error
}

func (t *fileTask) Name() string {
	return t.filePath
}

func (t *fileTask) IsEnabled() bool {
	return true
}

func (t *fileTask) Execute(ctx context.Context) (any, error) {
	result, err := t.gate.RunFile(ctx, t.filePath)
	if err != nil {
		t.err = err
		return nil, err
	}
	t.result = result
	return result, nil
}

// Scan performs the complete batch scan workflow
func (uc *ScanUseCase) Scan(ctx context.Context, req domain.ScanRequest) (*domain.ScanResponse, error) {
	startTime := time.Now()

	if err := uc.validateRequest(req); err != nil {
		return nil, domain.NewInvalidInputError("invalid request", err)
	}

	files, err := ResolveFilePaths(
		uc.fileHelper,
		req.Paths,
		req.Recursive,
		req.IncludePatterns,
		req.ExcludePatterns,
		req.FollowSymlinks,
	)
	if err != nil {
		return nil, domain.NewFileNotFoundError("failed to collect files", err)
	}

	if len(files) == 0 {
		return nil, domain.NewInvalidInputError("no JavaScript/TypeScript files found in the specified paths", nil)
	}

	sort.Strings(files)

	tasks := make([]domain.ExecutableTask, len(files))
	fileTasks := make([]*fileTask, len(files))
	for i, f := range files {
		t := &fileTask{gate: uc.gate, filePath: f}
		tasks[i] = t
		fileTasks[i] = t
	}

	// Per-file failures are collected from the tasks themselves, so the
	// aggregated executor error is not consulted here.
	_ = uc.executor.Execute(ctx, tasks)

	response := &domain.ScanResponse{
		Files: make([]domain.FileResult, 0, len(fileTasks)),
	}

	for _, t := range fileTasks {
		switch {
		case t.result != nil:
			uc.recordResult(response, t.result, req.FailOn)
		case t.err != nil:
			response.Warnings = append(response.Warnings, fmt.Sprintf("%s: %v", t.filePath, t.err))
		default:
			response.Errors = append(response.Errors, fmt.Sprintf("%s: not checked before the scan deadline", t.filePath))
		}
	}

	response.GeneratedAt = time.Now().UTC().Format(time.RFC3339)
	response.Version = version.GetVersion()
	response.DurationMs = time.Since(startTime).Milliseconds()

	return response, nil
}

// recordResult folds one gate result into the response. When a fail-on
// floor is set it overrides the per-check blocking rules for both the
// pass verdict and the aggregate severity counts.
func (uc *ScanUseCase) recordResult(response *domain.ScanResponse, result *domain.GateResult, failOn domain.Severity) {
	s := &response.Summary

	if result.Skipped {
		s.FilesSkipped++
		return
	}

	issues := result.Partition.All()
	partition := result.Partition
	passed := result.Passed
	if failOn != "" {
		partition = domain.PartitionWithFloor(issues, failOn)
		passed = !partition.HasBlocking()
	}

	response.Files = append(response.Files, domain.FileResult{
		FilePath:  result.FilePath,
		Passed:    passed,
		Issues:    issues,
		CacheHits: result.Summary.CacheHits,
	})

	s.FilesScanned++
	if passed {
		s.FilesPassed++
	} else {
		s.FilesFailed++
	}
	s.TotalIssues += len(issues)
	s.BlockingIssues += len(partition.Blocking)
	s.WarningIssues += len(partition.Warnings)
	s.InfoIssues += len(partition.Info)
	s.CacheHits += result.Summary.CacheHits
}

// validateRequest validates the scan request
func (uc *ScanUseCase) validateRequest(req domain.ScanRequest) error {
	if len(req.Paths) == 0 {
		return fmt.Errorf("no input paths specified")
	}

	if req.FailOn != "" && !req.FailOn.IsValid() {
		return fmt.Errorf("invalid fail-on severity: %s", req.FailOn)
	}

	return nil
}

// ScanUseCaseBuilder provides a builder pattern for creating ScanUseCase
type ScanUseCaseBuilder struct {
	gate       domain.GateService
	executor   domain.ParallelExecutor
	fileHelper *FileHelper
}

// NewScanUseCaseBuilder creates a new builder
func NewScanUseCaseBuilder() *ScanUseCaseBuilder {
	return &ScanUseCaseBuilder{}
}

// WithGateService sets the gate service
func (b *ScanUseCaseBuilder) WithGateService(gate domain.GateService) *ScanUseCaseBuilder {
	b.gate = gate
	return b
}

// WithExecutor sets the parallel executor
func (b *ScanUseCaseBuilder) WithExecutor(executor domain.ParallelExecutor) *ScanUseCaseBuilder {
	b.executor = executor
	return b
}

// WithFileHelper sets the file helper
func (b *ScanUseCaseBuilder) WithFileHelper(fileHelper *FileHelper) *ScanUseCaseBuilder {
	b.fileHelper = fileHelper
	return b
}

// Build creates the ScanUseCase with the configured dependencies
func (b *ScanUseCaseBuilder) Build() (*ScanUseCase, error) {
	if b.gate == nil {
		return nil, fmt.Errorf("gate service is required")
	}
	if b.executor == nil {
		return nil, fmt.Errorf("parallel executor is required")
	}

	uc := &ScanUseCase{
		gate:       b.gate,
		executor:   b.executor,
		fileHelper: b.fileHelper,
	}

	if uc.fileHelper == nil {
		uc.fileHelper = NewFileHelper()
	}

	return uc, nil
}
