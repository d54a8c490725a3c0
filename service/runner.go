package service

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/editguard/editguard/domain"
	"github.com/editguard/editguard/internal/analyzer"
	"github.com/editguard/editguard/internal/cache"
	"github.com/editguard/editguard/internal/config"
	"github.com/editguard/editguard/internal/constants"
	"github.com/editguard/editguard/internal/eligibility"
	"github.com/editguard/editguard/internal/version"
)

// GateRunner implements domain.GateService. It fans the enabled checks out
// over the parallel executor, serves verdicts from the cache where the
// content hash still matches, and folds everything into a single pass or
// block decision.
type GateRunner struct {
	cfg      *config.Config
	cache    domain.VerdictCache
	engines  []domain.Engine
	executor domain.ParallelExecutor
	logger   *zap.Logger
}

// NewGateRunner creates a gate runner for the given configuration.
// A nil verdictCache disables caching; a nil logger discards logs.
func NewGateRunner(cfg *config.Config, verdictCache domain.VerdictCache, logger *zap.Logger) *GateRunner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if verdictCache == nil {
		verdictCache = cache.NoOpStore{}
	}
	return &GateRunner{
		cfg:      cfg,
		cache:    verdictCache,
		engines:  analyzer.Engines(cfg, logger),
		executor: NewParallelExecutorFromHookConfig(&cfg.Hook),
		logger:   logger,
	}
}

// RunFile reads and gates a single file
func (r *GateRunner) RunFile(ctx context.Context, filePath string) (*domain.GateResult, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.NewFileNotFoundError(filePath, err)
		}
		return nil, domain.NewFileReadError(filePath, err)
	}
	return r.RunContent(ctx, filePath, string(content))
}

// RunContent gates already-read content, bypassing file I/O
func (r *GateRunner) RunContent(ctx context.Context, filePath string, content string) (*domain.GateResult, error) {
	start := time.Now()
	runID := uuid.NewString()
	logger := r.logger.With(zap.String("run_id", runID), zap.String("file", filePath))

	result := &domain.GateResult{
		RunID:    runID,
		FilePath: filePath,
		Version:  version.GetVersion(),
	}

	elig := eligibility.Decide(filePath)
	if !elig.Any() {
		logger.Debug("file not eligible for any check")
		result.Skipped = true
		result.Passed = true
		result.ExitCode = constants.ExitPass
		finishResult(result, start)
		return result, nil
	}

	tasks := make([]*engineTask, 0, len(r.engines))
	for _, engine := range r.engines {
		tasks = append(tasks, &engineTask{
			engine:   engine,
			enabled:  r.checkEnabled(engine.Name(), elig),
			filePath: filePath,
			content:  content,
			cache:    r.cache,
			cfg:      r.cfg,
		})
	}

	execTasks := make([]domain.ExecutableTask, len(tasks))
	for i, t := range tasks {
		execTasks[i] = t
	}

	// Engines recover their own panics and the cache swallows its own
	// failures, so a task-level error here is unexpected.
	if err := r.executor.Execute(ctx, execTasks); err != nil {
		return nil, domain.NewAnalysisError("check execution failed", err)
	}

	var outcomes []domain.CheckOutcome
	var issues []domain.Issue
	for _, t := range tasks {
		if !t.enabled {
			continue
		}
		if !t.done {
			// The executor abandons queued tasks once the run deadline
			// expires, so an unfinished check means the run timed out.
			return nil, domain.NewTimeoutError("analysis timed out before all checks ran", ctx.Err())
		}
		outcomes = append(outcomes, t.outcome)
		issues = append(issues, t.outcome.Verdict.Issues...)
	}

	result.Outcomes = outcomes
	result.Partition = Partition(issues, r.cfg)
	result.Passed = !result.Partition.HasBlocking()
	if result.Passed {
		result.ExitCode = constants.ExitPass
	} else {
		result.ExitCode = constants.ExitBlocked
	}
	result.Summary = summarize(outcomes, &result.Partition)
	finishResult(result, start)

	logger.Debug("gate run complete",
		zap.Bool("passed", result.Passed),
		zap.Int("checks_run", result.Summary.ChecksRun),
		zap.Int("cache_hits", result.Summary.CacheHits),
		zap.Int("issues", result.Summary.TotalIssues),
		zap.Int64("duration_ms", result.Duration))
	return result, nil
}

// checkEnabled combines the configuration switch with file eligibility
func (r *GateRunner) checkEnabled(check domain.CheckKind, elig domain.Eligibility) bool {
	switch check {
	case domain.CheckSecurity:
		return r.cfg.Security.Enabled && elig.Security
	case domain.CheckQuality:
		return r.cfg.Quality.Enabled && elig.Quality
	case domain.CheckAccessibility:
		return r.cfg.Accessibility.Enabled && elig.Accessibility
	case domain.CheckAdvanced:
		return r.cfg.Advanced.Enabled && elig.Advanced
	default:
		return false
	}
}

// engineTask adapts one check to the parallel executor. Execute consults
// the verdict cache before analyzing and records its outcome on the task;
// results are read back only after the executor has finished.
type engineTask struct {
	engine   domain.Engine
	enabled  bool
	filePath string
	content  string
	cache    domain.VerdictCache
	cfg      *config.Config

	outcome domain.CheckOutcome
	done    bool
}

// Name identifies the task in error reports
func (t *engineTask) Name() string {
	return string(t.engine.Name())
}

// IsEnabled reports whether the task should run
func (t *engineTask) IsEnabled() bool {
	return t.enabled
}

// Execute runs the check, serving a cached verdict when one is still valid
func (t *engineTask) Execute(_ context.Context) (any, error) {
	check := t.engine.Name()
	if cached, ok := t.cache.Get(check, t.filePath, t.content); ok {
		t.outcome = domain.CheckOutcome{Check: check, FromCache: true, Verdict: *cached}
		t.done = true
		return t.outcome, nil
	}

	issues := t.engine.Analyze(t.filePath, t.content)
	verdict := verdictFor(issues, t.cfg)
	t.cache.Set(check, t.filePath, t.content, verdict)

	t.outcome = domain.CheckOutcome{Check: check, FromCache: false, Verdict: verdict}
	t.done = true
	return t.outcome, nil
}

// summarize folds per-check outcomes and the partition into run statistics
func summarize(outcomes []domain.CheckOutcome, p *domain.SeverityPartition) domain.GateSummary {
	s := domain.GateSummary{
		ChecksRun:      len(outcomes),
		TotalIssues:    p.Total(),
		BlockingIssues: len(p.Blocking),
		WarningIssues:  len(p.Warnings),
		InfoIssues:     len(p.Info),
	}
	for _, o := range outcomes {
		if o.FromCache {
			s.CacheHits++
		}
	}
	return s
}

func finishResult(result *domain.GateResult, start time.Time) {
	result.Duration = time.Since(start).Milliseconds()
	result.GeneratedAt = time.Now().UTC().Format(time.RFC3339)
}
