package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/editguard/editguard/domain"
	"github.com/editguard/editguard/internal/cache"
	"github.com/editguard/editguard/internal/config"
	"github.com/editguard/editguard/internal/constants"
	"github.com/editguard/editguard/internal/logging"
	"github.com/editguard/editguard/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ExitError carries a specific process exit code out of a RunE command
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

var (
	hookConfigPath string
	hookDebug      bool
)

func hookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hook",
		Short: "Gate an edited file (host hook entry point)",
		Long: `Read a tool-call descriptor from stdin and gate the edited file.

The host invokes this after every file write or edit with a JSON payload
on stdin:

  {"tool_name": "Edit", "tool_input": {"file_path": "src/app.ts"}}

Exit codes:
  0 - Edit passes (or the tool touched no gateable file)
  1 - Blocking issues found
  2 - Unexpected error (unreadable file, analysis failure)
  3 - Configuration error (bad config file or malformed stdin)

Examples:
  # Typical host wiring
  echo '{"tool_name":"Write","tool_input":{"file_path":"a.ts"}}' | editguard hook

  # With an explicit config file
  editguard hook --config editguard.config.json < payload.json`,
		RunE:          runHook,
		SilenceUsage:  true, // Don't print usage on errors (we handle our own output)
		SilenceErrors: true, // Don't print error messages (we handle our own output)
	}

	cmd.Flags().StringVarP(&hookConfigPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().BoolVar(&hookDebug, "debug", false,
		"Enable debug logging on stderr")

	return cmd
}

func runHook(cmd *cobra.Command, args []string) error {
	logger := logging.New(hookDebug || logging.DebugEnabled())

	// Decode the tool-call descriptor. Stdin is config-critical input:
	// if the host wiring is broken the operator must find out loudly.
	var input domain.HookInput
	if err := json.NewDecoder(cmd.InOrStdin()).Decode(&input); err != nil {
		return &ExitError{Code: constants.ExitConfigError, Message: fmt.Sprintf("malformed hook input: %v", err)}
	}

	inv := input.Invocation()
	if inv.FilePath == "" {
		// The tool touched no file; nothing to gate
		logger.Debug("hook input carries no file path", zap.String("tool", inv.ToolName))
		return nil
	}

	cfg, err := config.LoadConfigWithTarget(hookConfigPath, inv.FilePath)
	if err != nil {
		return &ExitError{Code: constants.ExitConfigError, Message: fmt.Sprintf("failed to load configuration: %v", err)}
	}

	runner := service.NewGateRunner(cfg, newVerdictCache(cfg, logger), logger)

	result, err := runner.RunFile(cmd.Context(), inv.FilePath)
	if err != nil {
		return &ExitError{Code: constants.ExitUnexpected, Message: fmt.Sprintf("check run failed: %v", err)}
	}

	reporter := service.NewReporter(&cfg.Output)
	if err := reporter.Write(cmd.OutOrStdout(), result); err != nil {
		return &ExitError{Code: constants.ExitUnexpected, Message: fmt.Sprintf("failed to write report: %v", err)}
	}

	logger.Info("hook run complete",
		zap.String("run_id", result.RunID),
		zap.String("file", result.FilePath),
		zap.Bool("passed", result.Passed),
		zap.Bool("skipped", result.Skipped),
		zap.Int("cache_hits", result.Summary.CacheHits),
		zap.Int64("duration_ms", result.Duration))

	if result.ExitCode != constants.ExitPass {
		// Silently exit with the gate's code (report already printed)
		return &ExitError{Code: result.ExitCode, Message: ""}
	}
	return nil
}

// newVerdictCache builds the verdict store the configuration asks for,
// or nil when caching is disabled (the runner treats nil as a no-op)
func newVerdictCache(cfg *config.Config, logger *zap.Logger) domain.VerdictCache {
	if !cfg.Cache.Enabled {
		return nil
	}
	maxAge := time.Duration(cfg.Cache.MaxAgeMinutes) * time.Minute
	return cache.New(cfg.Cache.CacheDir(), maxAge, logger)
}
