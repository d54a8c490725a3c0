package main

import (
	"fmt"

	"github.com/editguard/editguard/app"
	"github.com/editguard/editguard/domain"
	"github.com/editguard/editguard/internal/config"
	"github.com/editguard/editguard/internal/constants"
	"github.com/editguard/editguard/internal/logging"
	"github.com/editguard/editguard/service"
	"github.com/spf13/cobra"
)

var (
	scanConfigPath string
	scanFormat     string
	scanJSON       bool
	scanFailOn     string
	scanNoCache    bool
	scanDetails    bool
)

func scanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Run all checks over files or directories",
		Long: `Run every enabled check over the given files and directories and
report all findings in one pass.

Unlike the hook, scan walks directories recursively, honors .gitignore,
and aggregates results across files.

Exit codes:
  0 - All scanned files pass
  1 - At least one file has blocking issues
  2 - Unexpected error (bad arguments, unreadable paths, analysis failure)

Examples:
  # Scan the current project
  editguard scan .

  # Scan specific files with JSON output
  editguard scan src/app.ts src/util.ts --json

  # Block on warnings too, skipping the verdict cache
  editguard scan src/ --fail-on warning --no-cache`,
		RunE:          runScan,
		SilenceUsage:  true, // Don't print usage on errors (we handle our own output)
		SilenceErrors: true, // Don't print error messages (we handle our own output)
	}

	cmd.Flags().StringVarP(&scanConfigPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().StringVarP(&scanFormat, "format", "f", "text",
		"Output format (text, json, yaml)")
	cmd.Flags().BoolVar(&scanJSON, "json", false,
		"Output results in JSON format (shorthand for --format json)")
	cmd.Flags().StringVar(&scanFailOn, "fail-on", "",
		"Lowest severity that blocks (critical, error, warning, info)")
	cmd.Flags().BoolVar(&scanNoCache, "no-cache", false,
		"Bypass the verdict cache for this scan")
	cmd.Flags().BoolVar(&scanDetails, "details", false,
		"Show every finding with line numbers and suggestions")

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return &ExitError{Code: constants.ExitUnexpected, Message: "no paths specified (try 'editguard scan .')"}
	}

	logger := logging.FromEnv()

	cfg, err := config.LoadConfigWithTarget(scanConfigPath, args[0])
	if err != nil {
		return &ExitError{Code: constants.ExitUnexpected, Message: fmt.Sprintf("failed to load configuration: %v", err)}
	}

	loader := service.NewConfigurationLoader()
	base := loader.FromConfig(cfg)

	// Flag overrides: only flags the user actually set should win
	// over config file values
	override := &domain.ScanRequest{
		Paths:        args,
		OutputWriter: cmd.OutOrStdout(),
		NoCache:      scanNoCache,
		ShowDetails:  scanDetails,
	}
	if scanJSON {
		override.OutputFormat = domain.OutputFormatJSON
	} else if cmd.Flags().Changed("format") {
		override.OutputFormat = domain.OutputFormat(scanFormat)
	}
	if scanFailOn != "" {
		override.FailOn = domain.Severity(scanFailOn)
	}

	req := loader.MergeConfig(base, override)
	if err := loader.ValidateConfig(req); err != nil {
		return &ExitError{Code: constants.ExitUnexpected, Message: err.Error()}
	}

	var store domain.VerdictCache
	if !req.NoCache {
		store = newVerdictCache(cfg, logger)
	}
	runner := service.NewGateRunner(cfg, store, logger)

	// Progress lives on stderr, so it never corrupts piped output
	pm := service.NewProgressManager(req.OutputFormat == domain.OutputFormatText)
	defer pm.Close()

	uc := app.NewScanUseCase(runner, service.NewParallelExecutorWithProgress(pm))

	resp, err := uc.Scan(cmd.Context(), *req)
	if err != nil {
		return &ExitError{Code: constants.ExitUnexpected, Message: err.Error()}
	}

	writer := req.OutputWriter
	if writer == nil {
		writer = cmd.OutOrStdout()
	}
	if err := service.NewOutputFormatter().Write(resp, req.OutputFormat, writer); err != nil {
		return &ExitError{Code: constants.ExitUnexpected, Message: fmt.Sprintf("failed to write output: %v", err)}
	}

	if len(resp.Errors) > 0 {
		// Some files were never checked; the report is incomplete
		return &ExitError{Code: constants.ExitUnexpected, Message: ""}
	}
	if resp.Summary.FilesFailed > 0 {
		// Silently exit 1 (the report already shows the failures)
		return &ExitError{Code: constants.ExitBlocked, Message: ""}
	}
	return nil
}
