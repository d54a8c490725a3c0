package main

import (
	"fmt"
	"time"

	"github.com/editguard/editguard/internal/cache"
	"github.com/editguard/editguard/internal/config"
	"github.com/editguard/editguard/internal/logging"
	"github.com/spf13/cobra"
)

var cacheConfigPath string

func cacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the verdict cache",
		Long: `Inspect or clear the content-hash verdict cache.

The cache stores per-check verdicts keyed by file path and content hash,
so unchanged files skip re-analysis on subsequent runs.`,
	}

	cmd.PersistentFlags().StringVarP(&cacheConfigPath, "config", "c", "",
		"Path to config file")

	cmd.AddCommand(cacheClearCmd())
	cmd.AddCommand(cacheStatsCmd())

	return cmd
}

func cacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all cached verdicts",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openCacheStore()
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared verdict cache at %s\n", store.Dir())
			return nil
		},
	}
}

func cacheStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache entry count, size, and age",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openCacheStore()
			if err != nil {
				return err
			}
			stats, err := store.Stats()
			if err != nil {
				return fmt.Errorf("failed to read cache: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Cache directory: %s\n", store.Dir())
			fmt.Fprintf(out, "Entries:         %d\n", stats.Entries)
			fmt.Fprintf(out, "Total size:      %s\n", formatBytes(stats.SizeBytes))
			if !stats.Oldest.IsZero() {
				fmt.Fprintf(out, "Oldest entry:    %s\n", stats.Oldest.UTC().Format(time.RFC3339))
			}
			return nil
		},
	}
}

// openCacheStore builds a store from the discovered configuration,
// regardless of whether caching is enabled for gate runs
func openCacheStore() (*cache.Store, error) {
	cfg, err := config.LoadConfigWithTarget(cacheConfigPath, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	maxAge := time.Duration(cfg.Cache.MaxAgeMinutes) * time.Minute
	return cache.New(cfg.Cache.CacheDir(), maxAge, logging.FromEnv()), nil
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for u := n / unit; u >= unit; u /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
