package main

import (
	"fmt"
	"os"

	"github.com/editguard/editguard/internal/version"
	"github.com/spf13/cobra"
)

var (
	// Version information (set via ldflags during build)
	Version = version.Version
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "editguard",
		Short: "editguard - post-edit gate for JavaScript/TypeScript",
		Long: `editguard checks JavaScript and TypeScript files right after an AI coding
assistant edits them, and blocks edits that introduce hardcoded secrets,
obvious quality regressions, accessibility violations, or framework misuse.

It runs as a host hook (reading a tool-call descriptor from stdin) or as
a standalone scanner over files and directories.`,
		Version: Version,
	}

	// Add subcommands
	rootCmd.AddCommand(hookCmd())
	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(cacheCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		// Handle custom exit codes from the hook and scan commands
		if exitErr, ok := err.(*ExitError); ok {
			if exitErr.Message != "" {
				fmt.Fprintf(os.Stderr, "Error: %s\n", exitErr.Message)
			}
			// Silently exit with the specified code (output already printed)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				fmt.Println(version.GetFullVersion())
			} else {
				fmt.Printf("editguard version %s\n", version.GetVersion())
			}
		},
	}

	cmd.Flags().BoolP("verbose", "v", false, "Show detailed version information")
	return cmd
}
