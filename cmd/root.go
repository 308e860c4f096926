// Package cmd defines and implements the CLI commands for the feedrank
// executable.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedrank",
		Short: "Collects items from content sources and ranks them by keyword relevance.",
		Long: `feedrank fetches items from the configured content sources, scores each
against a keyword set, and prints the most relevant items first. Fetches
are rate limited, retried with exponential backoff, and run concurrently
within a configurable bound.`,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is feedrank.yaml in the working directory)")

	cmd.AddCommand(newRankCmd())
	return cmd
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
