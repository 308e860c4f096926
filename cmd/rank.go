package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/feedrank/feedrank/internal/app"
	"github.com/feedrank/feedrank/internal/config"
	"github.com/feedrank/feedrank/internal/logging"
)

const defaultConfigFile = "feedrank.yaml"

// newRankCmd creates and configures the 'rank' subcommand, which runs one
// full collect-score-rank pass and renders the report to stdout.
func newRankCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rank",
		Short: "Runs one collection and ranking pass",
		Long: `Fetches items from every enabled source, scores them against the
configured keywords, and prints the top results. Interrupting the run
with SIGINT or SIGTERM stops new fetches; items already collected from
completed sources are still ranked and reported.`,
		RunE: runRankCommand,
	}
}

func runRankCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(resolveConfigPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(cfg, logger, os.Stdout)
	if err != nil {
		return fmt.Errorf("initialize application services: %w", err)
	}
	defer a.Close()

	if err := a.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("run cancelled")
			return nil
		}
		return fmt.Errorf("run pipeline: %w", err)
	}

	logger.Info("rank command finished", zap.String("run_id", a.RunID().String()))
	return nil
}

func resolveConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile
	}
	return ""
}
