package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wenchichenginl/HERON/app/plugins"
	"github.com/wenchichenginl/HERON/config"
	dispatchlog "github.com/wenchichenginl/HERON/core/dispatch/logging"
	coremetrics "github.com/wenchichenginl/HERON/core/metrics"
	"github.com/wenchichenginl/HERON/infra/logger"
	_ "github.com/wenchichenginl/HERON/infra/metrics"
	"github.com/wenchichenginl/HERON/jobs/backfill"
)

var backfillSince time.Duration

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Replay the activity log into the configured metrics sinks",
	RunE:  runBackfill,
}

func init() {
	backfillCmd.Flags().DurationVar(&backfillSince, "since", 0, "replay only records newer than this age (0 replays everything)")
	rootCmd.AddCommand(backfillCmd)
}

func runBackfill(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load case: %w", err)
	}
	store, err := plugins.NewLogStore(cfg.Logging)
	if err != nil {
		return fmt.Errorf("log store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.New("backfill").Errorf("store close: %v", err)
		}
	}()
	sink, err := coremetrics.NewSink(cfg.Metrics.Sinks)
	if err != nil {
		return fmt.Errorf("metrics sink: %w", err)
	}

	q := dispatchlog.LogQuery{}
	if backfillSince > 0 {
		q.Start = time.Now().Add(-backfillSince)
	}
	n, err := backfill.Run(ctx, store, sink, q)
	if err != nil {
		return err
	}
	fmt.Printf("replayed %d dispatches\n", n)
	return nil
}
