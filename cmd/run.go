package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wenchichenginl/HERON/app"
	"github.com/wenchichenginl/HERON/config"
	"github.com/wenchichenginl/HERON/core/dispatch"
	"github.com/wenchichenginl/HERON/infra/logger"
	"github.com/wenchichenginl/HERON/pkg/export"
)

var (
	periods int
	outPath string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute dispatch periods",
	RunE:  run,
}

func init() {
	runCmd.Flags().IntVar(&periods, "periods", 1, "number of consecutive dispatch periods")
	runCmd.Flags().StringVar(&outPath, "out", "", "write dispatched states to this file (.csv or .json)")
	rootCmd.AddCommand(runCmd)
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load case: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("run").Errorf("service close: %v", err)
		}
	}()
	if err := svc.Initialize(ctx); err != nil {
		return fmt.Errorf("initialize: %w", err)
	}

	states, err := svc.Run(ctx, periods)
	if err != nil {
		return err
	}
	if outPath != "" {
		if err := exportStates(outPath, states); err != nil {
			return err
		}
		fmt.Printf("wrote %d periods to %s\n", len(states), outPath)
	}
	return nil
}

func exportStates(path string, states []*dispatch.State) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	var werr error
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		werr = export.WriteCSV(f, states)
	} else {
		werr = export.WriteJSON(f, states)
	}
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	return werr
}
