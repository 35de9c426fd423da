package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wenchichenginl/HERON/app"
	"github.com/wenchichenginl/HERON/config"
	"github.com/wenchichenginl/HERON/infra/logger"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the case file and probe the dispatch module",
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
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
			logger.New("validate").Errorf("service close: %v", err)
		}
	}()
	if err := svc.Initialize(ctx); err != nil {
		return err
	}

	fmt.Printf("case %q ok: dispatcher %s\n", cfg.Case.Name, svc.Dispatcher().Name())
	if mp, ok := svc.Dispatcher().(interface{ ModulePath() string }); ok {
		fmt.Printf("dispatch module: %s\n", mp.ModulePath())
	}
	return nil
}
