package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pickupwatch/pkg/apple"
	"pickupwatch/pkg/browser"
	"pickupwatch/pkg/config"
	"pickupwatch/pkg/logger"
	"pickupwatch/pkg/notifier"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one pickup availability check (default)",
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := logger.InitLogger(logger.Options{
		Development: cfg.App.Development,
		Level:       cfg.App.LogLevel,
		File:        cfg.App.LogFile,
	}); err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			logger.Info("🛑 Shutdown signal received")
			cancel()
		case <-ctx.Done():
		}
	}()

	ctx = logger.WithRunID(ctx, logger.NewRunID())
	log := logger.FromContext(ctx)
	log.Info("🍎 Apple pickup check",
		zap.String("url", cfg.Target.URL),
		zap.String("postal_code", cfg.Target.PostalCode),
		zap.Bool("headless", cfg.Browser.Headless),
		zap.Bool("dry_run", cfg.App.DryRun))
	if cfg.Discord != nil && cfg.Discord.Configured() {
		if err := cfg.Discord.Validate(); err != nil {
			log.Warn("⚠️ Discord settings are invalid, sends will fail", zap.Error(err))
		}
	}

	dispatcher, err := notifier.NewDispatcherFromConfig(cfg)
	if err != nil {
		return err
	}

	monitor := apple.NewMonitor(cfg, openBrowser(cfg.Browser), dispatcher, cmd.OutOrStdout())
	if _, err := monitor.Run(ctx); err != nil {
		log.Error("❌ Pickup check failed", zap.Error(err))
		return err
	}
	return nil
}

func openBrowser(cfg *config.BrowserConfig) apple.Opener {
	return func(ctx context.Context) (apple.PageSession, error) {
		session, err := browser.Open(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return session, nil
	}
}
