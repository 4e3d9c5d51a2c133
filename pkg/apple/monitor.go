package apple

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"pickupwatch/internal/models"
	"pickupwatch/pkg/config"
	"pickupwatch/pkg/digest"
	"pickupwatch/pkg/logger"
)

// Opener starts a browser session
type Opener func(ctx context.Context) (PageSession, error)

// Notifier delivers a finished report. Delivery problems are handled by the notifier.
type Notifier interface {
	NotifyAll(ctx context.Context, report *models.AvailabilityReport)
}

// Monitor runs one pickup check: drive, extract, print, notify
type Monitor struct {
	open      Opener
	driver    *Driver
	extractor *Extractor
	notifier  Notifier
	out       io.Writer
	dryRun    bool
}

// NewMonitor wires a single-run monitor from cfg
func NewMonitor(cfg *config.Config, open Opener, notifier Notifier, out io.Writer) *Monitor {
	return &Monitor{
		open:      open,
		driver:    NewDriver(cfg.Target, cfg.Browser),
		extractor: NewExtractor(cfg.Target, cfg.Browser),
		notifier:  notifier,
		out:       out,
		dryRun:    cfg.App.DryRun,
	}
}

// Run performs the check. The browser is closed before Run returns, whatever the outcome.
func (m *Monitor) Run(ctx context.Context) (*models.AvailabilityReport, error) {
	start := time.Now()
	log := logger.FromContext(ctx)

	page, err := m.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}
	defer func() {
		if err := page.Close(); err != nil {
			log.Warn("Failed to close browser", zap.Error(err))
		}
	}()

	if err := m.driver.Drive(logger.WithStage(ctx, "drive"), page); err != nil {
		return nil, err
	}

	report := m.extractor.Extract(logger.WithStage(ctx, "extract"), page)

	if err := digest.WriteJSON(m.out, report); err != nil {
		log.Warn("Failed to print report", zap.Error(err))
	}
	if err := digest.WriteSummary(m.out, report); err != nil {
		log.Warn("Failed to print summary", zap.Error(err))
	}

	if m.dryRun {
		log.Info("Dry run, notifications skipped")
	} else if m.notifier != nil {
		m.notifier.NotifyAll(logger.WithStage(ctx, "notify"), report)
	}

	log.Info("✅ Pickup check completed", logger.DurationField(time.Since(start).Milliseconds()))
	return report, nil
}
