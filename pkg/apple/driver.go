package apple

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"pickupwatch/pkg/config"
	"pickupwatch/pkg/logger"
)

// Driver walks the product page up to the rendered pickup results
type Driver struct {
	url                string
	postalCode         string
	waitTimeout        time.Duration
	idleTimeout        time.Duration
	maxTriggerAttempts int
	scrollInterval     time.Duration
}

// NewDriver creates a page driver for target using the deadlines in browser
func NewDriver(target *config.TargetConfig, browser *config.BrowserConfig) *Driver {
	return &Driver{
		url:                target.URL,
		postalCode:         target.PostalCode,
		waitTimeout:        browser.WaitDeadline(),
		idleTimeout:        browser.IdleDeadline(),
		maxTriggerAttempts: browser.MaxTriggerAttempts,
		scrollInterval:     browser.ScrollInterval(),
	}
}

// Drive performs the fixed interaction sequence. Any returned error is fatal for the run.
func (d *Driver) Drive(ctx context.Context, page Page) error {
	log := logger.FromContext(ctx)

	log.Info("🌐 Navigating to Apple Store", zap.String("url", d.url))
	if err := page.Navigate(ctx, d.url); err != nil {
		return fmt.Errorf("navigate to %s: %w", d.url, err)
	}
	d.waitIdle(ctx, page, "product page")

	if err := page.WaitVisible(ctx, selNoAppleCare, d.waitTimeout); err != nil {
		return fmt.Errorf("product option: %w", err)
	}
	if err := page.Click(ctx, selNoAppleCare); err != nil {
		return fmt.Errorf("select 'No AppleCare': %w", err)
	}
	log.Info("✅ Selected 'No AppleCare'")

	attempts, err := d.findTrigger(ctx, page)
	if err != nil {
		return err
	}
	if err := page.ScrollIntoView(ctx, selTriggerButton); err != nil {
		log.Warn("Could not scroll trigger into view", zap.Error(err))
	}
	if err := page.Click(ctx, selTriggerButton); err != nil {
		return fmt.Errorf("open pickup overlay: %w", err)
	}
	log.Info("✅ Opened pickup overlay", zap.Int("attempts", attempts))

	if err := page.WaitVisible(ctx, selPostalCodeInput, d.waitTimeout); err != nil {
		return fmt.Errorf("postal code field: %w", err)
	}
	if err := page.Submit(ctx, selPostalCodeInput, d.postalCode); err != nil {
		return fmt.Errorf("submit postal code: %w", err)
	}
	log.Info("📮 Searched postal code", zap.String("postal_code", d.postalCode))

	if err := page.WaitVisible(ctx, selResultsOptions, d.waitTimeout); err != nil {
		return fmt.Errorf("pickup results: %w", err)
	}
	d.waitIdle(ctx, page, "pickup results")

	d.revealSimilarModels(ctx, page)
	return nil
}

// findTrigger polls for the availability button, scrolling between attempts.
// It returns the attempt on which the button was seen.
func (d *Driver) findTrigger(ctx context.Context, page Page) (int, error) {
	log := logger.FromContext(ctx)
	limiter := rate.NewLimiter(rate.Every(d.scrollInterval), 1)

	for attempt := 1; attempt <= d.maxTriggerAttempts; attempt++ {
		n, err := page.Count(ctx, selTriggerButton)
		if err != nil {
			log.Debug("Trigger lookup failed", zap.Int("attempt", attempt), zap.Error(err))
		} else if n > 0 {
			return attempt, nil
		}

		if attempt == d.maxTriggerAttempts {
			break
		}
		if err := page.ScrollBy(ctx, triggerScrollStep); err != nil {
			log.Debug("Scroll failed", zap.Error(err))
		}
		if err := limiter.Wait(ctx); err != nil {
			return attempt, fmt.Errorf("trigger lookup interrupted: %w", err)
		}
	}

	return d.maxTriggerAttempts, fmt.Errorf("%w after %d attempts", ErrTriggerNotFound, d.maxTriggerAttempts)
}

// revealSimilarModels scrolls to the bottom and forces the collapsed panel open.
// Failures only cost the similar-model section.
func (d *Driver) revealSimilarModels(ctx context.Context, page Page) {
	log := logger.FromContext(ctx)

	if err := page.ScrollBy(ctx, revealScrollStep); err != nil {
		log.Warn("Scroll to similar models failed", zap.Error(err))
	}
	d.waitIdle(ctx, page, "similar models")

	if err := page.Evaluate(ctx, revealSimilarModelsScript); err != nil {
		log.Warn("Could not reveal similar models", zap.Error(err))
	}
}

// waitIdle is best effort; store pages often keep background requests open
func (d *Driver) waitIdle(ctx context.Context, page Page, what string) {
	if err := page.WaitIdle(ctx, d.idleTimeout); err != nil {
		logger.FromContext(ctx).Warn("Network did not settle", zap.String("page", what), zap.Error(err))
	}
}
