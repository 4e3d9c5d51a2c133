package apple

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"pickupwatch/internal/models"
	"pickupwatch/pkg/config"
	"pickupwatch/pkg/logger"
)

// Extractor reads the rendered pickup results into a report
type Extractor struct {
	postalCode  string
	similarWait time.Duration
	idleTimeout time.Duration
}

// NewExtractor creates an extractor for the given target
func NewExtractor(target *config.TargetConfig, browser *config.BrowserConfig) *Extractor {
	return &Extractor{
		postalCode:  target.PostalCode,
		similarWait: browser.SimilarModelsDeadline(),
		idleTimeout: browser.IdleDeadline(),
	}
}

// Extract never fails: unreadable parts of the page end up absent or failed in the report
func (e *Extractor) Extract(ctx context.Context, page Page) *models.AvailabilityReport {
	log := logger.FromContext(ctx)

	similarVisible := true
	if err := page.WaitVisible(ctx, selSuggestionItem, e.similarWait); err != nil {
		log.Warn("⚠️ No 'Similar models' section visible", zap.Error(err))
		similarVisible = false
	} else {
		expanded := e.expandSimilarModels(ctx, page)
		log.Info("🧩 Expanded similar models", logger.CountField(expanded))
	}

	html, err := page.HTML(ctx)
	if err != nil {
		log.Error("Failed to snapshot page", zap.Error(err))
		report := models.NewAvailabilityReport(e.postalCode)
		report.FailAll(fmt.Errorf("snapshot page: %w", err))
		return report
	}

	report, err := Parse(html, e.postalCode)
	if err != nil {
		log.Error("Failed to parse page", zap.Error(err))
		report = models.NewAvailabilityReport(e.postalCode)
		report.FailAll(err)
		return report
	}
	if !similarVisible {
		report.SimilarModels = []models.ModelVariant{}
	}

	log.Info("📦 Extracted availability",
		zap.Int("stores", len(report.Pickup.Stores)),
		zap.Int("similar_models", len(report.SimilarModels)))
	return report
}

// expandSimilarModels clicks every collapsed similar-model toggle once.
// Toggles already expanded are left alone so a second call changes nothing.
func (e *Extractor) expandSimilarModels(ctx context.Context, page Page) int {
	log := logger.FromContext(ctx)

	html, err := page.HTML(ctx)
	if err != nil {
		log.Warn("Could not inspect similar model toggles", zap.Error(err))
		return 0
	}
	collapsed, err := collapsedToggles(html)
	if err != nil {
		log.Warn("Could not inspect similar model toggles", zap.Error(err))
		return 0
	}

	expanded := 0
	for _, idx := range collapsed {
		if err := page.ClickNth(ctx, selSuggestionToggles, idx); err != nil {
			log.Warn("Could not expand similar model", zap.Int("index", idx), zap.Error(err))
			continue
		}
		if err := page.WaitIdle(ctx, e.idleTimeout); err != nil {
			log.Debug("Network did not settle after expand", zap.Int("index", idx), zap.Error(err))
		}
		expanded++
	}
	return expanded
}

// collapsedToggles returns the indexes, in document order, of toggles not yet expanded
func collapsedToggles(html string) ([]int, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var idx []int
	doc.Find(selSuggestionToggles).Each(func(i int, s *goquery.Selection) {
		if v, _ := s.Attr("aria-expanded"); v != "true" {
			idx = append(idx, i)
		}
	})
	return idx, nil
}
