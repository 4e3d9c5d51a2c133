package digest

import (
	"fmt"
	"regexp"
	"strings"

	"pickupwatch/internal/models"
)

const (
	unknownProduct = "Unknown Product"
	notAvailable   = "N/A"

	positive = "✅"
	negative = "❌"
)

var (
	availableRe = regexp.MustCompile(`(?i)\bavailable\b`)
	negatedRe   = regexp.MustCompile(`(?i)\b(unavailable|not\s+available)\b`)
)

// Digest is the human-readable summary sent to the notification channels
type Digest struct {
	// Title is the product title, used as the embed title
	Title string
	// Text is markdown with *bold* markers
	Text string
}

// Compose renders report into a digest. It never fails; absent values render as N/A.
func Compose(report *models.AvailabilityReport) Digest {
	title := report.Product.Title.Or(unknownProduct)

	lines := []string{
		fmt.Sprintf("📱 *%s*", title),
		fmt.Sprintf("🚚 *Delivery:* %s", report.Delivery.Or(notAvailable)),
		"",
		"🏬 *Stores:*",
	}

	if len(report.Pickup.Stores) == 0 {
		lines = append(lines, negative+" No stores currently have stock")
	}
	for _, s := range report.Pickup.Stores {
		lines = append(lines, storeLine(s))
	}

	if len(report.SimilarModels) > 0 {
		lines = append(lines, "", "🧩 *Similar Models:*")
		for _, m := range report.SimilarModels {
			lines = append(lines, fmt.Sprintf("• %s — %s — %s",
				m.Model.Or(notAvailable),
				m.Price.Or(notAvailable),
				m.AvailabilitySummary.Or(notAvailable)))
			for _, s := range m.Stores {
				lines = append(lines, "   └ "+storeLine(s))
			}
		}
	}

	return Digest{Title: title, Text: strings.Join(lines, "\n")}
}

func storeLine(s models.StoreStatus) string {
	return fmt.Sprintf("%s %s — %s", StatusIndicator(s.Status), s.Store.Or(notAvailable), s.Status.Or(notAvailable))
}

// StatusIndicator returns ✅ when status contains the word "available" in any case
// and is not a negated form ("unavailable", "not available"). Absent, failed and
// empty statuses are ❌.
func StatusIndicator(status models.Text) string {
	if !status.Ok() {
		return negative
	}
	if availableRe.MatchString(status.Value) && !negatedRe.MatchString(status.Value) {
		return positive
	}
	return negative
}

// StripMarkdown removes the emphasis markers for channels that render plain text
func StripMarkdown(text string) string {
	return strings.ReplaceAll(text, "*", "")
}
