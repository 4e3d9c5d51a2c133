package apple

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"pickupwatch/internal/models"
)

var priceRe = regexp.MustCompile(`\p{Sc}\s?\d`)

// Parse reads a rendered product locator document into a report.
// Missing elements become absent fields; nothing here returns an error for page content.
func Parse(html, postalCode string) (*models.AvailabilityReport, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("data cannot be parsed as HTML: %w", err)
	}

	report := models.NewAvailabilityReport(postalCode)
	root := doc.Selection

	info := root.Find(selProductInfo)
	report.Product.Title = textOf(info, selProductTitle)
	report.Product.Price = textOf(info, selProductPrice)
	report.Product.ImageAlt = attrOf(root, selProductImage, "alt")

	report.Pickup.Header = textOf(root, selPickupHeader)
	report.Pickup.Summary = textOf(root, selPickupSummary)

	root.Find(selStoreOption).Each(func(_ int, s *goquery.Selection) {
		if s.Closest(selSuggestionItem).Length() > 0 {
			return
		}
		report.Pickup.Stores = append(report.Pickup.Stores, parseStore(s))
	})

	report.Delivery = textOf(root, selDelivery)

	root.Find(selSuggestionItem).Each(func(_ int, card *goquery.Selection) {
		report.SimilarModels = append(report.SimilarModels, parseVariant(card))
	})

	return report, nil
}

func parseStore(s *goquery.Selection) models.StoreStatus {
	left := s.Find(selStoreLeft)
	right := s.Find(selStoreRight)
	return models.StoreStatus{
		Store:      textOf(left, selStoreTitle),
		City:       nthTextOf(left, selSmallLabel, 0),
		Distance:   nthTextOf(left, selSmallLabel, 1),
		Status:     nthTextOf(right, "span", 0),
		PickupType: nthTextOf(right, selSmallLabel, 0),
	}
}

func parseVariant(card *goquery.Selection) models.ModelVariant {
	variant := models.ModelVariant{
		Model:               models.Missing(),
		Price:               models.Missing(),
		AvailabilitySummary: models.Missing(),
		Stores:              []models.StoreStatus{},
	}

	texts, err := headerTexts(card)
	if err != nil {
		variant.Model = models.Failed(err)
		variant.Price = models.Failed(err)
		variant.AvailabilitySummary = models.Failed(err)
	} else {
		variant.Model, variant.Price, variant.AvailabilitySummary = classifyHeaderTexts(texts)
	}

	card.Find(selStoreOption).Each(func(_ int, s *goquery.Selection) {
		variant.Stores = append(variant.Stores, parseStore(s))
	})
	return variant
}

func headerTexts(card *goquery.Selection) (texts []string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrFieldRead, rec)
		}
	}()

	card.Find(selSuggestionToggle).First().
		Find(selToggleContent).
		Find("*").
		Each(func(_ int, s *goquery.Selection) {
			texts = append(texts, cleanText(s.Text()))
		})
	return texts, nil
}

// classifyHeaderTexts sorts the toggle's texts into model name, price and
// availability. Later price/availability matches win, the first plain text is the model.
func classifyHeaderTexts(texts []string) (model, price, availability models.Text) {
	model, price, availability = models.Missing(), models.Missing(), models.Missing()
	for _, t := range texts {
		t = strings.TrimSpace(t)
		switch {
		case t == "":
			continue
		case priceRe.MatchString(t):
			price = models.Found(t)
		case strings.Contains(t, "Available") || strings.Contains(strings.ToLower(t), "store"):
			availability = models.Found(t)
		case !model.Ok():
			model = models.Found(t)
		}
	}
	return model, price, availability
}

// readField converts a panic during a read into a failed field
func readField(fn func() models.Text) (t models.Text) {
	defer func() {
		if rec := recover(); rec != nil {
			t = models.Failed(fmt.Errorf("%w: %v", ErrFieldRead, rec))
		}
	}()
	return fn()
}

func textOf(scope *goquery.Selection, sel string) models.Text {
	return nthTextOf(scope, sel, 0)
}

func nthTextOf(scope *goquery.Selection, sel string, n int) models.Text {
	return readField(func() models.Text {
		found := scope.Find(sel).Eq(n)
		if found.Length() == 0 {
			return models.Missing()
		}
		return models.Found(cleanText(found.Text()))
	})
}

func attrOf(scope *goquery.Selection, sel, attr string) models.Text {
	return readField(func() models.Text {
		found := scope.Find(sel).First()
		if found.Length() == 0 {
			return models.Missing()
		}
		v, ok := found.Attr(attr)
		if !ok {
			return models.Missing()
		}
		return models.Found(cleanText(v))
	})
}

// cleanText collapses whitespace the way rendered text reads
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
