package digest

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"pickupwatch/internal/models"
)

// WriteJSON prints the report as indented JSON under a banner
func WriteJSON(w io.Writer, report *models.AvailabilityReport) error {
	if _, err := fmt.Fprintln(w, "\n=== JSON OUTPUT ==="); err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// WriteSummary prints a console summary with the stores laid out as tables
func WriteSummary(w io.Writer, report *models.AvailabilityReport) error {
	fmt.Fprintln(w, "\n=== SUMMARY ===")
	fmt.Fprintf(w, "%s — %s\n", report.Product.Title.Or("?"), report.Product.Price.Or("?"))
	if report.Pickup.Header.Ok() {
		fmt.Fprintln(w, report.Pickup.Header.Value)
	}
	if report.Pickup.Summary.Ok() {
		fmt.Fprintln(w, report.Pickup.Summary.Value)
	}

	if len(report.Pickup.Stores) > 0 {
		t := newTable(w)
		t.AppendHeader(table.Row{"", "Store", "City", "Distance", "Status", "Pickup"})
		for _, s := range report.Pickup.Stores {
			t.AppendRow(table.Row{
				StatusIndicator(s.Status),
				s.Store.Or(notAvailable),
				s.City.Or(notAvailable),
				s.Distance.Or(notAvailable),
				s.Status.Or(notAvailable),
				s.PickupType.Or(notAvailable),
			})
		}
		t.Render()
	}

	if report.Delivery.Ok() {
		fmt.Fprintf(w, "\n🚚 %s\n", report.Delivery.Value)
	}

	if len(report.SimilarModels) > 0 {
		fmt.Fprintln(w, "\n🧩 Similar models available:")
		t := newTable(w)
		t.AppendHeader(table.Row{"Model", "Price", "Availability", "Store", "Status"})
		for _, m := range report.SimilarModels {
			head := table.Row{m.Model.Or(notAvailable), m.Price.Or(notAvailable), m.AvailabilitySummary.Or(notAvailable)}
			if len(m.Stores) == 0 {
				t.AppendRow(append(head, "", ""))
				continue
			}
			for i, s := range m.Stores {
				row := table.Row{"", "", ""}
				if i == 0 {
					row = head
				}
				t.AppendRow(append(row, s.Store.Or(notAvailable), StatusIndicator(s.Status)+" "+s.Status.Or(notAvailable)))
			}
		}
		t.Render()
	}
	return nil
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}
