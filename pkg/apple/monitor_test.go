package apple

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pickupwatch/internal/models"
)

type recordingNotifier struct {
	reports []*models.AvailabilityReport
}

func (n *recordingNotifier) NotifyAll(_ context.Context, r *models.AvailabilityReport) {
	n.reports = append(n.reports, r)
}

func TestMonitorRun(t *testing.T) {
	page := &fakePage{triggerFoundAt: 1, html: locatorFixture}
	notifier := &recordingNotifier{}
	var out bytes.Buffer

	m := NewMonitor(testConfig(), func(context.Context) (PageSession, error) { return page, nil }, notifier, &out)
	report, err := m.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, page.closed)
	require.Len(t, notifier.reports, 1)
	assert.Same(t, report, notifier.reports[0])
	assert.Contains(t, out.String(), "=== JSON OUTPUT ===")
	assert.Contains(t, out.String(), "=== SUMMARY ===")
}

func TestMonitorClosesBrowserOnFatalError(t *testing.T) {
	page := &fakePage{}
	notifier := &recordingNotifier{}
	cfg := testConfig()
	cfg.Browser.MaxTriggerAttempts = 2

	m := NewMonitor(cfg, func(context.Context) (PageSession, error) { return page, nil }, notifier, &bytes.Buffer{})
	_, err := m.Run(context.Background())

	require.ErrorIs(t, err, ErrTriggerNotFound)
	assert.Equal(t, 1, page.closed)
	assert.Empty(t, notifier.reports)
}

func TestMonitorDryRunSkipsNotify(t *testing.T) {
	page := &fakePage{triggerFoundAt: 1, html: locatorFixture}
	notifier := &recordingNotifier{}
	cfg := testConfig()
	cfg.App.DryRun = true

	m := NewMonitor(cfg, func(context.Context) (PageSession, error) { return page, nil }, notifier, &bytes.Buffer{})
	_, err := m.Run(context.Background())

	require.NoError(t, err)
	assert.Empty(t, notifier.reports)
}

func TestMonitorOpenFailure(t *testing.T) {
	m := NewMonitor(testConfig(), func(context.Context) (PageSession, error) { return nil, errFake }, nil, &bytes.Buffer{})

	_, err := m.Run(context.Background())
	assert.ErrorIs(t, err, errFake)
}
