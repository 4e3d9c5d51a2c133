package apple

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pickupwatch/pkg/browser"
)

func newTestDriver(attempts int) *Driver {
	cfg := testConfig()
	cfg.Browser.MaxTriggerAttempts = attempts
	return NewDriver(cfg.Target, cfg.Browser)
}

func TestFindTriggerStopsWhenFound(t *testing.T) {
	page := &fakePage{triggerFoundAt: 3}

	attempt, err := newTestDriver(12).findTrigger(context.Background(), page)

	require.NoError(t, err)
	assert.Equal(t, 3, attempt)
	assert.Equal(t, 3, page.countCalls)
	assert.Equal(t, 2, page.scrolls)
}

func TestFindTriggerFoundImmediately(t *testing.T) {
	page := &fakePage{triggerFoundAt: 1}

	attempt, err := newTestDriver(12).findTrigger(context.Background(), page)

	require.NoError(t, err)
	assert.Equal(t, 1, attempt)
	assert.Zero(t, page.scrolls)
}

func TestFindTriggerIsBounded(t *testing.T) {
	for _, max := range []int{1, 5, 12} {
		page := &fakePage{}

		_, err := newTestDriver(max).findTrigger(context.Background(), page)

		require.ErrorIs(t, err, ErrTriggerNotFound)
		assert.Equal(t, max, page.countCalls)
		assert.Equal(t, max-1, page.scrolls)
	}
}

func TestFindTriggerHonoursCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	page := &fakePage{}

	_, err := newTestDriver(12).findTrigger(ctx, page)

	require.ErrorIs(t, err, context.Canceled)
	assert.Less(t, page.countCalls, 12)
}

func TestDriveSequence(t *testing.T) {
	page := &fakePage{triggerFoundAt: 1}

	require.NoError(t, newTestDriver(12).Drive(context.Background(), page))

	assert.Equal(t, []string{
		"navigate https://store.example/iphone",
		"idle",
		"wait " + selNoAppleCare,
		"click " + selNoAppleCare,
		"scrollintoview " + selTriggerButton,
		"click " + selTriggerButton,
		"wait " + selPostalCodeInput,
		"submit " + selPostalCodeInput + " 819666",
		"wait " + selResultsOptions,
		"idle",
		"scroll 3000",
		"idle",
		"evaluate",
	}, page.calls)
}

func TestDriveFatalWhenTriggerMissing(t *testing.T) {
	page := &fakePage{}

	err := newTestDriver(4).Drive(context.Background(), page)

	require.ErrorIs(t, err, ErrTriggerNotFound)
	assert.Contains(t, err.Error(), "after 4 attempts")
	assert.NotContains(t, page.calls, "wait "+selPostalCodeInput)
}

func TestDriveFatalOnRequiredWait(t *testing.T) {
	for _, sel := range []string{selNoAppleCare, selPostalCodeInput, selResultsOptions} {
		t.Run(sel, func(t *testing.T) {
			page := &fakePage{
				triggerFoundAt: 1,
				visibleErr:     map[string]error{sel: browser.ErrWaitTimeout},
			}

			err := newTestDriver(12).Drive(context.Background(), page)

			require.ErrorIs(t, err, browser.ErrWaitTimeout)
			assert.NotContains(t, page.calls, "evaluate")
		})
	}
}

func TestDriveToleratesIdleAndRevealFailures(t *testing.T) {
	page := &fakePage{
		triggerFoundAt: 1,
		idleErr:        browser.ErrWaitTimeout,
		evaluateErr:    errors.New("script blocked"),
	}

	assert.NoError(t, newTestDriver(12).Drive(context.Background(), page))
	assert.Contains(t, page.calls, "evaluate")
}
