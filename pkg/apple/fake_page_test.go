package apple

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pickupwatch/pkg/config"
)

var errFake = errors.New("fake page failure")

// fakePage records calls and serves canned HTML
type fakePage struct {
	calls []string

	triggerFoundAt int // 1-based Count call that first sees the trigger, 0 = never
	countCalls     int
	scrolls        int

	visibleErr  map[string]error
	idleErr     error
	evaluateErr error
	clickNthErr error

	html    string
	render  func() string
	htmlErr error

	clickedNth []int
	onClickNth func(n int)
	closed     int
}

func (f *fakePage) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakePage) Navigate(_ context.Context, url string) error {
	f.record("navigate %s", url)
	return nil
}

func (f *fakePage) WaitVisible(_ context.Context, sel string, _ time.Duration) error {
	f.record("wait %s", sel)
	return f.visibleErr[sel]
}

func (f *fakePage) WaitIdle(context.Context, time.Duration) error {
	f.record("idle")
	return f.idleErr
}

func (f *fakePage) Click(_ context.Context, sel string) error {
	f.record("click %s", sel)
	return nil
}

func (f *fakePage) ClickNth(_ context.Context, sel string, n int) error {
	f.record("clicknth %s %d", sel, n)
	if f.clickNthErr != nil {
		return f.clickNthErr
	}
	f.clickedNth = append(f.clickedNth, n)
	if f.onClickNth != nil {
		f.onClickNth(n)
	}
	return nil
}

func (f *fakePage) Count(_ context.Context, sel string) (int, error) {
	f.countCalls++
	if sel == selTriggerButton && f.triggerFoundAt > 0 && f.countCalls >= f.triggerFoundAt {
		return 1, nil
	}
	return 0, nil
}

func (f *fakePage) ScrollBy(_ context.Context, dy float64) error {
	f.scrolls++
	f.record("scroll %.0f", dy)
	return nil
}

func (f *fakePage) ScrollIntoView(_ context.Context, sel string) error {
	f.record("scrollintoview %s", sel)
	return nil
}

func (f *fakePage) Submit(_ context.Context, sel, text string) error {
	f.record("submit %s %s", sel, text)
	return nil
}

func (f *fakePage) Evaluate(context.Context, string) error {
	f.record("evaluate")
	return f.evaluateErr
}

func (f *fakePage) HTML(context.Context) (string, error) {
	if f.htmlErr != nil {
		return "", f.htmlErr
	}
	if f.render != nil {
		return f.render(), nil
	}
	return f.html, nil
}

func (f *fakePage) Close() error {
	f.closed++
	return nil
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Target.URL = "https://store.example/iphone"
	cfg.Target.PostalCode = "819666"
	cfg.Browser.ScrollIntervalMs = 1
	cfg.Browser.MaxTriggerAttempts = 12
	return cfg
}
