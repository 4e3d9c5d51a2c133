package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/cdproto/network"
	cdppage "github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
	"go.uber.org/zap"

	"pickupwatch/pkg/config"
	"pickupwatch/pkg/logger"
)

// antiDetectionScript runs before any page script on every new document
const antiDetectionScript = `
Object.defineProperty(navigator, 'webdriver', { get: () => undefined });
Object.defineProperty(navigator, 'languages', { get: () => ['en-SG', 'en'] });
window.chrome = window.chrome || { runtime: {} };
`

// idleQuietPeriod is how long the network must stay silent to count as idle
const idleQuietPeriod = 500 * time.Millisecond

// Session is one browser window with one tab, driven through chromedp
type Session struct {
	cfg         *config.BrowserConfig
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	waits       *WaitStrategy
	activity    *networkActivity
	closeOnce   sync.Once
	closed      bool
	mu          sync.Mutex
}

// Open launches the browser and prepares the tab. The caller must Close it.
func Open(ctx context.Context, cfg *config.BrowserConfig) (*Session, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, AllocatorOptions(cfg)...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(logger.Sugar.Debugf),
		chromedp.WithErrorf(logger.Sugar.Debugf),
	)

	s := &Session{
		cfg:         cfg,
		ctx:         tabCtx,
		cancel:      tabCancel,
		allocCancel: allocCancel,
		waits:       NewWaitStrategy(),
		activity:    newNetworkActivity(),
	}

	chromedp.ListenTarget(tabCtx, s.activity.observe)

	err := chromedp.Run(tabCtx,
		network.Enable(),
		emulation.SetDeviceMetricsOverride(int64(cfg.WindowWidth), int64(cfg.WindowHeight), 1, false),
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := cdppage.AddScriptToEvaluateOnNewDocument(antiDetectionScript).Do(ctx)
			return err
		}),
	)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("%w: %v", ErrBrowserStart, err)
	}

	logger.Info("Browser session started",
		zap.Bool("headless", cfg.Headless),
		zap.Int("width", cfg.WindowWidth),
		zap.Int("height", cfg.WindowHeight))
	return s, nil
}

// run executes actions on the tab with a deadline, also honouring the caller's ctx
func (s *Session) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return ErrSessionClosed
	}

	runCtx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err := chromedp.Run(runCtx, actions...)
	if err != nil && errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		return fmt.Errorf("%w after %v: %v", ErrWaitTimeout, timeout, err)
	}
	return err
}

// Navigate loads url and waits for the load event
func (s *Session) Navigate(ctx context.Context, url string) error {
	return s.run(ctx, s.cfg.NavigationDeadline(), chromedp.Navigate(url))
}

// WaitVisible blocks until sel is rendered and visible, or timeout elapses
func (s *Session) WaitVisible(ctx context.Context, sel string, timeout time.Duration) error {
	if err := s.run(ctx, timeout, chromedp.WaitVisible(sel, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("waiting for %s: %w", sel, err)
	}
	return nil
}

// WaitIdle waits for document.readyState to be complete and the network to
// stay quiet for idleQuietPeriod
func (s *Session) WaitIdle(ctx context.Context, timeout time.Duration) error {
	err := s.waits.Poll(ctx, timeout, "network idle", func(pctx context.Context) (bool, error) {
		var state string
		if err := s.run(pctx, timeout, chromedp.Evaluate(`document.readyState`, &state)); err != nil {
			return false, err
		}
		return state == "complete" && s.activity.quietFor(idleQuietPeriod), nil
	})
	if errors.Is(err, ErrWaitTimeout) {
		return fmt.Errorf("%w (%d requests pending)", err, s.activity.pending())
	}
	return err
}

// Click clicks the first element matching sel
func (s *Session) Click(ctx context.Context, sel string) error {
	return s.run(ctx, s.cfg.WaitDeadline(), chromedp.Click(sel, chromedp.ByQuery, chromedp.NodeVisible))
}

// ClickNth clicks the n-th (zero based) element matching sel via the DOM
func (s *Session) ClickNth(ctx context.Context, sel string, n int) error {
	script := fmt.Sprintf(`(function() {
		const el = document.querySelectorAll(%s)[%d];
		if (!el) return false;
		el.scrollIntoView({block: 'center'});
		el.click();
		return true;
	})()`, jsString(sel), n)

	var clicked bool
	if err := s.run(ctx, s.cfg.WaitDeadline(), chromedp.Evaluate(script, &clicked)); err != nil {
		return err
	}
	if !clicked {
		return fmt.Errorf("%w: %s[%d]", ErrElementNotFound, sel, n)
	}
	return nil
}

// Count returns how many elements currently match sel, without waiting
func (s *Session) Count(ctx context.Context, sel string) (int, error) {
	var n int
	script := fmt.Sprintf(`document.querySelectorAll(%s).length`, jsString(sel))
	if err := s.run(ctx, s.cfg.WaitDeadline(), chromedp.Evaluate(script, &n)); err != nil {
		return 0, err
	}
	return n, nil
}

// ScrollBy dispatches a mouse wheel event of dy pixels at the window centre
func (s *Session) ScrollBy(ctx context.Context, dy float64) error {
	x := float64(s.cfg.WindowWidth) / 2
	y := float64(s.cfg.WindowHeight) / 2
	return s.run(ctx, s.cfg.WaitDeadline(), chromedp.ActionFunc(func(ctx context.Context) error {
		return input.DispatchMouseEvent(input.MouseWheel, x, y).
			WithDeltaX(0).
			WithDeltaY(dy).
			Do(ctx)
	}))
}

// ScrollIntoView scrolls the first element matching sel into the viewport
func (s *Session) ScrollIntoView(ctx context.Context, sel string) error {
	return s.run(ctx, s.cfg.WaitDeadline(), chromedp.ScrollIntoView(sel, chromedp.ByQuery))
}

// Submit replaces the value of the input sel with text and presses Enter
func (s *Session) Submit(ctx context.Context, sel, text string) error {
	return s.run(ctx, s.cfg.WaitDeadline(),
		chromedp.SetValue(sel, "", chromedp.ByQuery),
		chromedp.SendKeys(sel, text+kb.Enter, chromedp.ByQuery),
	)
}

// Evaluate runs script in the page, discarding its result
func (s *Session) Evaluate(ctx context.Context, script string) error {
	return s.run(ctx, s.cfg.WaitDeadline(), chromedp.Evaluate(script, nil))
}

// HTML returns the serialized current document
func (s *Session) HTML(ctx context.Context) (string, error) {
	var html string
	if err := s.run(ctx, s.cfg.WaitDeadline(), chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", err
	}
	return html, nil
}

// Close shuts the tab and the browser process. Safe to call more than once.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()

		if s.cancel != nil {
			s.cancel()
		}
		if s.allocCancel != nil {
			s.allocCancel()
		}
		logger.Info("Browser session closed")
	})
	return nil
}

// jsString renders s as a JavaScript string literal
func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
