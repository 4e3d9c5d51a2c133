package apple

import (
	"context"
	"time"
)

// Page is the browser tab the driver and extractor operate on.
// Deadlines are enforced by the implementation.
type Page interface {
	Navigate(ctx context.Context, url string) error
	WaitVisible(ctx context.Context, sel string, timeout time.Duration) error
	WaitIdle(ctx context.Context, timeout time.Duration) error
	Click(ctx context.Context, sel string) error
	ClickNth(ctx context.Context, sel string, n int) error
	Count(ctx context.Context, sel string) (int, error)
	ScrollBy(ctx context.Context, dy float64) error
	ScrollIntoView(ctx context.Context, sel string) error
	Submit(ctx context.Context, sel, text string) error
	Evaluate(ctx context.Context, script string) error
	HTML(ctx context.Context) (string, error)
}

// PageSession is a Page that owns a browser and must be closed
type PageSession interface {
	Page
	Close() error
}
