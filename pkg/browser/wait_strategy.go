package browser

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// WaitStrategy polls a condition until it holds or the deadline passes
type WaitStrategy struct {
	PollInterval time.Duration
}

// NewWaitStrategy creates a wait strategy with defaults
func NewWaitStrategy() *WaitStrategy {
	return &WaitStrategy{PollInterval: 100 * time.Millisecond}
}

// Condition reports whether the awaited state has been reached
type Condition func(ctx context.Context) (bool, error)

// Poll evaluates cond every PollInterval until it returns true, returns an
// error, or timeout elapses. A timeout is reported as ErrWaitTimeout.
func (ws *WaitStrategy) Poll(ctx context.Context, timeout time.Duration, what string, cond Condition) error {
	deadlineCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(ws.PollInterval)
	defer ticker.Stop()

	for {
		ok, err := cond(deadlineCtx)
		// errors caused by our own deadline are reported as a timeout below
		if err != nil && deadlineCtx.Err() == nil && !errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		if ok {
			return nil
		}

		select {
		case <-deadlineCtx.Done():
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("%w after %v: %s", ErrWaitTimeout, timeout, what)
		case <-ticker.C:
		}
	}
}
