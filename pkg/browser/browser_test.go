package browser

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPollReturnsWhenConditionHolds(t *testing.T) {
	ws := &WaitStrategy{PollInterval: time.Millisecond}
	calls := 0

	err := ws.Poll(context.Background(), time.Second, "third call", func(context.Context) (bool, error) {
		calls++
		return calls == 3, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestPollTimesOut(t *testing.T) {
	ws := &WaitStrategy{PollInterval: time.Millisecond}

	err := ws.Poll(context.Background(), 20*time.Millisecond, "never", func(context.Context) (bool, error) {
		return false, nil
	})

	assert.ErrorIs(t, err, ErrWaitTimeout)
}

func TestPollPropagatesConditionError(t *testing.T) {
	ws := &WaitStrategy{PollInterval: time.Millisecond}
	boom := errors.New("target crashed")

	err := ws.Poll(context.Background(), time.Second, "error", func(context.Context) (bool, error) {
		return false, boom
	})

	assert.ErrorIs(t, err, boom)
}

func TestPollHonoursParentCancel(t *testing.T) {
	ws := &WaitStrategy{PollInterval: time.Millisecond}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ws.Poll(ctx, time.Second, "cancelled", func(context.Context) (bool, error) {
		return false, nil
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestNetworkActivityQuiet(t *testing.T) {
	now := time.Unix(1000, 0)
	a := newNetworkActivity()
	a.now = func() time.Time { return now }
	a.last = now

	a.observe(&network.EventRequestWillBeSent{RequestID: "1"})
	a.observe(&network.EventRequestWillBeSent{RequestID: "2"})
	assert.Equal(t, 2, a.pending())

	now = now.Add(time.Second)
	assert.False(t, a.quietFor(500*time.Millisecond), "requests still in flight")

	a.observe(&network.EventLoadingFinished{RequestID: "1"})
	a.observe(&network.EventLoadingFailed{RequestID: "2"})
	assert.Equal(t, 0, a.pending())
	assert.False(t, a.quietFor(500*time.Millisecond), "activity just ended")

	now = now.Add(600 * time.Millisecond)
	assert.True(t, a.quietFor(500*time.Millisecond))
}

func TestNetworkActivityIgnoresOtherEvents(t *testing.T) {
	start := time.Unix(1000, 0)
	a := newNetworkActivity()
	a.now = func() time.Time { return start.Add(time.Hour) }
	a.last = start

	a.observe(&network.EventResponseReceived{RequestID: "1"})
	assert.Equal(t, start, a.last)
}

func TestResolveChromePathPrefersExplicit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chrome")
	require.NoError(t, os.WriteFile(path, []byte{}, 0o755))

	assert.Equal(t, path, ResolveChromePath(path))
}

func TestJSString(t *testing.T) {
	assert.Equal(t, `"input[name='applecare-options']"`, jsString(`input[name='applecare-options']`))
	assert.Equal(t, `"a\"b"`, jsString(`a"b`))
}
