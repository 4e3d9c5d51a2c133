package browser

import (
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
)

// networkActivity counts in-flight requests from CDP network events
type networkActivity struct {
	mu       sync.Mutex
	inflight map[network.RequestID]struct{}
	last     time.Time
	now      func() time.Time
}

func newNetworkActivity() *networkActivity {
	return &networkActivity{
		inflight: make(map[network.RequestID]struct{}),
		last:     time.Now(),
		now:      time.Now,
	}
}

func (a *networkActivity) observe(ev interface{}) {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch e := ev.(type) {
	case *network.EventRequestWillBeSent:
		a.inflight[e.RequestID] = struct{}{}
	case *network.EventLoadingFinished:
		delete(a.inflight, e.RequestID)
	case *network.EventLoadingFailed:
		delete(a.inflight, e.RequestID)
	default:
		return
	}
	a.last = a.now()
}

// quietFor reports whether no request is in flight and none started or
// ended during the last d
func (a *networkActivity) quietFor(d time.Duration) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.inflight) == 0 && a.now().Sub(a.last) >= d
}

func (a *networkActivity) pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.inflight)
}
