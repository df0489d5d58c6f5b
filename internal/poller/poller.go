// Package poller runs a callback immediately and then on a fixed interval
// until cancelled.
package poller

import (
	"sync"
	"time"
)

// Handle controls a running poller.
//
// Ticks are emitted from a single goroutine driven by a time.Ticker, so two
// invocations of onTick never overlap. The cadence is wall-clock: if onTick
// runs longer than the interval, the ticker drops the missed ticks and the
// next one fires as soon as onTick returns. Callers doing slow work inside
// onTick get fewer ticks, not queued ones.
type Handle struct {
	stop     chan struct{}
	done     chan struct{}
	mu       sync.Mutex
	canceled bool
	once     sync.Once
}

// Start calls onTick once right away, then every interval until Cancel.
// A non-positive interval panics, matching time.NewTicker.
func Start(interval time.Duration, onTick func(time.Time)) *Handle {
	h := &Handle{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	t := time.NewTicker(interval)
	go h.loop(t, onTick)
	return h
}

func (h *Handle) loop(t *time.Ticker, onTick func(time.Time)) {
	defer close(h.done)
	defer t.Stop()

	if !h.fire(onTick, time.Now()) {
		return
	}
	for {
		select {
		case <-h.stop:
			return
		case now := <-t.C:
			if !h.fire(onTick, now) {
				return
			}
		}
	}
}

// fire runs onTick under the handle lock so that Cancel cannot return while a
// tick is in flight. It reports false once the handle is cancelled.
func (h *Handle) fire(onTick func(time.Time), now time.Time) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.canceled {
		return false
	}
	onTick(now)
	return true
}

// Cancel stops the poller. After Cancel returns, onTick is never invoked
// again. It is safe to call more than once. It must not be called from inside
// onTick.
func (h *Handle) Cancel() {
	h.once.Do(func() {
		h.mu.Lock()
		h.canceled = true
		h.mu.Unlock()
		close(h.stop)
	})
}

// Done is closed once the poller goroutine has exited.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}
