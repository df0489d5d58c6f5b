package poller

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStart_TicksImmediately(t *testing.T) {
	ticks := make(chan time.Time, 1)
	h := Start(time.Hour, func(now time.Time) {
		select {
		case ticks <- now:
		default:
		}
	})
	defer h.Cancel()

	select {
	case <-ticks:
	case <-time.After(time.Second):
		t.Fatal("expected an immediate tick")
	}
}

func TestStart_TicksAtInterval(t *testing.T) {
	var n atomic.Int32
	h := Start(10*time.Millisecond, func(time.Time) { n.Add(1) })
	defer h.Cancel()

	require.Eventually(t, func() bool { return n.Load() >= 3 }, time.Second, 5*time.Millisecond)
}

func TestCancel_NoTickAfterCancel(t *testing.T) {
	var n atomic.Int32
	h := Start(5*time.Millisecond, func(time.Time) { n.Add(1) })

	require.Eventually(t, func() bool { return n.Load() >= 1 }, time.Second, time.Millisecond)
	h.Cancel()
	after := n.Load()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, n.Load(), "onTick fired after Cancel returned")

	select {
	case <-h.Done():
	case <-time.After(time.Second):
		t.Fatal("poller goroutine did not exit")
	}
}

func TestCancel_WaitsForInFlightTick(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var finished atomic.Bool

	h := Start(time.Hour, func(time.Time) {
		close(entered)
		<-release
		finished.Store(true)
	})
	<-entered

	canceled := make(chan struct{})
	go func() {
		h.Cancel()
		close(canceled)
	}()

	select {
	case <-canceled:
		t.Fatal("Cancel returned while a tick was running")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	<-canceled
	assert.True(t, finished.Load())
}

func TestCancel_Idempotent(t *testing.T) {
	h := Start(time.Millisecond, func(time.Time) {})
	h.Cancel()
	h.Cancel()
	<-h.Done()
}
