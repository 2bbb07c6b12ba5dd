// Package timer provides an asynchronous periodic timer with both
// duration based and timepoint based periods.
//
// The callback runs on a dedicated goroutine and receives the elapsed
// time since the previous invocation. Returning false from the callback
// stops the timer; a one-shot timer is simply a callback that returns
// false on its first call.
package timer

import (
	"sync"
	"time"
)

// Callback is invoked on every timer expiry with the elapsed time since
// the previous expiry (or since Start for the first one). Returning
// false stops the timer.
type Callback func(elapsed time.Duration) bool

// PeriodicTimer repeatedly invokes a callback. The zero value is ready
// to use. Starting an already-running timer cancels the previous run
// first. All methods are safe for concurrent use.
type PeriodicTimer struct {
	mu     sync.Mutex
	cancel chan struct{}
}

// Start begins invoking cb every period, measured from each previous
// expiry. The first invocation happens one period from now.
func (t *PeriodicTimer) Start(period time.Duration, cb Callback) {
	done := t.rearm()
	go runDuration(done, period, cb)
}

// StartAt begins invoking cb every period, with expiries anchored to
// the timepoint tp: the first invocation happens at tp (immediately if
// tp is in the past), subsequent ones at tp+period, tp+2*period and so
// on. Anchoring means callback processing time does not drift the
// schedule.
func (t *PeriodicTimer) StartAt(tp time.Time, period time.Duration, cb Callback) {
	done := t.rearm()
	go runTimepoint(done, tp, period, cb)
}

// Cancel stops the timer. No further callbacks are invoked after Cancel
// returns, except for one that may already be in progress. Cancel is
// idempotent and safe to call on a timer that was never started.
func (t *PeriodicTimer) Cancel() {
	t.mu.Lock()
	t.stopLocked()
	t.mu.Unlock()
}

func (t *PeriodicTimer) rearm() chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
	t.cancel = make(chan struct{})
	return t.cancel
}

func (t *PeriodicTimer) stopLocked() {
	if t.cancel != nil {
		close(t.cancel)
		t.cancel = nil
	}
}

func runDuration(done <-chan struct{}, period time.Duration, cb Callback) {
	last := time.Now()
	tm := time.NewTimer(period)
	defer tm.Stop()
	for {
		select {
		case <-done:
			return
		case now := <-tm.C:
			if !cb(now.Sub(last)) {
				return
			}
			last = now
			tm.Reset(period)
		}
	}
}

func runTimepoint(done <-chan struct{}, next time.Time, period time.Duration, cb Callback) {
	last := time.Now()
	tm := time.NewTimer(time.Until(next))
	defer tm.Stop()
	for {
		select {
		case <-done:
			return
		case now := <-tm.C:
			if !cb(now.Sub(last)) {
				return
			}
			last = now
			next = next.Add(period)
			tm.Reset(time.Until(next))
		}
	}
}
