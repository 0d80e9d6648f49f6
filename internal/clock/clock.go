// Package clock schedules the engine's recurring tick and its deferred actions.
//
// Real drives callbacks from the runtime timers. Manual advances only when told
// to, which makes tick-by-tick tests deterministic.
package clock

import (
	"sync"
	"time"
)

// Cancel stops a scheduled callback. Calling it more than once is safe.
type Cancel func()

// Clock schedules callbacks.
type Clock interface {
	// Every calls fn once per period until cancelled.
	Every(period time.Duration, fn func()) Cancel
	// After calls fn once after delay unless cancelled first.
	After(delay time.Duration, fn func()) Cancel
}

// Real is a Clock backed by time.Ticker and time.AfterFunc.
type Real struct{}

// Every starts a goroutine that calls fn on every tick. Cancel does not wait
// for an in-flight call to finish.
func (Real) Every(period time.Duration, fn func()) Cancel {
	ticker := time.NewTicker(period)
	done := make(chan struct{})

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				select {
				case <-done:
					return
				default:
				}
				fn()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}

// After wraps time.AfterFunc.
func (Real) After(delay time.Duration, fn func()) Cancel {
	t := time.AfterFunc(delay, fn)
	return func() { t.Stop() }
}

var _ Clock = Real{}
