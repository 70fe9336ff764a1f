// Package schedule runs one-shot deferred actions. It exists so callers
// that fire a delayed cleanup (the webhook handler deleting its own
// greeting) can be driven deterministically in tests instead of sleeping.
package schedule

import (
	"sync"
	"time"
)

// Runner schedules a function to run once after a delay.
type Runner interface {
	AfterFunc(d time.Duration, fn func())
}

// TimerRunner is the wall-clock Runner. Pending actions are fire-and-forget:
// if the process exits before the delay elapses, they simply never run.
type TimerRunner struct {
	mu      sync.Mutex
	stopped bool
	timers  []*time.Timer
}

func NewTimerRunner() *TimerRunner { return &TimerRunner{} }

func (r *TimerRunner) AfterFunc(d time.Duration, fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return
	}
	r.timers = append(r.timers, time.AfterFunc(d, fn))
}

// Stop cancels everything still pending. Actions already running are not
// interrupted.
func (r *TimerRunner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopped = true
	for _, t := range r.timers {
		t.Stop()
	}
	r.timers = nil
}
