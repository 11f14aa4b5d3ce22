// Package debounce provides an explicit timer-owning debouncer.
//
// The debouncer coalesces bursts of events into a single deferred call: each
// Trigger restarts the quiet-period timer, so only the last call in a burst
// fires. Owners must call Cancel on teardown so no timer fires after the
// owning view is gone.
package debounce

import (
	"sync"
	"time"
)

// Debouncer defers a function until a quiet period has elapsed since the
// last Trigger. The zero value is not usable; construct with New.
type Debouncer struct {
	wait time.Duration
	fn   func()

	mu    sync.Mutex
	timer *time.Timer
}

// New returns a Debouncer that invokes fn once per quiet period of wait.
func New(wait time.Duration, fn func()) *Debouncer {
	return &Debouncer{wait: wait, fn: fn}
}

// Trigger schedules fn after the quiet period, replacing any pending
// invocation. The last Trigger in a burst wins.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.wait, func() {
		d.mu.Lock()
		d.timer = nil
		d.mu.Unlock()
		d.fn()
	})
}

// Cancel drops any pending invocation. Safe to call repeatedly and after
// the debouncer has fired.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Flush fires a pending invocation immediately instead of waiting out the
// quiet period. A no-op when nothing is pending.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	pending := d.timer != nil
	if pending {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
	if pending {
		d.fn()
	}
}

// Pending reports whether an invocation is currently scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}
