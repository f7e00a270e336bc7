// Package debounce coalesces bursts of trigger events into a single invocation.
package debounce

import (
	"sync"
	"time"
)

// Debouncer invokes fn with the most recently triggered value once no further
// trigger has arrived for the configured interval. Last write wins; earlier
// values in a burst are discarded. Intended for idempotent, side-effect-free
// recomputation driven by rapid input.
type Debouncer[T any] struct {
	interval time.Duration
	fn       func(T)

	mu      sync.Mutex
	timer   *time.Timer
	last    T
	stopped bool
}

func New[T any](interval time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{interval: interval, fn: fn}
}

// Trigger records v and restarts the quiet-period timer.
func (d *Debouncer[T]) Trigger(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.last = v
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.fire)
}

func (d *Debouncer[T]) fire() {
	d.mu.Lock()
	v := d.last
	stopped := d.stopped
	d.mu.Unlock()

	if !stopped {
		d.fn(v)
	}
}

// Stop discards any pending invocation; further triggers are ignored.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}
