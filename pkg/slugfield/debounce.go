package slugfield

import (
	"sync"
	"time"
)

// Debouncer runs the most recent function passed to Call once no further
// call has arrived for the configured delay. Every Call fully restarts the
// timer; at most one function is pending at a time.
type Debouncer struct {
	mu      sync.Mutex
	wg      sync.WaitGroup
	timer   *time.Timer
	delay   time.Duration
	gen     uint64
	stopped bool
}

// NewDebouncer creates a debouncer with the given quiet period.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: max(delay, 0)}
}

// Call schedules fn, replacing any pending function.
// Calls after Stop are ignored.
func (d *Debouncer) Call(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.cancelLocked()

	gen := d.gen
	d.wg.Add(1)
	d.timer = time.AfterFunc(d.delay, func() {
		defer d.wg.Done()

		d.mu.Lock()
		current := gen == d.gen && !d.stopped
		if current {
			d.timer = nil
		}
		d.mu.Unlock()

		if current {
			fn()
		}
	})
}

// Cancel drops the pending function, if any. It reports whether one was pending.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cancelLocked()
}

// Stop cancels the pending function, rejects further calls and waits for a
// function that is already running to return.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	d.cancelLocked()
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Debouncer) cancelLocked() bool {
	// A timer that already fired sees the new generation and does nothing.
	d.gen++
	if d.timer == nil {
		return false
	}
	t := d.timer
	d.timer = nil
	if t.Stop() {
		d.wg.Done()
		return true
	}
	return false
}
