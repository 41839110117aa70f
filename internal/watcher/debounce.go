package watcher

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of triggers into a single callback that runs
// once no trigger has arrived for the configured delay. Editors and our own
// temp-file-then-rename saves produce several events per write.
type Debouncer struct {
	delay    time.Duration
	timer    *time.Timer
	callback func()
	stopped  bool
	mu       sync.Mutex
}

// NewDebouncer creates a Debouncer that calls callback after delay of quiet.
func NewDebouncer(delay time.Duration, callback func()) *Debouncer {
	return &Debouncer{
		delay:    delay,
		callback: callback,
	}
}

// Trigger (re)starts the quiet period.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}

	var fire *time.Timer
	fire = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// A newer Trigger replaced this timer; let that one fire instead.
		if d.timer != fire || d.stopped {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()

		if d.callback != nil {
			d.callback()
		}
	})
	d.timer = fire
}

// Pending reports whether a callback is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Stop cancels any scheduled callback and ignores later triggers.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// GetDelay returns the configured debounce delay.
func (d *Debouncer) GetDelay() time.Duration {
	return d.delay
}
