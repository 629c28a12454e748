package view

import (
	"math"
	"sync"
	"time"
)

// DefaultResizeThreshold ignores sub-pixel reflow jitter while still
// reacting to real container changes.
const DefaultResizeThreshold = 8.0

// Controller tracks the last applied container size and decides whether a
// reported size warrants a re-layout. The last size only advances on an
// accepted observation, so repeated small deltas accumulate until they
// cross the threshold instead of drifting unnoticed.
type Controller struct {
	threshold float64
	w, h      float64
	seen      bool
}

func NewController(threshold float64) *Controller {
	if threshold <= 0 {
		threshold = DefaultResizeThreshold
	}
	return &Controller{threshold: threshold}
}

// Observe reports whether layout must be recomputed for the given size.
// The first observation always triggers.
func (c *Controller) Observe(w, h float64) bool {
	if !c.seen {
		c.w, c.h = w, h
		c.seen = true
		return true
	}
	if math.Abs(w-c.w) < c.threshold && math.Abs(h-c.h) < c.threshold {
		return false
	}
	c.w, c.h = w, h
	return true
}

// Size returns the last applied dimensions.
func (c *Controller) Size() (w, h float64) {
	return c.w, c.h
}

// Debouncer coalesces bursts of triggers into one callback after a quiet
// window. It stands in for the debounced window-resize fallback used when
// native box observation is unavailable.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	fn    func()
}

func NewDebouncer(delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Trigger schedules (or reschedules) the callback.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fn)
}

// Stop cancels any pending callback.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
