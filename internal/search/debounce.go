package search

import (
	"sync"
	"time"
)

// DefaultDebounce is the trailing window for coalescing bursts of input.
const DefaultDebounce = 200 * time.Millisecond

// Debouncer coalesces bursts of calls: only the function passed to the last
// Do within the window runs, after the window elapses. Earlier calls are
// dropped, matching keystroke coalescing where only the final query after a
// pause is evaluated.
type Debouncer struct {
	window time.Duration
	mu     sync.Mutex
	timer  *time.Timer
}

// NewDebouncer creates a debouncer; a non-positive window uses the default.
func NewDebouncer(window time.Duration) *Debouncer {
	if window <= 0 {
		window = DefaultDebounce
	}
	return &Debouncer{window: window}
}

// Do schedules fn after the window, cancelling any pending call.
func (d *Debouncer) Do(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, fn)
}

// Stop cancels any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
