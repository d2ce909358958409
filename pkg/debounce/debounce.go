// Package debounce delays an action until a burst of calls has been quiet for
// a fixed interval, then runs it once with the last value of the burst.
package debounce

import (
	"sync"
	"time"
)

// Stopper is the part of *time.Timer a Debouncer needs.
type Stopper interface {
	Stop() bool
}

// AfterFunc schedules f to run after d, like time.AfterFunc.
type AfterFunc func(d time.Duration, f func()) Stopper

func realAfterFunc(d time.Duration, f func()) Stopper {
	return time.AfterFunc(d, f)
}

// Debouncer collapses calls made within Delay of each other into one call of
// its function. It is safe for concurrent use.
type Debouncer[T any] struct {
	mu     sync.Mutex
	delay  time.Duration
	after  AfterFunc
	fn     func(T)
	timer  Stopper
	latest T
	// gen invalidates timers that fired while a newer call was being made.
	gen uint64
}

// New returns a Debouncer that runs fn on its own goroutine once calls to
// Call have stopped for delay.
func New[T any](delay time.Duration, fn func(T)) *Debouncer[T] {
	return NewWithScheduler(delay, fn, realAfterFunc)
}

// NewWithScheduler is like New with the timer factored out.
func NewWithScheduler[T any](delay time.Duration, fn func(T), after AfterFunc) *Debouncer[T] {
	if after == nil {
		after = realAfterFunc
	}
	return &Debouncer[T]{
		delay: delay,
		after: after,
		fn:    fn,
	}
}

// Call records v as the latest value and restarts the quiet period.
func (d *Debouncer[T]) Call(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.latest = v
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
	}
	gen := d.gen
	d.timer = d.after(d.delay, func() { d.fire(gen) })
}

// Cancel drops any pending call.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Pending reports whether a call is waiting for its quiet period to end.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen {
		// Superseded after the timer had already gone off.
		d.mu.Unlock()
		return
	}
	v := d.latest
	d.timer = nil
	d.mu.Unlock()

	d.fn(v)
}
