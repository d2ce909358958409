package form

import (
	"context"
	"sync"
	"time"

	"github.com/spencer-p/sunrange/pkg/debounce"
	"github.com/spencer-p/sunrange/pkg/history"
	"github.com/spencer-p/sunrange/pkg/owm"
)

// manual is a debounce scheduler whose timers only go off when fired.
type manual struct {
	mu     sync.Mutex
	timers []*manualTimer
}

type manualTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	wasActive := !t.stopped
	t.stopped = true
	return wasActive
}

func (m *manual) after(d time.Duration, f func()) debounce.Stopper {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTimer{d: d, f: f}
	m.timers = append(m.timers, t)
	return t
}

// take removes and returns the timers that are still live.
func (m *manual) take() []*manualTimer {
	m.mu.Lock()
	defer m.mu.Unlock()
	var live []*manualTimer
	for _, t := range m.timers {
		if !t.stopped {
			t.stopped = true
			live = append(live, t)
		}
	}
	m.timers = nil
	return live
}

// fire runs the live timers on the calling goroutine.
func (m *manual) fire() int {
	timers := m.take()
	for _, t := range timers {
		t.f()
	}
	return len(timers)
}

type finderFunc func(ctx context.Context, text string) (owm.FindResult, error)

func (f finderFunc) Find(ctx context.Context, text string) (owm.FindResult, error) {
	return f(ctx, text)
}

type fetcherFunc func(ctx context.Context, q *history.RangeQuery) (history.Records, error)

func (f fetcherFunc) GetRange(ctx context.Context, q *history.RangeQuery) (history.Records, error) {
	return f(ctx, q)
}

// recordingFinder answers every search with the same result and remembers
// what it was asked.
type recordingFinder struct {
	mu     sync.Mutex
	result owm.FindResult
	err    error
	calls  []string
}

func (r *recordingFinder) Find(_ context.Context, text string) (owm.FindResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, text)
	return r.result, r.err
}

func (r *recordingFinder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

var (
	paris = owm.Location{
		ID:    2988507,
		Name:  "Paris",
		Sys:   owm.Sys{Country: "FR"},
		Coord: owm.Coord{Lat: 48.85, Lon: 2.35},
	}
	parisTexas = owm.Location{
		ID:    4717560,
		Name:  "Paris",
		Sys:   owm.Sys{Country: "US"},
		Coord: owm.Coord{Lat: 33.66, Lon: -95.56},
	}
)

func newTestForm(finder LocationFinder, fetcher RangeFetcher) (*Form, *manual) {
	m := &manual{}
	if fetcher == nil {
		fetcher = fetcherFunc(func(context.Context, *history.RangeQuery) (history.Records, error) {
			return history.Records{}, nil
		})
	}
	f := New(Options{
		Finder:  finder,
		Fetcher: fetcher,
		After:   m.after,
	})
	return f, m
}
