// Package form holds the state of the sunrise/sunset range form: a location
// search box with debounced suggestions, a pair of date inputs, and the
// submission of the range to the backend.
//
// A Form is a single logical actor. Its event methods (SetQuery, Select,
// SetStartDate, SetEndDate, Submit) may be called from any goroutine, and
// network calls settle in whatever order they finish: the last one to settle
// writes the state it owns.
package form

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/spencer-p/sunrange/pkg/debounce"
	"github.com/spencer-p/sunrange/pkg/history"
	"github.com/spencer-p/sunrange/pkg/owm"
)

// DefaultDelay is how long the search box must be quiet before a lookup.
const DefaultDelay = 500 * time.Millisecond

// Messages shown to the user.
const (
	MsgNoLocations  = "No locations found. Please try again."
	MsgLookupFailed = "An error occurred while fetching the data."
	MsgDateOrder    = "End date must be greater than or equal to start date"
	MsgUnreachable  = "Network error: Unable to reach the server."
	MsgSubmitFailed = "An error occurred while fetching the historical data."
)

// Candidate is a location offered by a search.
type Candidate = owm.Location

// LocationFinder searches for locations by free text.
type LocationFinder interface {
	Find(ctx context.Context, text string) (owm.FindResult, error)
}

// RangeFetcher retrieves the stored records of a location over a date range.
type RangeFetcher interface {
	GetRange(ctx context.Context, q *history.RangeQuery) (history.Records, error)
}

// Options configure a Form. Finder and Fetcher are required.
type Options struct {
	Finder  LocationFinder
	Fetcher RangeFetcher

	// Delay is the debounce interval for lookups; DefaultDelay if zero.
	Delay time.Duration

	// OnSubmit receives the records of every completed submission, or an
	// empty slice when it failed.
	OnSubmit func(history.Records)

	// Logger receives failed lookups and submissions. Nil disables logging.
	Logger *zerolog.Logger

	// After replaces time.AfterFunc for the debounce timer.
	After debounce.AfterFunc
}

// Form is the state machine behind the range form.
type Form struct {
	mu    sync.Mutex
	state State

	finder   LocationFinder
	fetcher  RangeFetcher
	onSubmit func(history.Records)
	log      zerolog.Logger
	lookups  *debounce.Debouncer[string]
}

// New creates an empty Form. It panics if Finder or Fetcher is nil.
func New(opts Options) *Form {
	if opts.Finder == nil || opts.Fetcher == nil {
		panic("form: Options.Finder and Options.Fetcher are required")
	}
	delay := opts.Delay
	if delay == 0 {
		delay = DefaultDelay
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	f := &Form{
		finder:   opts.Finder,
		fetcher:  opts.Fetcher,
		onSubmit: opts.OnSubmit,
		log:      logger.With().Str("component", "form").Logger(),
	}
	f.lookups = debounce.NewWithScheduler(delay, f.lookup, opts.After)
	return f
}

// State returns a copy of the current display state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.clone()
}

// Close drops any lookup still waiting on the debounce timer. Calls already
// in flight run to completion.
func (f *Form) Close() {
	f.lookups.Cancel()
}
