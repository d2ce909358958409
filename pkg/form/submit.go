package form

import (
	"context"
	"errors"
	"fmt"

	"github.com/spencer-p/sunrange/pkg/history"
	"github.com/spencer-p/sunrange/pkg/metrics"
)

// ErrIncomplete is returned by Submit when the form is not Valid.
var ErrIncomplete = errors.New("form: a location, start date and end date are required")

// Outcome is the result of one submission: the records on success, or the
// message shown in their place.
type Outcome struct {
	Request Request
	Records history.Records
	Failure string
}

// OK reports whether the submission succeeded.
func (o Outcome) OK() bool {
	return o.Failure == ""
}

// Valid reports whether the form can be submitted; see State.Valid.
func (f *Form) Valid() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.Valid()
}

// Submit sends the chosen location and dates to the backend and waits for the
// answer. The submitted values are echoed into the state before the call is
// made. Failures are not returned as errors: they become the Outcome's
// Failure and the state's SubmitError. The only error is ErrIncomplete, in
// which case nothing else happens.
func (f *Form) Submit(ctx context.Context) (Outcome, error) {
	f.mu.Lock()
	if !f.state.Valid() {
		f.mu.Unlock()
		return Outcome{}, ErrIncomplete
	}
	req := f.state.request()
	f.state.Submitted = req
	f.state.SubmitError = ""
	f.mu.Unlock()

	records, err := f.fetcher.GetRange(ctx, req.query())

	out := Outcome{Request: req}
	if err != nil {
		msg, outcome := describe(err)
		f.log.Error().
			Err(err).
			Str("location_name", req.LocationName).
			Str("start_date", req.StartDate).
			Str("end_date", req.EndDate).
			Msg("Error sending data to the API")
		metrics.ObserveSubmission(outcome)
		out.Failure = msg
		records = history.Records{}
	} else {
		metrics.ObserveSubmission(metrics.SubmitOK)
		if records == nil {
			records = history.Records{}
		}
		out.Records = records
	}

	f.mu.Lock()
	f.state.Records = records
	f.state.SubmitError = out.Failure
	f.state.Completed = true
	f.mu.Unlock()

	if f.onSubmit != nil {
		f.onSubmit(append(history.Records{}, records...))
	}
	return out, nil
}

// describe picks the message for a failed submission and its metrics label.
func describe(err error) (string, string) {
	var se *history.StatusError
	var nre *history.NoResponseError
	switch {
	case errors.As(err, &se):
		return fmt.Sprintf("Error: %d - %s", se.Code, se.Message), metrics.SubmitStatus
	case errors.As(err, &nre):
		return MsgUnreachable, metrics.SubmitNetwork
	default:
		return MsgSubmitFailed, metrics.SubmitOther
	}
}
