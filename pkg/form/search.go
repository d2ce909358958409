package form

import (
	"context"
	"strings"

	"github.com/spencer-p/sunrange/pkg/metrics"
)

// SetQuery records text typed into the search box. Empty text clears the
// suggestions and the chosen coordinates at once and makes no call; anything
// else schedules a lookup for when typing pauses.
func (f *Form) SetQuery(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.state.Query = text
	if text == "" {
		f.state.Candidates = nil
		f.state.SearchError = ""
		f.state.Location.Coordinates = nil
		f.lookups.Cancel()
		return
	}
	f.lookups.Call(text)
}

// Select chooses a candidate. Its display name replaces the query, its
// coordinates are kept for submission, and the suggestions close.
func (f *Form) Select(c Candidate) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selectLocked(c)
}

// SelectID selects the current candidate with the given id. It reports false,
// changing nothing, if there is no such candidate.
func (f *Form) SelectID(id int) (Candidate, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, c := range f.state.Candidates {
		if c.ID == id {
			f.selectLocked(c)
			return c, true
		}
	}
	return Candidate{}, false
}

func (f *Form) selectLocked(c Candidate) {
	name := c.DisplayName()
	coord := c.Coord
	f.state.Query = name
	f.state.Location = Selection{
		Name:        name,
		Coordinates: &coord,
	}
	f.state.Candidates = nil
}

// lookup runs when the debounce timer fires, with the latest query text.
func (f *Form) lookup(text string) {
	f.mu.Lock()
	if strings.TrimSpace(text) == "" {
		f.state.Candidates = nil
		f.state.SearchError = ""
		f.mu.Unlock()
		return
	}
	f.state.Loading = true
	f.state.SearchError = ""
	f.mu.Unlock()

	res, err := f.finder.Find(context.Background(), text)

	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case err != nil:
		f.log.Error().Err(err).Str("query", text).Msg("Error fetching locations")
		metrics.ObserveLookup(metrics.LookupError)
		f.state.SearchError = MsgLookupFailed
		f.state.Candidates = nil
		f.state.Location = Selection{}
	case res.Count == 0:
		metrics.ObserveLookup(metrics.LookupEmpty)
		f.state.SearchError = MsgNoLocations
		f.state.Candidates = nil
		f.state.Location = Selection{}
	default:
		metrics.ObserveLookup(metrics.LookupFound)
		f.state.Candidates = append([]Candidate(nil), res.List...)
		// A fresh list means the user has to pick again.
		f.state.Location.Coordinates = nil
	}
	f.state.Loading = false
}
