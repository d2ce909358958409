package form

import (
	"github.com/spencer-p/sunrange/pkg/history"
	"github.com/spencer-p/sunrange/pkg/owm"
)

// State is everything the form displays.
type State struct {
	// Search box.
	Query       string      `json:"query"`
	Candidates  []Candidate `json:"candidates"`
	Loading     bool        `json:"loading"`
	SearchError string      `json:"search_error"`

	// Location is what the user picked from the candidates.
	Location Selection `json:"location"`

	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	DateError string `json:"date_error"`

	// Submitted echoes the most recent submission as soon as it is made.
	Submitted   Request         `json:"submitted"`
	Records     history.Records `json:"records"`
	SubmitError string          `json:"submit_error"`

	// Completed is set once any submission has settled.
	Completed bool `json:"completed"`
}

// Selection is the chosen location. The coordinates are cleared by a new
// search even though the name may survive it.
type Selection struct {
	Name        string     `json:"name"`
	Coordinates *owm.Coord `json:"coordinates"`
}

// Request is a snapshot of the form taken at submission.
type Request struct {
	LocationName string   `json:"location_name"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
}

// Valid reports whether the form may be submitted: a location has been
// chosen and both dates are filled in. The order of the dates is not checked
// here; DateError is advisory.
func (s State) Valid() bool {
	return s.Location.Name != "" && s.StartDate != "" && s.EndDate != ""
}

// ShowTable reports whether the result table is displayed. An error always
// hides it, whatever records are left over.
func (s State) ShowTable() bool {
	return s.Completed && s.SubmitError == ""
}

func (s State) request() Request {
	r := Request{
		LocationName: s.Location.Name,
		StartDate:    s.StartDate,
		EndDate:      s.EndDate,
	}
	if c := s.Location.Coordinates; c != nil {
		lat, lon := c.Lat, c.Lon
		r.Latitude, r.Longitude = &lat, &lon
	}
	return r
}

func (r Request) query() *history.RangeQuery {
	return &history.RangeQuery{
		LocationName: r.LocationName,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
	}
}

// clone copies s so that the copy shares no slices or pointers with it.
func (s State) clone() State {
	c := s
	c.Candidates = append([]Candidate{}, s.Candidates...)
	c.Records = append(history.Records{}, s.Records...)
	if s.Location.Coordinates != nil {
		coord := *s.Location.Coordinates
		c.Location.Coordinates = &coord
	}
	return c
}
