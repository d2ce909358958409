package history

import (
	"fmt"
	"net/url"
	"strconv"
)

// Record is one day of sun information for a location. The time fields are
// passed through as the backend formats them.
type Record struct {
	ID         int    `json:"id"`
	Date       string `json:"information_date"`
	Sunrise    string `json:"sunrise"`
	Sunset     string `json:"sunset"`
	GoldenHour string `json:"golden_hour"`
}

// Records is an ordered series of Record, one per day.
type Records []Record

// RangeQuery asks for the records of a location between two dates inclusive.
// Dates are formatted YYYY-MM-DD. Coordinates are optional and left out of the
// request when nil.
type RangeQuery struct {
	LocationName string
	Latitude     *float64
	Longitude    *float64
	StartDate    string
	EndDate      string
}

func (q *RangeQuery) build() url.Values {
	vals := make(url.Values)
	vals.Add("location_name", q.LocationName)
	if q.Latitude != nil {
		vals.Add("latitude", strconv.FormatFloat(*q.Latitude, 'f', -1, 64))
	}
	if q.Longitude != nil {
		vals.Add("longitude", strconv.FormatFloat(*q.Longitude, 'f', -1, 64))
	}
	vals.Add("start_date", q.StartDate)
	vals.Add("end_date", q.EndDate)
	return vals
}

func (r Record) String() string {
	return fmt.Sprintf("{date: %s, sunrise: %s, sunset: %s, golden_hour: %s}",
		r.Date,
		r.Sunrise,
		r.Sunset,
		r.GoldenHour)
}
