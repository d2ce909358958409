package owm

import (
	"fmt"
)

// FindResult is the data type returned by the find API.
type FindResult struct {
	Count int        `json:"count"`
	List  []Location `json:"list"`
}

// Location is a single place returned by a search.
type Location struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Sys   Sys    `json:"sys"`
	Coord Coord  `json:"coord"`
}

// Sys carries the country code of a Location.
type Sys struct {
	Country string `json:"country"`
}

// Coord is a lat/lon pair in degrees.
type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// DisplayName is the name shown for a Location once it has been chosen, e.g.
// "Paris, FR".
func (l Location) DisplayName() string {
	return fmt.Sprintf("%s, %s", l.Name, l.Sys.Country)
}

func (l Location) String() string {
	return fmt.Sprintf("{id: %d, name: %s, lat: %.4f, lon: %.4f}",
		l.ID,
		l.DisplayName(),
		l.Coord.Lat,
		l.Coord.Lon)
}

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("find: status %d: %s", e.Code, e.Body)
}
