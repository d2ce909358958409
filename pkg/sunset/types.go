package sunset

import (
	"fmt"
	"time"
)

const (
	// ClockFormat is how sun times are written out.
	ClockFormat = "3:04:05 PM"

	// GoldenHourLength is how long before sunset the golden hour starts.
	GoldenHourLength = time.Hour
)

// Place is a lat/long coordinate on the Earth matched with its time zone.
type Place struct {
	Lat, Long float64
	Location  *time.Location
}

var (
	SantaCruz = Place{
		36.9741, -122.0308,
		locationOrPanic("America/Los_Angeles"),
	}
)

// Day holds the sun times of one calendar day at a Place.
type Day struct {
	Date       time.Time
	Sunrise    time.Time
	Sunset     time.Time
	GoldenHour time.Time
}

func (d *Day) String() string {
	return fmt.Sprintf("%s sunrise %s sunset %s golden hour %s",
		d.Date.Format("2006-01-02"),
		d.Sunrise.Format(ClockFormat),
		d.Sunset.Format(ClockFormat),
		d.GoldenHour.Format(ClockFormat))
}

func locationOrPanic(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}
