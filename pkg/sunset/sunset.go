package sunset

import (
	"time"

	"github.com/spencer-p/sunrange/pkg/timetricks"

	"github.com/keep94/sunrise"
)

// GetDays returns the sun times at place for every day from start to end
// inclusive, in order. Times are in place's time zone (UTC if unset).
func GetDays(start, end time.Time, place Place) []Day {
	loc := place.Location
	if loc == nil {
		loc = time.UTC
	}
	days := timetricks.Days(start.In(loc), end.In(loc))
	if len(days) == 0 {
		return nil
	}

	var s sunrise.Sunrise
	s.Around(place.Lat, place.Long, timetricks.SetClock(days[0], 12, 0))

	// The sunrise package is not very clean with its dates; nudge it onto
	// the first day, but never more than a day either way.
	if !timetricks.SameDay(days[0], s.Sunrise()) {
		if s.Sunrise().Before(days[0]) {
			s.AddDays(1)
		} else {
			s.AddDays(-1)
		}
	}

	ret := make([]Day, len(days))
	for i, d := range days {
		set := s.Sunset()
		ret[i] = Day{
			Date:       d,
			Sunrise:    s.Sunrise(),
			Sunset:     set,
			GoldenHour: set.Add(-GoldenHourLength),
		}
		s.AddDays(1)
	}
	return ret
}
