package sunset

import (
	"testing"
	"time"

	"github.com/spencer-p/sunrange/pkg/timetricks"
)

func TestGetDays(t *testing.T) {
	start := time.Date(2020, time.October, 25, 0, 0, 0, 0, SantaCruz.Location)
	end := time.Date(2020, time.October, 29, 0, 0, 0, 0, SantaCruz.Location)
	days := GetDays(start, end, SantaCruz)

	if len(days) != 5 {
		t.Fatalf("got %d days, want 5", len(days))
	}
	for i, d := range days {
		wantDate := start.AddDate(0, 0, i)
		if !d.Date.Equal(wantDate) {
			t.Errorf("day %d is %v, want %v", i, d.Date, wantDate)
		}
		if !timetricks.SameDay(d.Sunrise, wantDate) || !timetricks.SameDay(d.Sunset, wantDate) {
			t.Errorf("day %d: sun times %v / %v fall on another day", i, d.Sunrise, d.Sunset)
		}
		// Late October in Santa Cruz: sunrise after 7 AM, sunset after 6 PM.
		if h := d.Sunrise.Hour(); h != 7 {
			t.Errorf("day %d: sunrise at %s", i, d.Sunrise.Format(ClockFormat))
		}
		if h := d.Sunset.Hour(); h != 18 {
			t.Errorf("day %d: sunset at %s", i, d.Sunset.Format(ClockFormat))
		}
		if got := d.Sunset.Sub(d.GoldenHour); got != GoldenHourLength {
			t.Errorf("day %d: golden hour starts %v before sunset", i, got)
		}
	}

	// Days get shorter through the autumn.
	first := days[0].Sunset.Sub(days[0].Sunrise)
	last := days[4].Sunset.Sub(days[4].Sunrise)
	if last >= first {
		t.Errorf("day length grew from %v to %v", first, last)
	}
}

func TestGetDaysReversed(t *testing.T) {
	start := time.Date(2020, time.October, 25, 0, 0, 0, 0, time.UTC)
	if days := GetDays(start, start.AddDate(0, 0, -3), SantaCruz); days != nil {
		t.Errorf("got %d days for a reversed range", len(days))
	}
}

func TestGetDaysDefaultsToUTC(t *testing.T) {
	start := time.Date(2024, time.June, 21, 0, 0, 0, 0, time.UTC)
	days := GetDays(start, start, Place{Lat: 51.5072, Long: -0.1276})
	if len(days) != 1 {
		t.Fatalf("got %d days, want 1", len(days))
	}
	if loc := days[0].Sunrise.Location().String(); loc != "UTC" {
		t.Errorf("sunrise in %v, want UTC", loc)
	}
	if !days[0].Sunrise.Before(days[0].Sunset) {
		t.Errorf("sunrise %v not before sunset %v", days[0].Sunrise, days[0].Sunset)
	}
}
