// Package backend serves the information range endpoint that the form
// submits to. Each day is computed once with package sunset, stored, and
// served from the store afterwards.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/spencer-p/sunrange/pkg/cache"
	"github.com/spencer-p/sunrange/pkg/data"
	"github.com/spencer-p/sunrange/pkg/history"
	"github.com/spencer-p/sunrange/pkg/sunset"
	"github.com/spencer-p/sunrange/pkg/timetricks"
)

// MaxDays bounds the length of a single range.
const MaxDays = 366

// Store holds computed location information.
type Store interface {
	Range(ctx context.Context, key data.Key, start, end string) ([]data.LocationInformation, error)
	Insert(ctx context.Context, infos []data.LocationInformation) error
}

// Server answers range queries from a Store.
type Server struct {
	store Store
	cache *cache.Timed
	log   zerolog.Logger
}

// NewServer returns a Server whose encoded responses are cached for ttl.
func NewServer(store Store, ttl time.Duration, logger zerolog.Logger) *Server {
	return &Server{
		store: store,
		cache: cache.NewTimed(ttl),
		log:   logger,
	}
}

// Register adds the server's routes to r.
func Register(r *mux.Router, s *Server) {
	r.Handle(history.RANGE_PATH, s.rangeHandler()).Methods(http.MethodGet)
}

// query is a validated range request.
type query struct {
	key        data.Key
	start, end time.Time
}

type validationError string

func (e validationError) Error() string { return string(e) }

func parseQuery(r *http.Request) (*query, error) {
	vals := r.URL.Query()

	name := vals.Get("location_name")
	if name == "" {
		return nil, validationError("location_name is required")
	}

	lat, err := parseCoord(vals.Get("latitude"), "latitude", 90)
	if err != nil {
		return nil, err
	}
	lon, err := parseCoord(vals.Get("longitude"), "longitude", 180)
	if err != nil {
		return nil, err
	}

	start, err := timetricks.ParseDate(vals.Get("start_date"), time.UTC)
	if err != nil {
		return nil, validationError("start_date must be a date formatted YYYY-MM-DD")
	}
	end, err := timetricks.ParseDate(vals.Get("end_date"), time.UTC)
	if err != nil {
		return nil, validationError("end_date must be a date formatted YYYY-MM-DD")
	}
	if end.Before(start) {
		return nil, validationError("end_date must be on or after start_date")
	}
	// Both dates are UTC midnights, so this is exact.
	if n := int(end.Sub(start).Hours()/24) + 1; n > MaxDays {
		return nil, validationError(fmt.Sprintf("a range covers at most %d days, got %d", MaxDays, n))
	}

	return &query{
		key:   data.Key{Name: name, Lat: lat, Lon: lon},
		start: start,
		end:   end,
	}, nil
}

func parseCoord(s, field string, limit float64) (float64, error) {
	if s == "" {
		return 0, validationError(field + " is required")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < -limit || f > limit {
		return 0, validationError(fmt.Sprintf("%s must be a number between %.0f and %.0f", field, -limit, limit))
	}
	return f, nil
}

func (s *Server) rangeHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q, err := parseQuery(r)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		// cache based on the normalized query
		key := r.URL.Query().Encode()
		if cached, ok := s.cache.Get(key); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(cached)
			return
		}

		records, err := s.records(r.Context(), q)
		if err != nil {
			s.log.Error().Err(err).Str("location_name", q.key.Name).Msg("Failed to get range")
			writeError(w, http.StatusInternalServerError, "Failed to get sun information")
			return
		}

		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(records); err != nil {
			s.log.Error().Err(err).Msg("Failed to encode JSON result")
			writeError(w, http.StatusInternalServerError, "Failed to encode sun information")
			return
		}
		s.cache.Set(key, buf.Bytes())

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes())
	})
}

// records fills in any days missing from the store and returns the range.
func (s *Server) records(ctx context.Context, q *query) (history.Records, error) {
	start, end := timetricks.FormatDate(q.start), timetricks.FormatDate(q.end)

	stored, err := s.store.Range(ctx, q.key, start, end)
	if err != nil {
		return nil, err
	}
	have := make(map[string]bool, len(stored))
	for _, info := range stored {
		have[info.InformationDate] = true
	}

	place := sunset.Place{Lat: q.key.Lat, Long: q.key.Lon, Location: time.UTC}
	var missing []data.LocationInformation
	for _, day := range sunset.GetDays(q.start, q.end, place) {
		date := timetricks.FormatDate(day.Date)
		if have[date] {
			continue
		}
		missing = append(missing, data.LocationInformation{
			LocationName:    q.key.Name,
			Latitude:        q.key.Lat,
			Longitude:       q.key.Lon,
			InformationDate: date,
			Sunrise:         day.Sunrise.Format(sunset.ClockFormat),
			Sunset:          day.Sunset.Format(sunset.ClockFormat),
			GoldenHour:      day.GoldenHour.Format(sunset.ClockFormat),
		})
	}

	if len(missing) > 0 {
		s.log.Debug().Int("days", len(missing)).Str("location_name", q.key.Name).Msg("Computing sun information")
		if err := s.store.Insert(ctx, missing); err != nil {
			return nil, err
		}
		if stored, err = s.store.Range(ctx, q.key, start, end); err != nil {
			return nil, err
		}
	}

	records := make(history.Records, len(stored))
	for i, info := range stored {
		records[i] = history.Record{
			ID:         int(info.ID),
			Date:       info.InformationDate,
			Sunrise:    info.Sunrise,
			Sunset:     info.Sunset,
			GoldenHour: info.GoldenHour,
		}
	}
	return records, nil
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
