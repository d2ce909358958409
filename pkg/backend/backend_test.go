package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/spencer-p/sunrange/pkg/data"
	"github.com/spencer-p/sunrange/pkg/history"
)

// countingStore wraps a Memory store and counts calls.
type countingStore struct {
	*data.Memory
	mu      sync.Mutex
	ranges  int
	inserts int
	err     error
}

func (c *countingStore) Range(ctx context.Context, key data.Key, start, end string) ([]data.LocationInformation, error) {
	c.mu.Lock()
	c.ranges++
	err := c.err
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return c.Memory.Range(ctx, key, start, end)
}

func (c *countingStore) Insert(ctx context.Context, infos []data.LocationInformation) error {
	c.mu.Lock()
	c.inserts++
	c.mu.Unlock()
	return c.Memory.Insert(ctx, infos)
}

func (c *countingStore) counts() (ranges, inserts int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ranges, c.inserts
}

func newTestServer(t *testing.T, store Store, ttl time.Duration) *history.Client {
	t.Helper()
	r := mux.NewRouter()
	Register(r, NewServer(store, ttl, zerolog.Nop()))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return history.NewClient(srv.URL, srv.Client())
}

func ptr[T any](t T) *T {
	return &t
}

func parisQuery(start, end string) *history.RangeQuery {
	return &history.RangeQuery{
		LocationName: "Paris, FR",
		Latitude:     ptr(48.85),
		Longitude:    ptr(2.35),
		StartDate:    start,
		EndDate:      end,
	}
}

func TestRange(t *testing.T) {
	store := &countingStore{Memory: data.NewMemory()}
	client := newTestServer(t, store, 0)

	got, err := client.GetRange(context.Background(), parisQuery("2024-05-01", "2024-05-03"))
	require.NoError(t, err)
	require.Len(t, got, 3)

	for i, rec := range got {
		require.Equal(t, []string{"2024-05-01", "2024-05-02", "2024-05-03"}[i], rec.Date)
		require.NotZero(t, rec.ID)
		require.NotEmpty(t, rec.Sunrise)
		require.NotEmpty(t, rec.Sunset)
		require.NotEmpty(t, rec.GoldenHour)

		sunrise, err := time.Parse("3:04:05 PM", rec.Sunrise)
		require.NoError(t, err)
		// Paris in May, in UTC: sunrise is a little after 4 AM.
		require.Equal(t, 4, sunrise.Hour())

		sunset, err := time.Parse("3:04:05 PM", rec.Sunset)
		require.NoError(t, err)
		golden, err := time.Parse("3:04:05 PM", rec.GoldenHour)
		require.NoError(t, err)
		require.Equal(t, time.Hour, sunset.Sub(golden))
	}
}

func TestRangeReusesStoredDays(t *testing.T) {
	store := &countingStore{Memory: data.NewMemory()}
	client := newTestServer(t, store, 0)
	ctx := context.Background()

	first, err := client.GetRange(ctx, parisQuery("2024-05-01", "2024-05-02"))
	require.NoError(t, err)
	_, inserts := store.counts()
	require.Equal(t, 1, inserts)

	// Overlapping range: only the new day is computed.
	second, err := client.GetRange(ctx, parisQuery("2024-05-02", "2024-05-03"))
	require.NoError(t, err)
	_, inserts = store.counts()
	require.Equal(t, 2, inserts)
	require.Len(t, second, 2)
	require.Equal(t, first[1], second[0])

	// Fully stored range: nothing to insert.
	_, err = client.GetRange(ctx, parisQuery("2024-05-01", "2024-05-03"))
	require.NoError(t, err)
	_, inserts = store.counts()
	require.Equal(t, 2, inserts)
}

func TestRangeCached(t *testing.T) {
	store := &countingStore{Memory: data.NewMemory()}
	client := newTestServer(t, store, time.Hour)
	ctx := context.Background()

	first, err := client.GetRange(ctx, parisQuery("2024-05-01", "2024-05-02"))
	require.NoError(t, err)
	before, _ := store.counts()

	second, err := client.GetRange(ctx, parisQuery("2024-05-01", "2024-05-02"))
	require.NoError(t, err)
	after, _ := store.counts()
	require.Equal(t, before, after, "cached response went to the store")
	require.Equal(t, first, second)
}

func TestRangeValidation(t *testing.T) {
	client := newTestServer(t, data.NewMemory(), 0)

	table := []struct {
		name    string
		q       *history.RangeQuery
		wantMsg string
	}{{
		name:    "missing name",
		q:       &history.RangeQuery{Latitude: ptr(1.0), Longitude: ptr(1.0), StartDate: "2024-05-01", EndDate: "2024-05-01"},
		wantMsg: "location_name is required",
	}, {
		name:    "missing coordinates",
		q:       &history.RangeQuery{LocationName: "Paris", StartDate: "2024-05-01", EndDate: "2024-05-01"},
		wantMsg: "latitude is required",
	}, {
		name:    "latitude out of range",
		q:       &history.RangeQuery{LocationName: "Paris", Latitude: ptr(91.0), Longitude: ptr(1.0), StartDate: "2024-05-01", EndDate: "2024-05-01"},
		wantMsg: "latitude must be a number between -90 and 90",
	}, {
		name:    "bad start",
		q:       parisQuery("05/01/2024", "2024-05-01"),
		wantMsg: "start_date must be a date formatted YYYY-MM-DD",
	}, {
		name:    "reversed",
		q:       parisQuery("2024-05-10", "2024-05-01"),
		wantMsg: "end_date must be on or after start_date",
	}, {
		name:    "too long",
		q:       parisQuery("2020-01-01", "2024-01-01"),
		wantMsg: "a range covers at most 366 days, got 1462",
	}}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			_, err := client.GetRange(context.Background(), tc.q)
			var se *history.StatusError
			require.True(t, errors.As(err, &se), "got %v", err)
			require.Equal(t, http.StatusUnprocessableEntity, se.Code)
			require.Equal(t, tc.wantMsg, se.Message)
		})
	}
}

func TestRangeStoreFailure(t *testing.T) {
	store := &countingStore{Memory: data.NewMemory(), err: errors.New("connection reset")}
	client := newTestServer(t, store, 0)

	_, err := client.GetRange(context.Background(), parisQuery("2024-05-01", "2024-05-01"))
	var se *history.StatusError
	require.True(t, errors.As(err, &se), "got %v", err)
	require.Equal(t, http.StatusInternalServerError, se.Code)
	require.Equal(t, "Failed to get sun information", se.Message)
}
