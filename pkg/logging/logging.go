// Package logging builds the zerolog logger shared by the binaries.
package logging

import (
	"io"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Config holds logging configuration.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, text
	Output io.Writer
}

// New creates a logger. Unknown levels fall back to info and any format other
// than "text" produces JSON.
func New(cfg Config) zerolog.Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	if cfg.Format == "text" {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}
	}
	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

// Requests logs one line per request, tagged with a fresh request id. The id
// is also echoed in the X-Request-Id response header.
func Requests(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			id := uuid.NewString()
			w.Header().Set("X-Request-Id", id)
			sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}

			reqLogger := logger.With().Str("request_id", id).Logger()
			next.ServeHTTP(sw, r.WithContext(reqLogger.WithContext(r.Context())))

			event := reqLogger.Info()
			if sw.code >= 500 {
				event = reqLogger.Error()
			} else if sw.code >= 400 {
				event = reqLogger.Warn()
			}
			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status_code", sw.code).
				Dur("duration", time.Since(start)).
				Msg("HTTP request")
		})
	}
}
