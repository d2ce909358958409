// Command devbackend serves the information range endpoint locally, backed by
// Postgres when PGHOST is set and by memory otherwise.
package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/spencer-p/sunrange/pkg/backend"
	"github.com/spencer-p/sunrange/pkg/data"
	"github.com/spencer-p/sunrange/pkg/logging"
	"github.com/spencer-p/sunrange/pkg/metrics"
)

type Config struct {
	Port      string        `default:"3000"`
	CacheTTL  time.Duration `envconfig:"CACHE_TTL" default:"1h"`
	LogLevel  string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string        `envconfig:"LOG_FORMAT" default:"json"`
}

func main() {
	_ = godotenv.Load()

	var env Config
	if err := envconfig.Process("", &env); err != nil {
		log.Fatal(err.Error())
	}
	logger := logging.New(logging.Config{Level: env.LogLevel, Format: env.LogFormat})

	var store backend.Store
	if os.Getenv("PGHOST") != "" {
		db, err := data.PostgresFromEnv()
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to open database")
		}
		pg, err := data.NewPostgres(db)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to migrate database")
		}
		store = pg
		logger.Info().Str("host", os.Getenv("PGHOST")).Msg("Using postgres store")
	} else {
		store = data.NewMemory()
		logger.Info().Msg("PGHOST not set, using memory store")
	}

	r := mux.NewRouter()
	r.Use(logging.Requests(logger), metrics.LatencyHandler)
	r.Handle("/metrics", metrics.Handler())
	backend.Register(r, backend.NewServer(store, env.CacheTTL, logger))

	srv := &http.Server{
		Handler:      r,
		Addr:         "0.0.0.0:" + env.Port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}
	logger.Info().Str("addr", srv.Addr).Msg("Listening and serving")
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal().Err(err).Msg("Server stopped")
	}
}
