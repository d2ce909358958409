package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/spencer-p/sunrange/pkg/form"
	"github.com/spencer-p/sunrange/pkg/handlers"
	"github.com/spencer-p/sunrange/pkg/history"
	"github.com/spencer-p/sunrange/pkg/logging"
	"github.com/spencer-p/sunrange/pkg/metrics"
	"github.com/spencer-p/sunrange/pkg/owm"
)

type Config struct {
	Port       string        `default:"8080"`
	Prefix     string        `default:"/"`
	BackendURL string        `envconfig:"API_URL" default:"http://localhost:3000"`
	SearchURL  string        `envconfig:"SEARCH_URL"`
	AppID      string        `envconfig:"OWM_APP_ID"`
	Debounce   time.Duration `default:"500ms"`
	LogLevel   string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat  string        `envconfig:"LOG_FORMAT" default:"json"`
}

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	var env Config
	if err := envconfig.Process("", &env); err != nil {
		log.Fatal(err.Error())
	}

	logger := logging.New(logging.Config{Level: env.LogLevel, Format: env.LogFormat})
	if env.AppID == "" {
		logger.Warn().Msg("OWM_APP_ID is not set, location searches will fail")
	}

	var holder handlers.Holder
	f := form.New(form.Options{
		Finder:   owm.NewClient(env.SearchURL, env.AppID, nil),
		Fetcher:  history.NewClient(env.BackendURL, nil),
		Delay:    env.Debounce,
		OnSubmit: holder.Set,
		Logger:   &logger,
	})
	defer f.Close()

	r := mux.NewRouter().StrictSlash(true)
	r.Use(logging.Requests(logger), metrics.LatencyHandler)
	r.Handle("/metrics", metrics.Handler())

	s := r.PathPrefix(env.Prefix).Subrouter()
	handlers.Register(s, env.Prefix, f, &holder, logger)

	srv := &http.Server{
		Handler:      r,
		Addr:         "0.0.0.0:" + env.Port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}
	logger.Info().
		Str("addr", srv.Addr).
		Str("prefix", env.Prefix).
		Str("backend", env.BackendURL).
		Msg("Listening and serving")
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal().Err(err).Msg("Server stopped")
	}
}
