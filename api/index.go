package handler

import (
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"cleanbook/config"
	"cleanbook/di"
	"cleanbook/shared/logger"
	"cleanbook/shared/timezone"
)

var (
	once sync.Once
	app  http.Handler
)

// Handler is the serverless entry point. The application graph is built on the first request
// and reused for the lifetime of the instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		logger.InitLogger(cfg)

		logger.SetLogLevel(cfg)

		timezone.Init(cfg)

		app = di.InitializeService(cfg)
	})

	app.ServeHTTP(w, r)
}
