package main

import (
	"github.com/rs/zerolog/log"

	"cleanbook/config"
	"cleanbook/di"
	"cleanbook/helper"
	"cleanbook/infras/metrics"
	"cleanbook/shared/logger"
	"cleanbook/shared/timezone"
)

// @title Cleanbook API
// @version 1.0
// @description Home cleaning booking service.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.InitLogger(nil)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	timezone.Init(cfg)

	if cfg.Metrics.Enable {
		metrics.Register(cfg.Metrics.Namespace)
	}

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http := di.InitializeService(cfg)
	http.Serve()
}
