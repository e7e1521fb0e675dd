package main

import (
	"bms/config"
	"bms/di"
	"bms/helper"
	"bms/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Booking Management System API
// @version 1.0
// @description Room booking administration: rooms, bookings, employees, accounts and roles.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
