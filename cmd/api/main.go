package main

import (
	"os"

	"github.com/SheershikaSB/school-vaccination-portal/internal/bootstrap"
	"github.com/SheershikaSB/school-vaccination-portal/internal/pkg/logger"
	"github.com/SheershikaSB/school-vaccination-portal/internal/server"
)

// @title School Vaccination Portal API
// @version 1.0
// @description API for school coordinators managing students, vaccination drives and reports

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = bootstrap.DefaultConfigPath
	}

	srv, err := server.NewServer(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
