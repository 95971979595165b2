// Package main is the entry point for the docstore service.
// @title Docstore Service API
// @version 1.0
// @description CRUD access to the collections of a MongoDB-compatible document database
// @termsOfService http://swagger.io/terms/

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	_ "github.com/docstore/docstore-service/docs"
	"github.com/docstore/docstore-service/internal/app"
	"github.com/docstore/docstore-service/internal/config"
	"github.com/docstore/docstore-service/internal/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Serve(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
