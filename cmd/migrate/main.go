// Command migrate applies or reverts the embedded SQL migrations.
//
//	migrate [up|down]
package main

import (
	"errors"
	"flag"
	"log"

	"github.com/go-api-signup/internal/config"
	"github.com/go-api-signup/internal/infrastructure/postgres"
	"github.com/go-api-signup/internal/pkg/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}
	flag.Parse()
	direction := flag.Arg(0)
	if direction == "" {
		direction = "up"
	}

	cfg := config.Load()
	logr := logger.New(cfg.AppEnv, cfg.LogLevel)
	defer func() { _ = logr.Sync() }()

	dsn, err := cfg.Database.DSN()
	if err != nil {
		logr.Fatal("invalid database configuration", zap.Error(err))
	}
	if err := postgres.Migrate(dsn, direction); err != nil && !errors.Is(err, postgres.ErrNoChange) {
		logr.Fatal("migration failed", zap.String("direction", direction), zap.Error(err))
	}
	logr.Info("migrations applied", zap.String("direction", direction))
}
