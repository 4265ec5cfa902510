package main

import (
	"context"
	"log"

	"github.com/go-api-signup/internal/config"
	"github.com/go-api-signup/internal/infrastructure/smtp"
	"github.com/go-api-signup/internal/pkg/logger"
	"github.com/go-api-signup/internal/pkg/server"
	transporthttp "github.com/go-api-signup/internal/transport/http"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()
	logr := logger.New(cfg.AppEnv, cfg.LogLevel)
	defer func() { _ = logr.Sync() }()

	if cfg.EmailServiceAPIKey == "" {
		logr.Warn("EMAIL_SERVICE_API_KEY not set, every send request will be rejected")
	}

	router := transporthttp.NewNotifyRouter(cfg, &transporthttp.NotifyDeps{
		Mailer: smtp.NewMailer(cfg),
		APIKey: cfg.EmailServiceAPIKey,
		Log:    logr,
	})

	logr.Info("email service configured", zap.String("smtp_host", cfg.SMTPHost), zap.Int("smtp_port", cfg.SMTPPort))
	if err := server.Run(context.Background(), server.New(cfg.NotifyPort, router), logr); err != nil {
		logr.Error("server exited", zap.Error(err))
	}
}
