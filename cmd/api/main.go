package main

import (
	"context"
	"log"

	"github.com/go-api-signup/internal/application/notification"
	"github.com/go-api-signup/internal/application/registration"
	"github.com/go-api-signup/internal/config"
	"github.com/go-api-signup/internal/infrastructure/dynamo"
	"github.com/go-api-signup/internal/infrastructure/emailclient"
	"github.com/go-api-signup/internal/infrastructure/postgres"
	"github.com/go-api-signup/internal/infrastructure/sns"
	"github.com/go-api-signup/internal/pkg/logger"
	"github.com/go-api-signup/internal/pkg/server"
	transporthttp "github.com/go-api-signup/internal/transport/http"
	"github.com/go-api-signup/internal/transport/http/handler"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()
	logr := logger.New(cfg.AppEnv, cfg.LogLevel)
	defer func() { _ = logr.Sync() }()

	ctx := context.Background()

	dsn, err := cfg.Database.DSN()
	if err != nil {
		logr.Fatal("invalid database configuration", zap.Error(err))
	}
	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(dsn, "up"); err != nil {
			logr.Fatal("migrate database", zap.Error(err))
		}
	}
	pool, err := postgres.NewPool(ctx, cfg.Database, logr)
	if err != nil {
		logr.Fatal("connect database", zap.Error(err))
	}
	defer pool.Close()
	store := postgres.NewStore(pool, cfg.Database.PoolTimeout, logr)

	// Bootstrap the verification table (creates it if it doesn't exist).
	dynamoClient, err := dynamo.NewClient(ctx, cfg)
	if err != nil {
		logr.Fatal("create DynamoDB client", zap.Error(err))
	}
	dynamo.Bootstrap(ctx, dynamoClient, cfg.DynamoTables, logr)

	// SNS SMS sender is optional; without it OTP deliveries are logged and dropped.
	var smsSender notification.SMSSender
	if sender, err := sns.NewSender(ctx, cfg); err == nil {
		smsSender = sender
	} else {
		logr.Warn("SNS sender not available", zap.Error(err))
	}

	var emailSender notification.EmailSender
	if cfg.EmailServiceAPIKey != "" {
		emailSender = emailclient.New(cfg.EmailServiceURL, cfg.EmailServiceAPIKey, cfg.NotifyTimeout)
	} else {
		logr.Warn("EMAIL_SERVICE_API_KEY not set, welcome emails disabled")
	}
	dispatcher := notification.NewDispatcher(smsSender, emailSender, cfg.NotifyTimeout, logr)
	defer dispatcher.Wait()

	regSvc := registration.NewService(registration.ServiceDeps{
		Store:         store,
		Verifications: dynamo.NewVerificationRepo(dynamoClient, cfg.DynamoTables.UserVerifications),
		Notifier:      dispatcher,
		OTPTTL:        cfg.OTPTTL,
		Log:           logr,
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	router := transporthttp.NewAPIRouter(cfg, &transporthttp.APIDeps{
		Registration: regSvc,
		Checks:       map[string]handler.Check{"postgres": store.Ping},
		Registry:     reg,
		Log:          logr,
	})

	logr.Info("registration service configured", zap.String("env", cfg.AppEnv))
	if err := server.Run(ctx, server.New(cfg.AppPort, router), logr); err != nil {
		logr.Error("server exited", zap.Error(err))
	}
}
