package main

import (
	"context"
	"log"

	"github.com/go-api-signup/internal/application/gateway"
	"github.com/go-api-signup/internal/config"
	"github.com/go-api-signup/internal/infrastructure/authclient"
	"github.com/go-api-signup/internal/pkg/logger"
	"github.com/go-api-signup/internal/pkg/server"
	transporthttp "github.com/go-api-signup/internal/transport/http"
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

	auth := authclient.New(cfg.AuthServiceURL, cfg.DownstreamTimeout)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	router := transporthttp.NewGatewayRouter(cfg, &transporthttp.GatewayDeps{
		Gateway:  gateway.NewService(auth),
		Registry: reg,
		Log:      logr,
	})

	logr.Info("gateway configured", zap.String("auth_service_url", cfg.AuthServiceURL))
	if err := server.Run(context.Background(), server.New(cfg.GatewayPort, router), logr); err != nil {
		logr.Error("server exited", zap.Error(err))
	}
}
