package http

import (
	"github.com/go-api-signup/internal/application/gateway"
	"github.com/go-api-signup/internal/application/registration"
	"github.com/go-api-signup/internal/infrastructure/smtp"
	"github.com/go-api-signup/internal/transport/http/handler"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// APIDeps holds what the registration service router needs.
type APIDeps struct {
	Registration registration.Service
	Checks       map[string]handler.Check
	Registry     *prometheus.Registry
	Log          *zap.Logger
}

// GatewayDeps holds what the gateway router needs.
type GatewayDeps struct {
	Gateway  gateway.Service
	Registry *prometheus.Registry
	Log      *zap.Logger
}

// NotifyDeps holds what the email service router needs.
type NotifyDeps struct {
	Mailer smtp.Mailer
	APIKey string
	Log    *zap.Logger
}
