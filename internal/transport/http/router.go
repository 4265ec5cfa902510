package http

import (
	"net/http"

	"github.com/go-api-signup/internal/config"
	"github.com/go-api-signup/internal/infrastructure/emailclient"
	"github.com/go-api-signup/internal/transport/http/handler"
	appmiddleware "github.com/go-api-signup/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func baseRouter(cfg *config.Config, log *zap.Logger) chi.Router {
	trust, err := appmiddleware.ParseProxyTrust(cfg.TrustedProxies)
	if err != nil {
		log.Warn("ignoring invalid TRUSTED_PROXIES entries", zap.Error(err))
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(appmiddleware.RealIP(trust))
	r.Use(appmiddleware.RequestLogger(log))
	r.Use(appmiddleware.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", emailclient.APIKeyHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	return r
}

func withMetrics(r chi.Router, reg *prometheus.Registry, service string) {
	if reg == nil {
		return
	}
	r.Use(appmiddleware.NewMetrics(reg, service).Handler)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
}

// NewAPIRouter builds the registration service router.
func NewAPIRouter(cfg *config.Config, deps *APIDeps) http.Handler {
	r := baseRouter(cfg, deps.Log)
	withMetrics(r, deps.Registry, "api")

	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)

	healthH := handler.NewHealthHandler(deps.Log, deps.Checks)
	regH := handler.NewRegistrationHandler(deps.Registration, deps.Log)

	r.Get("/health", healthH.Health)
	r.Route("/api", func(r chi.Router) {
		r.With(sensitiveRL.Limit).Post("/signup", regH.Signup)
		r.With(sensitiveRL.Limit).Post("/verify-otp", regH.VerifyOTP)
		r.Post("/login-by-email", handler.LoginByEmail)
		r.Post("/login-by-phonenumber", handler.LoginByPhone)
	})
	return r
}

// NewGatewayRouter builds the public gateway router.
func NewGatewayRouter(cfg *config.Config, deps *GatewayDeps) http.Handler {
	r := baseRouter(cfg, deps.Log)
	withMetrics(r, deps.Registry, "gateway")

	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)

	healthH := handler.NewHealthHandler(deps.Log, nil)
	gwH := handler.NewGatewayHandler(deps.Gateway, deps.Log)

	r.Get("/health", healthH.Health)
	r.Route("/api", func(r chi.Router) {
		r.Use(sensitiveRL.Limit)
		r.Post("/signup", gwH.Signup)
		r.Post("/signin", gwH.Signin)
	})
	return r
}

// NewNotifyRouter builds the email service router.
func NewNotifyRouter(cfg *config.Config, deps *NotifyDeps) http.Handler {
	r := baseRouter(cfg, deps.Log)

	healthH := handler.NewHealthHandler(deps.Log, nil)
	emailH := handler.NewEmailHandler(deps.Mailer, deps.Log)

	r.Get("/health", healthH.Health)
	r.With(appmiddleware.APIKey(emailclient.APIKeyHeader, deps.APIKey)).Post("/send-email", emailH.Send)
	return r
}
