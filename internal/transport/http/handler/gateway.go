package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-api-signup/internal/application/gateway"
	"github.com/go-api-signup/internal/infrastructure/authclient"
	"github.com/go-api-signup/internal/transport/http/middleware"
	"go.uber.org/zap"
)

// GatewayHandler fronts the registration service.
type GatewayHandler struct {
	svc gateway.Service
	log *zap.Logger
}

func NewGatewayHandler(svc gateway.Service, log *zap.Logger) *GatewayHandler {
	return &GatewayHandler{svc: svc, log: log}
}

func (h *GatewayHandler) Signup(w http.ResponseWriter, r *http.Request) {
	h.relay(w, r, h.svc.ForwardSignup)
}

func (h *GatewayHandler) Signin(w http.ResponseWriter, r *http.Request) {
	h.relay(w, r, h.svc.ForwardSignin)
}

type forwardFunc func(ctx context.Context, payload []byte) (*gateway.Reply, error)

func (h *GatewayHandler) relay(w http.ResponseWriter, r *http.Request, forward forwardFunc) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, gateway.MsgUnparseable)
		return
	}
	ctx := authclient.WithClientIP(r.Context(), middleware.ClientIP(r))
	reply, err := forward(ctx, payload)
	switch {
	case err == nil:
		writeJSON(w, reply.Status, RelayEnvelope{Message: reply.Message})
	case errors.Is(err, gateway.ErrUnparseable):
		writeError(w, http.StatusBadRequest, gateway.MsgUnparseable)
	case errors.Is(err, gateway.ErrEmptyPayload):
		writeError(w, http.StatusBadRequest, gateway.MsgEmptyPayload)
	case errors.Is(err, gateway.ErrInvalidIdentifier):
		writeError(w, http.StatusBadRequest, gateway.MsgInvalidIdentifier)
	default:
		httpError(w, h.log, err)
	}
}
