package handler

import (
	"net/http"

	"github.com/go-api-signup/internal/application/registration"
	"github.com/go-api-signup/internal/domain"
	"go.uber.org/zap"
)

// RegistrationHandler handles signup and OTP confirmation.
type RegistrationHandler struct {
	svc registration.Service
	log *zap.Logger
}

func NewRegistrationHandler(svc registration.Service, log *zap.Logger) *RegistrationHandler {
	return &RegistrationHandler{svc: svc, log: log}
}

func (h *RegistrationHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	res, err := h.svc.Register(r.Context(), req)
	if err != nil {
		httpError(w, h.log, err)
		return
	}
	status := http.StatusCreated
	if res.User == nil {
		status = http.StatusOK
	}
	writeJSON(w, status, RegistrationEnvelope{Message: res.Message, User: res.User})
}

func (h *RegistrationHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.ConfirmOTPRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := h.svc.ConfirmOTP(r.Context(), req); err != nil {
		httpError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Account verified successfully"})
}

// LoginByEmail and LoginByPhone are placeholders; sign-in is not implemented.
func LoginByEmail(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "this is user login by email"})
}

func LoginByPhone(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "this is user login by phonenumber"})
}
