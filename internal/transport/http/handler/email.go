package handler

import (
	"net/http"

	"github.com/go-api-signup/internal/infrastructure/emailclient"
	"github.com/go-api-signup/internal/infrastructure/smtp"
	"github.com/go-api-signup/internal/pkg/validate"
	"go.uber.org/zap"
)

// EmailHandler serves the email service's send endpoint.
type EmailHandler struct {
	mailer smtp.Mailer
	log    *zap.Logger
}

func NewEmailHandler(mailer smtp.Mailer, log *zap.Logger) *EmailHandler {
	return &EmailHandler{mailer: mailer, log: log}
}

func (h *EmailHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req emailclient.Request
	if err := decodeJSON(w, r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}
	if err := h.mailer.SendEmail(r.Context(), req.ReceiverEmail, req.Subject, req.Body); err != nil {
		h.log.Error("send email failed", zap.String("to", req.ReceiverEmail), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to send email")
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Email sent to " + req.ReceiverEmail})
}
