package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-api-signup/internal/domain"
	"go.uber.org/zap"
)

// httpError maps a service error to a status code and envelope. Internal
// failures are logged and replaced with a generic message.
func httpError(w http.ResponseWriter, log *zap.Logger, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeDetail(w, http.StatusBadRequest, "validation failed", ve.Error())
	case errors.Is(err, domain.ErrBadRequest):
		writeDetail(w, http.StatusBadRequest, "invalid request", clientText(err, domain.ErrBadRequest))
	case errors.Is(err, domain.ErrConflict):
		writeDetail(w, http.StatusConflict, "registration conflict", clientText(err, domain.ErrConflict))
	case errors.Is(err, domain.ErrUnauthorized):
		writeDetail(w, http.StatusUnauthorized, "verification failed", clientText(err, domain.ErrUnauthorized))
	case errors.Is(err, domain.ErrNotFound):
		writeDetail(w, http.StatusNotFound, "not found", clientText(err, domain.ErrNotFound))
	case errors.Is(err, domain.ErrUnavailable):
		log.Warn("downstream unavailable", zap.Error(err))
		writeError(w, http.StatusBadGateway, "authentication service unavailable")
	default:
		log.Error("unhandled error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// clientText drops the trailing sentinel text added by %w wrapping.
func clientText(err, sentinel error) string {
	return strings.TrimSuffix(err.Error(), ": "+sentinel.Error())
}
