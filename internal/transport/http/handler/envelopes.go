package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-api-signup/internal/domain"
)

// maxBodyBytes bounds every request body read by these handlers.
const maxBodyBytes = 1 << 20

// MessageEnvelope is the generic response wrapper. Detail explains a
// validation or conflict failure.
type MessageEnvelope struct {
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// RegistrationEnvelope wraps signup responses. User is omitted on the OTP path.
type RegistrationEnvelope struct {
	Message string                 `json:"message"`
	User    *domain.RegisteredUser `json:"user,omitempty"`
}

// RelayEnvelope wraps a downstream body relayed by the gateway.
type RelayEnvelope struct {
	Message json.RawMessage `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Message: msg})
}

func writeDetail(w http.ResponseWriter, status int, msg, detail string) {
	writeJSON(w, status, MessageEnvelope{Message: msg, Detail: detail})
}

// decodeJSON reads a bounded JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}
