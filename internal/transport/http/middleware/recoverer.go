package middleware

import (
	"net/http"
	"runtime/debug"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Recoverer turns a handler panic into a logged 500 with a JSON message.
// http.ErrAbortHandler is re-raised so the server aborts the connection.
func Recoverer(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Error("panic recovered",
					zap.String("request_id", chimiddleware.GetReqID(r.Context())),
					zap.Any("panic", rec),
					zap.ByteString("stack", debug.Stack()),
				)
				if r.Header.Get("Connection") != "Upgrade" {
					writeJSONError(w, http.StatusInternalServerError, "internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
