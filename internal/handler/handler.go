// Package handler holds the HTTP handlers. Page handlers read the session the
// middleware put in the request context and work on that user's goal store.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/taigen-app/taigen/internal/ctxkeys"
	"github.com/taigen-app/taigen/internal/i18n"
	"golang.org/x/text/message"
)

func printer(r *http.Request) *message.Printer {
	return i18n.Printer(ctxkeys.Lang(r.Context()))
}

// msg localizes key for the request's language.
func msg(r *http.Request, key string) string {
	return printer(r).Sprintf(key)
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode json response", "error", err)
	}
}

type apiError struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, apiError{Error: message})
}
