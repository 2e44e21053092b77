// Package shared holds the response and context helpers used by every
// layer that writes HTTP output.
package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Response is the standard envelope for both success payloads and simple
// error bodies.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`
}

// ValidationErrorBody is the response shape for failed payload validation.
// Errors maps each field to the ordered list of its violation messages.
type ValidationErrorBody struct {
	StatusCode int                 `json:"statusCode"`
	Error      string              `json:"error"`
	Message    string              `json:"message"`
	Errors     map[string][]string `json:"errors"`
}

// RespondWithJSON writes a JSON response with the given status code and body.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode JSON response",
			"error", err,
			"path", r.URL.Path,
			"trace_id", GetTraceID(r.Context()))
	}
}
