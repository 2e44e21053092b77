package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/user-api/internal/api/shared"
	"github.com/phrazzld/user-api/internal/redact"
)

// MapFailure classifies a pipeline failure into its HTTP status code and
// structured response body.
//
// This is the single place failures become output: guards, validators and
// handlers raise classified errors and never build response bodies
// themselves, so every failure kind has exactly one shape. Anything
// unclassified is a server fault and maps to a generic 500 body that
// carries no internal detail.
func MapFailure(err error) (int, any) {
	var (
		denial     *DenialError
		notFound   *NotFoundError
		badRequest *BadRequestError
		invalid    *ValidationError
	)

	switch {
	case errors.As(err, &invalid):
		return http.StatusBadRequest, shared.ValidationErrorBody{
			StatusCode: http.StatusBadRequest,
			Error:      "Validation Error",
			Message:    "input validation failed",
			Errors:     invalid.Errors,
		}

	case errors.As(err, &denial):
		status := http.StatusUnauthorized
		if denial.Forbidden {
			status = http.StatusForbidden
		}
		return status, shared.Response{Success: false, Message: denial.Message}

	case errors.As(err, &notFound):
		return http.StatusNotFound, shared.Response{Success: false, Message: notFound.Message}

	case errors.Is(err, ErrRouteNotFound):
		return http.StatusNotFound, shared.Response{Success: false, Message: "resource not found"}

	case errors.As(err, &badRequest):
		return http.StatusBadRequest, shared.Response{Success: false, Message: badRequest.Message}

	default:
		return http.StatusInternalServerError, shared.Response{
			Success: false,
			Message: "an unexpected error occurred",
		}
	}
}

// respondFailure maps the failure and writes it, logging server faults at
// ERROR with redacted detail and client errors at DEBUG.
func respondFailure(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status, body := MapFailure(err)

	attrs := []slog.Attr{
		slog.Int("status", status),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("trace_id", shared.GetTraceID(r.Context())),
	}

	if status >= http.StatusInternalServerError {
		// The raw error stays in the logs only; the client sees a
		// generic message.
		attrs = append(attrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
		log.LogAttrs(r.Context(), slog.LevelError, "request failed", attrs...)
	} else {
		attrs = append(attrs, slog.String("reason", err.Error()))
		log.LogAttrs(r.Context(), slog.LevelDebug, "request rejected", attrs...)
	}

	shared.RespondWithJSON(w, r, status, body)
}
