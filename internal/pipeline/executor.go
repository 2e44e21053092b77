package pipeline

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/phrazzld/user-api/internal/api/shared"
	"github.com/phrazzld/user-api/internal/validation"
)

// Executor runs each request through the stage sequence
// Routing → Guarding → Validating → Handling → Responding. A failure in any
// stage is terminal for the request and is handed exactly once to the
// failure mapper.
type Executor struct {
	table  *Table
	logger *slog.Logger
}

// NewExecutor returns an executor dispatching over the given table.
func NewExecutor(table *Table, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		table:  table,
		logger: logger.With(slog.String("component", "pipeline")),
	}
}

// ServeHTTP implements http.Handler. It expects any mount prefix to have
// been stripped already, so r.URL.Path lines up with the route patterns.
func (e *Executor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Routing.
	route, params, ok := e.table.Lookup(r.Method, r.URL.Path)
	if !ok {
		respondFailure(w, r, e.logger, ErrRouteNotFound)
		return
	}

	req := &Request{HTTP: r, Params: params}

	// Guarding: strictly in declaration order, first denial wins.
	for _, g := range route.Guards {
		if err := g.Check(req); err != nil {
			e.logger.Debug("guard denied request",
				slog.String("guard", g.Name()),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path))
			respondFailure(w, r, e.logger, err)
			return
		}
	}

	// Validating.
	if route.Schema != nil {
		payload, err := decodeBody(r)
		if err != nil {
			respondFailure(w, r, e.logger, err)
			return
		}
		value, fieldErrs := validation.Apply(route.Schema, payload)
		if len(fieldErrs) > 0 {
			respondFailure(w, r, e.logger, &ValidationError{Errors: fieldErrs})
			return
		}
		req.Body = value
	} else if hasBody(r.Method) {
		payload, err := decodeBody(r)
		if err != nil {
			respondFailure(w, r, e.logger, err)
			return
		}
		req.Body = payload
	}

	// Handling.
	result, err := route.Handler(r.Context(), req)
	if err != nil {
		respondFailure(w, r, e.logger, err)
		return
	}

	// Responding.
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// decodeBody reads the request body as a JSON object. An empty body decodes
// to an empty payload; anything else that fails to parse is a classified
// bad-request failure, not a dropped connection.
func decodeBody(r *http.Request) (map[string]any, error) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, &BadRequestError{Message: "failed to read request body"}
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]any{}, nil
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, &BadRequestError{Message: "request body must be a valid JSON object"}
	}
	return payload, nil
}

func hasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}
