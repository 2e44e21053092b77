package api

import (
	"net/http"

	"github.com/phrazzld/user-api/internal/pipeline"
	"github.com/phrazzld/user-api/internal/validation"
)

// CreateUserSchema declares the rules for the POST /users payload. Strict:
// fields outside this list are rejected, not dropped.
func CreateUserSchema() *validation.Schema {
	return &validation.Schema{
		Strict: true,
		Fields: []validation.Field{
			{Name: "email", Kind: validation.String, Required: true, Email: true},
			{Name: "name", Kind: validation.String, Required: true, MinLen: 2, MaxLen: 50},
			{Name: "password", Kind: validation.String, Required: true, MinLen: 6, MaxLen: 20},
			{Name: "age", Kind: validation.Int, Min: validation.Bound(18), Max: validation.Bound(120)},
			{Name: "bio", Kind: validation.String, MaxLen: 500},
		},
	}
}

// Routes builds the immutable dispatch table for the user endpoints.
//
// Only GET /users/{id} is guarded; every route, including update and
// delete, runs through the same pipeline contract.
func Routes(h *UserHandler, authGuard pipeline.Guard) *pipeline.Table {
	guarded := []pipeline.Guard{authGuard}

	return pipeline.NewTable(
		pipeline.Route{Method: http.MethodGet, Pattern: "/users", Handler: h.List},
		pipeline.Route{Method: http.MethodGet, Pattern: "/users/{id}", Guards: guarded, Handler: h.Get},
		pipeline.Route{Method: http.MethodPost, Pattern: "/users", Schema: CreateUserSchema(), Handler: h.Create},
		pipeline.Route{Method: http.MethodPut, Pattern: "/users/{id}", Handler: h.Update},
		pipeline.Route{Method: http.MethodDelete, Pattern: "/users/{id}", Handler: h.Delete},
	)
}
