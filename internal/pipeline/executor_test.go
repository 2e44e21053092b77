package pipeline

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/user-api/internal/validation"
)

// denyAllGuard rejects every request, recording that it ran.
type denyAllGuard struct {
	ran *bool
}

func (g denyAllGuard) Name() string { return "deny-all" }

func (g denyAllGuard) Check(req *Request) error {
	*g.ran = true
	return Unauthenticated("missing authorization header")
}

// allowGuard admits every request.
type allowGuard struct{}

func (allowGuard) Name() string { return "allow" }

func (allowGuard) Check(req *Request) error { return nil }

func exec(t *testing.T, table *Table, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	NewExecutor(table, nil).ServeHTTP(rec, req)
	return rec
}

func decodeBodyMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestExecutorUnknownRouteIs404(t *testing.T) {
	table := NewTable()

	rec := exec(t, table, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBodyMap(t, rec)
	assert.Equal(t, false, body["success"])
}

func TestExecutorGuardDenialShortCircuitsValidationAndHandler(t *testing.T) {
	guardRan := false
	handlerRan := false

	schema := &validation.Schema{
		Strict: true,
		Fields: []validation.Field{{Name: "name", Kind: validation.String, Required: true}},
	}
	table := NewTable(Route{
		Method:  http.MethodPost,
		Pattern: "/things",
		Guards:  []Guard{denyAllGuard{ran: &guardRan}},
		Schema:  schema,
		Handler: func(ctx context.Context, req *Request) (any, error) {
			handlerRan = true
			return nil, nil
		},
	})

	// Invalid body AND no token: the guard's failure kind must win.
	req := httptest.NewRequest(http.MethodPost, "/things", strings.NewReader(`{"bogus":1}`))
	rec := exec(t, table, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.True(t, guardRan)
	assert.False(t, handlerRan, "handler must not run after a guard denial")

	body := decodeBodyMap(t, rec)
	assert.NotContains(t, body, "errors", "denial response must not be a validation error")
}

func TestExecutorGuardsRunInDeclarationOrder(t *testing.T) {
	var order []string
	mk := func(name string, deny bool) Guard {
		return guardFunc{name: name, check: func(req *Request) error {
			order = append(order, name)
			if deny {
				return Forbidden(name + " says no")
			}
			return nil
		}}
	}

	table := NewTable(Route{
		Method:  http.MethodGet,
		Pattern: "/things",
		Guards:  []Guard{mk("first", false), mk("second", true), mk("third", false)},
		Handler: noopHandler,
	})

	rec := exec(t, table, httptest.NewRequest(http.MethodGet, "/things", nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, []string{"first", "second"}, order, "first denial short-circuits the rest")
}

type guardFunc struct {
	name  string
	check func(req *Request) error
}

func (g guardFunc) Name() string             { return g.name }
func (g guardFunc) Check(req *Request) error { return g.check(req) }

func TestExecutorValidatesBodyAgainstSchema(t *testing.T) {
	schema := &validation.Schema{
		Strict: true,
		Fields: []validation.Field{
			{Name: "name", Kind: validation.String, Required: true, MinLen: 2},
		},
	}

	var seenBody map[string]any
	table := NewTable(Route{
		Method:  http.MethodPost,
		Pattern: "/things",
		Schema:  schema,
		Handler: func(ctx context.Context, req *Request) (any, error) {
			seenBody = req.Body
			return map[string]any{"ok": true}, nil
		},
	})

	t.Run("valid body reaches handler sanitized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/things", strings.NewReader(`{"name":"Ann"}`))
		rec := exec(t, table, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, map[string]any{"name": "Ann"}, seenBody)
	})

	t.Run("invalid body is rejected with field errors", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/things", strings.NewReader(`{"name":"A"}`))
		rec := exec(t, table, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeBodyMap(t, rec)
		assert.Equal(t, "Validation Error", body["error"])
		require.Contains(t, body, "errors")
	})

	t.Run("malformed JSON on schema route is a bad request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/things", strings.NewReader(`{not json`))
		rec := exec(t, table, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestExecutorDecodesBodyLenientlyWithoutSchema(t *testing.T) {
	var seenBody map[string]any
	table := NewTable(Route{
		Method:  http.MethodPut,
		Pattern: "/things/{id}",
		Handler: func(ctx context.Context, req *Request) (any, error) {
			seenBody = req.Body
			return map[string]any{"ok": true}, nil
		},
	})

	t.Run("arbitrary fields pass through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/things/1", strings.NewReader(`{"anything":"goes"}`))
		rec := exec(t, table, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, map[string]any{"anything": "goes"}, seenBody)
	})

	t.Run("empty body decodes to empty payload", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/things/1", nil)
		rec := exec(t, table, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, seenBody)
	})

	t.Run("parse failure is a 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/things/1", strings.NewReader(`not json at all`))
		rec := exec(t, table, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeBodyMap(t, rec)
		assert.Equal(t, false, body["success"])
	})
}

func TestExecutorHandlerFailureGoesThroughMapperOnce(t *testing.T) {
	table := NewTable(Route{
		Method:  http.MethodGet,
		Pattern: "/things/{id}",
		Handler: func(ctx context.Context, req *Request) (any, error) {
			return nil, NotFoundf("thing %s does not exist", req.Param("id"))
		},
	})

	rec := exec(t, table, httptest.NewRequest(http.MethodGet, "/things/9", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBodyMap(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "9")
}

func TestExecutorPathParamsReachHandler(t *testing.T) {
	table := NewTable(Route{
		Method:  http.MethodGet,
		Pattern: "/things/{id}",
		Guards:  []Guard{allowGuard{}},
		Handler: func(ctx context.Context, req *Request) (any, error) {
			return map[string]any{"id": req.Param("id")}, nil
		},
	})

	rec := exec(t, table, httptest.NewRequest(http.MethodGet, "/things/42", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBodyMap(t, rec)
	assert.Equal(t, "42", body["id"])
}
