// Package pipeline drives a request through its processing stages: route
// lookup, guard evaluation, payload validation, handler invocation and
// error normalization.
//
// Routes are declared as plain data at startup and are immutable
// afterwards; there is no runtime metadata or reflection involved.
package pipeline

import (
	"context"
	"strings"

	"github.com/phrazzld/user-api/internal/validation"
)

// Handler is the business-logic contract of the pipeline. A handler returns
// the response payload, or a classified failure; it never formats
// transport-level responses itself.
type Handler func(ctx context.Context, req *Request) (any, error)

// Guard is a pre-handler predicate. A nil return admits the request (and
// may have attached a Principal to it); a DenialError rejects it and
// short-circuits the remaining guards and the handler.
type Guard interface {
	// Name identifies the guard in logs.
	Name() string

	// Check inspects the request and admits or denies it.
	Check(req *Request) error
}

// Route describes one endpoint: the method/pattern pair it matches, the
// ordered guards that run before its handler, and the optional validation
// schema applied to its body.
type Route struct {
	Method  string
	Pattern string
	Guards  []Guard
	Schema  *validation.Schema
	Handler Handler
}

// Table is the static dispatch table built once at startup.
//
// Lookup is a linear scan: route counts here are in the single digits, so
// indexing would buy nothing.
type Table struct {
	routes []Route
}

// NewTable builds a dispatch table from the given route descriptors.
func NewTable(routes ...Route) *Table {
	return &Table{routes: routes}
}

// Lookup resolves a method and path to a route descriptor and its path
// parameters. The boolean result reports whether any route matched.
func (t *Table) Lookup(method, path string) (*Route, map[string]string, bool) {
	for i := range t.routes {
		r := &t.routes[i]
		if r.Method != method {
			continue
		}
		if params, ok := matchPattern(r.Pattern, path); ok {
			return r, params, true
		}
	}
	return nil, nil, false
}

// matchPattern compares a pattern such as "/users/{id}" against a concrete
// path, segment by segment. "{name}" segments capture the corresponding
// path segment as a parameter; all other segments must match exactly.
func matchPattern(pattern, path string) (map[string]string, bool) {
	ps := splitPath(pattern)
	cs := splitPath(path)
	if len(ps) != len(cs) {
		return nil, false
	}

	var params map[string]string
	for i, seg := range ps {
		if name, ok := paramName(seg); ok {
			if cs[i] == "" {
				return nil, false
			}
			if params == nil {
				params = make(map[string]string, 1)
			}
			params[name] = cs[i]
			continue
		}
		if seg != cs[i] {
			return nil, false
		}
	}
	return params, true
}

func splitPath(p string) []string {
	return strings.Split(strings.Trim(p, "/"), "/")
}

func paramName(segment string) (string, bool) {
	if strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") && len(segment) > 2 {
		return segment[1 : len(segment)-1], true
	}
	return "", false
}
