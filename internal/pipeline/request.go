package pipeline

import (
	"net/http"

	"github.com/phrazzld/user-api/internal/domain"
)

// Request is the per-request context handed through the pipeline stages.
//
// It is owned by the executor for the duration of exactly one request and
// never shared across requests. Guards may attach a Principal; the
// validation stage fills Body with the sanitized payload.
type Request struct {
	// HTTP is the underlying transport request, used for headers and the
	// request context. Handlers must not write to the transport directly.
	HTTP *http.Request

	// Params holds the positional path parameters resolved by the
	// dispatch table, keyed by pattern segment name.
	Params map[string]string

	// Body is the decoded request payload. On routes with a schema it
	// contains only the declared, validated fields.
	Body map[string]any

	// Principal identifies the caller once a guard has admitted the
	// request; nil until then.
	Principal *domain.Principal
}

// Header returns the named request header, or "" when absent.
func (r *Request) Header(name string) string {
	return r.HTTP.Header.Get(name)
}

// Param returns the named path parameter, or "" when absent.
func (r *Request) Param(name string) string {
	return r.Params[name]
}
