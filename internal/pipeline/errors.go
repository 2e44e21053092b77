package pipeline

import (
	"errors"
	"fmt"

	"github.com/phrazzld/user-api/internal/validation"
)

// ErrRouteNotFound is raised when no route descriptor matches the request
// method and path. The mapper turns it into a generic 404.
var ErrRouteNotFound = errors.New("route not found")

// DenialError is a classified guard denial. Guards never write HTTP
// responses themselves; they return one of these and let the mapper format
// the output.
type DenialError struct {
	// Forbidden distinguishes "you may not" (403) from "we don't know who
	// you are" (401).
	Forbidden bool
	Message   string
}

func (e *DenialError) Error() string {
	if e.Forbidden {
		return "forbidden: " + e.Message
	}
	return "unauthenticated: " + e.Message
}

// Unauthenticated returns a denial mapped to 401.
func Unauthenticated(message string) error {
	return &DenialError{Message: message}
}

// Forbidden returns a denial mapped to 403.
func Forbidden(message string) error {
	return &DenialError{Forbidden: true, Message: message}
}

// NotFoundError is a domain "resource absent" failure, mapped to 404.
// Handlers raise it when the store reports a missing record.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return "not found: " + e.Message
}

// NotFoundf builds a NotFoundError with a formatted message.
func NotFoundf(format string, args ...any) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// BadRequestError reports a malformed request body on routes without a
// validation schema, mapped to 400.
type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string {
	return "bad request: " + e.Message
}

// ValidationError carries the accumulated field errors of a failed schema
// check, mapped to 400 with the full error set in the body.
type ValidationError struct {
	Errors validation.FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Errors))
}
