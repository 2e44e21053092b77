package validation

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance backing the email-shape rule.
var validate = validator.New()

// FieldErrors maps a field name to the ordered list of human-readable
// violation messages accumulated for it.
type FieldErrors map[string][]string

// Add appends a message to the field's violation list.
func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// Apply checks payload against the schema.
//
// On success it returns a value holding only the declared, validated (and
// for Int fields, coerced) entries; extraneous payload fields never reach
// handlers. On failure it returns a non-empty FieldErrors covering every
// violated rule of every field.
func Apply(schema *Schema, payload map[string]any) (map[string]any, FieldErrors) {
	errs := make(FieldErrors)

	if schema.Strict {
		// Sorted for deterministic error ordering.
		unexpected := make([]string, 0)
		for name := range payload {
			if _, ok := schema.field(name); !ok {
				unexpected = append(unexpected, name)
			}
		}
		sort.Strings(unexpected)
		for _, name := range unexpected {
			errs.Add(name, fmt.Sprintf("unexpected field %q is not allowed", name))
		}
	}

	out := make(map[string]any, len(schema.Fields))
	for _, f := range schema.Fields {
		value, present := payload[f.Name]
		if !present || value == nil {
			if f.Required {
				errs.Add(f.Name, fmt.Sprintf("%s is required", f.Name))
			}
			continue
		}

		switch f.Kind {
		case String:
			checkString(f, value, errs)
			out[f.Name] = value
		case Int:
			if n, coerced := checkInt(f, value, errs); coerced {
				out[f.Name] = n
			}
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

// checkString evaluates every string rule independently: a value that is
// both too short and badly shaped reports both messages.
func checkString(f Field, value any, errs FieldErrors) {
	s, ok := value.(string)
	if !ok {
		errs.Add(f.Name, fmt.Sprintf("%s must be a string", f.Name))
		return
	}

	if f.Required && strings.TrimSpace(s) == "" {
		errs.Add(f.Name, fmt.Sprintf("%s is required", f.Name))
	}

	length := utf8.RuneCountInString(s)
	if f.MinLen > 0 && length < f.MinLen {
		errs.Add(f.Name, fmt.Sprintf("%s must be at least %d characters", f.Name, f.MinLen))
	}
	if f.MaxLen > 0 && length > f.MaxLen {
		errs.Add(f.Name, fmt.Sprintf("%s must be at most %d characters", f.Name, f.MaxLen))
	}
	if f.Email {
		if err := validate.Var(s, "email"); err != nil {
			errs.Add(f.Name, fmt.Sprintf("%s must be a valid email address", f.Name))
		}
	}
}

// checkInt coerces the value to an int and evaluates the numeric bounds.
// JSON numbers arrive as float64 and must be integral; strings are coerced
// with strconv. A failed coercion is reported as a field error and skips
// the range checks, which have nothing to measure. The boolean result
// reports whether coercion succeeded.
func checkInt(f Field, value any, errs FieldErrors) (int, bool) {
	var n int
	switch v := value.(type) {
	case float64:
		if v != math.Trunc(v) {
			errs.Add(f.Name, fmt.Sprintf("%s must be an integer", f.Name))
			return 0, false
		}
		n = int(v)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			errs.Add(f.Name, fmt.Sprintf("%s must be an integer", f.Name))
			return 0, false
		}
		n = parsed
	default:
		errs.Add(f.Name, fmt.Sprintf("%s must be an integer", f.Name))
		return 0, false
	}

	if f.Min != nil && n < *f.Min {
		errs.Add(f.Name, fmt.Sprintf("%s must be at least %d", f.Name, *f.Min))
	}
	if f.Max != nil && n > *f.Max {
		errs.Add(f.Name, fmt.Sprintf("%s must be at most %d", f.Name, *f.Max))
	}
	return n, true
}
