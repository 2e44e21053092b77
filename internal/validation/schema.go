// Package validation checks raw request payloads against declarative
// per-field schemas.
//
// A schema is plain data built once at startup and reused, stateless, for
// every request on its route. Validation is exhaustive: every rule of every
// field is evaluated and every violation contributes its own message, so a
// client sees the complete picture in a single round trip instead of fixing
// errors one at a time.
package validation

// Kind is the declared type of a schema field.
type Kind int

const (
	// String fields must be JSON strings.
	String Kind = iota

	// Int fields must be integers. Strings holding an integer are coerced
	// before range checks; a failed coercion is a field error, not a
	// rejection of the whole payload.
	Int
)

// Field declares the rules for a single payload field.
//
// Zero values disable the corresponding bound: MaxLen 0 means "no maximum
// length", and nil Min/Max mean "no numeric bound".
type Field struct {
	Name     string
	Kind     Kind
	Required bool

	// String rules.
	MinLen int
	MaxLen int
	Email  bool

	// Int rules.
	Min *int
	Max *int
}

// Schema is an ordered set of field rules.
//
// When Strict is set, payload fields not declared here are rejected with an
// "unexpected field" error rather than silently dropped.
type Schema struct {
	Strict bool
	Fields []Field
}

// field returns the declaration for the given payload key, if any.
func (s *Schema) field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Bound returns a pointer to v, for declaring numeric bounds inline in a
// schema literal.
func Bound(v int) *int {
	return &v
}
