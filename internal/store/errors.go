package store

import "errors"

// ErrInvariantViolation is returned when a store operation detects a
// corrupted internal state, such as a duplicate ID. It signals a programming
// error rather than bad input and should never occur in normal operation.
var ErrInvariantViolation = errors.New("store invariant violated")
