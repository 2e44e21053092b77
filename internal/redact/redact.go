// Package redact scrubs credentials from strings before they reach the
// logs. Unclassified failures are logged with full context but must never
// carry a raw token or password along.
package redact

import "regexp"

const placeholder = "[REDACTED]"

var patterns = []*regexp.Regexp{
	// Bearer tokens in header dumps or error text.
	regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9_\-.~+/]+`),

	// Standard three-part base64url JWTs.
	regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`),

	// password=..., password: "..." and friends.
	regexp.MustCompile(`(?i)(password|passwd|secret)([=:\s]['"]?)[^'"&\s]{3,}`),
}

// String returns s with any recognizable credential material replaced by a
// placeholder.
func String(s string) string {
	for _, p := range patterns {
		s = p.ReplaceAllString(s, placeholder)
	}
	return s
}

// Error redacts an error's message. Safe to call with nil.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
