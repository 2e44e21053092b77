// Package guard provides the pre-handler admission checks run by the
// pipeline before business logic executes.
package guard

import (
	"log/slog"
	"strings"

	"github.com/phrazzld/user-api/internal/domain"
	"github.com/phrazzld/user-api/internal/pipeline"
)

// Sentinel tokens that simulate specific failure scenarios.
const (
	tokenInvalid   = "invalid-token"
	tokenForbidden = "forbidden-token"
	tokenExpired   = "expired-token"
)

// minTokenLength is the shortest token the demo guard accepts.
const minTokenLength = 8

// BearerTokenGuard admits requests carrying a plausible bearer token.
//
// This is a test/demo seam, not a security mechanism: a fixed set of
// sentinel tokens triggers deterministic denials and everything else of
// sufficient length is accepted. Real deployments must replace it with
// actual credential verification such as JWTGuard.
type BearerTokenGuard struct {
	logger *slog.Logger
}

// NewBearerTokenGuard returns a sentinel-token guard.
func NewBearerTokenGuard(logger *slog.Logger) *BearerTokenGuard {
	if logger == nil {
		logger = slog.Default()
	}
	return &BearerTokenGuard{logger: logger.With(slog.String("guard", "bearer"))}
}

// Name implements pipeline.Guard.
func (g *BearerTokenGuard) Name() string { return "bearer" }

// Check validates the Authorization header and, on success, attaches the
// derived principal to the request.
func (g *BearerTokenGuard) Check(req *pipeline.Request) error {
	token, err := ExtractBearerToken(req)
	if err != nil {
		return err
	}

	switch token {
	case tokenInvalid:
		return pipeline.Unauthenticated("the provided access token is invalid")
	case tokenForbidden:
		return pipeline.Forbidden("insufficient permissions to access this resource")
	case tokenExpired:
		return pipeline.Unauthenticated("the access token has expired, please sign in again")
	}

	if len(token) < minTokenLength {
		return pipeline.Unauthenticated("token too short")
	}

	req.Principal = &domain.Principal{
		ID:       1,
		Username: "test-user",
		Token:    token,
	}
	g.logger.Debug("request authenticated", slog.String("username", req.Principal.Username))
	return nil
}

// ExtractBearerToken pulls the token out of the Authorization header.
// Returns classified denials for a missing header or an empty token after
// the "Bearer " prefix is stripped.
func ExtractBearerToken(req *pipeline.Request) (string, error) {
	header := req.Header("Authorization")
	if header == "" {
		return "", pipeline.Unauthenticated("missing authorization header")
	}

	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		return "", pipeline.Unauthenticated("malformed authorization format, use 'Bearer <token>'")
	}
	return token, nil
}
