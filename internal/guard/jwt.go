package guard

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-jwt/jwt/v5"

	"github.com/phrazzld/user-api/internal/domain"
	"github.com/phrazzld/user-api/internal/pipeline"
	"github.com/phrazzld/user-api/internal/redact"
)

// Claims are the JWT claims this service issues and accepts.
type Claims struct {
	UserID int `json:"uid"`
	jwt.RegisteredClaims
}

// JWTGuard admits requests carrying a valid HS256-signed bearer token.
// It is the production-shaped replacement for BearerTokenGuard's sentinel
// logic.
type JWTGuard struct {
	secret []byte
	logger *slog.Logger
}

// NewJWTGuard returns a guard verifying tokens signed with the given secret.
func NewJWTGuard(secret []byte, logger *slog.Logger) *JWTGuard {
	if logger == nil {
		logger = slog.Default()
	}
	return &JWTGuard{
		secret: secret,
		logger: logger.With(slog.String("guard", "jwt")),
	}
}

// Name implements pipeline.Guard.
func (g *JWTGuard) Name() string { return "jwt" }

// Check parses and verifies the bearer token and attaches the principal
// derived from its claims.
func (g *JWTGuard) Check(req *pipeline.Request) error {
	token, err := ExtractBearerToken(req)
	if err != nil {
		return err
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return g.secret, nil
	})
	if err != nil || !parsed.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return pipeline.Unauthenticated("the access token has expired, please sign in again")
		}
		g.logger.Debug("token rejected", slog.String("error", redact.Error(err)))
		return pipeline.Unauthenticated("the provided access token is invalid")
	}

	req.Principal = &domain.Principal{
		ID:       claims.UserID,
		Username: claims.Subject,
		Token:    token,
	}
	return nil
}
