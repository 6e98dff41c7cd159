package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vcm-medical/vcmclient/domain"
)

// JWTInspector implements domain.TokenInspector. The client never holds
// the backend's signing secret, so claims are read without signature
// verification; the only decision made here is whether a restored
// session is already dead.
type JWTInspector struct {
	parser *jwt.Parser
}

// NewJWTInspector creates a token inspector.
func NewJWTInspector() *JWTInspector {
	return &JWTInspector{parser: jwt.NewParser()}
}

// Expired implements domain.TokenInspector. Tokens that do not parse as
// JWTs are treated as opaque and never reported expired; a missing exp
// claim likewise.
func (j *JWTInspector) Expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := j.parser.ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

// Compile-time interface compliance verification
var _ domain.TokenInspector = (*JWTInspector)(nil)
