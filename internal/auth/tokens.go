// Package auth issues and verifies signed session tokens for client and
// admin principals. Tokens are stateless HS256 JWTs with a 1-hour expiry;
// there is no server-side revocation list.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"cabzii/internal/domain"
)

// Principal roles carried in the token.
const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

const DefaultTTL = time.Hour

// Claims is the identity extracted from a verified token.
type Claims struct {
	PrincipalID string
	Role        string
	Mobile      string
}

// Manager signs and verifies session tokens.
type Manager struct {
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

func NewManager(secret string) Manager {
	return Manager{Secret: []byte(secret), TTL: DefaultTTL, Now: time.Now}
}

func (m Manager) ttl() time.Duration {
	if m.TTL > 0 {
		return m.TTL
	}
	return DefaultTTL
}

func (m Manager) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// Issue signs a token for the given principal.
func (m Manager) Issue(c Claims) (string, error) {
	now := m.now()
	claims := jwt.MapClaims{
		"sub":  c.PrincipalID,
		"role": c.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(m.ttl()).Unix(),
	}
	if c.Mobile != "" {
		claims["mobile"] = c.Mobile
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.Secret)
	if err != nil {
		return "", domain.InternalError{Msg: "sign token", Err: err}
	}
	return signed, nil
}

// Verify parses a raw token and returns its claims. An empty raw token maps
// to an UnauthorizedError with Missing set so the HTTP layer can distinguish
// "no token" from "invalid or expired token".
func (m Manager) Verify(raw string) (Claims, error) {
	if raw == "" {
		return Claims{}, domain.UnauthorizedError{Missing: true}
	}

	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.Secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil || !parsed.Valid {
		return Claims{}, domain.UnauthorizedError{Msg: "invalid or expired token", Err: err}
	}

	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, domain.UnauthorizedError{Msg: "invalid or expired token"}
	}

	out := Claims{}
	if sub, ok := mc["sub"].(string); ok {
		out.PrincipalID = sub
	}
	if role, ok := mc["role"].(string); ok {
		out.Role = role
	}
	if mobile, ok := mc["mobile"].(string); ok {
		out.Mobile = mobile
	}
	if out.PrincipalID == "" {
		return Claims{}, domain.UnauthorizedError{Msg: "invalid or expired token"}
	}
	return out, nil
}
