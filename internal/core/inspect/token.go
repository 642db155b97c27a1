package inspect

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessKey is the login response member holding the bearer token.
const AccessKey = "access"

// ExtractToken returns the access token from a login response. The top-level
// "access" member wins; otherwise "data.access" is consulted. Empty and
// non-string values count as absent.
func ExtractToken(v any) (string, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return "", false
	}

	if tok, ok := obj[AccessKey].(string); ok && tok != "" {
		return tok, true
	}

	nested, ok := obj[EnvelopeKey].(map[string]any)
	if !ok {
		return "", false
	}

	if tok, ok := nested[AccessKey].(string); ok && tok != "" {
		return tok, true
	}

	return "", false
}

// TokenInfo summarises the claims of a JWT bearer token. The signature is
// not verified; the information is for display only.
type TokenInfo struct {
	Algorithm string
	Subject   string
	UserID    string
	TokenType string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token expiry is before now. Tokens without an
// expiry never expire.
func (t TokenInfo) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && t.ExpiresAt.Before(now)
}

// DescribeToken decodes token as an unverified JWT. Opaque tokens return an
// error.
func DescribeToken(token string) (TokenInfo, error) {
	claims := jwt.MapClaims{}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		return TokenInfo{}, fmt.Errorf("parse token: %w", err)
	}

	info := TokenInfo{
		Algorithm: parsed.Method.Alg(),
		UserID:    Scalar(claims["user_id"]),
		TokenType: Scalar(claims["token_type"]),
	}

	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}

	return info, nil
}
