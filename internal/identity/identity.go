// Package identity reads the signed-in state handed to the dashboard by the
// external identity provider.  The provider signs an HS256 JWT whose
// subject identifies the user; the name and picture claims carry the
// display details.  This package never manages credentials: it only
// verifies tokens and, for local development, issues them.
package identity

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by Parse for any token that cannot be trusted.
var ErrInvalidToken = errors.New("invalid identity token")

// Principal is the signed-in user as the dashboard sees it.
type Principal struct {
	Subject   string `json:"subject"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Claims are the JWT claims issued by the identity provider.
type Claims struct {
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// Parse verifies raw with secret and returns the principal it names.  Only
// HMAC signed tokens with a non-empty subject are accepted; expiry is
// enforced by the jwt library.
func Parse(secret, raw string) (Principal, error) {
	raw = strings.TrimSpace(raw)
	if secret == "" || raw == "" {
		return Principal{}, ErrInvalidToken
	}
	var claims Claims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return Principal{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	name := claims.Name
	if name == "" {
		name = claims.Subject
	}
	return Principal{Subject: claims.Subject, Name: name, AvatarURL: claims.Picture}, nil
}

// Issue signs a token for p that expires after ttl.  It stands in for the
// identity provider in development and tests.
func Issue(secret string, p Principal, ttl time.Duration) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, errors.New("identity secret is empty")
	}
	if p.Subject == "" {
		return "", time.Time{}, errors.New("principal subject is empty")
	}
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := Claims{
		Name:    p.Name,
		Picture: p.AvatarURL,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// BearerToken extracts the token from an Authorization header value.  It
// returns "" when the header does not carry a bearer token.
func BearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
