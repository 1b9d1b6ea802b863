package auth

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"resume-builder/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoSecret        = errors.New("SUPABASE_JWT_SECRET is not set")
	ErrInvalidToken    = errors.New("invalid token")
	ErrInvalidIssuer   = errors.New("invalid token issuer")
	ErrInvalidAudience = errors.New("invalid token audience")
	ErrMissingSubject  = errors.New("missing subject")
)

type supabaseClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"` // usually "authenticated" / "anon"
}

// JWTAuthenticator verifies Supabase access tokens (HS256). Issuer and
// audience are only checked when configured.
type JWTAuthenticator struct {
	secret   []byte
	issuer   string
	audience string
}

func NewJWTAuthenticator(secret, issuer, audience string) *JWTAuthenticator {
	return &JWTAuthenticator{secret: []byte(secret), issuer: issuer, audience: audience}
}

// Verify returns the user id carried in the token's subject.
func (a *JWTAuthenticator) Verify(raw string) (domain.Identity, error) {
	if len(a.secret) == 0 {
		return "", ErrNoSecret
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidToken
	}

	claims := &supabaseClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || tok == nil || !tok.Valid {
		return "", ErrInvalidToken
	}

	if a.issuer != "" && claims.Issuer != a.issuer {
		return "", ErrInvalidIssuer
	}
	if a.audience != "" && !slices.Contains(claims.Audience, a.audience) {
		return "", ErrInvalidAudience
	}
	if claims.Subject == "" {
		return "", ErrMissingSubject
	}
	return domain.Identity(claims.Subject), nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return raw, raw != ""
}

// TokenIdentity resolves the identity of one session from the latest bearer
// token the client sent. The token is verified again on every call, so an
// expired token stops resolving and the next save redirects to sign-in.
type TokenIdentity struct {
	auth *JWTAuthenticator

	mu    sync.Mutex
	token string
}

func NewTokenIdentity(auth *JWTAuthenticator, token string) *TokenIdentity {
	return &TokenIdentity{auth: auth, token: token}
}

// SetToken replaces the token, e.g. after the client refreshed it. An empty
// token is ignored.
func (t *TokenIdentity) SetToken(token string) {
	if token == "" {
		return
	}
	t.mu.Lock()
	t.token = token
	t.mu.Unlock()
}

func (t *TokenIdentity) CurrentIdentity(context.Context) (domain.Identity, bool) {
	t.mu.Lock()
	token := t.token
	t.mu.Unlock()
	if token == "" {
		return "", false
	}
	id, err := t.auth.Verify(token)
	if err != nil {
		return "", false
	}
	return id, true
}
