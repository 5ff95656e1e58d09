// Package auth resolves bearer tokens to request identities and enforces
// the role contract resolvers rely on.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Roles recognized by the gateway. Admin satisfies any required role;
// otherwise an exact match is required.
const (
	RoleAdmin      = "admin"
	RoleResearcher = "researcher"
	RoleClinician  = "clinician"
	RoleViewer     = "viewer"
)

// Identity is the resolved caller attached to a request context.
type Identity struct {
	ID          string
	Email       string
	Role        string
	Permissions []string
}

// HasRole reports whether the identity satisfies the required role.
func (i *Identity) HasRole(required string) bool {
	if i == nil {
		return false
	}
	return i.Role == RoleAdmin || i.Role == required
}

// Claims is the JWT payload issued by the external auth service.
type Claims struct {
	UID         string   `json:"uid"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

// ErrInvalidToken indicates a token that failed parsing or verification.
var ErrInvalidToken = errors.New("invalid token")

// Verifier validates HS256 bearer tokens and memoizes verified identities.
type Verifier struct {
	secret []byte
	cache  *lru.Cache[string, *Identity]
}

// NewVerifier creates a verifier with an LRU cache of cacheSize verified
// tokens.
func NewVerifier(secret string, cacheSize int) (*Verifier, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	if cacheSize <= 0 {
		cacheSize = 1024
	}
	cache, err := lru.New[string, *Identity](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating token cache: %w", err)
	}
	return &Verifier{secret: []byte(secret), cache: cache}, nil
}

// Verify parses and validates a raw bearer token, returning the identity it
// carries.
func (v *Verifier) Verify(token string) (*Identity, error) {
	if ident, ok := v.cache.Get(token); ok {
		return ident, nil
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.UID == "" {
		return nil, ErrInvalidToken
	}

	ident := &Identity{
		ID:          claims.UID,
		Email:       claims.Email,
		Role:        claims.Role,
		Permissions: claims.Permissions,
	}
	v.cache.Add(token, ident)
	return ident, nil
}

// FromHeader extracts and verifies the token in an Authorization header
// value. It returns nil without error when the header is absent, and an
// error when a token is present but invalid.
func (v *Verifier) FromHeader(header string) (*Identity, error) {
	if header == "" {
		return nil, nil
	}
	token := strings.TrimPrefix(header, "Bearer ")
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, nil
	}
	return v.Verify(token)
}

type contextKey struct{}

// WithIdentity attaches an identity to the context.
func WithIdentity(ctx context.Context, ident *Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, ident)
}

// FromContext returns the identity attached to the context, or nil.
func FromContext(ctx context.Context) *Identity {
	ident, _ := ctx.Value(contextKey{}).(*Identity)
	return ident
}
