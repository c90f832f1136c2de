package auth

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrMissingToken     = errors.New("missing authentication token")
	ErrInvalidClaims    = errors.New("invalid token claims")
)

// Claims carries the identity attributes the platform reads off a token.
type Claims struct {
	UserID   string   `json:"sub"`
	Email    string   `json:"email"`
	Username string   `json:"username,omitempty"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	SigningMethod string   // RS256 or HS256
	PublicKey     string   // For RS256
	SecretKey     string   // For HS256
	Issuer        string   // Expected issuer
	Audience      []string // Expected audience
}

// JWTValidator verifies bearer tokens against a fixed signing method,
// issuer, and audience.
type JWTValidator struct {
	parser   *jwt.Parser
	key      interface{}
	issuer   string
	audience []string
}

// NewJWTValidator creates a new JWT validator
func NewJWTValidator(config JWTConfig) (*JWTValidator, error) {
	v := &JWTValidator{
		issuer:   config.Issuer,
		audience: config.Audience,
	}

	switch config.SigningMethod {
	case "RS256":
		if config.PublicKey == "" {
			return nil, errors.New("public key required for RS256")
		}
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(config.PublicKey))
		if err != nil {
			return nil, fmt.Errorf("failed to parse public key: %w", err)
		}
		v.key = key
	case "HS256":
		if config.SecretKey == "" {
			return nil, errors.New("secret key required for HS256")
		}
		v.key = []byte(config.SecretKey)
	default:
		return nil, fmt.Errorf("unsupported signing method: %s", config.SigningMethod)
	}

	// Pinning the method here means the keyfunc never has to re-check it.
	v.parser = jwt.NewParser(jwt.WithValidMethods([]string{config.SigningMethod}))
	return v, nil
}

func (v *JWTValidator) keyFunc(token *jwt.Token) (interface{}, error) {
	return v.key, nil
}

// ValidateToken verifies a bearer token (with or without the "Bearer "
// prefix) and returns its claims.
func (v *JWTValidator) ValidateToken(tokenString string) (*Claims, error) {
	tokenString = strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer "))
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	token, err := v.parser.ParseWithClaims(tokenString, &Claims{}, v.keyFunc)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}
	if err := v.checkClaims(claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (v *JWTValidator) checkClaims(claims *Claims) error {
	if v.issuer != "" && claims.Issuer != v.issuer {
		return fmt.Errorf("%w: invalid issuer", ErrInvalidClaims)
	}

	if len(v.audience) > 0 {
		matched := slices.ContainsFunc(v.audience, func(aud string) bool {
			return slices.Contains(claims.Audience, aud)
		})
		if !matched {
			return fmt.Errorf("%w: invalid audience", ErrInvalidClaims)
		}
	}

	if claims.UserID == "" {
		return fmt.Errorf("%w: missing user ID", ErrInvalidClaims)
	}
	return nil
}

// TokenIssuer mints HS256 tokens. Used by local development tooling and
// tests; production tokens come from the identity provider.
type TokenIssuer struct {
	secretKey []byte
	issuer    string
	audience  []string
	ttl       time.Duration
}

// NewTokenIssuer creates a new token issuer
func NewTokenIssuer(secret, issuer string, audience []string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secretKey: []byte(secret),
		issuer:    issuer,
		audience:  audience,
		ttl:       ttl,
	}
}

// Issue mints a signed token for the given user
func (g *TokenIssuer) Issue(userID, email, username string, roles []string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		Email:    email,
		Username: username,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    g.issuer,
			Subject:   userID,
			Audience:  g.audience,
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.secretKey)
}

// UserContext represents user information from JWT
type UserContext struct {
	UserID   string
	Email    string
	Username string
	Roles    []string
}

// contextKey keeps the user entry private to this package
type contextKey string

const UserContextKey contextKey = "user"

// GetUserFromContext extracts user from context
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(UserContextKey).(*UserContext)
	if !ok || user == nil {
		return nil, errors.New("user not found in context")
	}
	return user, nil
}

// SetUserInContext adds user to context
func SetUserInContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, UserContextKey, user)
}
