// Package auth issues and validates the bearer tokens that scope every
// request to a user and an organization.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rotisserie/eris"
)

var (
	ErrInvalidToken = eris.New("invalid or expired token")
	ErrMissingToken = eris.New("authorization token required")
	ErrMissingOrg   = eris.New("token carries no organization")
)

// Identity is the caller a token is issued to.
type Identity struct {
	UserID string
	OrgID  string
	Email  string
}

// JWTManager handles JWT token generation and validation.
type JWTManager struct {
	secretKey     []byte
	tokenDuration time.Duration
}

// Claims represents the custom JWT claims for a session.
type Claims struct {
	UserID string `json:"user_id"`
	OrgID  string `json:"org_id"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// NewJWTManager creates a new JWT manager with the given secret and token duration.
func NewJWTManager(secretKey string, tokenDuration time.Duration) *JWTManager {
	return &JWTManager{
		secretKey:     []byte(secretKey),
		tokenDuration: tokenDuration,
	}
}

// Generate creates a signed token for the given identity.
func (m *JWTManager) Generate(id Identity) (string, error) {
	if id.OrgID == "" {
		return "", ErrMissingOrg
	}
	now := time.Now()
	claims := &Claims{
		UserID: id.UserID,
		OrgID:  id.OrgID,
		Email:  id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", eris.Wrap(err, "failed to sign token")
	}

	return tokenString, nil
}

// Validate parses and validates a token, returning its claims if valid.
// Tokens without an organization are rejected.
func (m *JWTManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secretKey, nil
		},
	)
	if err != nil {
		return nil, eris.Wrapf(ErrInvalidToken, "%v", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.OrgID == "" {
		return nil, ErrMissingOrg
	}

	return claims, nil
}
