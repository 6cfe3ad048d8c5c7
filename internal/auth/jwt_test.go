package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, err := m.Generate(Identity{UserID: "user-1", OrgID: "org-1", Email: "adj@example.com"})
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "org-1", claims.OrgID)
	assert.Equal(t, "adj@example.com", claims.Email)
}

func TestGenerateRequiresOrg(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	_, err := m.Generate(Identity{UserID: "user-1"})
	assert.True(t, errors.Is(err, ErrMissingOrg))
}

func TestValidateRejects(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTManager("other-secret", time.Hour)
		token, err := other.Generate(Identity{UserID: "user-1", OrgID: "org-1"})
		require.NoError(t, err)

		_, err = m.Validate(token)
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})

	t.Run("expired", func(t *testing.T) {
		expired := NewJWTManager("test-secret", -time.Minute)
		token, err := expired.Generate(Identity{UserID: "user-1", OrgID: "org-1"})
		require.NoError(t, err)

		_, err = m.Validate(token)
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})

	t.Run("missing org claim", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
			UserID: "user-1",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		signed, err := token.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = m.Validate(signed)
		assert.True(t, errors.Is(err, ErrMissingOrg))
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.Validate("not-a-token")
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})
}
