package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/matchwise/backend/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateTokenPair(t *testing.T) {
	m := auth.NewJWTManager("test-secret", 15*time.Minute, 24*time.Hour)
	userID := uuid.New()

	pair, err := m.GenerateTokenPair(userID, "alice@test.com")
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice@test.com", claims.Email)

	refreshClaims, err := m.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, userID, refreshClaims.UserID)
}

func TestTokenTypeMismatch(t *testing.T) {
	m := auth.NewJWTManager("test-secret", 15*time.Minute, 24*time.Hour)

	pair, err := m.GenerateTokenPair(uuid.New(), "alice@test.com")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = m.ValidateRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestExpiredToken(t *testing.T) {
	m := auth.NewJWTManager("test-secret", -time.Minute, 24*time.Hour)

	pair, err := m.GenerateTokenPair(uuid.New(), "alice@test.com")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, auth.ErrExpiredToken)
}

func TestWrongSecret(t *testing.T) {
	m1 := auth.NewJWTManager("secret-one", 15*time.Minute, 24*time.Hour)
	m2 := auth.NewJWTManager("secret-two", 15*time.Minute, 24*time.Hour)

	pair, err := m1.GenerateTokenPair(uuid.New(), "alice@test.com")
	require.NoError(t, err)

	_, err = m2.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
