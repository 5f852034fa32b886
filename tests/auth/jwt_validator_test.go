package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/solstice-events/bookings-api/internal/auth"
	"github.com/solstice-events/bookings-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthConfig() *config.AuthConfig {
	return &config.AuthConfig{
		Secret: "test-signing-secret",
		Issuer: "solstice-events",
	}
}

func TestValidateTokenRoundtrip(t *testing.T) {
	validator := auth.NewJWTValidator(testAuthConfig())
	userID := uuid.New()

	token, err := validator.IssueToken(userID, "Robin Mercer", "robin@solstice.example", time.Hour)
	require.NoError(t, err)

	userCtx, err := validator.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, userCtx.UserID)
	assert.Equal(t, "Robin Mercer", userCtx.DisplayName)
	assert.Equal(t, "robin@solstice.example", userCtx.Email)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	issuer := auth.NewJWTValidator(&config.AuthConfig{Secret: "other-secret", Issuer: "solstice-events"})
	validator := auth.NewJWTValidator(testAuthConfig())

	token, err := issuer.IssueToken(uuid.New(), "Robin", "robin@solstice.example", time.Hour)
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestValidateTokenWrongIssuer(t *testing.T) {
	issuer := auth.NewJWTValidator(&config.AuthConfig{Secret: "test-signing-secret", Issuer: "someone-else"})
	validator := auth.NewJWTValidator(testAuthConfig())

	token, err := issuer.IssueToken(uuid.New(), "Robin", "robin@solstice.example", time.Hour)
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestValidateTokenExpired(t *testing.T) {
	validator := auth.NewJWTValidator(testAuthConfig())

	token, err := validator.IssueToken(uuid.New(), "Robin", "robin@solstice.example", -time.Minute)
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, auth.ErrExpiredToken)
}

func TestValidateTokenGarbage(t *testing.T) {
	validator := auth.NewJWTValidator(testAuthConfig())

	_, err := validator.ValidateToken("not.a.token")
	require.Error(t, err)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
