package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/solstice-events/bookings-api/internal/auth"
	"github.com/solstice-events/bookings-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testMiddleware() *auth.Middleware {
	cfg := &config.Config{
		Auth: config.AuthConfig{
			Secret: "test-signing-secret",
			Issuer: "solstice-events",
			APIKey: "system-api-key",
		},
	}
	return auth.NewMiddleware(cfg, zap.NewNop())
}

func captureUser() (http.Handler, **auth.UserContext) {
	var captured *auth.UserContext
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, ok := auth.FromContext(r.Context()); ok {
			captured = user
		}
		w.WriteHeader(http.StatusOK)
	})
	return handler, &captured
}

func TestAuthenticateAPIKey(t *testing.T) {
	mw := testMiddleware()
	handler, captured := captureUser()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	req.Header.Set("x-api-key", "system-api-key")
	rec := httptest.NewRecorder()

	mw.Authenticate(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, *captured)
	assert.Equal(t, uuid.Nil, (*captured).UserID)
	assert.Equal(t, "System", (*captured).DisplayName)
	assert.Nil(t, auth.UserIDFromContext(auth.WithUserContext(req.Context(), *captured)))
}

func TestAuthenticateInvalidAPIKey(t *testing.T) {
	mw := testMiddleware()
	handler, captured := captureUser()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	req.Header.Set("x-api-key", "wrong-key")
	rec := httptest.NewRecorder()

	mw.Authenticate(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, *captured)
}

func TestAuthenticateBearerToken(t *testing.T) {
	mw := testMiddleware()
	handler, captured := captureUser()

	validator := auth.NewJWTValidator(&config.AuthConfig{Secret: "test-signing-secret", Issuer: "solstice-events"})
	userID := uuid.New()
	token, err := validator.IssueToken(userID, "Robin Mercer", "robin@solstice.example", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	mw.Authenticate(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, *captured)
	assert.Equal(t, userID, (*captured).UserID)
	assert.Equal(t, "Robin Mercer", (*captured).DisplayName)
}

func TestAuthenticateMissingHeader(t *testing.T) {
	mw := testMiddleware()
	handler, _ := captureUser()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	rec := httptest.NewRecorder()

	mw.Authenticate(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	mw := testMiddleware()
	handler, _ := captureUser()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	req.Header.Set("Authorization", "Token abcdef")
	rec := httptest.NewRecorder()

	mw.Authenticate(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateBadToken(t *testing.T) {
	mw := testMiddleware()
	handler, _ := captureUser()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rec := httptest.NewRecorder()

	mw.Authenticate(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
