package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/solstice-events/bookings-api/internal/config"
	"github.com/solstice-events/bookings-api/internal/http/middleware"
	"github.com/stretchr/testify/assert"
)

func runSecured(cfg *config.SecurityConfig) *httptest.ResponseRecorder {
	handler := middleware.SecurityHeaders(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestSecurityHeadersAllEnabled(t *testing.T) {
	rec := runSecured(&config.SecurityConfig{
		ContentTypeNosniff:    true,
		FrameOptions:          "DENY",
		XSSProtection:         "1; mode=block",
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		PermissionsPolicy:     "geolocation=()",
		EnableHSTS:            true,
		HSTSMaxAge:            31536000,
		HSTSIncludeSubdomains: true,
		HSTSPreload:           true,
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "1; mode=block", rec.Header().Get("X-XSS-Protection"))
	assert.Equal(t, "default-src 'self'", rec.Header().Get("Content-Security-Policy"))
	assert.Equal(t, "strict-origin-when-cross-origin", rec.Header().Get("Referrer-Policy"))
	assert.Equal(t, "geolocation=()", rec.Header().Get("Permissions-Policy"))
	assert.Equal(t, "max-age=31536000; includeSubDomains; preload", rec.Header().Get("Strict-Transport-Security"))
}

func TestSecurityHeadersHSTSWithoutExtensions(t *testing.T) {
	rec := runSecured(&config.SecurityConfig{
		EnableHSTS: true,
		HSTSMaxAge: 86400,
	})

	assert.Equal(t, "max-age=86400", rec.Header().Get("Strict-Transport-Security"))
}

func TestSecurityHeadersAllDisabled(t *testing.T) {
	rec := runSecured(&config.SecurityConfig{})

	assert.Empty(t, rec.Header().Get("X-Content-Type-Options"))
	assert.Empty(t, rec.Header().Get("X-Frame-Options"))
	assert.Empty(t, rec.Header().Get("Content-Security-Policy"))
	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
}
