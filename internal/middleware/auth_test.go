package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/usahaku/scoring-service/internal/config"
)

func signToken(t *testing.T, secret, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	var gotUserID int64
	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		gotUserID, _ = UserID(r)
	})
	protected := AuthMiddleware(cfg)(next)

	t.Run("valid token passes the user ID through", func(t *testing.T) {
		called = false
		r := httptest.NewRequest(http.MethodGet, "/profile", nil)
		r.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", "42"))
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, r)
		assert.True(t, called)
		assert.Equal(t, int64(42), gotUserID)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		called = false
		r := httptest.NewRequest(http.MethodGet, "/profile", nil)
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, r)
		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		called = false
		r := httptest.NewRequest(http.MethodGet, "/profile", nil)
		r.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", "42"))
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, r)
		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		called = false
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		})
		signed, err := token.SignedString([]byte("test-secret"))
		require.NoError(t, err)
		r := httptest.NewRequest(http.MethodGet, "/profile", nil)
		r.Header.Set("Authorization", "Bearer "+signed)
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, r)
		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("non-numeric subject is rejected", func(t *testing.T) {
		called = false
		r := httptest.NewRequest(http.MethodGet, "/profile", nil)
		r.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", "budi"))
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, r)
		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
