package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, subject string, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func authTestRouter() (*gin.Engine, *uint64) {
	var seen uint64
	r := gin.New()
	r.GET("/protected", RequireAuth(testSecret), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		seen = userID
		c.Status(http.StatusOK)
	})
	return r, &seen
}

func TestRequireAuth_ValidToken(t *testing.T) {
	r, seen := authTestRouter()

	token := signToken(t, testSecret, "42", time.Now().Add(time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, uint64(42), *seen)
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	r, _ := authTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	r, _ := authTestRouter()

	token := signToken(t, testSecret, "42", time.Now().Add(-time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_WrongSecret(t *testing.T) {
	r, _ := authTestRouter()

	token := signToken(t, "some-other-secret", "42", time.Now().Add(time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetUserID_TypeCoercion(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	c.Set("user_id", uint64(7))
	id, ok := GetUserID(c)
	require.True(t, ok)
	require.Equal(t, uint64(7), id)

	c.Set("user_id", int(-1))
	_, ok = GetUserID(c)
	require.False(t, ok)

	c.Set("user_id", "not-a-number")
	_, ok = GetUserID(c)
	require.False(t, ok)
}
