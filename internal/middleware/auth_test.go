package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

const testSecret = "unit-test-secret"

func signedToken(t *testing.T, secret string, userID uint, role string, ttl time.Duration) string {
	t.Helper()
	claims := AuthClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func newProtectedRouter(role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Authenticate(testSecret), RequireRole(role), func(c *gin.Context) {
		p, _ := PrincipalFrom(c)
		c.JSON(http.StatusOK, gin.H{"user_id": p.UserID})
	})
	return r
}

func get(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticateValidToken(t *testing.T) {
	r := newProtectedRouter(RoleStudent)
	token := signedToken(t, testSecret, 7, RoleStudent, time.Hour)

	w := get(r, "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestAuthenticateMissingHeader(t *testing.T) {
	r := newProtectedRouter(RoleStudent)
	if w := get(r, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuthenticateWrongSecret(t *testing.T) {
	r := newProtectedRouter(RoleStudent)
	token := signedToken(t, "other-secret", 7, RoleStudent, time.Hour)
	if w := get(r, "Bearer "+token); w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuthenticateExpiredToken(t *testing.T) {
	r := newProtectedRouter(RoleStudent)
	token := signedToken(t, testSecret, 7, RoleStudent, -time.Minute)
	if w := get(r, "Bearer "+token); w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestRequireRoleMismatch(t *testing.T) {
	r := newProtectedRouter(RoleAdmin)
	token := signedToken(t, testSecret, 7, RoleStudent, time.Hour)
	if w := get(r, "Bearer "+token); w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}
