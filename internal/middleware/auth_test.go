package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/barbeariamendes/agenda-api/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newSecuredRouter(cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.GET("/protegida", AuthMiddleware(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"id":       c.MustGet(ContextUserID),
			"username": c.MustGet(ContextUsername),
		})
	})
	return r
}

func signToken(t *testing.T, secret string, expiresIn time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"id":       float64(1),
		"username": "adminmendes",
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(expiresIn).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func request(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protegida", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	r := newSecuredRouter(cfg)

	token := signToken(t, cfg.JWTSecret, 24*time.Hour)
	if w := request(r, "Bearer "+token); w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	r := newSecuredRouter(cfg)

	// Token emitido há mais de 24h.
	token := signToken(t, cfg.JWTSecret, -time.Hour)
	if w := request(r, "Bearer "+token); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token got %d", w.Code)
	}
}

func TestAuthMiddlewareWrongSecret(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	r := newSecuredRouter(cfg)

	token := signToken(t, "outro-segredo", 24*time.Hour)
	if w := request(r, "Bearer "+token); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad signature got %d", w.Code)
	}
}

func TestAuthMiddlewareMissingOrMalformedHeader(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	r := newSecuredRouter(cfg)

	if w := request(r, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without header got %d", w.Code)
	}
	if w := request(r, "Token abc"); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for non-bearer scheme got %d", w.Code)
	}
}
