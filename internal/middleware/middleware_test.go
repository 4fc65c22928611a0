package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	"github.com/BruksfildServices01/barbershop-booking/internal/logger"
)

const secret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func sign(t *testing.T, claims jwt.MapClaims, key string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.GET("/x", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user": c.GetUint(ContextUserID),
			"role": c.GetString(ContextUserRole),
		})
	})
	return r
}

func do(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWTSecret: secret}
	r := newRouter(AuthMiddleware(cfg))
	exp := time.Now().Add(time.Hour).Unix()

	valid := sign(t, jwt.MapClaims{"sub": 7, "role": "barber", "exp": exp}, secret)
	w := do(r, "Bearer "+valid)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":7,"role":"barber"}`, w.Body.String())

	cases := map[string]string{
		"missing":      "",
		"scheme":       "Basic abc",
		"wrong key":    "Bearer " + sign(t, jwt.MapClaims{"sub": 7, "role": "barber", "exp": exp}, "other"),
		"expired":      "Bearer " + sign(t, jwt.MapClaims{"sub": 7, "role": "barber", "exp": time.Now().Add(-time.Minute).Unix()}, secret),
		"no subject":   "Bearer " + sign(t, jwt.MapClaims{"role": "barber", "exp": exp}, secret),
		"unknown role": "Bearer " + sign(t, jwt.MapClaims{"sub": 7, "role": "client", "exp": exp}, secret),
	}
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{"sub": 7, "role": "barber", "exp": exp}).
		SignedString([]byte(secret))
	require.NoError(t, err)
	cases["other algorithm"] = "Bearer " + hs512

	for name, header := range cases {
		assert.Equal(t, http.StatusUnauthorized, do(r, header).Code, name)
	}
}

func TestSignTokenIsAccepted(t *testing.T) {
	cfg := &config.Config{JWTSecret: secret}
	r := newRouter(AuthMiddleware(cfg))

	token, err := SignToken(secret, 3, "superadmin", time.Minute)
	require.NoError(t, err)

	w := do(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":3,"role":"superadmin"}`, w.Body.String())
}

func TestRequireRole(t *testing.T) {
	cfg := &config.Config{JWTSecret: secret}
	r := newRouter(AuthMiddleware(cfg), RequireRole("superadmin"))
	exp := time.Now().Add(time.Hour).Unix()

	barber := sign(t, jwt.MapClaims{"sub": 7, "role": "barber", "exp": exp}, secret)
	admin := sign(t, jwt.MapClaims{"sub": 1, "role": "superadmin", "exp": exp}, secret)

	assert.Equal(t, http.StatusForbidden, do(r, "Bearer "+barber).Code)
	assert.Equal(t, http.StatusOK, do(r, "Bearer "+admin).Code)
}

func TestRequestID(t *testing.T) {
	var seen string
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) {
		seen = logger.RequestID(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Len(t, w.Header().Get(HeaderRequestID), 36)
	assert.Equal(t, seen, w.Header().Get(HeaderRequestID))
}

func TestCORSPreflight(t *testing.T) {
	r := newRouter(CORS([]string{"https://shop.example"}))

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://shop.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://shop.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, HeaderRequestID, w.Header().Get("Access-Control-Expose-Headers"))
}

func TestCORSUnknownOrigin(t *testing.T) {
	r := newRouter(CORS([]string{"https://shop.example"}))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
