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
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, role string, expiresIn time.Duration) string {
	t.Helper()
	claims := Claims{
		UserID: 42,
		Email:  "cashier@example.com",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newAuthRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth(testSecret))
	if len(roles) > 0 {
		r.Use(RequireRole(roles...))
	}
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c), "role": GetUserRole(c)})
	})
	return r
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		query      string
		roles      []string
		wantStatus int
	}{
		{"missing header", "", "", nil, http.StatusUnauthorized},
		{"bad scheme", "Token abc", "", nil, http.StatusUnauthorized},
		{"bearer without token", "Bearer ", "", nil, http.StatusUnauthorized},
		{"lowercase scheme", "bearer " + signToken(t, testSecret, RoleCashier, time.Hour), "", nil, http.StatusOK},
		{"wrong secret", "Bearer " + signToken(t, "other", RoleCashier, time.Hour), "", nil, http.StatusUnauthorized},
		{"expired", "Bearer " + signToken(t, testSecret, RoleCashier, -time.Hour), "", nil, http.StatusUnauthorized},
		{"valid", "Bearer " + signToken(t, testSecret, RoleCashier, time.Hour), "", nil, http.StatusOK},
		{"query token", "", signToken(t, testSecret, RoleCashier, time.Hour), nil, http.StatusOK},
		{"role allowed", "Bearer " + signToken(t, testSecret, RoleCashier, time.Hour), "", []string{RoleAdmin, RoleCashier}, http.StatusOK},
		{"role denied", "Bearer " + signToken(t, testSecret, RoleFrontDesk, time.Hour), "", []string{RoleAdmin, RoleCashier}, http.StatusForbidden},
		{"empty role denied", "Bearer " + signToken(t, testSecret, "", time.Hour), "", []string{RoleAdmin}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newAuthRouter(tt.roles...)
			url := "/whoami"
			if tt.query != "" {
				url += "?token=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, url, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestAuth_StoresIdentity(t *testing.T) {
	r := newAuthRouter()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, RoleFrontDesk, time.Hour))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id": 42, "role": "front_desk"}`, w.Body.String())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, uint(0), GetUserID(c))
	assert.Empty(t, GetUserRole(c))
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS([]string{"https://desk.example.com"}))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://desk.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://desk.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "https://desk.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("requestID")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}
