package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Gkemhcs/janus-backend/internal/auth/jwt"
	"github.com/Gkemhcs/janus-backend/internal/middleware"
	"github.com/Gkemhcs/janus-backend/internal/oauth/provider"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, providers ...provider.Provider) (*gin.Engine, *AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	svc := newTestAuthService(t, providers...)
	handler := NewAuthHandler(svc, logger)

	router := gin.New()
	api := router.Group("/api/v1")
	RegisterAuthRoutes(handler, api, func(c *gin.Context) {
		// Stand-in for the JWT middleware on routes that need it.
		c.Set("provider", "github")
		c.Set("oauth_id", "12345678")
		c.Set("email", "octocat@github.com")
		c.Set("username", "octocat")
		c.Next()
	})
	return router, svc
}

func TestProvidersEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, &fakeProvider{name: "github"}, &fakeProvider{name: "google"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/providers", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Success bool             `json:"success"`
		Data    []ProviderStatus `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Data, 2)
	assert.Equal(t, "github", body.Data[0].Name)
}

func TestLoginRedirectsToProvider(t *testing.T) {
	router, _ := newTestRouter(t, &fakeProvider{name: "github"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/github/login?next=/dashboard", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	location := w.Header().Get("Location")
	assert.True(t, strings.HasPrefix(location, "https://idp.example.com/authorize?state="))
}

func TestLoginUnknownProviderReturns404(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/nonexistent/login", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_provider")
}

func TestCallbackReportsProviderDenial(t *testing.T) {
	router, _ := newTestRouter(t, &fakeProvider{name: "github"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/github/callback?error=access_denied&error_description=user+cancelled", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "access_denied")
}

func TestCallbackMissingCodeAndState(t *testing.T) {
	router, _ := newTestRouter(t, &fakeProvider{name: "github"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/github/callback?state=abc", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/auth/github/callback?code=abc", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCallbackInvalidStateReturns400(t *testing.T) {
	router, _ := newTestRouter(t, &fakeProvider{name: "github"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/github/callback?code=abc&state=forged", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "state_validation_failed")
}

func TestCallbackSuccessReturnsLoginResult(t *testing.T) {
	p := &fakeProvider{
		name:  "github",
		token: &provider.Token{AccessToken: "gho_access", TokenType: "Bearer"},
		raw:   map[string]any{"id": float64(12345678)},
		user:  &provider.UserInfo{Provider: "github", OAuthID: "12345678", Username: "octocat"},
	}
	router, svc := newTestRouter(t, p)

	authURL, err := svc.BeginLogin("github", "http://localhost/cb", "/dashboard")
	require.NoError(t, err)
	stateToken := stateFromAuthURL(t, authURL)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/github/callback?code=abc&state="+stateToken, nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Success bool        `json:"success"`
		Data    LoginResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "octocat", body.Data.User.Username)
	assert.Equal(t, "/dashboard", body.Data.NextURL)
	assert.NotEmpty(t, body.Data.SessionToken)
}

func TestRefreshEndpoint(t *testing.T) {
	p := &fakeProvider{
		name:  "google",
		token: &provider.Token{AccessToken: "fresh"},
	}
	router, _ := newTestRouter(t, p)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/google/refresh", strings.NewReader(`{"refresh_token":"r1"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "fresh")
}

func TestRefreshRejectsMissingBody(t *testing.T) {
	router, _ := newTestRouter(t, &fakeProvider{name: "google"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/google/refresh", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRevokeEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, &fakeProvider{name: "github"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/github/revoke", strings.NewReader(`{"token":"tok"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "revoked")
}

func TestMeEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, &fakeProvider{name: "github"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "octocat")
}

func TestMeWithRealJWTMiddlewareRejectsMissingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	svc := newTestAuthService(t)
	handler := NewAuthHandler(svc, logger)
	jwter := jwt.NewManager("test-secret", time.Hour)

	router := gin.New()
	api := router.Group("/api/v1")
	RegisterAuthRoutes(handler, api, middleware.JWTAuthMiddleware(jwter))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	tokenStr, err := jwter.Generate(jwt.CreateJwtParams{Provider: "github", Username: "octocat"})
	require.NoError(t, err)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+tokenStr)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "octocat")
}
