package auth

import (
	"fmt"
	"net/http"

	apperrors "github.com/Gkemhcs/janus-backend/internal/errors"
	"github.com/Gkemhcs/janus-backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AuthHandler handles HTTP requests related to authentication.
type AuthHandler struct {
	service *AuthService
	logger  *logrus.Logger
}

// NewAuthHandler creates a new AuthHandler with the given service and logger.
func NewAuthHandler(service *AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterAuthRoutes registers the login, callback, and token management
// routes for all providers, plus the JWT-protected /me route.
func RegisterAuthRoutes(handler *AuthHandler, routerGroup *gin.RouterGroup, jwtMiddleware gin.HandlerFunc) {
	authGroup := routerGroup.Group("/auth")
	{
		authGroup.GET("/providers", handler.Providers)
		authGroup.GET("/:provider/login", handler.Login)
		authGroup.GET("/:provider/callback", handler.Callback)
		authGroup.POST("/:provider/refresh", handler.Refresh)
		authGroup.POST("/:provider/revoke", handler.Revoke)
		authGroup.GET("/me", jwtMiddleware, handler.Me)
	}
}

// Login handles GET /auth/:provider/login. Starts a login attempt and
// redirects the user to the provider's authorization page. An optional
// "next" query parameter is carried across the flow and returned by the
// callback.
func (h *AuthHandler) Login(c *gin.Context) {
	providerName := c.Param("provider")
	authURL, err := h.service.BeginLogin(providerName, callbackURL(c, providerName), c.Query("next"))
	if err != nil {
		h.respondOAuthError(c, err)
		return
	}
	c.Redirect(http.StatusFound, authURL)
}

// Callback handles GET /auth/:provider/callback. Completes the login attempt
// and returns the user, the provider token, and a session JWT.
func (h *AuthHandler) Callback(c *gin.Context) {
	providerName := c.Param("provider")

	// The provider reports user denial and other upstream failures via an
	// error query parameter instead of a code.
	if errCode := c.Query("error"); errCode != "" {
		h.logger.Warnf("OAuth callback error from provider %s: %s (%s)", providerName, errCode, c.Query("error_description"))
		utils.RespondError(c, apperrors.ErrAccessDenied.Status, errCode, c.Query("error_description"))
		return
	}

	code := c.Query("code")
	if code == "" {
		utils.RespondError(c, apperrors.ErrMissingCode.Status, apperrors.ErrMissingCode.Code, apperrors.ErrMissingCode.Message)
		return
	}
	state := c.Query("state")
	if state == "" {
		utils.RespondError(c, apperrors.ErrMissingState.Status, apperrors.ErrMissingState.Code, apperrors.ErrMissingState.Message)
		return
	}

	result, err := h.service.CompleteLogin(c.Request.Context(), providerName, code, state)
	if err != nil {
		h.logger.Errorf("OAuth callback error for provider %s: %v", providerName, err)
		h.respondOAuthError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, result)
}

// Refresh handles POST /auth/:provider/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, apperrors.ErrInvalidBody.Status, apperrors.ErrInvalidBody.Code, apperrors.ErrInvalidBody.Message)
		return
	}
	token, err := h.service.RefreshToken(c.Request.Context(), c.Param("provider"), req.RefreshToken)
	if err != nil {
		h.respondOAuthError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, token)
}

// Revoke handles POST /auth/:provider/revoke. Revocation is best-effort; a
// success response means the request was accepted, not that the provider
// honored it.
func (h *AuthHandler) Revoke(c *gin.Context) {
	var req RevokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, apperrors.ErrInvalidBody.Status, apperrors.ErrInvalidBody.Code, apperrors.ErrInvalidBody.Message)
		return
	}
	if err := h.service.RevokeToken(c.Request.Context(), c.Param("provider"), req.Token, req.TokenTypeHint); err != nil {
		h.respondOAuthError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"revoked": true})
}

// Providers handles GET /auth/providers.
func (h *AuthHandler) Providers(c *gin.Context) {
	utils.RespondSuccess(c, http.StatusOK, h.service.Providers())
}

// Me handles GET /auth/me. The JWT middleware has already populated the
// context from the session token.
func (h *AuthHandler) Me(c *gin.Context) {
	utils.RespondSuccess(c, http.StatusOK, gin.H{
		"provider": c.GetString("provider"),
		"oauth_id": c.GetString("oauth_id"),
		"email":    c.GetString("email"),
		"username": c.GetString("username"),
	})
}

func (h *AuthHandler) respondOAuthError(c *gin.Context, err error) {
	apiErr := apperrors.FromOAuthError(err)
	utils.RespondError(c, apiErr.Status, apiErr.Code, apiErr.Message)
}

// callbackURL derives the provider callback URL from the incoming request so
// deployments behind different hosts need no extra configuration.
func callbackURL(c *gin.Context, providerName string) string {
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/api/v1/auth/%s/callback", scheme, c.Request.Host, providerName)
}
