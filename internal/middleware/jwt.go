package middleware

import (
	"net/http"
	"strings"

	"github.com/Gkemhcs/janus-backend/internal/auth/jwt"
	"github.com/gin-gonic/gin"
)

// JWTAuthMiddleware verifies the session JWT from the Authorization header
// and populates the request context with the user claims.
func JWTAuthMiddleware(jwter *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims, err := jwter.Verify(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		// Populate context with claims
		c.Set("provider", claims.Provider)
		c.Set("oauth_id", claims.OAuthID)
		c.Set("email", claims.Email)
		c.Set("username", claims.Username)
		c.Next()
	}
}
