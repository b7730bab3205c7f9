package middleware

import (
	"net/http"
	"strings"

	"metastar/utils"

	"github.com/gin-gonic/gin"
)

// TokenFromRequest extracts the session token, preferring the secure cookie
// and falling back to an Authorization bearer header.
func TokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(utils.SessionCookieName); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// SessionAuthMiddleware gates protected routes on a valid session token.
// Missing, tampered and expired tokens all produce the same response so
// callers cannot probe which check failed.
func SessionAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		subject, err := utils.SubjectFromToken(token)
		if err != nil || subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set("email", subject)
		c.Next()
	}
}
