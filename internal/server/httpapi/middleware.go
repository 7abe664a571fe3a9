package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/zavier/pulsetempo/internal/server/auth"
)

// userIDKey is the gin context key carrying the authenticated user's id.
const userIDKey = "user_id"

// RequireAuth validates the Bearer access token and injects the subject into
// the request context. Refresh tokens are rejected here: only access tokens
// grant API access.
func RequireAuth(tokens *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "authorization header required"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "invalid authorization header"})
			return
		}

		subject, err := tokens.Decode(parts[1], auth.KindAccess)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "invalid token"})
			return
		}

		c.Set(userIDKey, subject)
		c.Next()
	}
}
