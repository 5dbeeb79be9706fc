package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/contentdesk/contentdesk-api/internal/authz"
	"github.com/contentdesk/contentdesk-api/pkg/helpers"
)

const ctxActorKey = "actor"

// Auth reads the Authorization bearer token, validates it, and injects
// the actor identity into the Gin context. The claims are trusted
// as-is for the token lifetime; there is no server-side revocation.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing token"})
			return
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "malformed authorization header"})
			return
		}
		claims, err := jwt.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
			return
		}
		c.Set(ctxActorKey, authz.Actor{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
			TeamID: claims.TeamID,
		})
		c.Next()
	}
}

// ActorFrom returns the actor injected by Auth. Zero value when called
// on an unprotected route.
func ActorFrom(c *gin.Context) authz.Actor {
	if v, ok := c.Get(ctxActorKey); ok {
		if a, ok := v.(authz.Actor); ok {
			return a
		}
	}
	return authz.Actor{}
}
