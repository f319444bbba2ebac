package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/umoor-sehhat/sehhat-backend/pkg/jwt"
	"github.com/umoor-sehhat/sehhat-backend/pkg/types"
)

// IsAdmin lets only tokens with the admin role pass
func IsAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.MustGet("validatedToken").(*jwt.UserClaims)

		if token.Role == types.ROLE_ADMIN {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin account required for this feature"})
	}
}
