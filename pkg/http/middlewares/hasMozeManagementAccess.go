package middlewares

import (
	"net/http"

	"github.com/coneno/logger"
	"github.com/gin-gonic/gin"
	"github.com/umoor-sehhat/sehhat-backend/pkg/jwt"
	"github.com/umoor-sehhat/sehhat-backend/pkg/types"
)

// HasMozeManagementAccess checks the token's managed moze keys against the
// mozeKey path parameter. Admin tokens always pass.
func HasMozeManagementAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		mozeKey := c.Param("mozeKey")
		token := c.MustGet("validatedToken").(*jwt.UserClaims)

		if token.Role == types.ROLE_ADMIN {
			c.Next()
			return
		}
		if token.Role == types.ROLE_AAMIL || token.Role == types.ROLE_MOZE_COORDINATOR {
			for _, key := range token.ManagedMozes {
				if key == mozeKey {
					c.Next()
					return
				}
			}
		}
		logger.Error.Printf("user %s tried unauthorized access to moze %s", token.ID, mozeKey)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
}
