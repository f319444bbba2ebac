package middlewares

import (
	"net/http"

	"github.com/coneno/logger"
	"github.com/gin-gonic/gin"
	"github.com/umoor-sehhat/sehhat-backend/pkg/db"
	"github.com/umoor-sehhat/sehhat-backend/pkg/jwt"
	"github.com/umoor-sehhat/sehhat-backend/pkg/types"
)

// HasMozeAssignment checks against the moze document itself whether the
// requesting principal is its assigned aamil or coordinator. Used for the
// moze administration endpoints where a stale token must not grant access.
func HasMozeAssignment(dbRef *db.SehhatDBService) gin.HandlerFunc {
	return func(c *gin.Context) {
		mozeKey := c.Param("mozeKey")
		token := c.MustGet("validatedToken").(*jwt.UserClaims)

		if token.Role == types.ROLE_ADMIN {
			c.Next()
			return
		}

		moze, err := dbRef.FindMoze(mozeKey)
		if err != nil {
			logger.Error.Printf("error: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if moze.AamilID == token.ID || moze.CoordinatorID == token.ID {
			c.Next()
			return
		}

		logger.Error.Printf("user %s tried unauthorized access to moze %s", token.ID, mozeKey)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
}
