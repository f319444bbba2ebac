package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireQueryParams rejects requests missing any of the listed query
// parameters, so handlers behind it can read them unconditionally.
func RequireQueryParams(params []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, key := range params {
			if value := c.Query(key); len(value) < 1 {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": key + " parameter missing"})
				return
			}
		}
		c.Next()
	}
}
