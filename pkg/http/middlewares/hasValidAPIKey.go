package middlewares

import (
	"net/http"

	"github.com/coneno/logger"
	"github.com/gin-gonic/gin"
)

// HasValidAPIKey gates a route group on the Api-Key header. Any of the
// configured keys passes; missing and unknown keys are rejected alike,
// before token validation runs.
func HasValidAPIKey(validKeys []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, provided := range c.Request.Header["Api-Key"] {
			for _, valid := range validKeys {
				if provided == valid {
					c.Next()
					return
				}
			}
		}

		logger.Warning.Println("request made without a valid API key")
		c.JSON(http.StatusBadRequest, gin.H{"error": "a valid API key is required"})
		c.Abort()
	}
}
