package v1

import (
	"net/http"
	"time"

	"github.com/coneno/logger"
	mw "github.com/umoor-sehhat/sehhat-backend/pkg/http/middlewares"
	"github.com/umoor-sehhat/sehhat-backend/pkg/http/utils"
	"github.com/umoor-sehhat/sehhat-backend/pkg/jwt"
	"github.com/umoor-sehhat/sehhat-backend/pkg/types"

	"github.com/gin-gonic/gin"
)

func (h *HttpEndpoints) AddAuthAPI(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")

	auth.POST("/init-token", mw.HasValidAPIKey(h.apiKeys), h.initToken)
	auth.POST("/renew-token", mw.HasValidAPIKey(h.apiKeys), mw.ValidateToken(), h.renewToken)
	auth.POST("/logout", h.logout)
}

type InitTokenRequest struct {
	ITSNumber string `json:"itsNumber" binding:"required"`
}

func (h *HttpEndpoints) initToken(c *gin.Context) {
	var req InitTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error.Printf("error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	principal, err := h.sehhatDB.FindPrincipalByITSNumber(req.ITSNumber)
	if err != nil {
		logger.Error.Printf("login attempt for unknown ITS number '%s': %v", req.ITSNumber, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown account"})
		return
	}
	if !principal.Active {
		logger.Warning.Printf("login attempt for disabled account '%s'", req.ITSNumber)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "account disabled"})
		return
	}

	role := principal.Role
	for _, admin := range h.adminITSNumbers {
		if admin != "" && admin == principal.ITSNumber {
			role = types.ROLE_ADMIN
			break
		}
	}

	token, err := jwt.GenerateNewToken(
		principal.ID.Hex(),
		utils.TokenMaxAge*time.Second,
		role,
		principal.ManagedMozes,
	)
	if err != nil {
		logger.Error.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err})
		return
	}

	logger.Info.Printf("token initialized for '%s'", principal.ID.Hex())
	c.JSON(http.StatusOK, gin.H{"accessToken": token, "expiresIn": utils.TokenMaxAge})
}

func (h *HttpEndpoints) renewToken(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwt.UserClaims)

	principal, err := h.sehhatDB.FindPrincipalByID(token.ID)
	if err != nil {
		logger.Error.Printf("%v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown account"})
		return
	}
	if !principal.Active {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "account disabled"})
		return
	}

	// Roles and moze assignments are re-read so revoked access does not
	// survive a renewal.
	role := principal.Role
	for _, admin := range h.adminITSNumbers {
		if admin != "" && admin == principal.ITSNumber {
			role = types.ROLE_ADMIN
			break
		}
	}

	newToken, err := jwt.GenerateNewToken(
		principal.ID.Hex(),
		utils.TokenMaxAge*time.Second,
		role,
		principal.ManagedMozes,
	)
	if err != nil {
		logger.Error.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err})
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": newToken, "expiresIn": utils.TokenMaxAge})
}

func (h *HttpEndpoints) logout(c *gin.Context) {
	c.SetCookie(utils.AuthCookieName, "", -1, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"msg": "logout successful"})
}
