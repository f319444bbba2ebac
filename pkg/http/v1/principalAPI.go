package v1

import (
	"net/http"
	"time"

	"github.com/coneno/logger"
	"github.com/gin-gonic/gin"
	mw "github.com/umoor-sehhat/sehhat-backend/pkg/http/middlewares"
	"github.com/umoor-sehhat/sehhat-backend/pkg/jwt"
	"github.com/umoor-sehhat/sehhat-backend/pkg/types"
)

// Principal administration is admin tooling: accounts are created and
// mutated here, never self-registered, and removal is a soft-disable.
func (h *HttpEndpoints) AddPrincipalAPI(rg *gin.RouterGroup) {
	principalsGroup := rg.Group("/principals")

	principalsGroup.Use(mw.HasValidAPIKey(h.apiKeys))
	principalsGroup.Use(mw.ValidateToken())
	principalsGroup.Use(mw.IsAdmin())
	{
		principalsGroup.POST("", mw.RequirePayload(), h.savePrincipal)

		principalGroup := principalsGroup.Group(":principalID")
		{
			principalGroup.GET("", h.getPrincipal)
			principalGroup.DELETE("", h.deactivatePrincipal)
		}
	}
}

func (h *HttpEndpoints) savePrincipal(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwt.UserClaims)

	var req types.Principal
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error.Printf("error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ITSNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "itsNumber must be defined"})
		return
	}
	if !types.RoleKnown(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role '" + req.Role + "'"})
		return
	}

	if len(req.ManagedMozes) > 0 {
		mozes, err := h.sehhatDB.FindMozesByKeys(req.ManagedMozes)
		if err != nil {
			logger.Error.Printf("%v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err})
			return
		}
		if missing := missingMozeKeys(req.ManagedMozes, mozes); len(missing) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown moze keys", "mozeKeys": missing})
			return
		}
	}

	existing, err := h.sehhatDB.FindPrincipalByITSNumber(req.ITSNumber)
	if err == nil {
		req.CreatedAt = existing.CreatedAt
	} else {
		req.CreatedAt = time.Now().Unix()
	}

	principal, err := h.sehhatDB.SavePrincipal(req)
	if err != nil {
		logger.Error.Printf("%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err})
		return
	}
	logger.Info.Printf("principal %s saved by '%s'", principal.ITSNumber, token.ID)

	c.JSON(http.StatusOK, principal)
}

func (h *HttpEndpoints) getPrincipal(c *gin.Context) {
	principalID := c.Param("principalID")

	principal, err := h.sehhatDB.FindPrincipalByID(principalID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	c.JSON(http.StatusOK, principal)
}

func (h *HttpEndpoints) deactivatePrincipal(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwt.UserClaims)
	principalID := c.Param("principalID")

	if err := h.sehhatDB.SetPrincipalActiveStatus(principalID, false); err != nil {
		logger.Error.Printf("%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err})
		return
	}
	logger.Info.Printf("principal %s deactivated by '%s'", principalID, token.ID)

	c.JSON(http.StatusOK, gin.H{"message": "account disabled"})
}

// missingMozeKeys reports which of the requested assignment keys the store
// lookup did not return.
func missingMozeKeys(requested []string, found []types.Moze) []string {
	known := make(map[string]struct{}, len(found))
	for _, m := range found {
		known[m.Key] = struct{}{}
	}
	missing := []string{}
	for _, key := range requested {
		if _, ok := known[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}
