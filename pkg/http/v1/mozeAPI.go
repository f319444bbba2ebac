package v1

import (
	"net/http"

	"github.com/coneno/logger"
	"github.com/gin-gonic/gin"
	mw "github.com/umoor-sehhat/sehhat-backend/pkg/http/middlewares"
	"github.com/umoor-sehhat/sehhat-backend/pkg/jwt"
	"github.com/umoor-sehhat/sehhat-backend/pkg/types"
)

func (h *HttpEndpoints) AddMozeAPI(rg *gin.RouterGroup) {
	mozesGroup := rg.Group("/mozes")

	mozesGroup.Use(mw.HasValidAPIKey(h.apiKeys))
	mozesGroup.Use(mw.ValidateToken())
	{
		mozesGroup.GET("", h.getAllMozes)
		mozesGroup.POST("", mw.IsAdmin(), mw.RequirePayload(), h.saveMoze)

		mozeGroup := mozesGroup.Group(":mozeKey")
		{
			mozeGroup.GET("", h.getMoze)
			mozeGroup.DELETE("", mw.IsAdmin(), h.deactivateMoze)
			mozeGroup.GET("/members", mw.HasMozeAssignment(h.sehhatDB), h.getMozeMembers)

			mozeGroup.GET("/notifications", mw.HasMozeAssignment(h.sehhatDB), h.fetchNotificationSubscriptions) // ?topic=value
			mozeGroup.POST("/notifications", mw.HasMozeAssignment(h.sehhatDB), mw.RequirePayload(), h.addNotificationSubscription)
			mozeGroup.DELETE("/notifications/:subscriptionID", mw.HasMozeAssignment(h.sehhatDB), h.deleteNotificationSubscription)
		}
	}
}

func (h *HttpEndpoints) getAllMozes(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwt.UserClaims)

	mozes, err := h.sehhatDB.FindAllMozes()
	if err != nil {
		logger.Error.Printf("%v", err)
		c.JSON(http.StatusOK, gin.H{"mozes": []types.Moze{}})
		return
	}
	logger.Info.Printf("moze list fetched by '%s'", token.ID)

	c.JSON(http.StatusOK, gin.H{"mozes": mozes})
}

func (h *HttpEndpoints) getMoze(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwt.UserClaims)
	mozeKey := c.Param("mozeKey")

	moze, err := h.sehhatDB.FindMoze(mozeKey)
	if err != nil {
		logger.Error.Printf("%v", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "moze not found"})
		return
	}
	logger.Info.Printf("moze %s fetched by '%s'", mozeKey, token.ID)

	c.JSON(http.StatusOK, moze)
}

func (h *HttpEndpoints) saveMoze(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwt.UserClaims)

	var req types.Moze
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error.Printf("error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "moze key must be defined"})
		return
	}

	moze, err := h.sehhatDB.SaveMoze(req)
	if err != nil {
		logger.Error.Printf("%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err})
		return
	}
	logger.Info.Printf("moze %s saved by '%s'", moze.Key, token.ID)

	c.JSON(http.StatusOK, moze)
}

func (h *HttpEndpoints) deactivateMoze(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwt.UserClaims)
	mozeKey := c.Param("mozeKey")

	if err := h.sehhatDB.SetMozeActiveStatus(mozeKey, false); err != nil {
		logger.Error.Printf("%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err})
		return
	}
	if err := h.sehhatDB.DeleteAllNotificationSubscriptionsForMoze(mozeKey); err != nil {
		logger.Error.Printf("error when removing notification subscriptions for moze '%s': %v", mozeKey, err)
	}
	logger.Info.Printf("moze %s deactivated by '%s'", mozeKey, token.ID)

	c.JSON(http.StatusOK, gin.H{"message": "moze deactivated"})
}

func (h *HttpEndpoints) getMozeMembers(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwt.UserClaims)
	mozeKey := c.Param("mozeKey")

	members, err := h.sehhatDB.FindPrincipalsByMoze(mozeKey)
	if err != nil {
		logger.Error.Printf("%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err})
		return
	}
	logger.Info.Printf("members of moze %s fetched by '%s'", mozeKey, token.ID)

	c.JSON(http.StatusOK, gin.H{"members": members})
}

func (h *HttpEndpoints) fetchNotificationSubscriptions(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwt.UserClaims)
	mozeKey := c.Param("mozeKey")
	topic := c.DefaultQuery("topic", "")

	subs, err := h.sehhatDB.FindNotificationSubscriptions(mozeKey, topic)
	if err != nil {
		logger.Error.Printf("%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err})
		return
	}
	logger.Info.Printf("notification subs for %s fetched by '%s'", mozeKey, token.ID)

	c.JSON(http.StatusOK, gin.H{"notificationSubscriptions": subs})
}

func (h *HttpEndpoints) addNotificationSubscription(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwt.UserClaims)
	mozeKey := c.Param("mozeKey")

	var req types.NotificationSubscription
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error.Printf("error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, err := h.sehhatDB.AddNotificationSubscription(mozeKey, req)
	if err != nil {
		logger.Error.Printf("%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err})
		return
	}
	logger.Info.Printf("notification subscription added for %s by '%s'", mozeKey, token.ID)

	subs, err := h.sehhatDB.FindNotificationSubscriptions(mozeKey, req.Topic)
	if err != nil {
		logger.Error.Printf("%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notificationSubscriptions": subs})
}

func (h *HttpEndpoints) deleteNotificationSubscription(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwt.UserClaims)
	mozeKey := c.Param("mozeKey")
	subscriptionID := c.Param("subscriptionID")

	_, err := h.sehhatDB.DeleteNotificationSubscription(mozeKey, subscriptionID)
	if err != nil {
		logger.Error.Printf("%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err})
		return
	}
	logger.Info.Printf("notification subscription deleted for %s by '%s'", mozeKey, token.ID)

	c.JSON(http.StatusOK, gin.H{"message": "successfully deleted"})
}
