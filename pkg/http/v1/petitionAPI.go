package v1

import (
	"net/http"
	"time"

	"github.com/coneno/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	mw "github.com/umoor-sehhat/sehhat-backend/pkg/http/middlewares"
	"github.com/umoor-sehhat/sehhat-backend/pkg/jwt"
	"github.com/umoor-sehhat/sehhat-backend/pkg/types"
	"github.com/umoor-sehhat/sehhat-backend/pkg/visibility"
)

func (h *HttpEndpoints) AddPetitionAPI(rg *gin.RouterGroup) {
	petitionsGroup := rg.Group("/petitions")

	petitionsGroup.Use(mw.HasValidAPIKey(h.apiKeys))
	petitionsGroup.Use(mw.ValidateToken())
	{
		petitionsGroup.GET("", h.getPetitions)
		petitionsGroup.POST("", mw.RequirePayload(), h.createPetition)

		petitionGroup := petitionsGroup.Group(":petitionID")
		{
			petitionGroup.GET("", h.getPetition)
			petitionGroup.GET("/status", mw.RequireQueryParams([]string{"value"}), h.changePetitionStatus) // ?value=resolved
			petitionGroup.POST("/comments", mw.RequirePayload(), h.addCommentToPetition)
		}
	}
}

func (h *HttpEndpoints) getPetitions(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwt.UserClaims)
	principal := token.Principal()

	petitions, err := h.sehhatDB.FindPetitions(visibility.PetitionFilter(principal))
	if err != nil {
		logger.Error.Printf("%v", err)
		c.JSON(http.StatusOK, gin.H{"petitions": []types.Petition{}})
		return
	}
	logger.Info.Printf("petitions fetched by '%s'", token.ID)

	c.JSON(http.StatusOK, gin.H{"petitions": petitions})
}

func (h *HttpEndpoints) createPetition(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwt.UserClaims)
	principal := token.Principal()

	var req types.Petition
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error.Printf("error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title must be defined"})
		return
	}

	now := time.Now().Unix()
	req.PetitionerID = principal.ID.Hex()
	req.Status = types.PETITION_STATUS_PENDING
	req.Comments = []types.PetitionComment{}
	req.CreatedAt = now
	req.UpdatedAt = now

	id, err := h.sehhatDB.AddPetition(req)
	if err != nil {
		logger.Error.Printf("%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err})
		return
	}
	logger.Info.Printf("petition %s created by '%s'", id, token.ID)

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *HttpEndpoints) getPetition(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwt.UserClaims)
	principal := token.Principal()
	petitionID := c.Param("petitionID")

	petition, err := h.sehhatDB.FindPetitionByID(petitionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if !visibility.CanReadPetition(principal, petition) {
		logger.Warning.Printf("user %s tried to read petition %s without permission", token.ID, petitionID)
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	c.JSON(http.StatusOK, petition)
}

// Status transitions are reserved for the managing staff of the petition's
// moze and admins; petitioners only follow along.
func (h *HttpEndpoints) changePetitionStatus(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwt.UserClaims)
	principal := token.Principal()
	petitionID := c.Param("petitionID")
	status := c.Query("value")

	if !types.PetitionStatusKnown(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status value"})
		return
	}

	petition, err := h.sehhatDB.FindPetitionByID(petitionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if !principal.IsAdmin() && !principal.Manages(petition.MozeKey) {
		logger.Warning.Printf("user %s tried to change status of petition %s without permission", token.ID, petitionID)
		c.JSON(http.StatusForbidden, gin.H{"error": "no permission to change petition status"})
		return
	}

	if err := h.sehhatDB.UpdatePetitionStatus(petitionID, status); err != nil {
		logger.Error.Printf("%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err})
		return
	}
	logger.Info.Printf("petition %s status changed to %s by '%s'", petitionID, status, token.ID)

	petition, err = h.sehhatDB.FindPetitionByID(petitionID)
	if err != nil {
		logger.Error.Printf("%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err})
		return
	}

	c.JSON(http.StatusOK, petition)
}

func (h *HttpEndpoints) addCommentToPetition(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwt.UserClaims)
	principal := token.Principal()
	petitionID := c.Param("petitionID")

	petition, err := h.sehhatDB.FindPetitionByID(petitionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if !visibility.CanReadPetition(principal, petition) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	var req types.PetitionComment
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error.Printf("error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.ID = uuid.NewString()
	req.Time = time.Now().Unix()
	req.Author = principal.ID.Hex()

	if err := h.sehhatDB.AddCommentToPetition(petitionID, req); err != nil {
		logger.Error.Printf("%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err})
		return
	}
	logger.Info.Printf("comment added to petition %s by '%s'", petitionID, token.ID)

	petition, err = h.sehhatDB.FindPetitionByID(petitionID)
	if err != nil {
		logger.Error.Printf("%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err})
		return
	}

	c.JSON(http.StatusOK, petition)
}
