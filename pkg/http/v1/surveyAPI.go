package v1

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/coneno/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/umoor-sehhat/sehhat-backend/pkg/analytics"
	"github.com/umoor-sehhat/sehhat-backend/pkg/db"
	mw "github.com/umoor-sehhat/sehhat-backend/pkg/http/middlewares"
	"github.com/umoor-sehhat/sehhat-backend/pkg/jwt"
	"github.com/umoor-sehhat/sehhat-backend/pkg/types"
	"github.com/umoor-sehhat/sehhat-backend/pkg/visibility"
)

func (h *HttpEndpoints) AddSurveyAPI(rg *gin.RouterGroup) {
	surveysGroup := rg.Group("/surveys")

	surveysGroup.Use(mw.HasValidAPIKey(h.apiKeys))
	surveysGroup.Use(mw.ValidateToken())
	{
		surveysGroup.GET("", h.getSurveys)
		surveysGroup.POST("", mw.RequirePayload(), h.createSurvey)

		surveyGroup := surveysGroup.Group(":surveyID")
		{
			surveyGroup.GET("", h.getSurvey)
			surveyGroup.PUT("", mw.RequirePayload(), h.updateSurvey)
			surveyGroup.DELETE("", h.deleteSurvey)

			surveyGroup.POST("/responses", mw.RequirePayload(), h.submitSurveyResponse)
			surveyGroup.GET("/analytics", h.getSurveyAnalytics)
			surveyGroup.GET("/analytics.csv", h.downloadSurveyAnalyticsCSV)
		}
	}
}

func (h *HttpEndpoints) getSurveys(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwt.UserClaims)
	principal := token.Principal()

	surveys, err := h.sehhatDB.FindSurveys(visibility.SurveyFilter(principal, time.Now().Unix()))
	if err != nil {
		logger.Error.Printf("%v", err)
		c.JSON(http.StatusOK, gin.H{"surveys": []types.Survey{}})
		return
	}
	logger.Info.Printf("surveys fetched by '%s'", token.ID)

	c.JSON(http.StatusOK, gin.H{"surveys": surveys})
}

func (h *HttpEndpoints) createSurvey(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwt.UserClaims)
	principal := token.Principal()

	var req types.Survey
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error.Printf("error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !principal.IsAdmin() && !principal.Manages(req.MozeKey) {
		logger.Warning.Printf("user %s tried to create survey for moze '%s' without permission", token.ID, req.MozeKey)
		c.JSON(http.StatusForbidden, gin.H{"error": "no permission to create surveys for this moze"})
		return
	}

	for i := range req.Questions {
		if req.Questions[i].ID == "" {
			req.Questions[i].ID = uuid.NewString()
		}
	}
	if err := req.ValidateQuestions(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req.CreatedBy = principal.ID.Hex()
	req.CreatedAt = time.Now().Unix()

	id, err := h.sehhatDB.AddSurvey(req)
	if err != nil {
		logger.Error.Printf("%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err})
		return
	}
	logger.Info.Printf("survey %s created by '%s'", id, token.ID)

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *HttpEndpoints) getSurvey(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwt.UserClaims)
	principal := token.Principal()
	surveyID := c.Param("surveyID")

	survey, err := h.sehhatDB.FindSurvey(surveyID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if !visibility.CanManageSurvey(principal, survey) &&
		!visibility.CanRespondToSurvey(principal, survey, time.Now().Unix()) {
		logger.Warning.Printf("user %s tried to read survey %s without permission", token.ID, surveyID)
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	c.JSON(http.StatusOK, survey)
}

func (h *HttpEndpoints) updateSurvey(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwt.UserClaims)
	principal := token.Principal()
	surveyID := c.Param("surveyID")

	existing, err := h.sehhatDB.FindSurvey(surveyID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if !visibility.CanManageSurvey(principal, existing) {
		logger.Warning.Printf("user %s tried to modify survey %s without permission", token.ID, surveyID)
		c.JSON(http.StatusForbidden, gin.H{"error": "no permission to modify this survey"})
		return
	}

	var req types.Survey
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error.Printf("error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	for i := range req.Questions {
		if req.Questions[i].ID == "" {
			req.Questions[i].ID = uuid.NewString()
		}
	}
	if err := req.ValidateQuestions(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req.ID = existing.ID
	req.CreatedBy = existing.CreatedBy
	req.CreatedAt = existing.CreatedAt

	survey, err := h.sehhatDB.UpdateSurvey(req)
	if err != nil {
		logger.Error.Printf("%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err})
		return
	}
	logger.Info.Printf("survey %s updated by '%s'", surveyID, token.ID)

	c.JSON(http.StatusOK, survey)
}

func (h *HttpEndpoints) deleteSurvey(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwt.UserClaims)
	principal := token.Principal()
	surveyID := c.Param("surveyID")

	existing, err := h.sehhatDB.FindSurvey(surveyID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if !visibility.CanManageSurvey(principal, existing) {
		c.JSON(http.StatusForbidden, gin.H{"error": "no permission to delete this survey"})
		return
	}

	if err := h.sehhatDB.DeleteSurvey(surveyID); err != nil {
		logger.Error.Printf("%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err})
		return
	}
	if err := h.sehhatDB.DeleteSurveyResponses(surveyID); err != nil {
		logger.Error.Printf("%v", err)
	}
	logger.Info.Printf("survey %s deleted by '%s'", surveyID, token.ID)

	c.JSON(http.StatusOK, gin.H{"message": "successfully deleted"})
}

type SubmitResponseRequest struct {
	Answers               map[string]interface{} `json:"answers" binding:"required"`
	IsComplete            bool                   `json:"isComplete"`
	CompletionTimeSeconds *float64               `json:"completionTimeSeconds,omitempty"`
}

func (h *HttpEndpoints) submitSurveyResponse(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwt.UserClaims)
	principal := token.Principal()
	surveyID := c.Param("surveyID")

	survey, err := h.sehhatDB.FindSurvey(surveyID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if !survey.IsOpenAt(time.Now().Unix()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "survey is not open"})
		return
	}
	if !visibility.CanRespondToSurvey(principal, survey, time.Now().Unix()) {
		logger.Warning.Printf("user %s tried to respond to survey %s outside its target group", token.ID, surveyID)
		c.JSON(http.StatusForbidden, gin.H{"error": "survey is not available for this account"})
		return
	}

	var req SubmitResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error.Printf("error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := survey.ValidateAnswers(req.Answers, req.IsComplete); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response := types.SurveyResponse{
		SurveyID:              surveyID,
		Answers:               req.Answers,
		IsComplete:            req.IsComplete,
		CompletionTimeSeconds: req.CompletionTimeSeconds,
		SubmittedAt:           time.Now().Unix(),
	}
	if !survey.IsAnonymous {
		response.RespondentID = principal.ID.Hex()
	}

	id, err := h.sehhatDB.AddSurveyResponse(survey, response)
	if err != nil {
		if err == db.ErrDuplicateResponse {
			c.JSON(http.StatusConflict, gin.H{"error": "already responded to this survey"})
			return
		}
		logger.Error.Printf("%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err})
		return
	}
	logger.Info.Printf("response %s submitted to survey %s", id, surveyID)

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// getSurveyAnalytics serves the cached snapshot when the survey has closed
// and the snapshot postdates the window; otherwise it recomputes from the
// raw responses and refreshes the cache on the way out.
func (h *HttpEndpoints) getSurveyAnalytics(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwt.UserClaims)
	principal := token.Principal()
	surveyID := c.Param("surveyID")

	snapshot, ok := h.computeAnalytics(c, principal, surveyID)
	if !ok {
		return
	}
	logger.Info.Printf("analytics for survey %s fetched by '%s'", surveyID, token.ID)

	c.JSON(http.StatusOK, snapshot)
}

func (h *HttpEndpoints) downloadSurveyAnalyticsCSV(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwt.UserClaims)
	principal := token.Principal()
	surveyID := c.Param("surveyID")

	snapshot, ok := h.computeAnalytics(c, principal, surveyID)
	if !ok {
		return
	}

	content, err := analytics.DistributionsCSV(snapshot)
	if err != nil {
		logger.Error.Printf("%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err})
		return
	}
	logger.Info.Printf("analytics CSV for survey %s downloaded by '%s'", surveyID, token.ID)

	reader := bytes.NewReader(content)
	contentLength := int64(len(content))
	contentType := "text/csv"

	extraHeaders := map[string]string{
		"Content-Disposition": `attachment; filename=` + fmt.Sprintf("survey_%s_analytics.csv", surveyID),
	}

	c.DataFromReader(http.StatusOK, contentLength, contentType, reader, extraHeaders)
}

func (h *HttpEndpoints) computeAnalytics(c *gin.Context, principal types.Principal, surveyID string) (types.SurveyAnalytics, bool) {
	survey, err := h.sehhatDB.FindSurvey(surveyID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return types.SurveyAnalytics{}, false
	}
	if !visibility.CanManageSurvey(principal, survey) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return types.SurveyAnalytics{}, false
	}

	// Closed surveys accept no more responses, so a snapshot computed after
	// the window closed can be served as-is.
	if cached, err := h.sehhatDB.FindAnalyticsSnapshot(surveyID); err == nil &&
		analytics.SnapshotCurrent(survey, cached, time.Now().Unix()) {
		return cached, true
	}

	responses, err := h.sehhatDB.FindSurveyResponses(surveyID)
	if err != nil {
		logger.Error.Printf("%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err})
		return types.SurveyAnalytics{}, false
	}

	snapshot := analytics.Aggregate(survey, responses)
	if _, err := h.sehhatDB.SaveAnalyticsSnapshot(snapshot); err != nil {
		// Snapshot caching is best effort, the computation already happened.
		logger.Warning.Printf("failed to cache analytics snapshot for survey %s: %v", surveyID, err)
	}
	return snapshot, true
}
