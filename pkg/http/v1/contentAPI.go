package v1

import (
	"net/http"
	"time"

	"github.com/coneno/logger"
	"github.com/gin-gonic/gin"
	mw "github.com/umoor-sehhat/sehhat-backend/pkg/http/middlewares"
	"github.com/umoor-sehhat/sehhat-backend/pkg/jwt"
	"github.com/umoor-sehhat/sehhat-backend/pkg/types"
	"github.com/umoor-sehhat/sehhat-backend/pkg/visibility"
)

func (h *HttpEndpoints) AddContentAPI(rg *gin.RouterGroup) {
	contentGroup := rg.Group("/content")

	contentGroup.Use(mw.HasValidAPIKey(h.apiKeys))
	contentGroup.Use(mw.ValidateToken())

	kindRoutes := []struct {
		path string
		kind string
	}{
		{"albums", types.CONTENT_KIND_ALBUM},
		{"photos", types.CONTENT_KIND_PHOTO},
		{"comments", types.CONTENT_KIND_COMMENT},
		{"likes", types.CONTENT_KIND_LIKE},
	}
	for _, route := range kindRoutes {
		kind := route.kind
		kindGroup := contentGroup.Group(route.path)
		{
			kindGroup.GET("", h.listContent(kind))
			kindGroup.POST("", mw.RequirePayload(), h.createContent(kind))
			kindGroup.GET(":contentID", h.getContent(kind))
			kindGroup.PUT(":contentID", mw.RequirePayload(), h.updateContent(kind))
			kindGroup.DELETE(":contentID", h.deleteContent(kind))
		}
	}
}

// listContent returns only items the requesting principal may read. The
// visibility rules are pushed into the store query, so private items of
// other users never leave the database.
func (h *HttpEndpoints) listContent(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.MustGet("validatedToken").(*jwt.UserClaims)
		principal := token.Principal()

		filter := visibility.ContentFilter(principal, visibility.OpRead)
		items, err := h.sehhatDB.FindContent(kind, filter)
		if err != nil {
			logger.Error.Printf("%v", err)
			c.JSON(http.StatusOK, gin.H{"items": []types.Content{}})
			return
		}
		logger.Info.Printf("%s list fetched by '%s'", kind, token.ID)

		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

func (h *HttpEndpoints) getContent(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.MustGet("validatedToken").(*jwt.UserClaims)
		principal := token.Principal()
		contentID := c.Param("contentID")

		item, err := h.sehhatDB.FindContentByID(contentID)
		if err != nil || item.Kind != kind {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		// Invisible items answer as not found to avoid leaking existence.
		if !visibility.CanRead(principal, item) {
			logger.Warning.Printf("user %s tried to read %s %s without permission", token.ID, kind, contentID)
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		c.JSON(http.StatusOK, item)
	}
}

func (h *HttpEndpoints) createContent(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.MustGet("validatedToken").(*jwt.UserClaims)
		principal := token.Principal()

		var req types.Content
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Error.Printf("error: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Visibility != types.VISIBILITY_PUBLIC && req.Visibility != types.VISIBILITY_PRIVATE {
			c.JSON(http.StatusBadRequest, gin.H{"error": "visibility must be public or private"})
			return
		}

		// Comments and likes attach to a subject the author must be able
		// to see.
		if kind == types.CONTENT_KIND_COMMENT || kind == types.CONTENT_KIND_LIKE {
			subject, err := h.sehhatDB.FindContentByID(req.SubjectID)
			if err != nil || !visibility.CanRead(principal, subject) {
				c.JSON(http.StatusNotFound, gin.H{"error": "subject not found"})
				return
			}
		}

		req.Kind = kind
		req.OwnerID = principal.ID.Hex()
		req.CreatedAt = time.Now().Unix()

		id, err := h.sehhatDB.AddContent(req)
		if err != nil {
			logger.Error.Printf("%v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err})
			return
		}
		logger.Info.Printf("%s %s created by '%s'", kind, id, token.ID)

		c.JSON(http.StatusCreated, gin.H{"id": id})
	}
}

func (h *HttpEndpoints) updateContent(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.MustGet("validatedToken").(*jwt.UserClaims)
		principal := token.Principal()
		contentID := c.Param("contentID")

		existing, err := h.sehhatDB.FindContentByID(contentID)
		if err != nil || existing.Kind != kind {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		if !visibility.CanRead(principal, existing) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		if !visibility.CanWrite(principal, existing) {
			logger.Warning.Printf("user %s tried to modify %s %s without permission", token.ID, kind, contentID)
			c.JSON(http.StatusForbidden, gin.H{"error": "no permission to modify this item"})
			return
		}

		var req types.Content
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Error.Printf("error: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Visibility != types.VISIBILITY_PUBLIC && req.Visibility != types.VISIBILITY_PRIVATE {
			c.JSON(http.StatusBadRequest, gin.H{"error": "visibility must be public or private"})
			return
		}

		// Ownership and kind are fixed at creation.
		req.ID = existing.ID
		req.Kind = existing.Kind
		req.OwnerID = existing.OwnerID
		req.CreatedAt = existing.CreatedAt

		item, err := h.sehhatDB.UpdateContent(req)
		if err != nil {
			logger.Error.Printf("%v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err})
			return
		}
		logger.Info.Printf("%s %s updated by '%s'", kind, contentID, token.ID)

		c.JSON(http.StatusOK, item)
	}
}

func (h *HttpEndpoints) deleteContent(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.MustGet("validatedToken").(*jwt.UserClaims)
		principal := token.Principal()
		contentID := c.Param("contentID")

		existing, err := h.sehhatDB.FindContentByID(contentID)
		if err != nil || existing.Kind != kind {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		if !visibility.CanRead(principal, existing) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		if !visibility.CanWrite(principal, existing) {
			logger.Warning.Printf("user %s tried to delete %s %s without permission", token.ID, kind, contentID)
			c.JSON(http.StatusForbidden, gin.H{"error": "no permission to delete this item"})
			return
		}

		if err := h.sehhatDB.DeleteContent(contentID); err != nil {
			logger.Error.Printf("%v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err})
			return
		}
		logger.Info.Printf("%s %s deleted by '%s'", kind, contentID, token.ID)

		c.JSON(http.StatusOK, gin.H{"message": "successfully deleted"})
	}
}
