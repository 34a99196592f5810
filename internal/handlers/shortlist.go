package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Shortlist handles POST /api/v1/properties/:id/shortlist
func (h *ListingHandler) Shortlist(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	id := c.Param("id")
	if err := h.catalog.Shortlist(userID, id); err != nil {
		h.metrics.RecordOp("shortlist", errorKind(err))
		respondError(c, err)
		return
	}
	h.metrics.RecordOp("shortlist", "ok")
	c.JSON(http.StatusOK, gin.H{"property_id": id, "shortlisted": true})
}

// ListOwned handles GET /api/v1/users/:id/properties
func (h *ListingHandler) ListOwned(c *gin.Context) {
	listings := h.catalog.ListOwned(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{
		"properties": listings,
		"count":      len(listings),
	})
}

// ListShortlisted handles GET /api/v1/users/:id/shortlist. The shortlist
// view includes the user's own unsold listings; see catalog.Directory.
func (h *ListingHandler) ListShortlisted(c *gin.Context) {
	listings := h.catalog.ListShortlisted(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{
		"properties": listings,
		"count":      len(listings),
	})
}
