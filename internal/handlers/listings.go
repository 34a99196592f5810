package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sahanmndl/property-listing-platform/internal/catalog"
	"github.com/sahanmndl/property-listing-platform/internal/config"
	"github.com/sahanmndl/property-listing-platform/internal/metrics"
	"github.com/sahanmndl/property-listing-platform/internal/models"
)

// ListingHandler handles listing-related requests
type ListingHandler struct {
	catalog *catalog.Catalog
	metrics *metrics.Metrics
	config  *config.Config
}

// NewListingHandler creates a new listing handler
func NewListingHandler(cat *catalog.Catalog, m *metrics.Metrics, cfg *config.Config) *ListingHandler {
	return &ListingHandler{catalog: cat, metrics: m, config: cfg}
}

// createRequest is the POST /api/v1/properties body
type createRequest struct {
	Location     string   `json:"location"`
	Price        *float64 `json:"price"`
	PropertyType string   `json:"property_type"`
	Description  string   `json:"description"`
	Amenities    []string `json:"amenities"`
}

// Create handles POST /api/v1/properties
func (h *ListingHandler) Create(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Location == "" || req.PropertyType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "location and property_type are required"})
		return
	}
	if req.Price == nil || *req.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be a non-negative number"})
		return
	}

	id := h.catalog.CreateListing(userID, models.ListingDetails{
		Location:     req.Location,
		Price:        *req.Price,
		PropertyType: req.PropertyType,
		Description:  req.Description,
		Amenities:    req.Amenities,
	})
	h.metrics.RecordOp("create", "ok")

	if h.config.Logging.LogRequests {
		log.Printf("Created listing %s for user %s (%s, %s)", id, userID, req.Location, req.PropertyType)
	}
	c.JSON(http.StatusCreated, gin.H{"property_id": id})
}

// Get handles GET /api/v1/properties/:id
func (h *ListingHandler) Get(c *gin.Context) {
	listing, err := h.catalog.GetListing(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// statusRequest is the PATCH /api/v1/properties/:id/status body
type statusRequest struct {
	Status string `json:"status"`
}

// SetStatus handles PATCH /api/v1/properties/:id/status
func (h *ListingHandler) SetStatus(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	status := models.ListingStatus(req.Status)
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be available or sold"})
		return
	}

	id := c.Param("id")
	if err := h.catalog.SetStatus(id, status, userID); err != nil {
		h.metrics.RecordOp("set_status", errorKind(err))
		respondError(c, err)
		return
	}
	h.metrics.RecordOp("set_status", "ok")
	c.JSON(http.StatusOK, gin.H{"property_id": id, "status": string(status)})
}

// respondError maps catalog errors to HTTP responses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, catalog.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, catalog.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, catalog.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// errorKind reduces a catalog error to a metrics label.
func errorKind(err error) string {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return "not_found"
	case errors.Is(err, catalog.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, catalog.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, catalog.ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}
