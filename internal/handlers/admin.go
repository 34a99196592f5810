package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sahanmndl/property-listing-platform/internal/catalog"
	"github.com/sahanmndl/property-listing-platform/internal/ratelimit"
	"github.com/sahanmndl/property-listing-platform/internal/scheduler"
	"github.com/sahanmndl/property-listing-platform/internal/snapshot"
)

// AdminHandler handles admin-related requests
type AdminHandler struct {
	catalog     *catalog.Catalog
	snapshot    *snapshot.Service
	scheduler   *scheduler.Scheduler
	rateLimiter *ratelimit.RateLimiter
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(cat *catalog.Catalog, snap *snapshot.Service, sched *scheduler.Scheduler, rl *ratelimit.RateLimiter) *AdminHandler {
	return &AdminHandler{
		catalog:     cat,
		snapshot:    snap,
		scheduler:   sched,
		rateLimiter: rl,
	}
}

// GetStats returns catalog statistics and recent snapshot history
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats := h.catalog.Stats()

	c.JSON(http.StatusOK, gin.H{
		"listings": gin.H{
			"total":     stats.TotalListings,
			"available": stats.Available,
			"sold":      stats.Sold,
		},
		"facet_entries": stats.FacetEntries,
		"snapshots":     h.snapshot.History(10),
	})
}

// RunAudit manually triggers an index consistency audit
func (h *AdminHandler) RunAudit(c *gin.Context) {
	violations := h.scheduler.RunNow()

	c.JSON(http.StatusOK, gin.H{
		"consistent": len(violations) == 0,
		"violations": violations,
	})
}

// GetRateLimitStats returns rate limiter statistics
func (h *AdminHandler) GetRateLimitStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.rateLimiter.GetStats())
}
