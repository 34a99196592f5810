package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sahanmndl/property-listing-platform/internal/catalog"
	"github.com/sahanmndl/property-listing-platform/internal/models"
)

// Search handles GET /api/v1/properties/search
//
// Supported query parameters: location, property_type, min_price,
// max_price (a price range requires both), page (1-indexed) and limit.
// Pagination slices the engine's sorted output; an out-of-range page
// returns an empty list, not an error.
func (h *ListingHandler) Search(c *gin.Context) {
	criteria := catalog.Criteria{
		Location:     c.Query("location"),
		PropertyType: c.Query("property_type"),
	}

	minStr, maxStr := c.Query("min_price"), c.Query("max_price")
	if minStr != "" && maxStr != "" {
		minPrice, errMin := strconv.ParseFloat(minStr, 64)
		maxPrice, errMax := strconv.ParseFloat(maxStr, 64)
		if errMin != nil || errMax != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "min_price and max_price must be numbers"})
			return
		}
		criteria.PriceRange = &catalog.PriceRange{Min: minPrice, Max: maxPrice}
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(h.config.Search.DefaultPageSize)))
	if err != nil || limit < 1 {
		limit = h.config.Search.DefaultPageSize
	}
	if limit > h.config.Search.MaxPageSize {
		limit = h.config.Search.MaxPageSize
	}

	results := h.catalog.Search(criteria)
	pageResults := paginate(results, page, limit)

	c.JSON(http.StatusOK, gin.H{
		"results": pageResults,
		"page":    page,
		"limit":   limit,
		"total":   len(results),
	})
}

// paginate returns the [(page-1)*limit, page*limit) slice of listings.
// Out-of-range pages yield an empty slice.
func paginate(listings []*models.Listing, page, limit int) []*models.Listing {
	start := (page - 1) * limit
	if start >= len(listings) {
		return []*models.Listing{}
	}
	end := start + limit
	if end > len(listings) {
		end = len(listings)
	}
	return listings[start:end]
}
