package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahanmndl/property-listing-platform/internal/catalog"
	"github.com/sahanmndl/property-listing-platform/internal/config"
	"github.com/sahanmndl/property-listing-platform/internal/metrics"
	"github.com/sahanmndl/property-listing-platform/internal/models"
	"github.com/sahanmndl/property-listing-platform/internal/ratelimit"
	"github.com/sahanmndl/property-listing-platform/internal/scheduler"
	"github.com/sahanmndl/property-listing-platform/internal/snapshot"
)

type testServer struct {
	router  *gin.Engine
	catalog *catalog.Catalog
	limiter *ratelimit.RateLimiter
}

func newTestServer(t *testing.T, cfg *config.Config) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	m := metrics.New()
	cat := catalog.New()
	snap := snapshot.NewService(cfg.Audit.SnapshotHistory)
	limiter := ratelimit.NewRateLimiter(
		cfg.RateLimit.RequestsPerMinute,
		cfg.RateLimit.RequestsPerHour,
		cfg.RateLimit.RequestsPerDay,
		cfg.RateLimit.Enabled,
	)
	sched := scheduler.NewScheduler(cat, snap, m, cfg)

	listingHandler := NewListingHandler(cat, m, cfg)
	adminHandler := NewAdminHandler(cat, snap, sched, limiter)
	limited := RateLimitMiddleware(limiter)

	r := gin.New()
	r.Use(MetricsMiddleware(m))
	v1 := r.Group("/api/v1")
	{
		v1.POST("/properties", limited, listingHandler.Create)
		v1.GET("/properties/search", listingHandler.Search)
		v1.GET("/properties/:id", listingHandler.Get)
		v1.PATCH("/properties/:id/status", limited, listingHandler.SetStatus)
		v1.POST("/properties/:id/shortlist", limited, listingHandler.Shortlist)
		v1.GET("/users/:id/properties", listingHandler.ListOwned)
		v1.GET("/users/:id/shortlist", listingHandler.ListShortlisted)
	}
	admin := r.Group("/api/admin")
	{
		admin.GET("/stats", adminHandler.GetStats)
		admin.POST("/audit/run", adminHandler.RunAudit)
		admin.GET("/ratelimit/stats", adminHandler.GetRateLimitStats)
	}

	return &testServer{router: r, catalog: cat, limiter: limiter}
}

func (ts *testServer) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func (ts *testServer) createListing(t *testing.T, userID string, details models.ListingDetails) string {
	t.Helper()
	w := ts.do(http.MethodPost, "/api/v1/properties?user_id="+userID, gin.H{
		"location":      details.Location,
		"price":         details.Price,
		"property_type": details.PropertyType,
		"description":   details.Description,
		"amenities":     details.Amenities,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		PropertyID string `json:"property_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.PropertyID)
	return resp.PropertyID
}

func TestCreateListingEndpoint(t *testing.T) {
	ts := newTestServer(t, nil)
	id := ts.createListing(t, "u1", models.ListingDetails{
		Location: "Austin", Price: 250000, PropertyType: "condo",
	})

	w := ts.do(http.MethodGet, "/api/v1/properties/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var listing models.Listing
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	assert.Equal(t, "u1", listing.OwnerID)
	assert.Equal(t, models.StatusAvailable, listing.Status)
}

func TestCreateListingValidation(t *testing.T) {
	ts := newTestServer(t, nil)

	tests := []struct {
		name string
		path string
		body gin.H
	}{
		{"missing user_id", "/api/v1/properties", gin.H{"location": "Austin", "price": 1.0, "property_type": "condo"}},
		{"missing location", "/api/v1/properties?user_id=u1", gin.H{"price": 1.0, "property_type": "condo"}},
		{"missing price", "/api/v1/properties?user_id=u1", gin.H{"location": "Austin", "property_type": "condo"}},
		{"negative price", "/api/v1/properties?user_id=u1", gin.H{"location": "Austin", "price": -5.0, "property_type": "condo"}},
		{"missing type", "/api/v1/properties?user_id=u1", gin.H{"location": "Austin", "price": 1.0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGetListingNotFound(t *testing.T) {
	ts := newTestServer(t, nil)
	w := ts.do(http.MethodGet, "/api/v1/properties/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStatusEndpointMapping(t *testing.T) {
	ts := newTestServer(t, nil)
	id := ts.createListing(t, "u1", models.ListingDetails{
		Location: "Austin", Price: 250000, PropertyType: "condo",
	})

	// Wrong owner -> 403.
	w := ts.do(http.MethodPatch, "/api/v1/properties/"+id+"/status?user_id=u2", gin.H{"status": "sold"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Owner -> 200.
	w = ts.do(http.MethodPatch, "/api/v1/properties/"+id+"/status?user_id=u1", gin.H{"status": "sold"})
	assert.Equal(t, http.StatusOK, w.Code)

	// Selling again -> 422.
	w = ts.do(http.MethodPatch, "/api/v1/properties/"+id+"/status?user_id=u1", gin.H{"status": "sold"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Unknown id -> 404.
	w = ts.do(http.MethodPatch, "/api/v1/properties/nope/status?user_id=u1", gin.H{"status": "sold"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Undefined status -> 400.
	w = ts.do(http.MethodPatch, "/api/v1/properties/"+id+"/status?user_id=u1", gin.H{"status": "pending"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestShortlistEndpoint(t *testing.T) {
	ts := newTestServer(t, nil)
	id := ts.createListing(t, "u1", models.ListingDetails{
		Location: "Austin", Price: 250000, PropertyType: "condo",
	})

	w := ts.do(http.MethodPost, "/api/v1/properties/"+id+"/shortlist?user_id=u2", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Duplicate -> 409.
	w = ts.do(http.MethodPost, "/api/v1/properties/"+id+"/shortlist?user_id=u2", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = ts.do(http.MethodGet, "/api/v1/users/u2/shortlist", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), id)
}

func TestSearchEndpointPagination(t *testing.T) {
	ts := newTestServer(t, nil)
	for i := 0; i < 5; i++ {
		ts.createListing(t, "u1", models.ListingDetails{
			Location: "Austin", Price: 250000, PropertyType: "condo",
		})
	}

	page := func(p, limit int) (results []json.RawMessage, total int) {
		w := ts.do(http.MethodGet, fmt.Sprintf("/api/v1/properties/search?location=Austin&page=%d&limit=%d", p, limit), nil)
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Results []json.RawMessage `json:"results"`
			Total   int               `json:"total"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return resp.Results, resp.Total
	}

	results, total := page(1, 2)
	assert.Equal(t, 5, total)
	assert.Len(t, results, 2)

	results, _ = page(3, 2)
	assert.Len(t, results, 1)

	// Out-of-range page is empty, not an error.
	results, _ = page(4, 2)
	assert.Empty(t, results)
}

func TestSearchEndpointPriceRange(t *testing.T) {
	ts := newTestServer(t, nil)
	cheap := ts.createListing(t, "u1", models.ListingDetails{
		Location: "Austin", Price: 150000, PropertyType: "condo",
	})
	ts.createListing(t, "u1", models.ListingDetails{
		Location: "Austin", Price: 910000, PropertyType: "condo",
	})

	w := ts.do(http.MethodGet, "/api/v1/properties/search?min_price=100000&max_price=400000", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), cheap)

	var resp struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)

	// Non-numeric prices are rejected.
	w = ts.do(http.MethodGet, "/api/v1/properties/search?min_price=abc&max_price=100", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// A lone min_price does not form a range; with no other criteria the
	// search matches nothing.
	w = ts.do(http.MethodGet, "/api/v1/properties/search?min_price=100000", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Total)
}

func TestRateLimitedRoute(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.RateLimit.RequestsPerMinute = 2
	ts := newTestServer(t, cfg)

	body := gin.H{"location": "Austin", "price": 1.0, "property_type": "condo"}
	assert.Equal(t, http.StatusCreated, ts.do(http.MethodPost, "/api/v1/properties?user_id=u1", body).Code)
	assert.Equal(t, http.StatusCreated, ts.do(http.MethodPost, "/api/v1/properties?user_id=u1", body).Code)
	assert.Equal(t, http.StatusTooManyRequests, ts.do(http.MethodPost, "/api/v1/properties?user_id=u1", body).Code)

	// Read routes are not limited.
	assert.Equal(t, http.StatusOK, ts.do(http.MethodGet, "/api/v1/properties/search?location=Austin", nil).Code)
}

func TestAdminEndpoints(t *testing.T) {
	ts := newTestServer(t, nil)
	id := ts.createListing(t, "u1", models.ListingDetails{
		Location: "Austin", Price: 250000, PropertyType: "condo",
	})
	ts.do(http.MethodPatch, "/api/v1/properties/"+id+"/status?user_id=u1", gin.H{"status": "sold"})

	w := ts.do(http.MethodGet, "/api/admin/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats struct {
		Listings struct {
			Total int `json:"total"`
			Sold  int `json:"sold"`
		} `json:"listings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.Listings.Total)
	assert.Equal(t, 1, stats.Listings.Sold)

	w = ts.do(http.MethodPost, "/api/admin/audit/run", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var audit struct {
		Consistent bool `json:"consistent"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &audit))
	assert.True(t, audit.Consistent)

	w = ts.do(http.MethodGet, "/api/admin/ratelimit/stats", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
