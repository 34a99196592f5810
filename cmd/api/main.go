package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sahanmndl/property-listing-platform/internal/catalog"
	"github.com/sahanmndl/property-listing-platform/internal/config"
	"github.com/sahanmndl/property-listing-platform/internal/handlers"
	"github.com/sahanmndl/property-listing-platform/internal/metrics"
	"github.com/sahanmndl/property-listing-platform/internal/ratelimit"
	"github.com/sahanmndl/property-listing-platform/internal/scheduler"
	"github.com/sahanmndl/property-listing-platform/internal/snapshot"
)

func main() {
	// Load configuration
	configPath := getEnv("CONFIG_PATH", "config/listing_config.yaml")
	appConfig, err := config.LoadConfig(configPath)
	if err != nil {
		log.Printf("Warning: Failed to load config from %s: %v. Using defaults.", configPath, err)
		appConfig = config.DefaultConfig()
	} else {
		log.Printf("Loaded configuration from %s", configPath)
	}

	// Initialize services
	appMetrics := metrics.New()
	cat := catalog.New()
	snapshotService := snapshot.NewService(appConfig.Audit.SnapshotHistory)

	rateLimiter := ratelimit.NewRateLimiter(
		appConfig.RateLimit.RequestsPerMinute,
		appConfig.RateLimit.RequestsPerHour,
		appConfig.RateLimit.RequestsPerDay,
		appConfig.RateLimit.Enabled,
	)
	log.Printf("Rate limiter initialized: %d req/min, %d req/hour, %d req/day (enabled: %v)",
		appConfig.RateLimit.RequestsPerMinute,
		appConfig.RateLimit.RequestsPerHour,
		appConfig.RateLimit.RequestsPerDay,
		appConfig.RateLimit.Enabled,
	)

	// Start the index audit scheduler
	appScheduler := scheduler.NewScheduler(cat, snapshotService, appMetrics, appConfig)
	if err := appScheduler.Start(); err != nil {
		log.Printf("Warning: Failed to start scheduler: %v", err)
	}
	defer appScheduler.Stop()

	// Setup Gin router
	r := gin.Default()

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     appConfig.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(handlers.MetricsMiddleware(appMetrics))

	listingHandler := handlers.NewListingHandler(cat, appMetrics, appConfig)
	adminHandler := handlers.NewAdminHandler(cat, snapshotService, appScheduler, rateLimiter)
	limited := handlers.RateLimitMiddleware(rateLimiter)

	// Routes
	r.GET("/health", healthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(appMetrics.Registry, promhttp.HandlerOpts{})))

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

	// Admin API routes (requires authentication in production)
	admin := r.Group("/api/admin")
	{
		admin.GET("/stats", adminHandler.GetStats)
		admin.POST("/audit/run", adminHandler.RunAudit)
		admin.GET("/ratelimit/stats", adminHandler.GetRateLimitStats)
	}

	port := getEnv("PORT", appConfig.Server.Port)
	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now(),
	})
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
