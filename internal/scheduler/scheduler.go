package scheduler

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/sahanmndl/property-listing-platform/internal/catalog"
	"github.com/sahanmndl/property-listing-platform/internal/config"
	"github.com/sahanmndl/property-listing-platform/internal/metrics"
	"github.com/sahanmndl/property-listing-platform/internal/snapshot"
)

// Scheduler runs the periodic index audit: it checks the facet index
// against the store, captures a stats snapshot and logs what changed
// since the previous run. Audit findings are reported through logs and
// metrics; the job never stops the process.
type Scheduler struct {
	cron     *cron.Cron
	catalog  *catalog.Catalog
	snapshot *snapshot.Service
	metrics  *metrics.Metrics
	config   *config.Config

	mu        sync.Mutex
	isRunning bool
}

// NewScheduler creates a new scheduler
func NewScheduler(cat *catalog.Catalog, snap *snapshot.Service, m *metrics.Metrics, cfg *config.Config) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		catalog:  cat,
		snapshot: snap,
		metrics:  m,
		config:   cfg,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	if !s.config.Audit.Enabled {
		log.Println("Scheduler: Index audit is disabled in configuration")
		return nil
	}

	cronSpec := s.parseSchedule(s.config.Audit.Schedule)

	_, err := s.cron.AddFunc(cronSpec, func() {
		s.runAudit()
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.mu.Lock()
	s.isRunning = true
	s.mu.Unlock()
	log.Printf("Scheduler: Started index audit on schedule %q (cron: %s)", s.config.Audit.Schedule, cronSpec)

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		s.cron.Stop()
		s.isRunning = false
		log.Println("Scheduler: Stopped")
	}
}

// runAudit executes one audit pass: consistency check, stats snapshot,
// change report.
func (s *Scheduler) runAudit() {
	violations := s.catalog.Audit()
	s.metrics.AuditRuns.Inc()
	if len(violations) > 0 {
		s.metrics.AuditViolations.Add(float64(len(violations)))
		for _, v := range violations {
			log.Printf("Scheduler: AUDIT VIOLATION: %v", v)
		}
	}

	stats := s.catalog.Stats()
	s.metrics.ListingsTotal.Set(float64(stats.TotalListings))
	s.metrics.ListingsAvailable.Set(float64(stats.Available))
	s.snapshot.Capture(stats)

	if change, ok := s.snapshot.DetectChanges(); ok {
		log.Printf("Scheduler: Audit completed. Listings: %d (%d available), new: %d, sold: %d, relisted: %d, violations: %d",
			stats.TotalListings, stats.Available, change.NewListings, change.Sold, change.Relisted, len(violations))
	} else {
		log.Printf("Scheduler: Audit completed. Listings: %d (%d available), violations: %d",
			stats.TotalListings, stats.Available, len(violations))
	}
}

// RunNow immediately executes the audit job (for manual trigger)
func (s *Scheduler) RunNow() []catalog.AuditError {
	log.Println("Scheduler: Manual trigger - running index audit...")
	violations := s.catalog.Audit()
	s.metrics.AuditRuns.Inc()
	if len(violations) > 0 {
		s.metrics.AuditViolations.Add(float64(len(violations)))
	}
	s.snapshot.Capture(s.catalog.Stats())
	return violations
}

// parseSchedule converts an HH:MM daily run time into a cron
// specification, and passes full cron specs (anything with a space or an
// "@" descriptor) through unchanged.
// Example: "02:00" -> "0 2 * * *" (run at 2:00 AM every day)
func (s *Scheduler) parseSchedule(schedule string) string {
	if strings.HasPrefix(schedule, "@") || strings.Contains(schedule, " ") {
		return schedule
	}

	var hour, minute int
	n, _ := fmt.Sscanf(schedule, "%d:%d", &hour, &minute)
	if n == 2 {
		return fmt.Sprintf("%d %d * * *", minute, hour)
	}

	// Default to an hourly audit if parsing fails
	log.Printf("Scheduler: Failed to parse schedule '%s', using hourly audit", schedule)
	return "0 * * * *"
}
