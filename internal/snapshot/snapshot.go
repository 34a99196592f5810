package snapshot

import (
	"sync"
	"time"

	"github.com/sahanmndl/property-listing-platform/internal/catalog"
)

// Snapshot is a timestamped capture of catalog statistics.
type Snapshot struct {
	CapturedAt time.Time     `json:"captured_at"`
	Stats      catalog.Stats `json:"stats"`
}

// Change describes how the catalog moved between two snapshots.
type Change struct {
	NewListings int `json:"new_listings"`
	Sold        int `json:"sold"`
	Relisted    int `json:"relisted"`
}

// Service keeps a bounded in-memory history of catalog stats snapshots
// so the admin API and the audit job can report how the catalog changes
// over time. History is process-lifetime only, like everything else in
// this service.
type Service struct {
	mu      sync.Mutex
	history []Snapshot
	keep    int
}

// NewService creates a snapshot service that retains the last keep
// snapshots. keep values below 1 retain a single snapshot.
func NewService(keep int) *Service {
	if keep < 1 {
		keep = 1
	}
	return &Service{keep: keep}
}

// Capture appends a snapshot of the given stats, evicting the oldest
// entry once the history is full.
func (s *Service) Capture(stats catalog.Stats) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{CapturedAt: time.Now(), Stats: stats}
	s.history = append(s.history, snap)
	if len(s.history) > s.keep {
		s.history = s.history[len(s.history)-s.keep:]
	}
	return snap
}

// DetectChanges compares the two most recent snapshots. With fewer than
// two snapshots there is nothing to compare and ok is false.
func (s *Service) DetectChanges() (Change, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.history) < 2 {
		return Change{}, false
	}
	prev := s.history[len(s.history)-2].Stats
	curr := s.history[len(s.history)-1].Stats

	change := Change{
		NewListings: max(0, curr.TotalListings-prev.TotalListings),
	}
	// Listings are never deleted, so a drop in availability is sales and
	// a rise beyond the new listings is relistings.
	soldDelta := curr.Sold - prev.Sold
	if soldDelta > 0 {
		change.Sold = soldDelta
	} else {
		change.Relisted = -soldDelta
	}
	return change, true
}

// History returns up to n most recent snapshots, newest last.
func (s *Service) History(n int) []Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n <= 0 || n > len(s.history) {
		n = len(s.history)
	}
	out := make([]Snapshot, n)
	copy(out, s.history[len(s.history)-n:])
	return out
}
