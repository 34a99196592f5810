package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/sahanmndl/property-listing-platform/internal/models"
)

// Store owns the canonical listing records. It is the sole source of
// truth for listing attributes and status; the facet index is derived
// from it and never authoritative over it.
//
// Store is not safe for concurrent use on its own. The Catalog facade
// serializes access; see catalog.go.
type Store struct {
	listings map[string]*models.Listing
	seq      uint64
}

// NewStore creates an empty listing store.
func NewStore() *Store {
	return &Store{
		listings: make(map[string]*models.Listing),
	}
}

// Create allocates a fresh id and stores a new available listing owned
// by ownerID. It never fails.
func (s *Store) Create(ownerID string, details models.ListingDetails) *models.Listing {
	s.seq++
	listing := &models.Listing{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Details:   details,
		Status:    models.StatusAvailable,
		CreatedAt: time.Now(),
		Seq:       s.seq,
	}
	s.listings[listing.ID] = listing
	return listing
}

// Get returns the listing for id, or ErrNotFound.
func (s *Store) Get(id string) (*models.Listing, error) {
	listing, ok := s.listings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return listing, nil
}

// Len returns the number of stored listings.
func (s *Store) Len() int {
	return len(s.listings)
}

// All returns every stored listing in unspecified order.
func (s *Store) All() []*models.Listing {
	all := make([]*models.Listing, 0, len(s.listings))
	for _, listing := range s.listings {
		all = append(all, listing)
	}
	return all
}
