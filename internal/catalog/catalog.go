package catalog

import (
	"sync"

	"github.com/sahanmndl/property-listing-platform/internal/models"
)

// Catalog is the facade over the store, directory and facet index. Every
// operation is a transaction across all three: mutations run under the
// exclusive lock so two racing status changes on one id cannot both
// succeed and a search can never observe a half-indexed listing; reads
// and searches share the read lock.
type Catalog struct {
	mu        sync.RWMutex
	store     *Store
	directory *Directory
	index     *FacetIndex
	engine    *searchEngine
}

// New creates an empty catalog.
func New() *Catalog {
	store := NewStore()
	index := NewFacetIndex()
	return &Catalog{
		store:     store,
		directory: NewDirectory(),
		index:     index,
		engine:    &searchEngine{store: store, index: index},
	}
}

// CreateListing stores a new available listing owned by ownerID, records
// the ownership and populates all four facet entries. It never fails;
// attribute validation happens at the transport edge.
func (c *Catalog) CreateListing(ownerID string, details models.ListingDetails) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	listing := c.store.Create(ownerID, details)
	c.directory.RecordOwnership(ownerID, listing.ID)
	c.index.IndexOnCreate(listing.ID, details)
	return listing.ID
}

// GetListing returns a copy of the listing for id, or ErrNotFound. All
// read paths return copies: the store's records are mutated in place
// under the write lock, so no mutable record may escape it.
func (c *Catalog) GetListing(id string) (*models.Listing, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	listing, err := c.store.Get(id)
	if err != nil {
		return nil, err
	}
	return snapshotOf(listing), nil
}

// SetStatus transitions a listing between available and sold. Only the
// owner may transition; re-applying the current status is illegal. On
// success the store record and the availability facet change together.
func (c *Catalog) SetStatus(id string, status models.ListingStatus, actingUserID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	listing, err := c.store.Get(id)
	if err != nil {
		return err
	}
	if listing.OwnerID != actingUserID {
		return ErrUnauthorized
	}
	if listing.Status == status {
		return ErrInvalidTransition
	}

	switch status {
	case models.StatusSold:
		if err := c.index.MarkSold(id); err != nil {
			return err
		}
	case models.StatusAvailable:
		c.index.MarkAvailable(id)
	default:
		return ErrInvalidTransition
	}

	listing.Status = status
	return nil
}

// Shortlist bookmarks a listing for userID. Sold listings and repeat
// shortlists are conflicts.
func (c *Catalog) Shortlist(userID, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	listing, err := c.store.Get(id)
	if err != nil {
		return err
	}
	if listing.Status == models.StatusSold {
		return ErrConflict
	}
	if !c.directory.RecordShortlist(userID, id) {
		return ErrConflict
	}
	return nil
}

// Search evaluates the criteria and returns matching available listings,
// newest first. Pagination is the caller's concern.
func (c *Catalog) Search(criteria Criteria) []*models.Listing {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.engine.search(criteria)
}

// ListOwned returns every listing userID created, regardless of status,
// newest first.
func (c *Catalog) ListOwned(userID string) []*models.Listing {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resolve(c.directory.Owned(userID), false)
}

// ListShortlisted returns the available listings in userID's shortlist
// view, newest first. The view includes the user's own unsold listings;
// see Directory.Shortlisted.
func (c *Catalog) ListShortlisted(userID string) []*models.Listing {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resolve(c.directory.Shortlisted(userID), true)
}

// resolve maps directory ids to listing copies, optionally keeping only
// available ones, sorted newest first. Callers must hold at least the
// read lock.
func (c *Catalog) resolve(ids []string, availableOnly bool) []*models.Listing {
	listings := make([]*models.Listing, 0, len(ids))
	for _, id := range ids {
		listing, err := c.store.Get(id)
		if err != nil {
			continue
		}
		if availableOnly && !listing.IsAvailable() {
			continue
		}
		listings = append(listings, snapshotOf(listing))
	}
	sortByRecency(listings)
	return listings
}

// snapshotOf copies a stored record for release outside the lock. Only
// Status is ever mutated after creation, so the shallow copy is enough;
// the shared Details (including the amenities slice) are immutable.
func snapshotOf(listing *models.Listing) *models.Listing {
	copied := *listing
	return &copied
}

// Stats is a point-in-time summary of the catalog.
type Stats struct {
	TotalListings int            `json:"total_listings"`
	Available     int            `json:"available"`
	Sold          int            `json:"sold"`
	FacetEntries  map[string]int `json:"facet_entries"`
}

// Stats summarizes the catalog for the admin API and snapshots.
func (c *Catalog) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := Stats{
		TotalListings: c.store.Len(),
		FacetEntries:  c.index.EntryCounts(),
	}
	for _, listing := range c.store.All() {
		if listing.IsAvailable() {
			stats.Available++
		} else {
			stats.Sold++
		}
	}
	return stats
}

// Audit checks the facet index against the store and returns every
// consistency violation found. An empty result means the index is
// coherent.
func (c *Catalog) Audit() []AuditError {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.index.Audit(c.store)
}
