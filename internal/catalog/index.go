package catalog

import (
	"fmt"
	"math"
	"sort"

	"github.com/sahanmndl/property-listing-platform/internal/models"
)

// Facet key prefixes. Keys are namespaced per facet so a criterion only
// ever matches entries of its own facet; a location value supplied as a
// property type matches nothing. The system this replaces matched
// criterion values against a single flat key space regardless of facet
// name, which could not be confirmed as deliberate.
const (
	facetLocation = "location"
	facetType     = "type"
	facetPrice    = "price"
	facetStatus   = "status"

	// availableKey is the availability marker entry.
	availableKey = facetStatus + ":available"
)

// priceBucketSize is the width of a price bucket. A price floor-divides
// into a bucket rendered as "<n>00k", e.g. 250000 -> "200k".
const priceBucketSize = 100_000

// PriceBucket renders the bucket label for a price. Floor division, not
// truncation: a negative price lands in the bucket below zero ("-100k"),
// the same way it would on a number line.
func PriceBucket(price float64) string {
	return fmt.Sprintf("%d00k", int(math.Floor(price/priceBucketSize)))
}

func facetKey(facet, value string) string {
	return facet + ":" + value
}

// FacetIndex maps facet keys to the set of listing ids currently
// matching that facet. It is a denormalized cache over the Store: every
// mutation site must go through IndexOnCreate, MarkSold or MarkAvailable
// so the consistency invariants can be tested independently of the call
// sites. The index is never authoritative; search results are
// re-validated against the Store.
//
// A listing's price, location and type entries are written once at
// creation and never mutated (attribute edits are not supported). Only
// the availability entry changes over a listing's life.
type FacetIndex struct {
	entries map[string]map[string]struct{}
}

// NewFacetIndex creates an empty facet index.
func NewFacetIndex() *FacetIndex {
	return &FacetIndex{
		entries: make(map[string]map[string]struct{}),
	}
}

func (ix *FacetIndex) insert(key, id string) {
	set, ok := ix.entries[key]
	if !ok {
		set = make(map[string]struct{})
		ix.entries[key] = set
	}
	set[id] = struct{}{}
}

// IndexOnCreate inserts id under its price-bucket, location, type and
// availability keys.
func (ix *FacetIndex) IndexOnCreate(id string, details models.ListingDetails) {
	ix.insert(facetKey(facetPrice, PriceBucket(details.Price)), id)
	ix.insert(facetKey(facetLocation, details.Location), id)
	ix.insert(facetKey(facetType, details.PropertyType), id)
	ix.insert(availableKey, id)
}

// MarkSold removes id from the availability entry. The id must currently
// be present; removing an absent id reports ErrInvalidTransition rather
// than corrupting the marker.
func (ix *FacetIndex) MarkSold(id string) error {
	set, ok := ix.entries[availableKey]
	if !ok {
		return ErrInvalidTransition
	}
	if _, present := set[id]; !present {
		return ErrInvalidTransition
	}
	delete(set, id)
	return nil
}

// MarkAvailable inserts id into the availability entry. The insert is
// idempotent: the set representation cannot hold duplicates, so a
// relisted id appears exactly once regardless of how the caller got
// here.
func (ix *FacetIndex) MarkAvailable(id string) {
	ix.insert(availableKey, id)
}

// Lookup returns the ids indexed under the given facet value, or nil
// when no entry exists.
func (ix *FacetIndex) Lookup(facet, value string) map[string]struct{} {
	return ix.entries[facetKey(facet, value)]
}

// Available reports whether id is present under the availability marker.
func (ix *FacetIndex) Available(id string) bool {
	_, ok := ix.entries[availableKey][id]
	return ok
}

// EntryCounts returns the number of ids under each facet key, for stats
// reporting.
func (ix *FacetIndex) EntryCounts() map[string]int {
	counts := make(map[string]int, len(ix.entries))
	for key, set := range ix.entries {
		counts[key] = len(set)
	}
	return counts
}

// AuditError describes one consistency violation found by Audit.
type AuditError struct {
	ListingID string `json:"listing_id"`
	FacetKey  string `json:"facet_key"`
	Problem   string `json:"problem"`
}

func (e AuditError) Error() string {
	return fmt.Sprintf("index audit: listing %s, key %q: %s", e.ListingID, e.FacetKey, e.Problem)
}

// Audit verifies the index against the store: every listing appears in
// the availability entry iff its status is available, and in exactly the
// price, location and type entries matching its attributes. Unknown ids
// in any entry are reported as stale. Returns all violations found.
func (ix *FacetIndex) Audit(store *Store) []AuditError {
	var violations []AuditError

	for _, listing := range store.All() {
		wantAvailable := listing.IsAvailable()
		if ix.Available(listing.ID) != wantAvailable {
			problem := "available listing missing from availability entry"
			if !wantAvailable {
				problem = "sold listing still present in availability entry"
			}
			violations = append(violations, AuditError{
				ListingID: listing.ID,
				FacetKey:  availableKey,
				Problem:   problem,
			})
		}
		for _, key := range []string{
			facetKey(facetPrice, PriceBucket(listing.Details.Price)),
			facetKey(facetLocation, listing.Details.Location),
			facetKey(facetType, listing.Details.PropertyType),
		} {
			if _, ok := ix.entries[key][listing.ID]; !ok {
				violations = append(violations, AuditError{
					ListingID: listing.ID,
					FacetKey:  key,
					Problem:   "listing missing from attribute entry",
				})
			}
		}
	}

	// Reverse direction: every indexed id must exist in the store.
	for key, set := range ix.entries {
		for id := range set {
			if _, err := store.Get(id); err != nil {
				violations = append(violations, AuditError{
					ListingID: id,
					FacetKey:  key,
					Problem:   "indexed id unknown to store",
				})
			}
		}
	}

	sort.Slice(violations, func(i, j int) bool {
		if violations[i].ListingID != violations[j].ListingID {
			return violations[i].ListingID < violations[j].ListingID
		}
		return violations[i].FacetKey < violations[j].FacetKey
	})
	return violations
}
