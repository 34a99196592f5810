package catalog

import (
	"sort"

	"github.com/sahanmndl/property-listing-platform/internal/models"
)

// PriceRange is an inclusive price interval. It matches every bucket the
// interval touches: Min 250000, Max 550000 covers buckets "200k" through
// "500k".
type PriceRange struct {
	Min float64
	Max float64
}

// Label renders the range token, e.g. "200k-500k".
func (r PriceRange) Label() string {
	return PriceBucket(r.Min) + "-" + PriceBucket(r.Max)
}

// buckets expands the range into the covered bucket labels.
func (r PriceRange) buckets() []string {
	lo := int(r.Min) / priceBucketSize
	hi := int(r.Max) / priceBucketSize
	if hi < lo {
		return nil
	}
	labels := make([]string, 0, hi-lo+1)
	for n := lo; n <= hi; n++ {
		labels = append(labels, PriceBucket(float64(n*priceBucketSize)))
	}
	return labels
}

// Criteria is the set of facet criteria for a search. Nil or zero-valued
// fields are not applied. Zero criteria match nothing: the engine does
// not define a "match everything" query; callers wanting the full
// catalog enumerate the store directly.
type Criteria struct {
	Location     string
	PropertyType string
	PriceRange   *PriceRange
}

func (c Criteria) empty() bool {
	return c.Location == "" && c.PropertyType == "" && c.PriceRange == nil
}

// searchEngine evaluates criteria against the facet index, unions the
// candidates, re-validates each against the store and orders the
// survivors by recency. It holds no state of its own.
type searchEngine struct {
	store *Store
	index *FacetIndex
}

// search runs the query. Each supplied criterion looks up its own
// facet's entry; a value with no index entry contributes nothing. After
// the union, every candidate is re-fetched from the store and dropped
// unless its current status is available — the availability facet is
// denormalized and may lag a concurrent mutation by one step, so the
// index alone is never trusted.
func (e *searchEngine) search(criteria Criteria) []*models.Listing {
	if criteria.empty() {
		return []*models.Listing{}
	}

	candidates := make(map[string]struct{})
	union := func(set map[string]struct{}) {
		for id := range set {
			candidates[id] = struct{}{}
		}
	}

	if criteria.Location != "" {
		union(e.index.Lookup(facetLocation, criteria.Location))
	}
	if criteria.PropertyType != "" {
		union(e.index.Lookup(facetType, criteria.PropertyType))
	}
	if criteria.PriceRange != nil {
		for _, bucket := range criteria.PriceRange.buckets() {
			union(e.index.Lookup(facetPrice, bucket))
		}
	}

	results := make([]*models.Listing, 0, len(candidates))
	for id := range candidates {
		listing, err := e.store.Get(id)
		if err != nil || !listing.IsAvailable() {
			continue
		}
		results = append(results, snapshotOf(listing))
	}

	sortByRecency(results)
	return results
}

// sortByRecency orders listings newest first. Creation timestamps can
// collide, so the per-store sequence number and finally the id break
// ties, giving a deterministic total order.
func sortByRecency(listings []*models.Listing) {
	sort.Slice(listings, func(i, j int) bool {
		a, b := listings[i], listings[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		if a.Seq != b.Seq {
			return a.Seq > b.Seq
		}
		return a.ID < b.ID
	})
}
