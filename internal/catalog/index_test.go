package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceBucket(t *testing.T) {
	tests := []struct {
		price float64
		want  string
	}{
		{0, "000k"},
		{99999, "000k"},
		{100000, "100k"},
		{250000, "200k"},
		{299999.99, "200k"},
		{550000, "500k"},
		{1250000, "1200k"},
		{-50000, "-100k"},
		{-100000, "-100k"},
		{-150000, "-200k"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PriceBucket(tt.price), "price %v", tt.price)
	}
}

func TestIndexOnCreate(t *testing.T) {
	ix := NewFacetIndex()
	ix.IndexOnCreate("p1", austinCondo())

	assert.Contains(t, ix.Lookup(facetLocation, "Austin"), "p1")
	assert.Contains(t, ix.Lookup(facetType, "condo"), "p1")
	assert.Contains(t, ix.Lookup(facetPrice, "200k"), "p1")
	assert.True(t, ix.Available("p1"))
}

func TestMarkSoldAbsentID(t *testing.T) {
	ix := NewFacetIndex()

	// Nothing indexed yet: the availability entry does not even exist.
	assert.ErrorIs(t, ix.MarkSold("p1"), ErrInvalidTransition)

	ix.IndexOnCreate("p1", austinCondo())
	require.NoError(t, ix.MarkSold("p1"))

	// Second removal finds the id absent and must fail, not panic.
	assert.ErrorIs(t, ix.MarkSold("p1"), ErrInvalidTransition)
}

func TestMarkAvailableIsIdempotent(t *testing.T) {
	ix := NewFacetIndex()
	ix.IndexOnCreate("p1", austinCondo())

	ix.MarkAvailable("p1")
	ix.MarkAvailable("p1")

	// A single MarkSold succeeds; a second fails. Duplicate availability
	// entries would let the second one slip through.
	require.NoError(t, ix.MarkSold("p1"))
	assert.ErrorIs(t, ix.MarkSold("p1"), ErrInvalidTransition)
}

func TestAuditDetectsDrift(t *testing.T) {
	store := NewStore()
	ix := NewFacetIndex()

	listing := store.Create("u1", austinCondo())
	ix.IndexOnCreate(listing.ID, listing.Details)
	assert.Empty(t, ix.Audit(store))

	// Flip the status behind the index's back: the availability entry is
	// now stale and the audit must say so.
	require.NoError(t, ix.MarkSold(listing.ID))
	violations := ix.Audit(store)
	require.Len(t, violations, 1)
	assert.Equal(t, listing.ID, violations[0].ListingID)
	assert.Equal(t, availableKey, violations[0].FacetKey)
}

func TestAuditDetectsStaleID(t *testing.T) {
	store := NewStore()
	ix := NewFacetIndex()

	ix.IndexOnCreate("ghost", austinCondo())
	violations := ix.Audit(store)
	require.NotEmpty(t, violations)
	for _, v := range violations {
		assert.Equal(t, "ghost", v.ListingID)
		assert.Equal(t, "indexed id unknown to store", v.Problem)
	}
}

func TestEntryCounts(t *testing.T) {
	ix := NewFacetIndex()
	ix.IndexOnCreate("p1", austinCondo())
	ix.IndexOnCreate("p2", austinHouse())

	counts := ix.EntryCounts()
	assert.Equal(t, 2, counts["location:Austin"])
	assert.Equal(t, 1, counts["type:condo"])
	assert.Equal(t, 1, counts["type:house"])
	assert.Equal(t, 2, counts["status:available"])
}
