package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirectorySplitRelations(t *testing.T) {
	d := NewDirectory()

	d.RecordOwnership("u1", "p1")
	assert.True(t, d.RecordShortlist("u1", "p2"))

	assert.Equal(t, []string{"p1"}, d.Owned("u1"))
	assert.ElementsMatch(t, []string{"p1", "p2"}, d.Shortlisted("u1"))
}

func TestDirectoryShortlistDeduplicates(t *testing.T) {
	d := NewDirectory()

	assert.True(t, d.RecordShortlist("u1", "p1"))
	assert.False(t, d.RecordShortlist("u1", "p1"))
	assert.Len(t, d.Shortlisted("u1"), 1)

	// Same id for another user is independent.
	assert.True(t, d.RecordShortlist("u2", "p1"))
}

func TestDirectoryShortlistOwnListing(t *testing.T) {
	d := NewDirectory()
	d.RecordOwnership("u1", "p1")

	// Owned ids already surface through the combined view, so
	// shortlisting them again would double them up.
	assert.False(t, d.RecordShortlist("u1", "p1"))
	assert.Equal(t, []string{"p1"}, d.Shortlisted("u1"))
}

func TestDirectoryUnknownUser(t *testing.T) {
	d := NewDirectory()
	assert.Empty(t, d.Owned("nobody"))
	assert.Empty(t, d.Shortlisted("nobody"))
}
