// Package catalog implements the in-memory listing catalog: canonical
// listing records, per-user ownership and shortlist relations, a
// denormalized facet index, and the criteria search engine built on it.
//
// The error values below allow handlers to distinguish failure scenarios.
// For example, ErrUnauthorized indicates that the acting user does not
// own the listing they are trying to transition, while ErrConflict
// signals a duplicate shortlist attempt or a shortlist of a sold listing.
package catalog

import "errors"

// ErrNotFound is returned when no listing exists for the given id.
// Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("listing not found")

// ErrUnauthorized is returned when the acting user attempts a status
// change on a listing owned by someone else. Handlers should translate
// this into an HTTP 403 response.
var ErrUnauthorized = errors.New("not the listing owner")

// ErrInvalidTransition is returned for an illegal status change, such as
// selling an already-sold listing, or when an index consistency
// precondition is violated. Handlers should translate this into an
// HTTP 422 response.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrConflict is returned when an operation cannot proceed because of
// existing state, such as shortlisting the same listing twice or
// shortlisting a sold listing. Handlers should translate this into an
// HTTP 409 response.
var ErrConflict = errors.New("conflict")
