package form

import "errors"

// Validation errors are raised before any network call is made; the local
// buffers are never mutated on their account.
var (
	ErrEmptyForm      = errors.New("form: fill in at least one field")
	ErrNoRequirement  = errors.New("form: no requirement selected")
	ErrNoSubmission   = errors.New("form: requirement has no submission yet")
	ErrNoReviewStatus = errors.New("form: select a review status")
	ErrActionInFlight = errors.New("form: another action is in flight")
)
