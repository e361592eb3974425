package service

import "errors"

// Sentinel errors returned by the services. The HTTP boundary maps them to
// status codes; callers inside the process use errors.Is.
var (
	// ErrNotFound means the referenced user, receipt, or item does not
	// exist.
	ErrNotFound = errors.New("resource not found")

	// ErrForbidden means the acting user is not the transitive owner of
	// the resource. Deliberately distinct from ErrNotFound: resource
	// existence is allowed to be observable.
	ErrForbidden = errors.New("you do not have permission to access this resource")

	// ErrUpstream means the recognition service was unreachable, timed
	// out, or answered with a non-success status. The ingestion as a
	// whole fails; retrying is the caller's decision.
	ErrUpstream = errors.New("recognition service failed")

	// ErrInvalidInput means the request payload violates a domain
	// constraint (non-positive quantity, negative price).
	ErrInvalidInput = errors.New("invalid input")
)
