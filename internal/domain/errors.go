package domain

import "errors"

// Sentinel errors for upstream error classification.
// The Cloudflare client wraps these so callers can branch on the
// category of an upstream rejection without parsing provider payloads.
//
//	return fmt.Errorf("failed to create record: %w", domain.ErrConflict)
var (
	// ErrNotFound indicates the requested zone or record does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized indicates the request was rejected due to
	// invalid, expired, or missing credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited indicates the provider throttled the request.
	ErrRateLimited = errors.New("rate limited")

	// ErrConflict indicates a uniqueness conflict, such as a record
	// with the same name and content already existing in the zone.
	ErrConflict = errors.New("conflict")
)
