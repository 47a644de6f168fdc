package domain

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/subdns/internal/domain"
)

// Re-export shared sentinel errors so DNS callers do not need to import
// the cross-domain package directly.
var (
	// ErrNotFound indicates the requested zone or record does not exist.
	ErrNotFound = domain.ErrNotFound

	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = domain.ErrUnauthorized

	// ErrRateLimited indicates the provider throttled the request.
	ErrRateLimited = domain.ErrRateLimited

	// ErrConflict indicates a uniqueness conflict.
	ErrConflict = domain.ErrConflict
)

// UpstreamError is returned by a Provider when the upstream API answers
// with a non-2xx status.
type UpstreamError struct {
	// Provider is the display name of the rejecting provider.
	Provider string

	// StatusCode is the HTTP status the provider responded with.
	StatusCode int

	// Message is the first structured error message from the response,
	// or empty when the provider sent none.
	Message string

	// Detail is a joined rendering of every structured error, for logs.
	Detail string

	// Kind classifies the rejection as one of the sentinel errors above,
	// or nil when it matches none of them.
	Kind error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", strings.ToLower(e.Provider), e.StatusCode, e.Detail)
}

// Unwrap exposes the sentinel classification to errors.Is.
func (e *UpstreamError) Unwrap() error {
	return e.Kind
}
