package domain

import "context"

// Provider is the interface a DNS hosting provider must implement to
// accept record submissions.
type Provider interface {
	// GetDisplayName returns the human-readable provider name (e.g. "Cloudflare").
	GetDisplayName() string

	// CreateRecord creates a DNS record in the given zone and returns the
	// record as echoed back by the provider, or nil when the provider
	// returned no result. Errors must not expose the zone ID or the
	// upstream URL in their text.
	CreateRecord(ctx context.Context, zoneID string, opts CreateRecordOpts) (*Record, error)
}
