package domain

// CreateRecordOpts holds the parameters for creating a new DNS record.
type CreateRecordOpts struct {
	// Name is the fully-qualified record name (e.g. "api.example.com").
	// The caller builds it; providers send it as-is.
	Name string

	// Type is the DNS record type. Required.
	Type RecordType

	// Content is the record value (IPv4 address or hostname). Required.
	Content string

	// TTL is the time-to-live in seconds. 1 means "automatic" on Cloudflare.
	TTL int

	// Proxied routes traffic through the provider's proxy when true.
	// Records created by subdns are always DNS-only.
	Proxied bool
}
