package domain

import "encoding/json"

// RecordType represents a DNS record type.
type RecordType string

const (
	RecordTypeA     RecordType = "A"
	RecordTypeCNAME RecordType = "CNAME"
	RecordTypeTXT   RecordType = "TXT"
	RecordTypeMX    RecordType = "MX"
	RecordTypeNS    RecordType = "NS"
)

// SupportedRecordTypes lists every record type subdns accepts, in display order.
var SupportedRecordTypes = []RecordType{
	RecordTypeA,
	RecordTypeCNAME,
	RecordTypeTXT,
	RecordTypeMX,
	RecordTypeNS,
}

// Record represents a DNS record returned by a provider after creation.
type Record struct {
	// ID is the provider-assigned record identifier.
	ID string `json:"id"`

	// ZoneID is the provider zone the record lives in.
	ZoneID string `json:"zone_id"`

	// Name is the fully-qualified record name as returned by the provider.
	Name string `json:"name"`

	// Type is the DNS record type.
	Type RecordType `json:"type"`

	// Content is the record value.
	Content string `json:"content"`

	// TTL is the time-to-live in seconds (1 = automatic).
	TTL int `json:"ttl"`

	// Proxied reports whether the record is proxied by the provider.
	Proxied bool `json:"proxied"`

	// Raw is the provider's result object exactly as received. It is what
	// callers see in API responses, so provider-specific fields survive.
	Raw json.RawMessage `json:"-"`
}

// MarshalJSON renders the provider's original object when available and
// falls back to the typed fields otherwise.
func (r Record) MarshalJSON() ([]byte, error) {
	if len(r.Raw) > 0 {
		return r.Raw, nil
	}
	type plain Record
	return json.Marshal(plain(r))
}
