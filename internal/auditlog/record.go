package auditlog

import "time"

// OutcomeSuccess marks a submission that created a record. Failed
// submissions store their error kind (bad_request, provider_error, ...).
const OutcomeSuccess = "success"

// Sources a submission can arrive through.
const (
	SourceHTTP = "http"
	SourceCLI  = "cli"
)

// AuditEntry is one persisted DNS record submission.
type AuditEntry struct {
	ID         int64     `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Source     string    `json:"source,omitempty"`
	RemoteAddr string    `json:"remote_addr,omitempty"`
	Domain     string    `json:"domain"`
	Subdomain  string    `json:"subdomain"`
	RecordType string    `json:"record_type,omitempty"`
	Target     string    `json:"target"`
	RecordName string    `json:"record_name,omitempty"`
	RecordID   string    `json:"record_id,omitempty"`
	Outcome    string    `json:"outcome"`
	Status     int       `json:"status"`
	Detail     string    `json:"detail,omitempty"`
	DurationMs int64     `json:"duration_ms"`
}
