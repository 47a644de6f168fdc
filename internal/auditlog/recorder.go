package auditlog

import (
	"context"

	"github.com/go-logr/logr"
)

// Recorder writes submission entries best-effort. Failures are logged and
// never surface to the caller. A nil *Recorder records nothing.
type Recorder struct {
	repo Repository
	log  logr.Logger
}

// NewRecorder returns a Recorder saving into repo.
func NewRecorder(repo Repository, log logr.Logger) *Recorder {
	return &Recorder{repo: repo, log: log.WithName("audit")}
}

// Record fills Source and RemoteAddr from ctx when unset, sanitizes the
// caller-supplied fields and saves the entry.
func (r *Recorder) Record(ctx context.Context, entry AuditEntry) {
	if r == nil || r.repo == nil {
		return
	}
	meta := MetadataFromContext(ctx)
	entry.Source = pick(entry.Source, meta.Source)
	entry.RemoteAddr = pick(entry.RemoteAddr, meta.RemoteAddr)
	sanitizeEntry(&entry)

	if err := r.repo.Save(&entry); err != nil {
		r.log.Error(err, "failed to write audit entry", "domain", entry.Domain, "outcome", entry.Outcome)
	}
}
