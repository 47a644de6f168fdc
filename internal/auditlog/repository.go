package auditlog

import (
	"database/sql"
	"fmt"
	"time"

	"nathanbeddoewebdev/subdns/internal/database"
)

// Repository defines the persistence interface for audit entries.
type Repository interface {
	Save(entry *AuditEntry) error
	List(limit int) ([]AuditEntry, error)
	ListByDomain(domain string, limit int) ([]AuditEntry, error)
	Prune(olderThan time.Duration) (int64, error)
	Close() error
}

// SQLiteRepository implements Repository backed by a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

// Open creates or opens the audit repository at path, or at the default
// location under the user config dir when path is empty.
func Open(path string) (*SQLiteRepository, error) {
	path, err := database.ResolvePath(path)
	if err != nil {
		return nil, fmt.Errorf("auditlog: %w", err)
	}
	return OpenAt(path)
}

// OpenAt creates or opens a SQLite database at the given path.
func OpenAt(path string) (*SQLiteRepository, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, fmt.Errorf("auditlog: %w", err)
	}

	r := &SQLiteRepository{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *SQLiteRepository) migrate() error {
	const ddl = `
        CREATE TABLE IF NOT EXISTS submissions (
            id          INTEGER PRIMARY KEY AUTOINCREMENT,
            timestamp   TEXT    NOT NULL,
            source      TEXT    NOT NULL DEFAULT '',
            remote_addr TEXT    NOT NULL DEFAULT '',
            domain      TEXT    NOT NULL DEFAULT '',
            subdomain   TEXT    NOT NULL DEFAULT '',
            record_type TEXT    NOT NULL DEFAULT '',
            target      TEXT    NOT NULL DEFAULT '',
            record_name TEXT    NOT NULL DEFAULT '',
            record_id   TEXT    NOT NULL DEFAULT '',
            outcome     TEXT    NOT NULL DEFAULT '',
            status      INTEGER NOT NULL DEFAULT 0,
            detail      TEXT    NOT NULL DEFAULT '',
            duration_ms INTEGER NOT NULL DEFAULT 0
        );
        CREATE INDEX IF NOT EXISTS idx_submissions_timestamp ON submissions(timestamp);
        CREATE INDEX IF NOT EXISTS idx_submissions_domain ON submissions(domain);
        CREATE INDEX IF NOT EXISTS idx_submissions_outcome ON submissions(outcome);
    `
	if _, err := r.db.Exec(ddl); err != nil {
		return fmt.Errorf("auditlog: migration failed: %w", err)
	}
	return nil
}

const selectColumns = `
        SELECT id, timestamp, source, remote_addr, domain, subdomain, record_type, target,
               record_name, record_id, outcome, status, detail, duration_ms
        FROM submissions`

// Save inserts a new audit entry.
func (r *SQLiteRepository) Save(entry *AuditEntry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	result, err := r.db.Exec(`
        INSERT INTO submissions (timestamp, source, remote_addr, domain, subdomain, record_type, target,
                                 record_name, record_id, outcome, status, detail, duration_ms)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.Timestamp.UTC().Format(time.RFC3339Nano), entry.Source, entry.RemoteAddr,
		entry.Domain, entry.Subdomain, entry.RecordType, entry.Target,
		entry.RecordName, entry.RecordID, entry.Outcome, entry.Status, entry.Detail, entry.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("auditlog: insert failed: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("auditlog: failed to get last insert ID: %w", err)
	}
	entry.ID = id
	return nil
}

// List returns the most recent n audit entries.
func (r *SQLiteRepository) List(limit int) ([]AuditEntry, error) {
	rows, err := r.db.Query(selectColumns+` ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("auditlog: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// ListByDomain returns the most recent n audit entries for a domain.
func (r *SQLiteRepository) ListByDomain(domain string, limit int) ([]AuditEntry, error) {
	rows, err := r.db.Query(selectColumns+` WHERE domain = ? ORDER BY timestamp DESC, id DESC LIMIT ?`, domain, limit)
	if err != nil {
		return nil, fmt.Errorf("auditlog: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// Prune deletes entries older than the given duration.
func (r *SQLiteRepository) Prune(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan).Format(time.RFC3339Nano)
	result, err := r.db.Exec(`DELETE FROM submissions WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("auditlog: delete failed: %w", err)
	}
	return result.RowsAffected()
}

// Close releases database resources.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func scanRows(rows *sql.Rows) ([]AuditEntry, error) {
	var entries []AuditEntry
	for rows.Next() {
		var entry AuditEntry
		var timestampStr string
		err := rows.Scan(
			&entry.ID, &timestampStr, &entry.Source, &entry.RemoteAddr,
			&entry.Domain, &entry.Subdomain, &entry.RecordType, &entry.Target,
			&entry.RecordName, &entry.RecordID, &entry.Outcome, &entry.Status,
			&entry.Detail, &entry.DurationMs,
		)
		if err != nil {
			return nil, fmt.Errorf("auditlog: scan failed: %w", err)
		}
		entry.Timestamp, _ = time.Parse(time.RFC3339Nano, timestampStr)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
