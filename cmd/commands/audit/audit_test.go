package audit

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"nathanbeddoewebdev/subdns/internal/auditlog"
	"nathanbeddoewebdev/subdns/internal/config"
)

// seed creates an audit database with the given entries and points
// AUDIT_DB_PATH at it.
func seed(t *testing.T, entries ...auditlog.AuditEntry) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audit.db")
	t.Setenv(config.EnvAuditDBPath, path)

	repo, err := auditlog.OpenAt(path)
	if err != nil {
		t.Fatalf("OpenAt failed: %v", err)
	}
	defer repo.Close()
	for i := range entries {
		if err := repo.Save(&entries[i]); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}
}

func execAudit(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func sampleEntries() []auditlog.AuditEntry {
	now := time.Now().UTC()
	return []auditlog.AuditEntry{
		{
			Timestamp: now.Add(-48 * time.Hour), Source: auditlog.SourceHTTP,
			Domain: "example.com", Subdomain: "old", RecordType: "A", Target: "203.0.113.1",
			RecordName: "old.example.com", RecordID: "rec-1", Outcome: auditlog.OutcomeSuccess, Status: 200,
		},
		{
			Timestamp: now.Add(-time.Minute), Source: auditlog.SourceCLI,
			Domain: "other.org", Subdomain: "www", Target: "origin.example.net",
			Outcome: "bad_request", Status: 400, Detail: "Domain not found or not configured", DurationMs: 1500,
		},
	}
}

func TestList_Table(t *testing.T) {
	seed(t, sampleEntries()...)

	out, err := execAudit(t, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, want := range []string{"TIME", "old.example.com", "www.other.org", "bad_request", "1.5s", "Domain not found"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Index(out, "www.other.org") > strings.Index(out, "old.example.com") {
		t.Error("expected newest entry first")
	}
}

func TestList_DomainFilterJSON(t *testing.T) {
	seed(t, sampleEntries()...)

	out, err := execAudit(t, "list", "--domain", "example.com", "-o", "json")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	var got []auditlog.AuditEntry
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(got) != 1 || got[0].RecordID != "rec-1" {
		t.Errorf("got %+v", got)
	}
}

func TestList_Empty(t *testing.T) {
	seed(t)

	out, err := execAudit(t, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, "No audit entries found.") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestList_InvalidFlags(t *testing.T) {
	seed(t)

	if _, err := execAudit(t, "list", "--limit", "0"); err == nil {
		t.Error("expected error for zero limit")
	}
	if _, err := execAudit(t, "list", "-o", "yaml"); err == nil {
		t.Error("expected error for unsupported output")
	}
}

func TestPrune(t *testing.T) {
	seed(t, sampleEntries()...)

	out, err := execAudit(t, "prune", "--older-than", "1d")
	if err != nil {
		t.Fatalf("prune failed: %v", err)
	}
	if !strings.Contains(out, "Removed 1 audit") {
		t.Errorf("unexpected output: %s", out)
	}

	out, _ = execAudit(t, "list", "-o", "json")
	var got []auditlog.AuditEntry
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(got) != 1 || got[0].Domain != "other.org" {
		t.Errorf("remaining entries = %+v", got)
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"30d", 30 * 24 * time.Hour, false},
		{"72h", 72 * time.Hour, false},
		{"90m", 90 * time.Minute, false},
		{"-1d", 0, true},
		{"-5h", 0, true},
		{"xd", 0, true},
		{"soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDuration(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseDuration(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseDuration(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestList_ReadsDBPathFromDotenv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "from-dotenv.db")

	repo, err := auditlog.OpenAt(path)
	if err != nil {
		t.Fatalf("OpenAt failed: %v", err)
	}
	if err := repo.Save(&auditlog.AuditEntry{Domain: "dotenv.example", Subdomain: "api", Outcome: auditlog.OutcomeSuccess, Status: 200}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	repo.Close()

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(config.EnvAuditDBPath+"="+path+"\n"), 0o644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	t.Chdir(dir)
	t.Setenv(config.EnvAuditDBPath, "")
	os.Unsetenv(config.EnvAuditDBPath)

	out, err := execAudit(t, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, "api.dotenv.example") {
		t.Errorf("expected entry from the .env database, got:\n%s", out)
	}
}
