package dns

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-logr/logr"

	"nathanbeddoewebdev/subdns/internal/app"
	"nathanbeddoewebdev/subdns/internal/config"
	"nathanbeddoewebdev/subdns/internal/services/auth"
)

// fakeCloudflare answers record creation with a canned response and keeps
// the last request body.
type fakeCloudflare struct {
	status   int
	body     string
	lastBody map[string]any
}

func (f *fakeCloudflare) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data, _ := io.ReadAll(r.Body)
	_ = json.Unmarshal(data, &f.lastBody)
	w.WriteHeader(f.status)
	_, _ = io.WriteString(w, f.body)
}

// useTestApp points the command seams at an in-memory environment backed
// by a fake Cloudflare API.
func useTestApp(t *testing.T, env map[string]string, cf *fakeCloudflare) {
	t.Helper()
	srv := httptest.NewServer(cf)
	t.Cleanup(srv.Close)

	full := map[string]string{
		config.EnvAPIToken:      "test-token",
		config.EnvAPIBaseURL:    srv.URL,
		config.EnvDomains:       "example.com=zone-1:Main,parked.dev=",
		config.EnvDomainsFile:   filepath.Join(t.TempDir(), "none.yaml"),
		config.EnvAuditDisabled: "1",
	}
	for k, v := range env {
		full[k] = v
	}

	origApp, origStore := newApp, authStore
	t.Cleanup(func() { newApp, authStore = origApp, origStore })

	authStore = func() auth.Store { return auth.NewMockStore() }
	newApp = func(opts app.Options) (*app.App, error) {
		opts.Getenv = func(k string) string { return full[k] }
		discard := logr.Discard()
		opts.Log = &discard
		return app.New(opts)
	}
}

func okCloudflare() *fakeCloudflare {
	return &fakeCloudflare{
		status: http.StatusOK,
		body:   `{"success":true,"errors":[],"result":{"id":"rec-9","name":"api.example.com","type":"A","content":"203.0.113.5","ttl":1,"proxied":false}}`,
	}
}

// execDNS runs the given dns subcommand args and returns stdout/stderr.
func execDNS(t *testing.T, args ...string) (stdout, stderr string) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	cmd.Execute()
	return outBuf.String(), errBuf.String()
}

// --- domains tests ---

func TestDomainsCommand_ListsActiveDomains(t *testing.T) {
	useTestApp(t, nil, okCloudflare())

	stdout, stderr := execDNS(t, "domains")
	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	for _, want := range []string{"DOMAIN", "example.com", "Main"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected stdout to contain %q, got:\n%s", want, stdout)
		}
	}
	if strings.Contains(stdout, "parked.dev") {
		t.Error("inactive domain must not be listed")
	}
}

func TestDomainsCommand_JSON(t *testing.T) {
	useTestApp(t, nil, okCloudflare())

	stdout, _ := execDNS(t, "domains", "-o", "json")

	var got []config.DomainSummary
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, stdout)
	}
	if len(got) != 1 || got[0].Name != "example.com" {
		t.Errorf("got %+v", got)
	}
}

func TestDomainsCommand_Maintenance(t *testing.T) {
	useTestApp(t, map[string]string{config.EnvMaintenance: "true"}, okCloudflare())

	_, stderr := execDNS(t, "domains")
	if !strings.Contains(stderr, "Service is under maintenance (503)") {
		t.Errorf("expected maintenance error, got: %s", stderr)
	}
}

// --- create tests ---

func TestCreateCommand_Success(t *testing.T) {
	cf := okCloudflare()
	useTestApp(t, nil, cf)

	stdout, stderr := execDNS(t, "create", "--domain", "example.com", "--subdomain", "api", "--target", "203.0.113.5")
	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if !strings.Contains(stdout, "DNS record created successfully: api.example.com") {
		t.Errorf("unexpected stdout: %s", stdout)
	}
	if !strings.Contains(stdout, "rec-9") {
		t.Errorf("expected record ID in output, got: %s", stdout)
	}
	if cf.lastBody["type"] != "A" || cf.lastBody["name"] != "api.example.com" {
		t.Errorf("provider body = %v", cf.lastBody)
	}
}

func TestCreateCommand_ExplicitType(t *testing.T) {
	cf := okCloudflare()
	useTestApp(t, nil, cf)

	execDNS(t, "create", "--domain", "example.com", "--subdomain", "mail", "--target", "mx.example.net", "--type", "MX")
	if cf.lastBody["type"] != "MX" {
		t.Errorf("provider type = %v, want MX", cf.lastBody["type"])
	}
}

func TestCreateCommand_JSONOutput(t *testing.T) {
	useTestApp(t, nil, okCloudflare())

	stdout, _ := execDNS(t, "create", "--domain", "example.com", "--subdomain", "api", "--target", "203.0.113.5", "-o", "json")

	var got map[string]any
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, stdout)
	}
	record, _ := got["record"].(map[string]any)
	if record["id"] != "rec-9" {
		t.Errorf("record = %v", got["record"])
	}
}

func TestCreateCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
		want string
	}{
		{
			name: "missing fields",
			args: []string{"create", "--domain", "example.com"},
			want: "Missing required fields (400)",
		},
		{
			name: "unknown domain",
			args: []string{"create", "--domain", "other.org", "--subdomain", "api", "--target", "1.2.3.4"},
			want: "Domain not found or not configured (400)",
		},
		{
			name: "missing token",
			env:  map[string]string{config.EnvAPIToken: ""},
			args: []string{"create", "--domain", "example.com", "--subdomain", "api", "--target", "1.2.3.4"},
			want: "Cloudflare API token not configured (500)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useTestApp(t, tt.env, okCloudflare())

			stdout, stderr := execDNS(t, tt.args...)
			if stdout != "" {
				t.Errorf("unexpected stdout: %s", stdout)
			}
			if !strings.Contains(stderr, tt.want) {
				t.Errorf("expected stderr to contain %q, got: %s", tt.want, stderr)
			}
		})
	}
}

func TestCreateCommand_ProviderRejection(t *testing.T) {
	useTestApp(t, nil, &fakeCloudflare{
		status: http.StatusBadRequest,
		body:   `{"success":false,"errors":[{"code":81057,"message":"An identical record already exists."}]}`,
	})

	_, stderr := execDNS(t, "create", "--domain", "example.com", "--subdomain", "api", "--target", "1.2.3.4")
	if !strings.Contains(stderr, "An identical record already exists. (400)") {
		t.Errorf("unexpected stderr: %s", stderr)
	}
}
