package config

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"nathanbeddoewebdev/subdns/internal/config"
)

func useConfig(t *testing.T, env map[string]string) {
	t.Helper()
	if _, ok := env[config.EnvDomainsFile]; !ok {
		env[config.EnvDomainsFile] = filepath.Join(t.TempDir(), "none.yaml")
	}
	orig := loadConfig
	t.Cleanup(func() { loadConfig = orig })
	loadConfig = func() (*config.Config, error) {
		return config.LoadFrom(func(k string) string { return env[k] })
	}
}

func execConfig(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestShow_Table(t *testing.T) {
	useConfig(t, map[string]string{
		config.EnvAPIToken: "abcdefgh-secret-1234",
		config.EnvDomains:  "example.com=zone-1:Main,parked.dev=",
	})

	out, err := execConfig(t, "show")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if strings.Contains(out, "abcdefgh-secret") {
		t.Errorf("token leaked in output:\n%s", out)
	}
	for _, want := range []string{"****1234", "(not set)", "example.com", "zone-1", "parked.dev", "false"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestShow_SingleVariable(t *testing.T) {
	useConfig(t, map[string]string{config.EnvPort: "9090"})

	out, err := execConfig(t, "show", "port")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if strings.TrimSpace(out) != "9090" {
		t.Errorf("got %q, want 9090", out)
	}

	if _, err := execConfig(t, "show", "NOPE"); err == nil {
		t.Error("expected error for unknown variable")
	}
}

func TestShow_JSON(t *testing.T) {
	useConfig(t, map[string]string{config.EnvDomains: "example.com=zone-1"})

	out, err := execConfig(t, "show", "-o", "json")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}

	var got shownConfig
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if got.Settings[config.EnvPort] != config.DefaultPort {
		t.Errorf("PORT = %q", got.Settings[config.EnvPort])
	}
	if len(got.Domains) != 1 || !got.Domains[0].Active {
		t.Errorf("domains = %+v", got.Domains)
	}
}
