package config

import (
	"fmt"
	"strings"
)

// Environment variable names.
const (
	EnvAPIToken      = "CF_API_TOKEN"
	EnvAPIBaseURL    = "CF_API_BASE_URL"
	EnvMaintenance   = "MAINTENANCE_MODE"
	EnvDomainsFile   = "DOMAINS_FILE"
	EnvDomains       = "DNS_DOMAINS"
	EnvPort          = "PORT"
	EnvAuditDBPath   = "AUDIT_DB_PATH"
	EnvAuditDisabled = "AUDIT_DISABLED"
	EnvLogFormat     = "LOG_FORMAT"
)

// KeySpec describes a single configuration variable.
type KeySpec struct {
	// Name is the environment variable name.
	Name string

	// Description is a short human-readable explanation shown in help text.
	Description string

	// Secret values are redacted by Display.
	Secret bool

	// Get returns the effective value from a loaded Config.
	Get func(cfg *Config) string
}

// Keys is the authoritative list of supported environment variables.
// To add a new option: add a field to Config, read it in LoadFrom and
// append a KeySpec here.
var Keys = []KeySpec{
	{
		Name:        EnvAPIToken,
		Description: "Cloudflare API token (falls back to the keychain)",
		Secret:      true,
		Get:         func(cfg *Config) string { return cfg.APIToken },
	},
	{
		Name:        EnvAPIBaseURL,
		Description: "Cloudflare API base URL",
		Get:         func(cfg *Config) string { return cfg.APIBaseURL },
	},
	{
		Name:        EnvMaintenance,
		Description: `Reject all requests with 503 when set to "true"`,
		Get:         func(cfg *Config) string { return fmt.Sprint(cfg.Maintenance) },
	},
	{
		Name:        EnvDomainsFile,
		Description: "YAML file listing the allowed domains",
		Get:         func(cfg *Config) string { return cfg.DomainsFile },
	},
	{
		Name:        EnvDomains,
		Description: "Extra domains as name=zoneId[:description], comma-separated",
		Get:         func(cfg *Config) string { return domainListString(cfg.Domains) },
	},
	{
		Name:        EnvPort,
		Description: "HTTP listen port",
		Get:         func(cfg *Config) string { return cfg.Port },
	},
	{
		Name:        EnvAuditDBPath,
		Description: "SQLite file for the submission audit log",
		Get:         func(cfg *Config) string { return cfg.AuditDBPath },
	},
	{
		Name:        EnvAuditDisabled,
		Description: `Disable the audit log when set to "1"`,
		Get:         func(cfg *Config) string { return fmt.Sprint(cfg.AuditDisabled) },
	},
	{
		Name:        EnvLogFormat,
		Description: "Log encoding: json or console",
		Get:         func(cfg *Config) string { return cfg.LogFormat },
	},
}

// Lookup returns the KeySpec for the given name, or nil if not found.
// The name is matched case-insensitively after trimming whitespace.
func Lookup(name string) *KeySpec {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	for i := range Keys {
		if Keys[i].Name == normalized {
			return &Keys[i]
		}
	}
	return nil
}

// KeyNames returns the names of all registered variables.
func KeyNames() []string {
	names := make([]string, len(Keys))
	for i, k := range Keys {
		names[i] = k.Name
	}
	return names
}

// Display returns the value of k for cfg, redacting secrets.
func (k KeySpec) Display(cfg *Config) string {
	v := k.Get(cfg)
	if k.Secret && v != "" {
		return redact(v)
	}
	return v
}

// KeysHelp builds a formatted block listing all variables and their
// descriptions, suitable for inclusion in Cobra Long help text.
func KeysHelp() string {
	if len(Keys) == 0 {
		return ""
	}

	maxLen := 0
	for _, k := range Keys {
		if len(k.Name) > maxLen {
			maxLen = len(k.Name)
		}
	}

	var b strings.Builder
	b.WriteString("Environment variables:\n")
	for _, k := range Keys {
		fmt.Fprintf(&b, "  %-*s   %s\n", maxLen, k.Name, k.Description)
	}
	return b.String()
}

// redact keeps the last four characters of long secrets.
func redact(v string) string {
	if len(v) <= 8 {
		return "****"
	}
	return "****" + v[len(v)-4:]
}

func domainListString(r *DomainRegistry) string {
	if r == nil {
		return ""
	}
	parts := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		parts = append(parts, e.Name+"="+e.ZoneID)
	}
	return strings.Join(parts, ",")
}
