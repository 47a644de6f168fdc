// Package config builds the process configuration for subdns.
//
// Configuration comes from the environment, optionally seeded from a .env
// file in the working directory, plus the domain registry file. It is read
// once at start and treated as immutable afterwards.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// DefaultPort is the HTTP listen port when PORT is unset.
	DefaultPort = "8080"

	// DefaultDomainsFile is the registry file read when DOMAINS_FILE is unset.
	DefaultDomainsFile = "configs/domains.yaml"

	// DefaultLogFormat is the log encoder used when LOG_FORMAT is unset.
	DefaultLogFormat = "json"

	dotenvFile = ".env"
)

// Config is the effective process configuration.
type Config struct {
	// APIToken is the Cloudflare bearer token. Empty means not configured.
	APIToken string

	// APIBaseURL is the Cloudflare API root. Empty means the public endpoint.
	APIBaseURL string

	// Maintenance rejects every request with 503 when true.
	Maintenance bool

	// Domains is the static set of domains records may be created under.
	Domains *DomainRegistry

	// DomainsFile is the registry file the domains were read from.
	DomainsFile string

	Port          string
	AuditDBPath   string
	AuditDisabled bool
	LogFormat     string
}

// LoadEnv reads .env (if present) into the process environment without
// overriding variables that are already set. Commands that only need a
// single variable call it before os.Getenv so they see what the server
// sees.
func LoadEnv() error {
	if err := godotenv.Load(dotenvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: failed to read %s: %w", dotenvFile, err)
	}
	return nil
}

// Load runs LoadEnv, then builds a Config from the process environment.
func Load() (*Config, error) {
	if err := LoadEnv(); err != nil {
		return nil, err
	}
	return LoadFrom(os.Getenv)
}

// LoadFrom builds a Config using getenv for every lookup. The domain
// registry file and ${VAR} references inside it are resolved through the
// same function.
func LoadFrom(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		APIToken:      strings.TrimSpace(getenv(EnvAPIToken)),
		APIBaseURL:    strings.TrimSpace(getenv(EnvAPIBaseURL)),
		Maintenance:   getenv(EnvMaintenance) == "true",
		DomainsFile:   getenv(EnvDomainsFile),
		Port:          getenv(EnvPort),
		AuditDBPath:   getenv(EnvAuditDBPath),
		AuditDisabled: getenv(EnvAuditDisabled) == "1",
		LogFormat:     strings.ToLower(strings.TrimSpace(getenv(EnvLogFormat))),
	}
	if cfg.DomainsFile == "" {
		cfg.DomainsFile = DefaultDomainsFile
	}
	if cfg.Port == "" {
		cfg.Port = DefaultPort
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = DefaultLogFormat
	}

	reg := NewDomainRegistry()
	if err := reg.LoadFile(cfg.DomainsFile, getenv); err != nil {
		return nil, err
	}
	if err := reg.ParseList(getenv(EnvDomains)); err != nil {
		return nil, err
	}
	cfg.Domains = reg

	return cfg, nil
}

// HasToken reports whether a Cloudflare token is configured.
func (c *Config) HasToken() bool {
	return c.APIToken != ""
}

// WithToken returns a copy of c using token as the Cloudflare credential.
// The receiver is left untouched.
func (c *Config) WithToken(token string) *Config {
	cp := *c
	cp.APIToken = strings.TrimSpace(token)
	return &cp
}
