package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// DomainEntry is one domain the service may create records under. An empty
// ZoneID means the domain is listed but not activated.
type DomainEntry struct {
	Name        string `yaml:"name"`
	ZoneID      string `yaml:"zone_id"`
	Description string `yaml:"description"`
}

// DomainSummary is the public view of an active domain. It never carries
// the zone ID.
type DomainSummary struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// domainsFile is the on-disk shape of the registry file.
type domainsFile struct {
	Domains []DomainEntry `yaml:"domains"`
}

// DomainRegistry is the ordered, static whitelist of domains. It is filled
// during configuration loading and only read afterwards.
type DomainRegistry struct {
	entries []DomainEntry
	index   map[string]int
}

// NewDomainRegistry returns a registry holding entries, in order. It panics
// on a duplicate name, so it is meant for tests and static tables.
func NewDomainRegistry(entries ...DomainEntry) *DomainRegistry {
	r := &DomainRegistry{index: make(map[string]int)}
	for _, e := range entries {
		if err := r.add(e); err != nil {
			panic(err)
		}
	}
	return r
}

func (r *DomainRegistry) add(e DomainEntry) error {
	e.Name = strings.TrimSpace(e.Name)
	e.ZoneID = strings.TrimSpace(e.ZoneID)
	e.Description = strings.TrimSpace(e.Description)
	if e.Name == "" {
		return errors.New("config: domain entry has no name")
	}
	if _, dup := r.index[e.Name]; dup {
		return fmt.Errorf("config: domain %q is configured more than once", e.Name)
	}
	r.index[e.Name] = len(r.entries)
	r.entries = append(r.entries, e)
	return nil
}

// LoadFile appends the entries of a YAML registry file. A missing file is
// not an error. ${VAR} references in values are expanded with getenv.
func (r *DomainRegistry) LoadFile(path string, getenv func(string) string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	var f domainsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	for _, e := range f.Domains {
		e.Name = os.Expand(e.Name, getenv)
		e.ZoneID = os.Expand(e.ZoneID, getenv)
		e.Description = os.Expand(e.Description, getenv)
		if err := r.add(e); err != nil {
			return fmt.Errorf("%w (in %s)", err, path)
		}
	}
	return nil
}

// ParseList appends entries from a comma-separated list of
// name=zoneId[:description] items. Blank items are skipped.
func (r *DomainRegistry) ParseList(list string) error {
	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		name, rest, ok := strings.Cut(item, "=")
		if !ok {
			return fmt.Errorf("config: invalid %s item %q: want name=zoneId[:description]", EnvDomains, item)
		}
		zoneID, desc, _ := strings.Cut(rest, ":")
		if err := r.add(DomainEntry{Name: name, ZoneID: zoneID, Description: desc}); err != nil {
			return err
		}
	}
	return nil
}

// ActiveDomains returns every entry with a zone ID, in configuration order.
func (r *DomainRegistry) ActiveDomains() []DomainSummary {
	out := make([]DomainSummary, 0, len(r.entries))
	for _, e := range r.entries {
		if e.ZoneID == "" {
			continue
		}
		out = append(out, DomainSummary{Name: e.Name, Description: e.Description})
	}
	return out
}

// Resolve looks up name by exact match. It reports false both when the
// domain is unknown and when it has no zone ID.
func (r *DomainRegistry) Resolve(name string) (DomainEntry, bool) {
	if r == nil {
		return DomainEntry{}, false
	}
	i, ok := r.index[name]
	if !ok || r.entries[i].ZoneID == "" {
		return DomainEntry{}, false
	}
	return r.entries[i], true
}

// Entries returns a copy of every configured entry, active or not.
func (r *DomainRegistry) Entries() []DomainEntry {
	out := make([]DomainEntry, len(r.entries))
	copy(out, r.entries)
	return out
}
