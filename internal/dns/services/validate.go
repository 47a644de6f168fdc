package services

import (
	"regexp"

	"nathanbeddoewebdev/subdns/internal/dns/domain"
)

const (
	// DefaultTTL is sent with every record. 1 tells Cloudflare to pick
	// the TTL automatically.
	DefaultTTL = 1

	// DefaultProxied keeps records DNS-only.
	DefaultProxied = false
)

var (
	ipv4Pattern      = regexp.MustCompile(`^(?:(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)$`)
	subdomainPattern = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?$`)
	hostnamePattern  = regexp.MustCompile(`^(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)*[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.?$`)
)

// validRecordTypes is the set of supported DNS record types.
var validRecordTypes = func() map[domain.RecordType]bool {
	m := make(map[domain.RecordType]bool, len(domain.SupportedRecordTypes))
	for _, t := range domain.SupportedRecordTypes {
		m[t] = true
	}
	return m
}()

// ValidateSubdomain reports whether s is a single DNS label: alphanumeric
// at both ends, hyphens allowed inside, at most 63 characters. Dots and
// underscores are rejected.
func ValidateSubdomain(s string) bool {
	return subdomainPattern.MatchString(s)
}

// ValidateTarget reports whether s is a dotted-quad IPv4 address or a
// hostname (dot-separated labels, optional trailing dot).
func ValidateTarget(s string) bool {
	return ipv4Pattern.MatchString(s) || hostnamePattern.MatchString(s)
}

// ValidateRecordType reports whether s is exactly one of the supported
// record types. Matching is case-sensitive.
func ValidateRecordType(s string) bool {
	return validRecordTypes[domain.RecordType(s)]
}

// DetectRecordType infers the record type from the shape of target:
// A for an IPv4 address, CNAME for anything else.
func DetectRecordType(target string) domain.RecordType {
	if ipv4Pattern.MatchString(target) {
		return domain.RecordTypeA
	}
	return domain.RecordTypeCNAME
}

// BuildRecordName joins subdomain and domain with a single dot. No case
// folding or trimming is applied.
func BuildRecordName(subdomain, domainName string) string {
	return subdomain + "." + domainName
}
