package auditlog

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// maxFieldLen bounds any caller-supplied text stored in the log.
const maxFieldLen = 512

var bearerPattern = regexp.MustCompile(`(?i)(bearer\s+)[A-Za-z0-9._~+/=-]+`)

// Sanitize redacts bearer tokens and truncates s for audit storage.
func Sanitize(s string) string {
	s = bearerPattern.ReplaceAllString(s, "${1}<redacted>")
	if len(s) > maxFieldLen {
		cut := maxFieldLen
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut] + "..."
	}
	return strings.TrimSpace(s)
}

func sanitizeEntry(e *AuditEntry) {
	e.Domain = Sanitize(e.Domain)
	e.Subdomain = Sanitize(e.Subdomain)
	e.RecordType = Sanitize(e.RecordType)
	e.Target = Sanitize(e.Target)
	e.Detail = Sanitize(e.Detail)
}
