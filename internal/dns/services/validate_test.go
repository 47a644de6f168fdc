package services

import (
	"strings"
	"testing"

	"nathanbeddoewebdev/subdns/internal/dns/domain"
)

func TestValidateSubdomain(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"api", true},
		{"api-v2", true},
		{"A1", true},
		{"x", true},
		{"9", true},
		{strings.Repeat("a", 63), true},
		{strings.Repeat("a", 64), false},
		{"", false},
		{"-api", false},
		{"api-", false},
		{"api_test", false},
		{"api.test", false},
		{"api test", false},
		{"*", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ValidateSubdomain(tt.input); got != tt.want {
				t.Errorf("ValidateSubdomain(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateTarget(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", false},
		{"255.255.255.255", true},
		{"0.0.0.0", true},
		{"203.0.113.5", true},
		{"subdomain.domain.co.uk", true},
		{"example.com.", true},
		{"localhost", true},
		{"my-host", true},
		{"-bad.example.com", false},
		{"bad-.example.com", false},
		{"under_score.example.com", false},
		{"two..dots.com", false},
		{"http://example.com", false},
		{"2001:db8::1", false},
		// Out-of-range octets fail the IPv4 pattern but are valid hostname labels.
		{"999.1.1.1", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ValidateTarget(tt.input); got != tt.want {
				t.Errorf("ValidateTarget(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateRecordType(t *testing.T) {
	for _, rt := range []string{"A", "CNAME", "TXT", "MX", "NS"} {
		if !ValidateRecordType(rt) {
			t.Errorf("ValidateRecordType(%q) = false, want true", rt)
		}
	}
	for _, rt := range []string{"", "a", "cname", "AAAA", "SRV", "CAA", " A", "A "} {
		if ValidateRecordType(rt) {
			t.Errorf("ValidateRecordType(%q) = true, want false", rt)
		}
	}
}

func TestDetectRecordType(t *testing.T) {
	tests := []struct {
		target string
		want   domain.RecordType
	}{
		{"203.0.113.5", domain.RecordTypeA},
		{"255.255.255.255", domain.RecordTypeA},
		{"origin.example.net", domain.RecordTypeCNAME},
		{"example.com.", domain.RecordTypeCNAME},
		{"999.1.1.1", domain.RecordTypeCNAME},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			if got := DetectRecordType(tt.target); got != tt.want {
				t.Errorf("DetectRecordType(%q) = %q, want %q", tt.target, got, tt.want)
			}
		})
	}
}

func TestBuildRecordName(t *testing.T) {
	tests := []struct {
		sub, dom, want string
	}{
		{"api", "example.com", "api.example.com"},
		{"API", "Example.COM", "API.Example.COM"},
		{"www", "example.com.", "www.example.com."},
	}

	for _, tt := range tests {
		if got := BuildRecordName(tt.sub, tt.dom); got != tt.want {
			t.Errorf("BuildRecordName(%q, %q) = %q, want %q", tt.sub, tt.dom, got, tt.want)
		}
	}
}
