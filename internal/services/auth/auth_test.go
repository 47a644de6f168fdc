package auth

import (
	"errors"
	"testing"
)

func TestResolve(t *testing.T) {
	withToken := NewMockStore()
	_ = withToken.SetToken("Cloudflare", " stored ")

	broken := NewMockStore()
	broken.GetErr = errors.New("keychain locked")

	tests := []struct {
		name       string
		store      Store
		override   string
		wantToken  string
		wantSource string
		wantErr    bool
	}{
		{"override wins", withToken, " env-token ", "env-token", SourceEnv, false},
		{"keychain fallback", withToken, "", "stored", SourceKeychain, false},
		{"missing entry", NewMockStore(), "", "", SourceNone, false},
		{"nil store", nil, "", "", SourceNone, false},
		{"store error", broken, "", "", SourceNone, true},
		{"override skips broken store", broken, "env", "env", SourceEnv, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, source, err := Resolve(tt.store, "cloudflare", tt.override)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if token != tt.wantToken {
				t.Errorf("token = %q, want %q", token, tt.wantToken)
			}
			if source != tt.wantSource {
				t.Errorf("source = %q, want %q", source, tt.wantSource)
			}
		})
	}
}

func TestMockStore_NormalizesProvider(t *testing.T) {
	s := NewMockStore()
	_ = s.SetToken("  CloudFlare ", "tok")

	got, err := s.GetToken("cloudflare")
	if err != nil || got != "tok" {
		t.Fatalf("GetToken = %q, %v", got, err)
	}
	if err := s.DeleteToken("CLOUDFLARE"); err != nil {
		t.Fatalf("DeleteToken: %v", err)
	}
	if _, err := s.GetToken("cloudflare"); !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("expected ErrTokenNotFound after delete, got %v", err)
	}
}
