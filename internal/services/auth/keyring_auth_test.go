package auth

import (
	"errors"
	"testing"

	"github.com/zalando/go-keyring"
)

func TestKeyringStore_RoundTrip(t *testing.T) {
	keyring.MockInit()
	store := NewKeyringStore("")

	if _, err := store.GetToken("cloudflare"); !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("GetToken on empty keychain = %v, want ErrTokenNotFound", err)
	}

	if err := store.SetToken(" Cloudflare ", "tok"); err != nil {
		t.Fatalf("SetToken failed: %v", err)
	}
	got, err := store.GetToken("cloudflare")
	if err != nil {
		t.Fatalf("GetToken failed: %v", err)
	}
	if got != "tok" {
		t.Errorf("GetToken = %q, want %q", got, "tok")
	}

	if err := store.DeleteToken("cloudflare"); err != nil {
		t.Fatalf("DeleteToken failed: %v", err)
	}
	if err := store.DeleteToken("cloudflare"); !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("second DeleteToken = %v, want ErrTokenNotFound", err)
	}
}

func TestKeyringStore_PropagatesKeychainErrors(t *testing.T) {
	keyring.MockInitWithError(errors.New("locked"))
	t.Cleanup(keyring.MockInit)

	store := NewKeyringStore("subdns-test")
	if _, err := store.GetToken("cloudflare"); err == nil || errors.Is(err, ErrTokenNotFound) {
		t.Errorf("GetToken = %v, want keychain error", err)
	}
}

func TestNewKeyringStore_DefaultServiceName(t *testing.T) {
	if got := NewKeyringStore("").serviceName; got != ServiceName {
		t.Errorf("serviceName = %q, want %q", got, ServiceName)
	}
}
