package auth

import (
	"errors"
	"strings"
)

const ServiceName = "subdns"

var ErrTokenNotFound = errors.New("auth token not found")

type Store interface {
	SetToken(provider string, token string) error
	GetToken(provider string) (string, error)
	DeleteToken(provider string) error
}

// Token sources reported by Resolve.
const (
	SourceEnv      = "environment"
	SourceKeychain = "keychain"
	SourceNone     = "none"
)

// DefaultStore returns the standard auth store backed by the OS keychain.
func DefaultStore() Store {
	return NewKeyringStore(ServiceName)
}

// NormalizeProvider lowercases and trims a provider name so lookups do not
// depend on how it was typed.
func NormalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

// Resolve picks the token for provider. A non-empty override (usually from
// the environment) wins; otherwise the store is consulted. A missing
// keychain entry is not an error and yields SourceNone.
func Resolve(store Store, provider, override string) (token, source string, err error) {
	if t := strings.TrimSpace(override); t != "" {
		return t, SourceEnv, nil
	}
	if store == nil {
		return "", SourceNone, nil
	}

	t, err := store.GetToken(provider)
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return "", SourceNone, nil
		}
		return "", SourceNone, err
	}
	t = strings.TrimSpace(t)
	if t == "" {
		return "", SourceNone, nil
	}
	return t, SourceKeychain, nil
}
