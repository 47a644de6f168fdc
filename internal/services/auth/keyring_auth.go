package auth

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// accountSuffix is appended to the provider name to form the keychain
// account, e.g. "cloudflare-api-token".
const accountSuffix = "-api-token"

// KeyringStore keeps provider tokens in the OS keychain (macOS Keychain,
// Secret Service, Windows Credential Manager) under one service name.
type KeyringStore struct {
	serviceName string
}

func NewKeyringStore(serviceName string) *KeyringStore {
	if serviceName == "" {
		serviceName = ServiceName
	}
	return &KeyringStore{serviceName: serviceName}
}

func (k *KeyringStore) account(provider string) string {
	return NormalizeProvider(provider) + accountSuffix
}

func (k *KeyringStore) SetToken(provider string, token string) error {
	if err := keyring.Set(k.serviceName, k.account(provider), token); err != nil {
		return fmt.Errorf("keychain: failed to store token: %w", err)
	}
	return nil
}

func (k *KeyringStore) GetToken(provider string) (string, error) {
	token, err := keyring.Get(k.serviceName, k.account(provider))
	switch {
	case err == nil:
		return token, nil
	case errors.Is(err, keyring.ErrNotFound):
		return "", ErrTokenNotFound
	default:
		return "", fmt.Errorf("keychain: %w", err)
	}
}

func (k *KeyringStore) DeleteToken(provider string) error {
	err := keyring.Delete(k.serviceName, k.account(provider))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, keyring.ErrNotFound):
		return ErrTokenNotFound
	default:
		return fmt.Errorf("keychain: %w", err)
	}
}
