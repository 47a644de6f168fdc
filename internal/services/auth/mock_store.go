package auth

// MockStore is an in-memory auth store for testing.
type MockStore struct {
	tokens map[string]string

	// GetErr, when set, is returned by every GetToken call.
	GetErr error
}

func NewMockStore() *MockStore {
	return &MockStore{tokens: make(map[string]string)}
}

func (m *MockStore) SetToken(provider string, token string) error {
	m.tokens[NormalizeProvider(provider)] = token
	return nil
}

func (m *MockStore) GetToken(provider string) (string, error) {
	if m.GetErr != nil {
		return "", m.GetErr
	}
	token, ok := m.tokens[NormalizeProvider(provider)]
	if !ok {
		return "", ErrTokenNotFound
	}
	return token, nil
}

func (m *MockStore) DeleteToken(provider string) error {
	key := NormalizeProvider(provider)
	if _, ok := m.tokens[key]; !ok {
		return ErrTokenNotFound
	}
	delete(m.tokens, key)
	return nil
}
