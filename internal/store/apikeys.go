package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// apiKeySet is the set holding every valid API key.
const apiKeySet = "api_keys"

// APIKeyStore manages the flat set of valid API keys. There is no revocation
// or per-key metadata; both are extension points.
type APIKeyStore struct {
	kv KV
}

// NewAPIKeyStore creates an API key store on top of the given KV.
func NewAPIKeyStore(kv KV) *APIKeyStore {
	return &APIKeyStore{kv: kv}
}

// IsValid reports whether the token is a member of the valid-key set.
func (s *APIKeyStore) IsValid(ctx context.Context, token string) (bool, error) {
	return s.kv.SIsMember(ctx, apiKeySet, token)
}

// Issue generates a fresh 256-bit hex token and records it as valid.
// The token is returned exactly once and is not retrievable afterwards.
func (s *APIKeyStore) Issue(ctx context.Context) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate key: %w", err)
	}
	token := hex.EncodeToString(buf)
	if err := s.kv.SAdd(ctx, apiKeySet, token); err != nil {
		return "", fmt.Errorf("store key: %w", err)
	}
	return token, nil
}
