// Package credentials persists the bearer token that authenticates every
// backend request. Call sites depend on Store only, so the storage medium
// can change without touching them.
package credentials

import (
	"context"
	"errors"
	"sync"
)

// TokenKey is the single key the bearer token is stored under
const TokenKey = "token"

// ErrNotFound is returned when no token is stored
var ErrNotFound = errors.New("credentials: no token stored")

// Store holds the bearer token
type Store interface {
	// Token returns the stored token or ErrNotFound
	Token(ctx context.Context) (string, error)

	// SetToken replaces the stored token
	SetToken(ctx context.Context, token string) error

	// RemoveToken deletes the token; removing an absent token is not an error
	RemoveToken(ctx context.Context) error
}

// HasToken reports whether s holds a non-empty token
func HasToken(ctx context.Context, s Store) bool {
	token, err := s.Token(ctx)
	return err == nil && token != ""
}

// MemoryStore keeps the token for the lifetime of the process
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Token returns the stored token
func (m *MemoryStore) Token(ctx context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.token == "" {
		return "", ErrNotFound
	}
	return m.token, nil
}

// SetToken stores token
func (m *MemoryStore) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return errors.New("credentials: token cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

// RemoveToken clears the token
func (m *MemoryStore) RemoveToken(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
