// package session owns the two persisted auth tokens.
//
// The access token is sent with every authenticated request; the refresh
// token buys a new access token when the old one expires. They are stored
// under fixed, distinct keys and cleared only as a unit.
package session

import "sync"

// Fixed storage keys, matching the original client's key-value storage.
const (
	AccessTokenKey  = "auth_token"
	RefreshTokenKey = "refresh_token"
)

// Store holds the session tokens. Implementations are safe for use from
// interleaved event handlers: writes are atomic key replacements.
type Store interface {
	// AccessToken returns the stored access token, or "" when absent.
	AccessToken() string
	// RefreshToken returns the stored refresh token, or "" when absent.
	RefreshToken() string
	// SetTokens replaces both tokens.
	SetTokens(access, refresh string) error
	// SetAccessToken replaces only the access token (after a refresh).
	SetAccessToken(access string) error
	// Clear removes both tokens as a unit.
	Clear() error
}

// MemoryStore is an in-memory [Store] for tests and ephemeral sessions.
type MemoryStore struct {
	mu      sync.RWMutex
	access  string
	refresh string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

func (s *MemoryStore) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}

func (s *MemoryStore) SetTokens(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
	s.refresh = refresh
	return nil
}

func (s *MemoryStore) SetAccessToken(access string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = ""
	s.refresh = ""
	return nil
}
