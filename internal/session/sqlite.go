package session

import (
	"database/sql"
	"fmt"
	"sync"
)

// SQLiteStore persists the two tokens in the session key-value table.
// Tokens survive process restarts; nothing else is persisted.
type SQLiteStore struct {
	mu sync.Mutex
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a store backed by the given database. The session
// table must already exist (see shared.RunMigrations).
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) get(key string) string {
	var value string
	err := s.db.QueryRow("SELECT value FROM session WHERE key = ?", key).Scan(&value)
	if err != nil {
		return ""
	}
	return value
}

func (s *SQLiteStore) set(key, value string) error {
	query := `
		INSERT INTO session (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`
	if _, err := s.db.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(AccessTokenKey)
}

func (s *SQLiteStore) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(RefreshTokenKey)
}

func (s *SQLiteStore) SetTokens(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.set(AccessTokenKey, access); err != nil {
		return err
	}
	return s.set(RefreshTokenKey, refresh)
}

func (s *SQLiteStore) SetAccessToken(access string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set(AccessTokenKey, access)
}

// Clear removes both tokens in one statement so they never survive
// individually.
func (s *SQLiteStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec("DELETE FROM session WHERE key IN (?, ?)", AccessTokenKey, RefreshTokenKey); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
