package session

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/heilocal/heilocal/internal/shared"
)

// storeContract runs the behavior every Store implementation must share.
func storeContract(t *testing.T, store Store) {
	t.Helper()

	t.Run("Starts Empty", func(t *testing.T) {
		if store.AccessToken() != "" || store.RefreshToken() != "" {
			t.Error("expected a fresh store to hold no tokens")
		}
	})

	t.Run("SetTokens Replaces Both", func(t *testing.T) {
		if err := store.SetTokens("access-1", "refresh-1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if store.AccessToken() != "access-1" {
			t.Errorf("expected access-1, got %q", store.AccessToken())
		}
		if store.RefreshToken() != "refresh-1" {
			t.Errorf("expected refresh-1, got %q", store.RefreshToken())
		}
	})

	t.Run("SetAccessToken Keeps The Refresh Token", func(t *testing.T) {
		if err := store.SetAccessToken("access-2"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if store.AccessToken() != "access-2" {
			t.Errorf("expected rotated access token, got %q", store.AccessToken())
		}
		if store.RefreshToken() != "refresh-1" {
			t.Errorf("expected refresh token untouched, got %q", store.RefreshToken())
		}
	})

	t.Run("Clear Removes Both As A Unit", func(t *testing.T) {
		if err := store.Clear(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if store.AccessToken() != "" || store.RefreshToken() != "" {
			t.Error("expected both tokens gone after clear")
		}
	})
}

func TestMemoryStore(t *testing.T) {
	storeContract(t, NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	newDB := func(t *testing.T) *sql.DB {
		t.Helper()

		db, err := sql.Open("sqlite3", ":memory:")
		if err != nil {
			t.Fatalf("failed to open in-memory database: %v", err)
		}
		t.Cleanup(func() { db.Close() })

		if err := shared.RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		return db
	}

	t.Run("Contract", func(t *testing.T) {
		storeContract(t, NewSQLiteStore(newDB(t)))
	})

	t.Run("Tokens Survive A New Store Over The Same Database", func(t *testing.T) {
		db := newDB(t)

		first := NewSQLiteStore(db)
		if err := first.SetTokens("access-1", "refresh-1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		second := NewSQLiteStore(db)
		if second.AccessToken() != "access-1" || second.RefreshToken() != "refresh-1" {
			t.Error("expected tokens readable through a second store")
		}
	})

	t.Run("Set Is An Upsert", func(t *testing.T) {
		store := NewSQLiteStore(newDB(t))

		store.SetTokens("a1", "r1")
		store.SetTokens("a2", "r2")

		if store.AccessToken() != "a2" || store.RefreshToken() != "r2" {
			t.Error("expected second write to replace the first")
		}
	})
}
