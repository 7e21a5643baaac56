package kvstore

import (
	"errors"
	"path/filepath"
	"sort"
	"testing"

	"github.com/MarcoPolo483/eva-da-2-sub000/internal/models"
)

func newSqliteStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := models.InitDB("sqlite", filepath.Join(t.TempDir(), "kvstore_test.db"))
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate failed: %v", err)
	}
	return NewGormStore(db)
}

// Both implementations must behave identically on the Store surface.
func TestStoreParity(t *testing.T) {
	t.Run("memory", func(t *testing.T) { exerciseStore(t, NewMemoryStore()) })
	t.Run("gorm", func(t *testing.T) { exerciseStore(t, newSqliteStore(t)) })
}

func exerciseStore(t *testing.T, s Store) {
	if _, err := s.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get on empty store = %v, expected ErrNotFound", err)
	}

	if err := s.Set("global-config", `{"a":1}`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	value, err := s.Get("global-config")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if value != `{"a":1}` {
		t.Errorf("Get = %q, expected %q", value, `{"a":1}`)
	}

	// Set replaces
	if err := s.Set("global-config", `{"a":2}`); err != nil {
		t.Fatalf("Set replace failed: %v", err)
	}
	if value, _ = s.Get("global-config"); value != `{"a":2}` {
		t.Errorf("Get after replace = %q, expected %q", value, `{"a":2}`)
	}

	// Prefix enumeration sees only matching keys
	s.Set("backup:20250101T000000.000", "a")
	s.Set("backup:20250102T000000.000", "b")
	s.Set("user-config:op-1", "c")

	keys, err := s.Keys("backup:")
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	sort.Strings(keys)
	if len(keys) != 2 {
		t.Fatalf("Keys returned %d entries, expected 2: %v", len(keys), keys)
	}
	if keys[0] != "backup:20250101T000000.000" || keys[1] != "backup:20250102T000000.000" {
		t.Errorf("unexpected keys: %v", keys)
	}

	// Delete is idempotent
	if err := s.Delete("user-config:op-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Get("user-config:op-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete = %v, expected ErrNotFound", err)
	}
	if err := s.Delete("user-config:op-1"); err != nil {
		t.Errorf("Delete of absent key = %v, expected nil", err)
	}
}
