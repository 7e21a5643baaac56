package kvstore

import (
	"errors"
	"testing"
)

func TestMemoryStore_FailWrites(t *testing.T) {
	s := NewMemoryStore()
	s.Set("k", "v")

	s.FailWrites = errors.New("disk full")
	if err := s.Set("k", "v2"); err == nil {
		t.Error("Set should fail when FailWrites is set")
	}
	// Value must be unchanged after the failed write
	value, _ := s.Get("k")
	if value != "v" {
		t.Errorf("value after failed write = %q, expected %q", value, "v")
	}
}
