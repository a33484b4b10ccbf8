package store

import (
	"context"
	"path/filepath"
	"testing"
)

func openMemoryTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenMemoryDB(filepath.Join(t.TempDir(), "memory.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	db := openMemoryTestDB(t)
	ms := NewMemoryStore(db)

	t.Run("Get on empty store returns nothing", func(t *testing.T) {
		facts, err := ms.Get(ctx, "nobody", 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(facts) != 0 {
			t.Fatalf("expected no facts, got %d", len(facts))
		}
	})

	t.Run("Upsert twice keeps one fact and second value wins", func(t *testing.T) {
		if err := ms.Upsert(ctx, "u1", "name", "Asha", 10); err != nil {
			t.Fatalf("first upsert: %v", err)
		}
		if err := ms.Upsert(ctx, "u1", "name", "Asha Rao", 10); err != nil {
			t.Fatalf("second upsert: %v", err)
		}

		facts, err := ms.Get(ctx, "u1", 5)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if len(facts) != 1 {
			t.Fatalf("expected exactly one fact, got %d", len(facts))
		}
		if facts[0].Value != "Asha Rao" {
			t.Fatalf("expected updated value, got %q", facts[0].Value)
		}
	})

	t.Run("Get orders by importance desc", func(t *testing.T) {
		if err := ms.Upsert(ctx, "u2", "hobby", "cricket", 5); err != nil {
			t.Fatalf("upsert hobby: %v", err)
		}
		if err := ms.Upsert(ctx, "u2", "name", "Ravi", 10); err != nil {
			t.Fatalf("upsert name: %v", err)
		}

		facts, err := ms.Get(ctx, "u2", 5)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if len(facts) != 2 {
			t.Fatalf("expected 2 facts, got %d", len(facts))
		}
		if facts[0].Key != "name" || facts[1].Key != "hobby" {
			t.Fatalf("expected [name, hobby], got [%s, %s]", facts[0].Key, facts[1].Key)
		}
	})

	t.Run("Get respects limit", func(t *testing.T) {
		keys := []string{"a", "b", "c", "d", "e", "f", "g"}
		for _, k := range keys {
			if err := ms.Upsert(ctx, "u3", k, "v", 5); err != nil {
				t.Fatalf("upsert %s: %v", k, err)
			}
		}

		facts, err := ms.Get(ctx, "u3", 5)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if len(facts) != 5 {
			t.Fatalf("expected 5 facts, got %d", len(facts))
		}
	})

	t.Run("Facts are scoped per user", func(t *testing.T) {
		if err := ms.Upsert(ctx, "u4", "name", "Meera", 10); err != nil {
			t.Fatalf("upsert: %v", err)
		}

		facts, err := ms.Get(ctx, "u5", 5)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if len(facts) != 0 {
			t.Fatalf("expected no facts for other user, got %d", len(facts))
		}
	})
}
