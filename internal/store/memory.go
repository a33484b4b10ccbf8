package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mindmate/aura-server/internal/models"
)

// MemoryStore handles the per-user key/value facts on the memory database.
type MemoryStore struct {
	db *DB
}

func NewMemoryStore(db *DB) *MemoryStore {
	return &MemoryStore{db: db}
}

// Get returns up to limit facts for the user, ordered by importance
// descending then recency descending, ties broken by insertion order.
// The order matters downstream: the persona renders facts in this order.
func (s *MemoryStore) Get(ctx context.Context, userID string, limit int) ([]models.MemoryFact, error) {
	if limit <= 0 {
		limit = 5
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT memory_key, memory_value, importance, updated_at
		FROM user_memory
		WHERE user_id = ?
		ORDER BY importance DESC, updated_at DESC, id ASC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query user memory: %w", err)
	}
	defer rows.Close()

	var facts []models.MemoryFact
	for rows.Next() {
		f := models.MemoryFact{UserID: userID}
		if err := rows.Scan(&f.Key, &f.Value, &f.Importance, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan memory fact: %w", err)
		}
		facts = append(facts, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate memory facts: %w", err)
	}

	return facts, nil
}

// Upsert overwrites the fact for (userID, key) or inserts a new one.
// Uniqueness is enforced by this select-then-write, not by the schema, so
// two concurrent upserts of the same key are last-write-wins.
func (s *MemoryStore) Upsert(ctx context.Context, userID, key, value string, importance int) error {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		SELECT id FROM user_memory WHERE user_id = ? AND memory_key = ?
	`, userID, key).Scan(&id)

	now := time.Now().Unix()

	switch {
	case err == sql.ErrNoRows:
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO user_memory (user_id, memory_key, memory_value, importance, updated_at)
			VALUES (?, ?, ?, ?, ?)
		`, userID, key, value, importance, now)
		if err != nil {
			return fmt.Errorf("insert memory fact: %w", err)
		}
	case err != nil:
		return fmt.Errorf("lookup memory fact: %w", err)
	default:
		_, err = s.db.ExecContext(ctx, `
			UPDATE user_memory
			SET memory_value = ?, importance = ?, updated_at = ?
			WHERE id = ?
		`, value, importance, now, id)
		if err != nil {
			return fmt.Errorf("update memory fact: %w", err)
		}
	}

	return nil
}
