package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mindmate/aura-server/internal/models"
)

// MessageStore handles AI conversation messages on the chat database.
// A nil underlying DB means the store was never configured; every method
// then returns ErrUnavailable and callers degrade.
type MessageStore struct {
	db *DB
}

func NewMessageStore(db *DB) *MessageStore {
	return &MessageStore{db: db}
}

// Available reports whether the backing database is configured.
func (s *MessageStore) Available() bool {
	return s.db != nil
}

// Insert appends one message to a session.
func (s *MessageStore) Insert(ctx context.Context, userID, sessionID string, sender models.Sender, message string) error {
	if s.db == nil {
		return ErrUnavailable
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (id, user_id, session_id, sender, message, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)
	`, uuid.New().String(), userID, sessionID, string(sender), message, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// History returns all messages of a session ordered oldest first.
// An empty userID matches any user (GET /history serves whole sessions).
func (s *MessageStore) History(ctx context.Context, sessionID, userID string) ([]models.ChatMessage, error) {
	if s.db == nil {
		return nil, ErrUnavailable
	}

	query := `
		SELECT id, user_id, session_id, sender, message, timestamp
		FROM messages
		WHERE session_id = ?`
	args := []any{sessionID}
	if userID != "" {
		query += ` AND user_id = ?`
		args = append(args, userID)
	}
	query += ` ORDER BY timestamp ASC, rowid ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var msgs []models.ChatMessage
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.ID, &m.UserID, &m.SessionID, &m.Sender, &m.Message, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}

	return msgs, nil
}

// Sessions lists the user's sessions newest first, each represented by
// its most recent message.
func (s *MessageStore) Sessions(ctx context.Context, userID string) ([]models.ChatMessage, error) {
	if s.db == nil {
		return nil, ErrUnavailable
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, session_id, sender, message, timestamp
		FROM messages
		WHERE rowid IN (
			SELECT MAX(rowid) FROM messages WHERE user_id = ? GROUP BY session_id
		)
		ORDER BY timestamp DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var msgs []models.ChatMessage
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.ID, &m.UserID, &m.SessionID, &m.Sender, &m.Message, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("scan session row: %w", err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	return msgs, nil
}

// DeleteSession removes every message with the given session id and
// returns how many were deleted.
func (s *MessageStore) DeleteSession(ctx context.Context, sessionID string) (int64, error) {
	if s.db == nil {
		return 0, ErrUnavailable
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE session_id = ?`, sessionID)
	if err != nil {
		return 0, fmt.Errorf("delete session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
