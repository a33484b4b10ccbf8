package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mindmate/aura-server/internal/models"
)

// P2PStore handles direct messages between two users on the chat database.
type P2PStore struct {
	db *DB
}

func NewP2PStore(db *DB) *P2PStore {
	return &P2PStore{db: db}
}

func (s *P2PStore) Available() bool {
	return s.db != nil
}

// Send records one direct message.
func (s *P2PStore) Send(ctx context.Context, senderID, receiverID, message string) (*models.P2PMessage, error) {
	if s.db == nil {
		return nil, ErrUnavailable
	}

	m := &models.P2PMessage{
		ID:         uuid.New().String(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Message:    message,
		Timestamp:  time.Now().UnixMilli(),
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO p2p_messages (id, sender_id, receiver_id, message, timestamp)
		VALUES (?, ?, ?, ?, ?)
	`, m.ID, m.SenderID, m.ReceiverID, m.Message, m.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("insert p2p message: %w", err)
	}

	return m, nil
}

// Conversation returns the full exchange between two users, both
// directions, oldest first.
func (s *P2PStore) Conversation(ctx context.Context, userID, peerID string) ([]models.P2PMessage, error) {
	if s.db == nil {
		return nil, ErrUnavailable
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, sender_id, receiver_id, message, timestamp
		FROM p2p_messages
		WHERE (sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)
		ORDER BY timestamp ASC, rowid ASC
	`, userID, peerID, peerID, userID)
	if err != nil {
		return nil, fmt.Errorf("query conversation: %w", err)
	}
	defer rows.Close()

	var msgs []models.P2PMessage
	for rows.Next() {
		var m models.P2PMessage
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Message, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("scan p2p message: %w", err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate p2p messages: %w", err)
	}

	return msgs, nil
}
