package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mindmate/aura-server/internal/models"
)

// GroupStore handles chat groups and their messages on the chat database.
type GroupStore struct {
	db *DB
}

func NewGroupStore(db *DB) *GroupStore {
	return &GroupStore{db: db}
}

func (s *GroupStore) Available() bool {
	return s.db != nil
}

// Create makes a new group. The creator is always a member even when not
// listed in members.
func (s *GroupStore) Create(ctx context.Context, name, createdBy string, members []string) (*models.Group, error) {
	if s.db == nil {
		return nil, ErrUnavailable
	}

	g := &models.Group{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedBy: createdBy,
		CreatedAt: time.Now().Unix(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO groups (id, name, created_by, created_at)
		VALUES (?, ?, ?, ?)
	`, g.ID, g.Name, g.CreatedBy, g.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert group: %w", err)
	}

	seen := map[string]bool{}
	for _, m := range append([]string{createdBy}, members...) {
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		_, err = tx.ExecContext(ctx, `
			INSERT INTO group_members (group_id, user_id) VALUES (?, ?)
		`, g.ID, m)
		if err != nil {
			return nil, fmt.Errorf("insert group member: %w", err)
		}
		g.Members = append(g.Members, m)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit group: %w", err)
	}

	return g, nil
}

// ListForUser returns every group the user belongs to, newest first.
func (s *GroupStore) ListForUser(ctx context.Context, userID string) ([]*models.Group, error) {
	if s.db == nil {
		return nil, ErrUnavailable
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT g.id, g.name, g.created_by, g.created_at
		FROM groups g
		JOIN group_members m ON m.group_id = g.id
		WHERE m.user_id = ?
		ORDER BY g.created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedBy, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		groups = append(groups, &g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate groups: %w", err)
	}

	return groups, nil
}

// IsMember reports whether the user belongs to the group.
func (s *GroupStore) IsMember(ctx context.Context, groupID, userID string) (bool, error) {
	if s.db == nil {
		return false, ErrUnavailable
	}

	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM group_members WHERE group_id = ? AND user_id = ?
	`, groupID, userID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check membership: %w", err)
	}
	return n > 0, nil
}

// Messages returns a group's messages oldest first.
func (s *GroupStore) Messages(ctx context.Context, groupID string) ([]models.GroupMessage, error) {
	if s.db == nil {
		return nil, ErrUnavailable
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, group_id, sender_id, message, timestamp
		FROM group_messages
		WHERE group_id = ?
		ORDER BY timestamp ASC, rowid ASC
	`, groupID)
	if err != nil {
		return nil, fmt.Errorf("query group messages: %w", err)
	}
	defer rows.Close()

	var msgs []models.GroupMessage
	for rows.Next() {
		var m models.GroupMessage
		if err := rows.Scan(&m.ID, &m.GroupID, &m.SenderID, &m.Message, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("scan group message: %w", err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate group messages: %w", err)
	}

	return msgs, nil
}

// Send posts a message to a group. Returns ErrNotFound when the group
// does not exist.
func (s *GroupStore) Send(ctx context.Context, groupID, senderID, message string) (*models.GroupMessage, error) {
	if s.db == nil {
		return nil, ErrUnavailable
	}

	var exists int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM groups WHERE id = ?`, groupID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check group: %w", err)
	}
	if exists == 0 {
		return nil, ErrNotFound
	}

	m := &models.GroupMessage{
		ID:        uuid.New().String(),
		GroupID:   groupID,
		SenderID:  senderID,
		Message:   message,
		Timestamp: time.Now().UnixMilli(),
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO group_messages (id, group_id, sender_id, message, timestamp)
		VALUES (?, ?, ?, ?, ?)
	`, m.ID, m.GroupID, m.SenderID, m.Message, m.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("insert group message: %w", err)
	}

	return m, nil
}
