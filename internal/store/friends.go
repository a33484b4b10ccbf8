package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mindmate/aura-server/internal/models"
)

// ErrDuplicateRequest is returned when a pending request or an existing
// friendship already links the two users.
var ErrDuplicateRequest = errors.New("store: request already exists")

// FriendStore handles the friend graph on the chat database.
type FriendStore struct {
	db *DB
}

func NewFriendStore(db *DB) *FriendStore {
	return &FriendStore{db: db}
}

func (s *FriendStore) Available() bool {
	return s.db != nil
}

// SendRequest creates a pending friend request. Duplicate pending
// requests and requests between existing friends are rejected.
func (s *FriendStore) SendRequest(ctx context.Context, fromUser, toUser string) (*models.FriendRequest, error) {
	if s.db == nil {
		return nil, ErrUnavailable
	}

	var existing int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM friend_requests
		WHERE ((from_user = ? AND to_user = ?) OR (from_user = ? AND to_user = ?))
		  AND status IN ('pending', 'accepted')
	`, fromUser, toUser, toUser, fromUser).Scan(&existing)
	if err != nil {
		return nil, fmt.Errorf("check existing request: %w", err)
	}
	if existing > 0 {
		return nil, ErrDuplicateRequest
	}

	req := &models.FriendRequest{
		ID:        uuid.New().String(),
		FromUser:  fromUser,
		ToUser:    toUser,
		Status:    models.RequestPending,
		CreatedAt: time.Now().Unix(),
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO friend_requests (id, from_user, to_user, status, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, req.ID, req.FromUser, req.ToUser, string(req.Status), req.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert friend request: %w", err)
	}

	return req, nil
}

// Respond accepts or rejects a pending request. Returns ErrNotFound when
// the request does not exist or was already answered.
func (s *FriendStore) Respond(ctx context.Context, requestID string, accept bool) error {
	if s.db == nil {
		return ErrUnavailable
	}

	status := models.RequestRejected
	if accept {
		status = models.RequestAccepted
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE friend_requests SET status = ? WHERE id = ? AND status = 'pending'
	`, string(status), requestID)
	if err != nil {
		return fmt.Errorf("update friend request: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Pending lists requests waiting on the given user, newest first, with
// sender display fields joined in.
func (s *FriendStore) Pending(ctx context.Context, userID string) ([]*models.PendingRequest, error) {
	if s.db == nil {
		return nil, ErrUnavailable
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.from_user, u.first_name, u.last_name, u.email, r.created_at
		FROM friend_requests r
		JOIN users u ON u.user_id = r.from_user
		WHERE r.to_user = ? AND r.status = 'pending'
		ORDER BY r.created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query pending requests: %w", err)
	}
	defer rows.Close()

	var pending []*models.PendingRequest
	for rows.Next() {
		var p models.PendingRequest
		if err := rows.Scan(&p.ID, &p.FromUser, &p.FirstName, &p.LastName, &p.Email, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pending request: %w", err)
		}
		pending = append(pending, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending requests: %w", err)
	}

	return pending, nil
}

// Friends lists the profiles of everyone with an accepted request to or
// from the given user.
func (s *FriendStore) Friends(ctx context.Context, userID string) ([]*models.Profile, error) {
	if s.db == nil {
		return nil, ErrUnavailable
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT u.user_id, u.first_name, u.last_name, u.email, u.age, u.role, u.contact_number, u.emergency_contact
		FROM friend_requests r
		JOIN users u ON u.user_id = CASE WHEN r.from_user = ? THEN r.to_user ELSE r.from_user END
		WHERE (r.from_user = ? OR r.to_user = ?) AND r.status = 'accepted'
		ORDER BY u.first_name ASC, u.last_name ASC
	`, userID, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("query friends: %w", err)
	}
	defer rows.Close()

	var friends []*models.Profile
	for rows.Next() {
		var p models.Profile
		var age sql.NullInt64
		var contact, emergency sql.NullString
		if err := rows.Scan(&p.UserID, &p.FirstName, &p.LastName, &p.Email, &age, &p.Role, &contact, &emergency); err != nil {
			return nil, fmt.Errorf("scan friend: %w", err)
		}
		if age.Valid {
			v := int(age.Int64)
			p.Age = &v
		}
		if contact.Valid {
			p.ContactNumber = &contact.String
		}
		if emergency.Valid {
			p.EmergencyContact = &emergency.String
		}
		friends = append(friends, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate friends: %w", err)
	}

	return friends, nil
}
