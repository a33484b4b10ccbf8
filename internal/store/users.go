package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mindmate/aura-server/internal/models"
)

// UserStore handles account records on the chat database.
type UserStore struct {
	db *DB
}

func NewUserStore(db *DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Available() bool {
	return s.db != nil
}

// Create inserts a new user. The caller checks for duplicates first; a
// UNIQUE violation on email still surfaces as an error here.
func (s *UserStore) Create(ctx context.Context, u *models.User) error {
	if s.db == nil {
		return ErrUnavailable
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (user_id, first_name, last_name, email, age, role, contact_number, emergency_contact, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, u.UserID, u.FirstName, u.LastName, u.Email, u.Age, u.Role, u.ContactNumber, u.EmergencyContact, u.PasswordHash, u.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByEmail fetches a user by email, or (nil, nil) if none exists.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.db == nil {
		return nil, ErrUnavailable
	}
	return s.getWhere(ctx, "email = ?", email)
}

// GetByID fetches a user by id, or (nil, nil) if none exists.
func (s *UserStore) GetByID(ctx context.Context, userID string) (*models.User, error) {
	if s.db == nil {
		return nil, ErrUnavailable
	}
	return s.getWhere(ctx, "user_id = ?", userID)
}

func (s *UserStore) getWhere(ctx context.Context, where string, arg any) (*models.User, error) {
	var u models.User
	var age sql.NullInt64
	var contact, emergency sql.NullString

	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, first_name, last_name, email, age, role, contact_number, emergency_contact, password_hash, created_at
		FROM users WHERE `+where, arg).Scan(
		&u.UserID, &u.FirstName, &u.LastName, &u.Email, &age, &u.Role,
		&contact, &emergency, &u.PasswordHash, &u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if age.Valid {
		v := int(age.Int64)
		u.Age = &v
	}
	if contact.Valid {
		u.ContactNumber = &contact.String
	}
	if emergency.Valid {
		u.EmergencyContact = &emergency.String
	}
	return &u, nil
}

// UpdateProfile applies the non-nil fields of req to the user's row.
// Returns ErrNotFound if the user does not exist.
func (s *UserStore) UpdateProfile(ctx context.Context, req *models.UpdateProfileRequest) error {
	if s.db == nil {
		return ErrUnavailable
	}

	set := ""
	var args []any
	add := func(col string, v any) {
		if set != "" {
			set += ", "
		}
		set += col + " = ?"
		args = append(args, v)
	}

	if req.FirstName != nil {
		add("first_name", *req.FirstName)
	}
	if req.LastName != nil {
		add("last_name", *req.LastName)
	}
	if req.Age != nil {
		add("age", *req.Age)
	}
	if req.ContactNumber != nil {
		add("contact_number", *req.ContactNumber)
	}
	if req.EmergencyContact != nil {
		add("emergency_contact", *req.EmergencyContact)
	}
	if set == "" {
		return nil
	}

	args = append(args, req.UserID)
	res, err := s.db.ExecContext(ctx, `UPDATE users SET `+set+` WHERE user_id = ?`, args...)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
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

// UpdatePassword replaces the stored hash for the given email.
// Returns ErrNotFound if no user has that email.
func (s *UserStore) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	if s.db == nil {
		return ErrUnavailable
	}

	res, err := s.db.ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE email = ?`, passwordHash, email)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
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

// Search finds users whose name or email contains the query, excluding
// the searching user.
func (s *UserStore) Search(ctx context.Context, userID, query string) ([]*models.Profile, error) {
	if s.db == nil {
		return nil, ErrUnavailable
	}

	like := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, first_name, last_name, email, age, role, contact_number, emergency_contact, password_hash, created_at
		FROM users
		WHERE user_id != ?
		  AND (first_name LIKE ? OR last_name LIKE ? OR email LIKE ?)
		ORDER BY first_name ASC, last_name ASC
	`, userID, like, like, like)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	defer rows.Close()

	var profiles []*models.Profile
	for rows.Next() {
		var u models.User
		var age sql.NullInt64
		var contact, emergency sql.NullString
		if err := rows.Scan(&u.UserID, &u.FirstName, &u.LastName, &u.Email, &age, &u.Role,
			&contact, &emergency, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		if age.Valid {
			v := int(age.Int64)
			u.Age = &v
		}
		if contact.Valid {
			u.ContactNumber = &contact.String
		}
		if emergency.Valid {
			u.EmergencyContact = &emergency.String
		}
		profiles = append(profiles, u.Profile())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return profiles, nil
}
