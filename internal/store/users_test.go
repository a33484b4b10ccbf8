package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mindmate/aura-server/internal/models"
)

func newTestUser(first, last, email string) *models.User {
	return &models.User{
		UserID:       uuid.New().String(),
		FirstName:    first,
		LastName:     last,
		Email:        email,
		Role:         "user",
		PasswordHash: "not-a-real-hash",
		CreatedAt:    time.Now().Unix(),
	}
}

func TestUserStore(t *testing.T) {
	ctx := context.Background()
	db := openChatTestDB(t)
	us := NewUserStore(db)

	asha := newTestUser("Asha", "Rao", "asha@example.com")
	ravi := newTestUser("Ravi", "Kumar", "ravi@example.com")

	t.Run("Create and fetch", func(t *testing.T) {
		if err := us.Create(ctx, asha); err != nil {
			t.Fatalf("create: %v", err)
		}
		if err := us.Create(ctx, ravi); err != nil {
			t.Fatalf("create: %v", err)
		}

		got, err := us.GetByEmail(ctx, "asha@example.com")
		if err != nil {
			t.Fatalf("get by email: %v", err)
		}
		if got == nil || got.UserID != asha.UserID {
			t.Fatalf("expected asha, got %+v", got)
		}
		if got.Age != nil || got.ContactNumber != nil {
			t.Fatal("expected optional fields to stay nil")
		}

		byID, err := us.GetByID(ctx, ravi.UserID)
		if err != nil {
			t.Fatalf("get by id: %v", err)
		}
		if byID == nil || byID.Email != "ravi@example.com" {
			t.Fatalf("expected ravi, got %+v", byID)
		}
	})

	t.Run("Unknown user is nil, not an error", func(t *testing.T) {
		got, err := us.GetByEmail(ctx, "nobody@example.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Fatalf("expected nil, got %+v", got)
		}
	})

	t.Run("UpdateProfile touches only provided fields", func(t *testing.T) {
		age := 24
		contact := "+91-9876543210"
		err := us.UpdateProfile(ctx, &models.UpdateProfileRequest{
			UserID:        asha.UserID,
			Age:           &age,
			ContactNumber: &contact,
		})
		if err != nil {
			t.Fatalf("update: %v", err)
		}

		got, err := us.GetByID(ctx, asha.UserID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.FirstName != "Asha" {
			t.Fatalf("first name should be untouched, got %q", got.FirstName)
		}
		if got.Age == nil || *got.Age != 24 {
			t.Fatalf("expected age 24, got %v", got.Age)
		}
		if got.ContactNumber == nil || *got.ContactNumber != contact {
			t.Fatalf("expected contact set, got %v", got.ContactNumber)
		}
	})

	t.Run("UpdateProfile on unknown user returns ErrNotFound", func(t *testing.T) {
		name := "Ghost"
		err := us.UpdateProfile(ctx, &models.UpdateProfileRequest{
			UserID:    "missing",
			FirstName: &name,
		})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("UpdatePassword", func(t *testing.T) {
		if err := us.UpdatePassword(ctx, "ravi@example.com", "new-hash"); err != nil {
			t.Fatalf("update password: %v", err)
		}
		got, _ := us.GetByEmail(ctx, "ravi@example.com")
		if got.PasswordHash != "new-hash" {
			t.Fatalf("expected new hash, got %q", got.PasswordHash)
		}

		if err := us.UpdatePassword(ctx, "nobody@example.com", "x"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Search matches name and excludes searcher", func(t *testing.T) {
		results, err := us.Search(ctx, asha.UserID, "ra")
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		for _, p := range results {
			if p.UserID == asha.UserID {
				t.Fatal("search must exclude the searching user")
			}
		}

		found := false
		for _, p := range results {
			if p.UserID == ravi.UserID {
				found = true
			}
		}
		if !found {
			t.Fatal("expected ravi in results")
		}
	})
}

func TestFriendStore(t *testing.T) {
	ctx := context.Background()
	db := openChatTestDB(t)
	us := NewUserStore(db)
	fs := NewFriendStore(db)

	a := newTestUser("Asha", "Rao", "a@example.com")
	b := newTestUser("Ravi", "Kumar", "b@example.com")
	c := newTestUser("Meera", "Iyer", "c@example.com")
	for _, u := range []*models.User{a, b, c} {
		if err := us.Create(ctx, u); err != nil {
			t.Fatalf("create user: %v", err)
		}
	}

	t.Run("Send, pending, accept", func(t *testing.T) {
		req, err := fs.SendRequest(ctx, a.UserID, b.UserID)
		if err != nil {
			t.Fatalf("send: %v", err)
		}
		if req.Status != models.RequestPending {
			t.Fatalf("expected pending, got %s", req.Status)
		}

		pending, err := fs.Pending(ctx, b.UserID)
		if err != nil {
			t.Fatalf("pending: %v", err)
		}
		if len(pending) != 1 || pending[0].FromUser != a.UserID {
			t.Fatalf("expected one pending request from a, got %+v", pending)
		}
		if pending[0].FirstName != "Asha" {
			t.Fatalf("expected sender name joined in, got %q", pending[0].FirstName)
		}

		if err := fs.Respond(ctx, req.ID, true); err != nil {
			t.Fatalf("respond: %v", err)
		}

		// Friendship is symmetric.
		for _, uid := range []string{a.UserID, b.UserID} {
			friends, err := fs.Friends(ctx, uid)
			if err != nil {
				t.Fatalf("friends: %v", err)
			}
			if len(friends) != 1 {
				t.Fatalf("expected one friend for %s, got %d", uid, len(friends))
			}
		}
	})

	t.Run("Duplicate request rejected in both directions", func(t *testing.T) {
		if _, err := fs.SendRequest(ctx, a.UserID, b.UserID); !errors.Is(err, ErrDuplicateRequest) {
			t.Fatalf("expected ErrDuplicateRequest, got %v", err)
		}
		if _, err := fs.SendRequest(ctx, b.UserID, a.UserID); !errors.Is(err, ErrDuplicateRequest) {
			t.Fatalf("expected ErrDuplicateRequest, got %v", err)
		}
	})

	t.Run("Reject leaves users unrelated", func(t *testing.T) {
		req, err := fs.SendRequest(ctx, a.UserID, c.UserID)
		if err != nil {
			t.Fatalf("send: %v", err)
		}
		if err := fs.Respond(ctx, req.ID, false); err != nil {
			t.Fatalf("respond: %v", err)
		}

		friends, err := fs.Friends(ctx, c.UserID)
		if err != nil {
			t.Fatalf("friends: %v", err)
		}
		if len(friends) != 0 {
			t.Fatalf("expected no friends after reject, got %d", len(friends))
		}

		// A rejected request no longer blocks a new one.
		if _, err := fs.SendRequest(ctx, c.UserID, a.UserID); err != nil {
			t.Fatalf("expected new request after reject, got %v", err)
		}
	})

	t.Run("Respond twice returns ErrNotFound", func(t *testing.T) {
		req, err := fs.SendRequest(ctx, b.UserID, c.UserID)
		if err != nil {
			t.Fatalf("send: %v", err)
		}
		if err := fs.Respond(ctx, req.ID, true); err != nil {
			t.Fatalf("respond: %v", err)
		}
		if err := fs.Respond(ctx, req.ID, true); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound on second respond, got %v", err)
		}
	})
}
