package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mindmate/aura-server/internal/models"
	"github.com/mindmate/aura-server/internal/store"
)

// AuthHandler serves signup, login, and password reset.
type AuthHandler struct {
	users *store.UserStore
}

func NewAuthHandler(users *store.UserStore) *AuthHandler {
	return &AuthHandler{users: users}
}

// Signup handles POST /signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	existing, err := h.users.GetByEmail(r.Context(), req.Email)
	if errors.Is(err, store.ErrUnavailable) {
		writeError(w, http.StatusInternalServerError, "database not connected")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "email already registered")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "hash password: "+err.Error())
		return
	}

	role := req.Role
	if role == "" {
		role = "user"
	}

	user := &models.User{
		UserID:           uuid.New().String(),
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		Age:              req.Age,
		Role:             role,
		ContactNumber:    req.ContactNumber,
		EmergencyContact: req.EmergencyContact,
		PasswordHash:     string(hash),
		CreatedAt:        time.Now().Unix(),
	}

	if err := h.users.Create(r.Context(), user); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "User created successfully",
		"success": true,
	})
}

// Login handles POST /login. When the request names a role, the stored
// role must match or the login is rejected with 403.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if errors.Is(err, store.ErrUnavailable) {
		writeError(w, http.StatusInternalServerError, "database not connected")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if user == nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	if req.Role != "" && user.Role != req.Role {
		writeError(w, http.StatusForbidden, fmt.Sprintf("access denied: you are not a %s", req.Role))
		return
	}

	writeJSON(w, http.StatusOK, models.LoginResponse{
		Success: true,
		User: &models.LoginUser{
			UserID:    user.UserID,
			Name:      user.FirstName + " " + user.LastName,
			FirstName: user.FirstName,
			Email:     user.Email,
			Role:      user.Role,
			LoginTime: time.Now().Format(time.RFC3339),
		},
	})
}

// ResetPassword handles POST /reset-password.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if req.Email == "" || req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "email and new password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "hash password: "+err.Error())
		return
	}

	err = h.users.UpdatePassword(r.Context(), req.Email, string(hash))
	switch {
	case errors.Is(err, store.ErrUnavailable):
		writeError(w, http.StatusInternalServerError, "database not connected")
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "user with this email does not exist")
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Password updated successfully",
			"success": true,
		})
	}
}
