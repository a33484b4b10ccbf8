package models

// User is a registered account. PasswordHash never crosses the API
// boundary; handlers serialize Profile instead.
type User struct {
	UserID           string  `json:"user_id"`
	FirstName        string  `json:"firstName"`
	LastName         string  `json:"lastName"`
	Email            string  `json:"email"`
	Age              *int    `json:"age,omitempty"`
	Role             string  `json:"role"`
	ContactNumber    *string `json:"contactNumber,omitempty"`
	EmergencyContact *string `json:"emergencyContact,omitempty"`
	PasswordHash     string  `json:"-"`
	CreatedAt        int64   `json:"created_at"`
}

// Profile is the outward-facing view of a user.
type Profile struct {
	UserID           string  `json:"user_id"`
	FirstName        string  `json:"firstName"`
	LastName         string  `json:"lastName"`
	Email            string  `json:"email"`
	Age              *int    `json:"age,omitempty"`
	Role             string  `json:"role"`
	ContactNumber    *string `json:"contactNumber,omitempty"`
	EmergencyContact *string `json:"emergencyContact,omitempty"`
}

func (u *User) Profile() *Profile {
	return &Profile{
		UserID:           u.UserID,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Email:            u.Email,
		Age:              u.Age,
		Role:             u.Role,
		ContactNumber:    u.ContactNumber,
		EmergencyContact: u.EmergencyContact,
	}
}

// SignupRequest is the payload for POST /signup.
type SignupRequest struct {
	FirstName        string  `json:"firstName"`
	LastName         string  `json:"lastName"`
	Email            string  `json:"email"`
	Password         string  `json:"password"`
	Age              *int    `json:"age,omitempty"`
	Role             string  `json:"role"`
	ContactNumber    *string `json:"contactNumber,omitempty"`
	EmergencyContact *string `json:"emergencyContact,omitempty"`
}

// LoginRequest is the payload for POST /login. Role is optional; when set
// the stored role must match or the login is rejected.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// LoginResponse mirrors the shape the mobile client expects.
type LoginResponse struct {
	Success bool       `json:"success"`
	User    *LoginUser `json:"user"`
}

type LoginUser struct {
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	FirstName string `json:"firstName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	LoginTime string `json:"loginTime"`
}

// ResetPasswordRequest is the payload for POST /reset-password.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"new_password"`
}

// UpdateProfileRequest is the payload for PUT /users/update. Nil fields
// are left untouched.
type UpdateProfileRequest struct {
	UserID           string  `json:"user_id"`
	FirstName        *string `json:"firstName,omitempty"`
	LastName         *string `json:"lastName,omitempty"`
	Age              *int    `json:"age,omitempty"`
	ContactNumber    *string `json:"contactNumber,omitempty"`
	EmergencyContact *string `json:"emergencyContact,omitempty"`
}

// SearchUsersRequest is the payload for POST /users/search.
type SearchUsersRequest struct {
	UserID string `json:"user_id"`
	Query  string `json:"query"`
}
