package domain

import (
	"strings"
	"time"
)

// User is the credential record. PasswordHash and RefreshTokenHash never
// leave the service layer; handlers only ever see PublicUser.
type User struct {
	ID           string
	Username     string
	Email        string
	FullName     string
	Avatar       string
	PasswordHash string // argon2id PHC string
	Role         Role

	// RefreshTokenHash is the fingerprint of the single live refresh token.
	// Empty after logout.
	RefreshTokenHash string
	RefreshExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PublicUser is the read projection of a User.
type PublicUser struct {
	ID        string    `json:"_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Avatar    string    `json:"avatar,omitempty"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		Avatar:    u.Avatar,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// NormalizeUsername trims and lower-cases a handle.
func NormalizeUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeEmail case-folds an address so uniqueness is case-insensitive.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// UserPatch is a partial profile update; nil fields are left alone.
type UserPatch struct {
	Username *string
	Email    *string
	FullName *string
	Avatar   *string
}

// Registration is the input to account creation.
type Registration struct {
	Username string
	Email    string
	FullName string
	Password string
	Avatar   string
}
