package http

import "github.com/aussiebroadwan/folio/internal/portfolio/domain"

// Request and response bodies. Also referenced by the swagger annotations.

type RegisterRequest struct {
	Username string `json:"username" example:"ada"`
	Email    string `json:"email" example:"ada@example.com"`
	FullName string `json:"fullName,omitempty" example:"Ada Lovelace"`
	Password string `json:"password" example:"correct horse"`
	Avatar   string `json:"avatar,omitempty"`
}

func (r RegisterRequest) registration() domain.Registration {
	return domain.Registration{
		Username: r.Username,
		Email:    r.Email,
		FullName: r.FullName,
		Password: r.Password,
		Avatar:   r.Avatar,
	}
}

// LoginRequest accepts either a username or an email.
type LoginRequest struct {
	Username string `json:"username,omitempty" example:"ada"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password" example:"correct horse"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// UpdateUserRequest is a partial update; omitted fields are unchanged.
type UpdateUserRequest struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	FullName *string `json:"fullName,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" example:"admin"`
}

type AuthResponse struct {
	User         domain.PublicUser `json:"user"`
	AccessToken  string            `json:"accessToken"`
	RefreshToken string            `json:"refreshToken"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

type HealthResponse struct {
	Status  string        `json:"status" example:"ok"`
	Uptime  string        `json:"uptime" example:"1h2m3s"`
	Version string        `json:"version" example:"dev"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
