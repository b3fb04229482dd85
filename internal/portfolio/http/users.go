package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/folio/internal/portfolio/domain"
	"github.com/aussiebroadwan/folio/internal/portfolio/service"
	"github.com/aussiebroadwan/folio/pkg/httpx"
)

type UsersHandler struct {
	AuthService *service.AuthService
	UserService *service.UserService
	Cookies     CookieConfig
}

// HandleRegister creates an account.
//
//	@Summary		Register a user
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RegisterRequest									true	"Account details"
//	@Success		201		{object}	httpx.Envelope{data=domain.PublicUser}			"Created user"
//	@Failure		400		{object}	httpx.ErrorEnvelope								"Missing or invalid fields"
//	@Failure		409		{object}	httpx.ErrorEnvelope								"Username or email taken"
//	@Router			/users/register [post].
func (h *UsersHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	u, err := h.AuthService.Register(r.Context(), req.registration())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusCreated, u, "User registered successfully")
}

// HandleLogin authenticates and sets the token cookies.
//
//	@Summary		Log in
//	@Description	Accepts a username or email. Tokens are set as HttpOnly cookies and also returned in the body.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest						true	"Credentials"
//	@Success		200		{object}	httpx.Envelope{data=AuthResponse}	"Logged in"
//	@Failure		400		{object}	httpx.ErrorEnvelope					"Missing credentials"
//	@Failure		401		{object}	httpx.ErrorEnvelope					"Invalid credentials"
//	@Router			/users/login [post].
func (h *UsersHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ident := req.Username
	if strings.TrimSpace(ident) == "" {
		ident = req.Email
	}

	u, pair, err := h.AuthService.Login(r.Context(), ident, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.Cookies.setTokens(w, pair)
	httpx.WriteData(w, http.StatusOK, AuthResponse{
		User:         u,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "User logged in successfully")
}

// HandleLogout revokes the refresh token and clears both cookies.
//
//	@Summary	Log out
//	@Tags		Users
//	@Produce	json
//	@Success	200	{object}	httpx.Envelope		"Logged out"
//	@Failure	401	{object}	httpx.ErrorEnvelope	"Not authenticated"
//	@Security	BearerAuth
//	@Router		/users/logout [post].
func (h *UsersHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	_, id := actor(r)
	if err := h.AuthService.Logout(r.Context(), id.UserID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.Cookies.clearTokens(w)
	httpx.WriteData(w, http.StatusOK, struct{}{}, "User logged out successfully")
}

// HandleRefresh exchanges a refresh token for a new pair.
//
//	@Summary		Refresh the access token
//	@Description	The refresh token is read from the refreshToken cookie or the request body.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RefreshRequest							false	"Refresh token when no cookie is sent"
//	@Success		200		{object}	httpx.Envelope{data=domain.TokenPair}	"New tokens"
//	@Failure		400		{object}	httpx.ErrorEnvelope						"No refresh token"
//	@Failure		401		{object}	httpx.ErrorEnvelope						"Invalid, expired or used refresh token"
//	@Router			/users/refresh-token [post].
func (h *UsersHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	token := ""
	if c, err := r.Cookie(RefreshTokenCookie); err == nil {
		token = c.Value
	}
	if token == "" {
		var req RefreshRequest
		body, _ := io.ReadAll(io.LimitReader(r.Body, maxJSONBody))
		if len(body) > 0 && json.Unmarshal(body, &req) == nil {
			token = req.RefreshToken
		}
	}

	_, pair, err := h.AuthService.Refresh(r.Context(), token)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.Cookies.setTokens(w, pair)
	httpx.WriteData(w, http.StatusOK, pair, "Access token refreshed")
}

// HandleCurrentUser returns the caller's profile.
//
//	@Summary	Current user
//	@Tags		Users
//	@Produce	json
//	@Success	200	{object}	httpx.Envelope{data=domain.PublicUser}	"Profile"
//	@Failure	401	{object}	httpx.ErrorEnvelope						"Not authenticated"
//	@Security	BearerAuth
//	@Router		/users/current-user [get].
func (h *UsersHandler) HandleCurrentUser(w http.ResponseWriter, r *http.Request) {
	_, id := actor(r)
	u, err := h.AuthService.CurrentUser(r.Context(), id.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, u, "Current user fetched successfully")
}

// HandleChangePassword rehashes the caller's password.
//
//	@Summary	Change password
//	@Tags		Users
//	@Accept		json
//	@Produce	json
//	@Param		request	body		ChangePasswordRequest	true	"Old and new password"
//	@Success	200		{object}	httpx.Envelope			"Changed"
//	@Failure	400		{object}	httpx.ErrorEnvelope		"Wrong old password or weak new password"
//	@Security	BearerAuth
//	@Router		/users/change-password [patch].
func (h *UsersHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	_, id := actor(r)
	if err := h.AuthService.ChangePassword(r.Context(), id.UserID, req.OldPassword, req.NewPassword); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, struct{}{}, "Password changed successfully")
}

// HandleUpdate applies a partial profile update.
//
//	@Summary	Update a user
//	@Tags		Users
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string									true	"User id"
//	@Param		request	body		UpdateUserRequest						true	"Fields to change"
//	@Success	200		{object}	httpx.Envelope{data=domain.PublicUser}	"Updated"
//	@Failure	403		{object}	httpx.ErrorEnvelope						"Not yourself and not an admin"
//	@Failure	409		{object}	httpx.ErrorEnvelope						"Username or email taken"
//	@Security	BearerAuth
//	@Router		/users/update/{id} [patch].
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	a, _ := actor(r)
	u, err := h.UserService.UpdateUser(r.Context(), a, r.PathValue("id"), domain.UserPatch{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Avatar:   req.Avatar,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, u, "User updated successfully")
}

// HandleList lists every user.
//
//	@Summary	List users
//	@Tags		Users
//	@Produce	json
//	@Success	200	{object}	httpx.Envelope{data=[]domain.PublicUser}	"Users"
//	@Failure	403	{object}	httpx.ErrorEnvelope							"Admin only"
//	@Security	BearerAuth
//	@Router		/users/retrieve [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, users, "Users fetched successfully")
}

// HandleGet fetches one user.
//
//	@Summary	Get a user
//	@Tags		Users
//	@Produce	json
//	@Param		id	path		string									true	"User id"
//	@Success	200	{object}	httpx.Envelope{data=domain.PublicUser}	"User"
//	@Failure	404	{object}	httpx.ErrorEnvelope						"No such user"
//	@Security	BearerAuth
//	@Router		/users/retrieve/{id} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	u, err := h.UserService.GetUser(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, u, "User fetched successfully")
}

// HandleDeleteSelf deletes the caller's account and everything it owns.
//
//	@Summary	Delete own account
//	@Tags		Users
//	@Produce	json
//	@Success	200	{object}	httpx.Envelope{data=domain.PublicUser}	"Deleted"
//	@Security	BearerAuth
//	@Router		/users/delete [delete].
func (h *UsersHandler) HandleDeleteSelf(w http.ResponseWriter, r *http.Request) {
	_, id := actor(r)
	h.deleteUser(w, r, id.UserID, true)
}

// HandleDelete deletes any account.
//
//	@Summary	Delete a user
//	@Tags		Users
//	@Produce	json
//	@Param		id	path		string									true	"User id"
//	@Success	200	{object}	httpx.Envelope{data=domain.PublicUser}	"Deleted"
//	@Failure	404	{object}	httpx.ErrorEnvelope						"No such user"
//	@Security	BearerAuth
//	@Router		/users/delete/{id} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	_, id := actor(r)
	target := r.PathValue("id")
	h.deleteUser(w, r, target, target == id.UserID)
}

func (h *UsersHandler) deleteUser(w http.ResponseWriter, r *http.Request, userID string, self bool) {
	u, err := h.UserService.DeleteUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if self {
		h.Cookies.clearTokens(w)
	}
	httpx.WriteData(w, http.StatusOK, u, "User deleted successfully")
}

// HandleUpdateRole changes a user's role.
//
//	@Summary	Change a user's role
//	@Tags		Users
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string									true	"User id"
//	@Param		request	body		UpdateRoleRequest						true	"New role"
//	@Success	200		{object}	httpx.Envelope{data=domain.PublicUser}	"Updated"
//	@Failure	400		{object}	httpx.ErrorEnvelope						"Unknown role"
//	@Security	BearerAuth
//	@Router		/users/update-role/{id} [patch].
func (h *UsersHandler) HandleUpdateRole(w http.ResponseWriter, r *http.Request) {
	var req UpdateRoleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	a, _ := actor(r)
	u, err := h.UserService.UpdateRole(r.Context(), a, r.PathValue("id"), req.Role)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, u, "User role updated successfully")
}
