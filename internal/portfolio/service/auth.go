package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/aussiebroadwan/folio/internal/portfolio/domain"
	"github.com/aussiebroadwan/folio/internal/portfolio/store"
	"github.com/aussiebroadwan/folio/pkg/cryptox"
	"github.com/aussiebroadwan/folio/pkg/httpx"
	"github.com/aussiebroadwan/folio/pkg/idx"
	"github.com/aussiebroadwan/folio/pkg/jwtx"
	"github.com/aussiebroadwan/folio/pkg/slogx"
)

const MinPasswordLength = 8

var validUsername = regexp.MustCompile(`^[a-z0-9][a-z0-9_.-]{2,29}$`)

// AuthService owns credentials and the access/refresh token lifecycle.
type AuthService struct {
	Store  store.Store
	Hasher cryptox.Hasher

	AccessSigner    jwtx.Signer
	RefreshSigner   jwtx.Signer
	RefreshVerifier jwtx.Verifier

	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// Now is overridden in tests.
	Now func() time.Time
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Register creates a regular account. The caller logs in separately.
func (s *AuthService) Register(ctx context.Context, reg domain.Registration) (domain.PublicUser, error) {
	u, err := newUser(s.Hasher, reg, domain.RoleUser)
	if err != nil {
		return domain.PublicUser{}, err
	}

	if err := createUser(ctx, s.Store.Users(), u); err != nil {
		return domain.PublicUser{}, err
	}

	slogx.FromContext(ctx).Info("user registered", slog.String("user_id", u.ID))

	created, err := s.Store.Users().GetUserByID(ctx, u.ID)
	if err != nil {
		return domain.PublicUser{}, fmt.Errorf("reload user: %w", err)
	}
	return created.Public(), nil
}

// Login authenticates by username or email and issues a fresh token pair,
// replacing any refresh token from an earlier session.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (domain.PublicUser, domain.TokenPair, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return domain.PublicUser{}, domain.TokenPair{}, badRequest("Username or email and password are required")
	}

	var (
		u   domain.User
		err error
	)
	if strings.Contains(identifier, "@") {
		u, err = s.Store.Users().GetUserByEmail(ctx, domain.NormalizeEmail(identifier))
	} else {
		u, err = s.Store.Users().GetUserByUsername(ctx, domain.NormalizeUsername(identifier))
	}
	if errors.Is(err, store.ErrNotFound) {
		return domain.PublicUser{}, domain.TokenPair{}, unauthenticated("Invalid user credentials")
	}
	if err != nil {
		return domain.PublicUser{}, domain.TokenPair{}, fmt.Errorf("load user: %w", err)
	}

	if err := s.Hasher.Verify(password, u.PasswordHash); err != nil {
		slogx.FromContext(ctx).Info("login failed", slog.String("user_id", u.ID))
		return domain.PublicUser{}, domain.TokenPair{}, unauthenticated("Invalid user credentials")
	}

	pair, err := s.issuePair(ctx, u)
	if err != nil {
		return domain.PublicUser{}, domain.TokenPair{}, err
	}
	return u.Public(), pair, nil
}

// Logout forgets the stored refresh token so it can no longer be exchanged.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	err := s.Store.Users().SetRefreshToken(ctx, userID, "", nil)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("clear refresh token: %w", err)
	}
	return nil
}

// Refresh exchanges a refresh token for a new pair. Only the most recently
// issued refresh token is accepted. Two concurrent refreshes with the same
// token may both succeed; the later write wins.
func (s *AuthService) Refresh(ctx context.Context, token string) (domain.PublicUser, domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	token = strings.TrimSpace(token)
	if token == "" {
		return domain.PublicUser{}, domain.TokenPair{}, badRequest("Refresh token is required")
	}

	claims, err := s.RefreshVerifier.Verify(token)
	if err != nil {
		l.Debug("refresh token rejected", slog.Any("error", err))
		return domain.PublicUser{}, domain.TokenPair{}, unauthenticated("Invalid refresh token")
	}

	u, err := s.Store.Users().GetUserByID(ctx, claims.Subject)
	if errors.Is(err, store.ErrNotFound) {
		return domain.PublicUser{}, domain.TokenPair{}, unauthenticated("Invalid refresh token")
	}
	if err != nil {
		return domain.PublicUser{}, domain.TokenPair{}, fmt.Errorf("load user: %w", err)
	}

	if u.RefreshTokenHash == "" || !cryptox.MatchFingerprint(token, u.RefreshTokenHash) {
		l.Warn("stale refresh token presented", slog.String("user_id", u.ID))
		return domain.PublicUser{}, domain.TokenPair{}, unauthenticated("Refresh token is expired or used")
	}

	pair, err := s.issuePair(ctx, u)
	if err != nil {
		return domain.PublicUser{}, domain.TokenPair{}, err
	}
	return u.Public(), pair, nil
}

// ChangePassword rehashes the password after checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return badRequest("Old and new password are required")
	}
	if len(newPassword) < MinPasswordLength {
		return badRequest(fmt.Sprintf("Password must be at least %d characters", MinPasswordLength))
	}

	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return notFound("User not found")
	}
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}

	if err := s.Hasher.Verify(oldPassword, u.PasswordHash); err != nil {
		return badRequest("Invalid old password")
	}

	hash, err := s.Hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.Store.Users().UpdatePasswordHash(ctx, userID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	slogx.FromContext(ctx).Info("password changed", slog.String("user_id", userID))
	return nil
}

// CurrentUser returns the profile behind an authenticated request.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (domain.PublicUser, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.PublicUser{}, notFound("User not found")
	}
	if err != nil {
		return domain.PublicUser{}, err
	}
	return u.Public(), nil
}

// LoadIdentity lets the auth middleware confirm the token subject still exists.
func (s *AuthService) LoadIdentity(ctx context.Context, userID string) (httpx.Identity, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return httpx.Identity{}, err
	}
	return httpx.Identity{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     string(u.Role),
	}, nil
}

func (s *AuthService) issuePair(ctx context.Context, u domain.User) (domain.TokenPair, error) {
	now := s.now()

	access, err := s.AccessSigner.Sign(jwtx.NewAccessClaims(jwtx.Profile{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     string(u.Role),
	}, s.Issuer, s.AccessTTL, now))
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}

	refresh, err := s.RefreshSigner.Sign(jwtx.NewRefreshClaims(u.ID, s.Issuer, s.RefreshTTL, now))
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("sign refresh token: %w", err)
	}

	refreshExp := now.Add(s.RefreshTTL)
	if err := s.Store.Users().SetRefreshToken(ctx, u.ID, cryptox.FingerprintToken(refresh), &refreshExp); err != nil {
		return domain.TokenPair{}, fmt.Errorf("store refresh token: %w", err)
	}

	return domain.TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  now.Add(s.AccessTTL),
		RefreshExpiresAt: refreshExp,
	}, nil
}

// newUser validates a registration and hashes its password.
func newUser(h cryptox.Hasher, reg domain.Registration, role domain.Role) (domain.User, error) {
	u := domain.User{
		ID:       idx.New().String(),
		Username: domain.NormalizeUsername(reg.Username),
		Email:    domain.NormalizeEmail(reg.Email),
		FullName: strings.TrimSpace(reg.FullName),
		Avatar:   strings.TrimSpace(reg.Avatar),
		Role:     role,
	}

	var missing []string
	for _, f := range []struct{ name, val string }{
		{"username", u.Username},
		{"email", u.Email},
		{"password", reg.Password},
	} {
		if f.val == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return domain.User{}, badRequest("Missing required fields: "+strings.Join(missing, ", "), missing...)
	}

	if err := validateProfile(u.Username, u.Email); err != nil {
		return domain.User{}, err
	}
	if len(reg.Password) < MinPasswordLength {
		return domain.User{}, badRequest(fmt.Sprintf("Password must be at least %d characters", MinPasswordLength))
	}

	hash, err := h.Hash(reg.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = hash
	return u, nil
}

func validateProfile(username, email string) error {
	if !validUsername.MatchString(username) {
		return badRequest("Username must be 3-30 characters of letters, digits, '.', '_' or '-'")
	}
	at := strings.IndexByte(email, '@')
	if at < 1 || at == len(email)-1 || strings.ContainsAny(email, " \t") {
		return badRequest("Invalid email address")
	}
	return nil
}

func createUser(ctx context.Context, users store.Users, u domain.User) error {
	err := users.CreateUser(ctx, u)
	if errors.Is(err, store.ErrAlreadyExists) {
		return conflict("User with email or username already exists")
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}
