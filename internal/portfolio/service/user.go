package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/folio/internal/portfolio/cache"
	"github.com/aussiebroadwan/folio/internal/portfolio/domain"
	"github.com/aussiebroadwan/folio/internal/portfolio/media"
	"github.com/aussiebroadwan/folio/internal/portfolio/store"
	"github.com/aussiebroadwan/folio/pkg/slogx"
)

// Actor is the authenticated caller of a mutating operation.
type Actor struct {
	ID   string
	Role domain.Role
}

func (a Actor) IsAdmin() bool { return a.Role == domain.RoleAdmin }

type UserService struct {
	Store store.Store
	Media media.Store
	Cache cache.Portfolio
}

// GetUser fetches a user by id.
func (s *UserService) GetUser(ctx context.Context, userID string) (domain.PublicUser, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.PublicUser{}, notFound("User not found")
	}
	if err != nil {
		return domain.PublicUser{}, err
	}
	return u.Public(), nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.PublicUser, error) {
	users, err := s.Store.Users().ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}

// UpdateUser applies a partial profile update. Users may edit themselves;
// admins may edit anyone.
func (s *UserService) UpdateUser(ctx context.Context, actor Actor, userID string, patch domain.UserPatch) (domain.PublicUser, error) {
	if actor.ID != userID && !actor.IsAdmin() {
		return domain.PublicUser{}, forbidden("You can only update your own profile")
	}
	if patch.Username == nil && patch.Email == nil && patch.FullName == nil && patch.Avatar == nil {
		return domain.PublicUser{}, badRequest("At least one field is required")
	}

	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.PublicUser{}, notFound("User not found")
	}
	if err != nil {
		return domain.PublicUser{}, err
	}

	if patch.Username != nil {
		u.Username = domain.NormalizeUsername(*patch.Username)
	}
	if patch.Email != nil {
		u.Email = domain.NormalizeEmail(*patch.Email)
	}
	if patch.FullName != nil {
		name := strings.TrimSpace(*patch.FullName)
		if name == "" {
			return domain.PublicUser{}, badRequest("Full name cannot be empty")
		}
		u.FullName = name
	}
	if patch.Avatar != nil {
		u.Avatar = strings.TrimSpace(*patch.Avatar)
	}
	if err := validateProfile(u.Username, u.Email); err != nil {
		return domain.PublicUser{}, err
	}

	err = s.Store.Users().UpdateProfile(ctx, u)
	if errors.Is(err, store.ErrAlreadyExists) {
		return domain.PublicUser{}, conflict("Username or email already in use")
	}
	if err != nil {
		return domain.PublicUser{}, fmt.Errorf("update profile: %w", err)
	}
	s.Cache.Invalidate(ctx, userID)

	updated, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return domain.PublicUser{}, err
	}
	return updated.Public(), nil
}

// UpdateRole changes a user's role. An admin cannot demote themselves, so
// the system never loses its last administrator by accident.
func (s *UserService) UpdateRole(ctx context.Context, actor Actor, userID, role string) (domain.PublicUser, error) {
	r, err := domain.ParseRole(role)
	if err != nil {
		return domain.PublicUser{}, badRequest("Role must be one of: admin, user")
	}
	if actor.ID == userID && r != domain.RoleAdmin {
		return domain.PublicUser{}, badRequest("Admins cannot demote themselves")
	}

	err = s.Store.Users().UpdateRole(ctx, userID, r)
	if errors.Is(err, store.ErrNotFound) {
		return domain.PublicUser{}, notFound("User not found")
	}
	if err != nil {
		return domain.PublicUser{}, fmt.Errorf("update role: %w", err)
	}
	s.Cache.Invalidate(ctx, userID)

	slogx.FromContext(ctx).Info("user role changed",
		slog.String("user_id", userID),
		slog.String("role", string(r)),
		slog.String("changed_by", actor.ID),
	)
	return s.GetUser(ctx, userID)
}

// DeleteUser removes a user together with every record they own, then
// their hosted media. Media cleanup is best effort once the rows are gone.
func (s *UserService) DeleteUser(ctx context.Context, userID string) (domain.PublicUser, error) {
	l := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.PublicUser{}, notFound("User not found")
	}
	if err != nil {
		return domain.PublicUser{}, err
	}

	docs, err := s.Store.Documents().ListAllByOwner(ctx, userID)
	if err != nil {
		return domain.PublicUser{}, fmt.Errorf("list documents: %w", err)
	}

	var removed int64
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		n, err := tx.Documents().DeleteByOwner(ctx, userID)
		if err != nil {
			return err
		}
		removed = n
		return tx.Users().DeleteUser(ctx, userID)
	})
	if err != nil {
		return domain.PublicUser{}, fmt.Errorf("delete user: %w", err)
	}
	s.Cache.Invalidate(ctx, userID)

	assets := 0
	for _, d := range docs {
		schema, ok := domain.LookupSchema(d.Collection)
		if !ok {
			continue
		}
		assets += deleteHosted(ctx, s.Media, d.MediaURLs(schema))
	}
	if u.Avatar != "" {
		assets += deleteHosted(ctx, s.Media, []string{u.Avatar})
	}

	l.Info("user deleted",
		slog.String("user_id", userID),
		slog.Int64("documents", removed),
		slog.Int("assets", assets),
	)
	return u.Public(), nil
}

// deleteHosted removes every URL the media store hosts and returns how many
// delete calls were made. Failures are logged, not returned.
func deleteHosted(ctx context.Context, m media.Store, urls []string) int {
	calls := 0
	for _, u := range urls {
		if u == "" || !m.Owns(u) {
			continue
		}
		calls++
		if err := m.Delete(ctx, u); err != nil {
			slogx.FromContext(ctx).Warn("failed to delete media asset",
				slog.String("url", u),
				slog.Any("error", err),
			)
		}
	}
	return calls
}
