package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/folio/internal/portfolio/domain"
	"github.com/aussiebroadwan/folio/internal/portfolio/store"
	"github.com/aussiebroadwan/folio/pkg/cryptox"
	"github.com/aussiebroadwan/folio/pkg/slogx"
)

// ErrBootstrapDisabled means no bootstrap token is configured; the endpoint
// should look like it does not exist.
var ErrBootstrapDisabled = errors.New("bootstrap disabled")

type BootstrapService struct {
	Store  store.Store
	Hasher cryptox.Hasher
	Token  string // BOOTSTRAP_TOKEN
}

func (s *BootstrapService) IsBootstrapped(ctx context.Context) (bool, error) {
	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	return !empty, nil
}

// Bootstrap creates the first administrator on an empty system.
func (s *BootstrapService) Bootstrap(ctx context.Context, token string, reg domain.Registration) (domain.PublicUser, error) {
	l := slogx.FromContext(ctx)

	if s.Token == "" {
		return domain.PublicUser{}, ErrBootstrapDisabled
	}

	if subtle.ConstantTimeCompare([]byte(token), []byte(s.Token)) != 1 {
		l.Warn("unauthorized bootstrap attempt")
		return domain.PublicUser{}, unauthenticated("Invalid bootstrap token")
	}

	if done, err := s.IsBootstrapped(ctx); err != nil {
		return domain.PublicUser{}, err
	} else if done {
		l.Warn("attempted bootstrap on already-bootstrapped system")
		return domain.PublicUser{}, conflict("System already bootstrapped")
	}

	u, err := newUser(s.Hasher, reg, domain.RoleAdmin)
	if err != nil {
		return domain.PublicUser{}, err
	}

	// Recheck inside the transaction so two racing bootstraps cannot both
	// create an admin.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		empty, err := tx.Users().IsEmpty(ctx)
		if err != nil {
			return err
		}
		if !empty {
			return conflict("System already bootstrapped")
		}
		return createUser(ctx, tx.Users(), u)
	})
	if err != nil {
		return domain.PublicUser{}, err
	}

	l.Info("successfully bootstrapped system", slog.String("admin_user_id", u.ID))

	created, err := s.Store.Users().GetUserByID(ctx, u.ID)
	if err != nil {
		return domain.PublicUser{}, err
	}
	return created.Public(), nil
}
