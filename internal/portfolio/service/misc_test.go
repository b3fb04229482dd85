package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/folio/internal/portfolio/domain"
	"github.com/aussiebroadwan/folio/pkg/cryptox"
	"github.com/aussiebroadwan/folio/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestBootstrap(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	reg := domain.Registration{Username: "root", Email: "root@example.com", FullName: "Root", Password: "bootstrap-pass"}

	disabled := &BootstrapService{Store: env.store, Hasher: cryptox.Hasher{}}
	_, err := disabled.Bootstrap(ctx, "", reg)
	require.ErrorIs(t, err, ErrBootstrapDisabled)

	svc := &BootstrapService{Store: env.store, Hasher: env.auth.Hasher, Token: "let-me-in"}

	_, err = svc.Bootstrap(ctx, "wrong", reg)
	requireKind(t, err, ErrUnauthenticated)

	done, err := svc.IsBootstrapped(ctx)
	require.NoError(t, err)
	require.False(t, done)

	admin, err := svc.Bootstrap(ctx, "let-me-in", reg)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, admin.Role)

	_, err = svc.Bootstrap(ctx, "let-me-in", reg)
	requireKind(t, err, ErrConflict)

	_, _, err = env.auth.Login(ctx, "root", "bootstrap-pass")
	require.NoError(t, err)
}

type fakeSender struct {
	got []domain.ContactMessage
	err error
}

func (f *fakeSender) Send(_ context.Context, msg domain.ContactMessage) error {
	f.got = append(f.got, msg)
	return f.err
}

func TestContact(t *testing.T) {
	ctx := context.Background()
	sender := &fakeSender{}
	svc := &ContactService{Sender: sender}

	err := svc.Send(ctx, domain.ContactMessage{Name: "Ada", Email: "ada@example.com"})
	requireKind(t, err, ErrBadRequest, "Missing required fields: subject, message")
	require.Empty(t, sender.got)

	err = svc.Send(ctx, domain.ContactMessage{Name: " Ada ", Email: "ada@example.com", Subject: "Hi", Message: "Hello"})
	require.NoError(t, err)
	require.Len(t, sender.got, 1)
	require.Equal(t, "Ada", sender.got[0].Name)

	sender.err = errors.New("relay down")
	err = svc.Send(ctx, domain.ContactMessage{Name: "Ada", Email: "ada@example.com", Subject: "Hi", Message: "Hello"})
	require.ErrorIs(t, err, ErrMailUnavailable)
	var se *Error
	require.False(t, errors.As(err, &se))
}

func TestHousekeepingCleanup(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	u := env.register(t, "sleepy")

	past := time.Now().Add(-time.Hour)
	require.NoError(t, env.store.Users().SetRefreshToken(ctx, u.ID, "stale-fingerprint", &past))

	hk := NewHousekeepingService(env.store, slogx.Discard(), time.Hour)
	hk.Cleanup(ctx)

	stored, err := env.store.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Empty(t, stored.RefreshTokenHash)
}

func TestHousekeepingStartStop(t *testing.T) {
	env := newTestEnv(t)
	hk := NewHousekeepingService(env.store, slogx.Discard(), 0)
	require.Equal(t, time.Hour, hk.Interval)
	hk.Start()
	hk.Stop()
}
