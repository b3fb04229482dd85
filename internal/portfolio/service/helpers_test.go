package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/folio/internal/portfolio/cache"
	"github.com/aussiebroadwan/folio/internal/portfolio/domain"
	"github.com/aussiebroadwan/folio/internal/portfolio/media"
	"github.com/aussiebroadwan/folio/internal/portfolio/store/drivers/sqlite"
	"github.com/aussiebroadwan/folio/pkg/cryptox"
	"github.com/aussiebroadwan/folio/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const (
	testAccessSecret  = "access-0123456789abcdef0123456789abcdef"
	testRefreshSecret = "refresh-0123456789abcdef0123456789abcde"
	testIssuer        = "folio-test"
	hostedPrefix      = "https://cdn.example.com/"
)

// fakeMedia records uploads and deletes. URLs under hostedPrefix are ours.
type fakeMedia struct {
	mu       sync.Mutex
	n        int
	uploaded []string
	deleted  []string
	failWith error
}

func (m *fakeMedia) Upload(_ context.Context, folder string, f media.File) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return "", m.failWith
	}
	m.n++
	url := fmt.Sprintf("%s%s/%d-%s", hostedPrefix, folder, m.n, f.Filename)
	m.uploaded = append(m.uploaded, url)
	return url, nil
}

func (m *fakeMedia) Delete(_ context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, url)
	return nil
}

func (m *fakeMedia) Owns(url string) bool { return strings.HasPrefix(url, hostedPrefix) }

func (m *fakeMedia) Deleted() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.deleted...)
}

// countingCache records invalidations and otherwise calls straight through.
type countingCache struct {
	cache.Noop
	mu          sync.Mutex
	invalidated []string
}

func (c *countingCache) Invalidate(_ context.Context, ownerID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, ownerID)
}

type testEnv struct {
	store *sqlite.Store
	media *fakeMedia
	cache *countingCache

	auth      *AuthService
	users     *UserService
	portfolio *PortfolioService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	access, err := jwtx.NewSignerHS256(testAccessSecret)
	require.NoError(t, err)
	refresh, err := jwtx.NewSignerHS256(testRefreshSecret)
	require.NoError(t, err)

	m := &fakeMedia{}
	c := &countingCache{}

	return &testEnv{
		store: st,
		media: m,
		cache: c,
		auth: &AuthService{
			Store:           st,
			Hasher:          cryptox.Hasher{Pepper: "test-pepper"},
			AccessSigner:    access,
			RefreshSigner:   refresh,
			RefreshVerifier: jwtx.NewVerifierHS256(testRefreshSecret, testIssuer),
			Issuer:          testIssuer,
			AccessTTL:       time.Minute,
			RefreshTTL:      time.Hour,
		},
		users:     &UserService{Store: st, Media: m, Cache: c},
		portfolio: &PortfolioService{Store: st, Cache: c},
	}
}

func (e *testEnv) resources(s domain.Schema) *ResourceService {
	return &ResourceService{Schema: s, Store: e.store, Media: e.media, Cache: e.cache}
}

func (e *testEnv) register(t *testing.T, username string) domain.PublicUser {
	t.Helper()
	u, err := e.auth.Register(context.Background(), domain.Registration{
		Username: username,
		Email:    username + "@example.com",
		FullName: "Dev " + username,
		Password: "correct horse",
	})
	require.NoError(t, err)
	return u
}

func actorOf(u domain.PublicUser) Actor { return Actor{ID: u.ID, Role: u.Role} }

func requireKind(t *testing.T, err, kind error, msg ...string) {
	t.Helper()
	require.ErrorIs(t, err, kind)
	if len(msg) > 0 {
		var se *Error
		require.ErrorAs(t, err, &se)
		require.Equal(t, msg[0], se.Message)
	}
}
