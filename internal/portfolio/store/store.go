package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/folio/internal/portfolio/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Sub-repositories are reached
// through methods so a Tx-scoped Store hands out Tx-scoped repos and nobody
// opens a transaction inside a transaction by accident.
type Store interface {
	Users() Users
	Documents() Documents

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// ListUsers returns every user, newest first.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// CreateUser inserts a new user. Username or email clashes return
	// ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateProfile writes username, email, full name and avatar.
	UpdateProfile(ctx context.Context, u domain.User) error

	UpdatePasswordHash(ctx context.Context, userID, newHash string) error
	UpdateRole(ctx context.Context, userID string, role domain.Role) error

	// SetRefreshToken replaces the stored refresh fingerprint. An empty
	// hash clears it.
	SetRefreshToken(ctx context.Context, userID, hash string, expiresAt *time.Time) error

	// ClearExpiredRefreshTokens blanks fingerprints that expired before now.
	ClearExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error)

	DeleteUser(ctx context.Context, userID string) error

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

// Match restricts a listing to documents whose field equals Value.
type Match struct {
	Field string
	Value any
}

// ListQuery shapes ListByOwner. SortField empty means creation order.
type ListQuery struct {
	SortField string
	Desc      bool
	Where     []Match
}

type Documents interface {
	// CreateDocument inserts d. uniqueKey, when non-empty, must be unique
	// within the collection or ErrAlreadyExists is returned.
	CreateDocument(ctx context.Context, d domain.Document, uniqueKey string) error

	GetDocument(ctx context.Context, collection, id string) (domain.Document, error)

	ListByOwner(ctx context.Context, collection, ownerID string, q ListQuery) ([]domain.Document, error)

	// ListAllByOwner returns every document of ownerID across collections.
	ListAllByOwner(ctx context.Context, ownerID string) ([]domain.Document, error)

	// UpdateDocument replaces the values of d and bumps updated_at.
	UpdateDocument(ctx context.Context, d domain.Document, uniqueKey string) error

	DeleteDocument(ctx context.Context, collection, id string) error

	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
}
