package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/folio/internal/portfolio/domain"
)

const userColumns = `id, username, email, full_name, avatar, password_hash, role,
	refresh_token_hash, refresh_expires_at, created_at, updated_at`

type usersRepo struct {
	q queryer
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var (
		u         domain.User
		role      string
		refreshAt sql.NullTime
	)
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.FullName, &u.Avatar, &u.PasswordHash, &role,
		&u.RefreshTokenHash, &refreshAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	u.Role = domain.Role(role)
	u.RefreshExpiresAt = mapNullTimePtr(refreshAt)
	return u, nil
}

func (r *usersRepo) getOne(ctx context.Context, where string, arg any) (domain.User, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.getOne(ctx, `id = ?`, id)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.getOne(ctx, `username = ?`, username)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getOne(ctx, `email = ?`, email)
}

func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	ts := now()
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO users (id, username, email, full_name, avatar, password_hash, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Email, u.FullName, u.Avatar, u.PasswordHash, string(u.Role), ts, ts,
	)
	return mapConflict(err)
}

func (r *usersRepo) UpdateProfile(ctx context.Context, u domain.User) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE users SET username = ?, email = ?, full_name = ?, avatar = ?, updated_at = ?
		WHERE id = ?`,
		u.Username, u.Email, u.FullName, u.Avatar, now(), u.ID,
	)
	return expectOne(res, mapConflict(err))
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID, newHash string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		newHash, now(), userID,
	)
	return expectOne(res, err)
}

func (r *usersRepo) UpdateRole(ctx context.Context, userID string, role domain.Role) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE users SET role = ?, updated_at = ? WHERE id = ?`,
		string(role), now(), userID,
	)
	return expectOne(res, err)
}

func (r *usersRepo) SetRefreshToken(ctx context.Context, userID, hash string, expiresAt *time.Time) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE users SET refresh_token_hash = ?, refresh_expires_at = ? WHERE id = ?`,
		hash, mapOptionalTime(expiresAt), userID,
	)
	return expectOne(res, err)
}

func (r *usersRepo) ClearExpiredRefreshTokens(ctx context.Context, at time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx, `
		UPDATE users SET refresh_token_hash = '', refresh_expires_at = NULL
		WHERE refresh_expires_at IS NOT NULL AND refresh_expires_at < ?`,
		at.UTC(),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID)
	return expectOne(res, err)
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}
