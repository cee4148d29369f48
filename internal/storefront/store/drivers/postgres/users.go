package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Kareem09qyu/Okta/internal/storefront/domain"
)

const userColumns = `id, username, email, password_hash, full_name, address, phone, is_admin, created_at, updated_at`

type usersRepo struct {
	db dbtx
}

func (r *usersRepo) findOne(ctx context.Context, query string, args ...any) (domain.User, error) {
	var (
		u                        domain.User
		fullName, address, phone sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&fullName, &address, &phone,
		&u.IsAdmin, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.FullName = stringPtr(fullName)
	u.Address = stringPtr(address)
	u.Phone = stringPtr(phone)
	return u, nil
}

func (r *usersRepo) FindByUsernameOrEmail(ctx context.Context, username, email string) (domain.User, error) {
	return r.findOne(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1 OR email = $2 LIMIT 1`,
		username, email)
}

func (r *usersRepo) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *usersRepo) Insert(ctx context.Context, u domain.NewUser) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (username, email, password_hash, full_name)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		u.Username, u.Email, u.PasswordHash, nullString(u.FullName),
	).Scan(&id)
	if err != nil {
		return 0, mapConstraint(err)
	}
	return id, nil
}

func (r *usersRepo) FindPublicByID(ctx context.Context, id int64) (domain.PublicUser, error) {
	var (
		u                        domain.PublicUser
		fullName, address, phone sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, email, full_name, address, phone, is_admin, created_at, updated_at
		 FROM users WHERE id = $1`, id,
	).Scan(
		&u.ID, &u.Username, &u.Email,
		&fullName, &address, &phone,
		&u.IsAdmin, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.PublicUser{}, mapNotFound(err)
	}
	u.FullName = stringPtr(fullName)
	u.Address = stringPtr(address)
	u.Phone = stringPtr(phone)
	return u, nil
}

func (r *usersRepo) FindUsernameByID(ctx context.Context, id int64) (string, error) {
	var username string
	if err := r.db.QueryRowContext(ctx, `SELECT username FROM users WHERE id = $1`, id).Scan(&username); err != nil {
		return "", mapNotFound(err)
	}
	return username, nil
}

func (r *usersRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		hash, id,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}
