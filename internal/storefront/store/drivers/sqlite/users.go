package sqlite

import (
	"context"
	"database/sql"

	"github.com/Kareem09qyu/Okta/internal/storefront/domain"
)

const userColumns = `id, username, email, password_hash, full_name, address, phone, is_admin, created_at, updated_at`

const publicUserColumns = `id, username, email, full_name, address, phone, is_admin, created_at, updated_at`

type usersRepo struct {
	db dbtx
}

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var (
		u                        domain.User
		fullName, address, phone sql.NullString
	)
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&fullName, &address, &phone,
		&u.IsAdmin, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	u.FullName = mapNullStringPtr(fullName)
	u.Address = mapNullStringPtr(address)
	u.Phone = mapNullStringPtr(phone)
	return u, nil
}

func (r *usersRepo) FindByUsernameOrEmail(ctx context.Context, username, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ? OR email = ? LIMIT 1`,
		username, email,
	)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`,
		username,
	)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) Insert(ctx context.Context, u domain.NewUser) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash, full_name) VALUES (?, ?, ?, ?)`,
		u.Username, u.Email, u.PasswordHash, mapOptionalString(u.FullName),
	)
	if err != nil {
		return 0, mapConstraint(err)
	}
	return res.LastInsertId()
}

func (r *usersRepo) FindPublicByID(ctx context.Context, id int64) (domain.PublicUser, error) {
	var (
		u                        domain.PublicUser
		fullName, address, phone sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT `+publicUserColumns+` FROM users WHERE id = ?`, id,
	).Scan(
		&u.ID, &u.Username, &u.Email,
		&fullName, &address, &phone,
		&u.IsAdmin, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.PublicUser{}, mapNotFound(err)
	}
	u.FullName = mapNullStringPtr(fullName)
	u.Address = mapNullStringPtr(address)
	u.Phone = mapNullStringPtr(phone)
	return u, nil
}

func (r *usersRepo) FindUsernameByID(ctx context.Context, id int64) (string, error) {
	var username string
	err := r.db.QueryRowContext(ctx, `SELECT username FROM users WHERE id = ?`, id).Scan(&username)
	if err != nil {
		return "", mapNotFound(err)
	}
	return username, nil
}

func (r *usersRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		hash, id,
	)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}
