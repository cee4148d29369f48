package postgres

import (
	"context"
	"fmt"

	"github.com/Kareem09qyu/Okta/internal/storefront/domain"
)

type twoFactorRepo struct {
	db dbtx
}

func (r *twoFactorRepo) FindByUserID(ctx context.Context, userID int64) (domain.TwoFactorRecord, error) {
	var rec domain.TwoFactorRecord
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, secret_key, is_enabled, created_at FROM user_2fa WHERE user_id = $1`,
		userID,
	).Scan(&rec.ID, &rec.UserID, &rec.SecretKey, &rec.IsEnabled, &rec.CreatedAt)
	if err != nil {
		return domain.TwoFactorRecord{}, mapNotFound(err)
	}
	return rec, nil
}

func (r *twoFactorRepo) Insert(ctx context.Context, userID int64, secret string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_2fa (user_id, secret_key, is_enabled) VALUES ($1, $2, FALSE)`,
		userID, secret,
	)
	return mapConstraint(err)
}

func (r *twoFactorRepo) Enable(ctx context.Context, userID int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE user_2fa SET is_enabled = TRUE WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func (r *twoFactorRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM user_2fa`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
