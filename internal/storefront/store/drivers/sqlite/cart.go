package sqlite

import (
	"context"
	"database/sql"

	"github.com/Kareem09qyu/Okta/internal/storefront/domain"
)

const cartSelect = `SELECT c.id, c.user_id, c.product_id, c.quantity, c.created_at, c.updated_at,
	p.name, p.price_cents, p.image_url, p.stock_quantity
	FROM cart_items c JOIN products p ON c.product_id = p.id`

type cartRepo struct {
	db dbtx
}

func scanCartItem(row interface{ Scan(...any) error }) (domain.CartItem, error) {
	var (
		it  domain.CartItem
		img sql.NullString
	)
	err := row.Scan(
		&it.ID, &it.UserID, &it.ProductID, &it.Quantity, &it.CreatedAt, &it.UpdatedAt,
		&it.ProductName, &it.ProductPriceCents, &img, &it.ProductStock,
	)
	if err != nil {
		return domain.CartItem{}, err
	}
	it.ProductImage = mapNullStringPtr(img)
	return it, nil
}

func (r *cartRepo) ListByUser(ctx context.Context, userID int64) ([]domain.CartItem, error) {
	rows, err := r.db.QueryContext(ctx, cartSelect+` WHERE c.user_id = ? ORDER BY c.created_at DESC, c.id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.CartItem{}
	for rows.Next() {
		it, err := scanCartItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *cartRepo) FindByID(ctx context.Context, userID, itemID int64) (domain.CartItem, error) {
	it, err := scanCartItem(r.db.QueryRowContext(ctx, cartSelect+` WHERE c.id = ? AND c.user_id = ?`, itemID, userID))
	if err != nil {
		return domain.CartItem{}, mapNotFound(err)
	}
	return it, nil
}

func (r *cartRepo) FindByProduct(ctx context.Context, userID, productID int64) (domain.CartItem, error) {
	it, err := scanCartItem(r.db.QueryRowContext(ctx, cartSelect+` WHERE c.user_id = ? AND c.product_id = ?`, userID, productID))
	if err != nil {
		return domain.CartItem{}, mapNotFound(err)
	}
	return it, nil
}

func (r *cartRepo) Insert(ctx context.Context, userID, productID int64, quantity int) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO cart_items (user_id, product_id, quantity) VALUES (?, ?, ?)`,
		userID, productID, quantity,
	)
	if err != nil {
		return 0, mapConstraint(err)
	}
	return res.LastInsertId()
}

func (r *cartRepo) SetQuantity(ctx context.Context, userID, itemID int64, quantity int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE cart_items SET quantity = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND user_id = ?`,
		quantity, itemID, userID,
	)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func (r *cartRepo) Delete(ctx context.Context, userID, itemID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = ? AND user_id = ?`, itemID, userID)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func (r *cartRepo) Clear(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = ?`, userID)
	return err
}
