package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Kareem09qyu/Okta/internal/storefront/domain"
)

const productColumns = `id, category_id, name, description, price_cents, discount_price_cents, stock_quantity, image_url, is_featured, created_at, updated_at`

type productsRepo struct {
	db dbtx
}

func scanProduct(row interface{ Scan(...any) error }) (domain.Product, error) {
	var (
		p                   domain.Product
		categoryID, disc    sql.NullInt64
		description, imgURL sql.NullString
	)
	err := row.Scan(
		&p.ID, &categoryID, &p.Name, &description, &p.PriceCents, &disc,
		&p.StockQuantity, &imgURL, &p.IsFeatured, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return domain.Product{}, err
	}
	p.CategoryID = int64Ptr(categoryID)
	p.Description = stringPtr(description)
	p.DiscountPriceCents = int64Ptr(disc)
	p.ImageURL = stringPtr(imgURL)
	return p, nil
}

func (r *productsRepo) list(ctx context.Context, query string) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *productsRepo) List(ctx context.Context) ([]domain.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at DESC, id DESC`)
}

func (r *productsRepo) ListFeatured(ctx context.Context) ([]domain.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products WHERE is_featured ORDER BY created_at DESC, id DESC`)
}

func (r *productsRepo) FindByID(ctx context.Context, id int64) (domain.Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		return domain.Product{}, mapNotFound(err)
	}
	return p, nil
}

func (r *productsRepo) Insert(ctx context.Context, p domain.NewProduct) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO products (category_id, name, description, price_cents, discount_price_cents,
			stock_quantity, image_url, is_featured)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		nullInt64(p.CategoryID), p.Name, nullString(p.Description), p.PriceCents,
		nullInt64(p.DiscountPriceCents), p.StockQuantity, nullString(p.ImageURL), p.IsFeatured,
	).Scan(&id)
	if err != nil {
		return 0, mapConstraint(err)
	}
	return id, nil
}
