package sqlite

import (
	"context"
	"database/sql"

	"github.com/Kareem09qyu/Okta/internal/storefront/domain"
)

const productColumns = `id, category_id, name, description, price_cents, discount_price_cents,
	stock_quantity, image_url, is_featured, created_at, updated_at`

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
	p.CategoryID = mapNullInt64Ptr(categoryID)
	p.Description = mapNullStringPtr(description)
	p.DiscountPriceCents = mapNullInt64Ptr(disc)
	p.ImageURL = mapNullStringPtr(imgURL)
	return p, nil
}

func (r *productsRepo) list(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *productsRepo) List(ctx context.Context) ([]domain.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at DESC, id DESC`)
}

func (r *productsRepo) ListFeatured(ctx context.Context) ([]domain.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products WHERE is_featured = 1 ORDER BY created_at DESC, id DESC`)
}

func (r *productsRepo) FindByID(ctx context.Context, id int64) (domain.Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id))
	if err != nil {
		return domain.Product{}, mapNotFound(err)
	}
	return p, nil
}

func (r *productsRepo) Insert(ctx context.Context, p domain.NewProduct) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO products (category_id, name, description, price_cents, discount_price_cents,
			stock_quantity, image_url, is_featured)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		mapOptionalInt64(p.CategoryID), p.Name, mapOptionalString(p.Description), p.PriceCents,
		mapOptionalInt64(p.DiscountPriceCents), p.StockQuantity, mapOptionalString(p.ImageURL), p.IsFeatured,
	)
	if err != nil {
		return 0, mapConstraint(err)
	}
	return res.LastInsertId()
}
