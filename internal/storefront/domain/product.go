package domain

import "time"

// Prices are integer cents.
type Product struct {
	ID                 int64
	CategoryID         *int64
	Name               string
	Description        *string
	PriceCents         int64
	DiscountPriceCents *int64
	StockQuantity      int
	ImageURL           *string
	IsFeatured         bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type NewProduct struct {
	CategoryID         *int64
	Name               string
	Description        *string
	PriceCents         int64
	DiscountPriceCents *int64
	StockQuantity      int
	ImageURL           *string
	IsFeatured         bool
}
