package domain

import "time"

// CartItem is a cart row joined with the product it points at.
type CartItem struct {
	ID                int64
	UserID            int64
	ProductID         int64
	Quantity          int
	ProductName       string
	ProductPriceCents int64
	ProductImage      *string
	ProductStock      int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// LineTotalCents is price times quantity.
func (c CartItem) LineTotalCents() int64 {
	return c.ProductPriceCents * int64(c.Quantity)
}

type Cart struct {
	Items      []CartItem
	TotalCents int64
}

// NewCart sums the items into a Cart.
func NewCart(items []CartItem) Cart {
	var total int64
	for _, it := range items {
		total += it.LineTotalCents()
	}
	if items == nil {
		items = []CartItem{}
	}
	return Cart{Items: items, TotalCents: total}
}
