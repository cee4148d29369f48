package service

import (
	"context"
	"errors"

	"github.com/Kareem09qyu/Okta/internal/storefront/domain"
	"github.com/Kareem09qyu/Okta/internal/storefront/store"
)

// CartService manages the logged-in user's cart. Every operation is scoped
// to userID; items belonging to someone else look like missing items.
type CartService struct {
	Store store.Store
}

// isDomainErr reports errors that should pass through unchanged.
func isDomainErr(err error) bool {
	return errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrCartItemNotFound)
}

// Add puts qty of a product in the cart, merging with an existing line.
// A zero qty means one.
func (s *CartService) Add(ctx context.Context, userID, productID int64, qty int) error {
	if qty == 0 {
		qty = 1
	}
	if qty < 0 {
		return &ValidationError{Fields: map[string]string{"quantity": "must be positive"}}
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		p, err := tx.Products().FindByID(ctx, productID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrProductNotFound
		}
		if err != nil {
			return err
		}

		existing, err := tx.Cart().FindByProduct(ctx, userID, productID)
		switch {
		case err == nil:
			merged := existing.Quantity + qty
			if merged > p.StockQuantity {
				return ErrInsufficientStock
			}
			return tx.Cart().SetQuantity(ctx, userID, existing.ID, merged)
		case errors.Is(err, store.ErrNotFound):
			if qty > p.StockQuantity {
				return ErrInsufficientStock
			}
			_, err := tx.Cart().Insert(ctx, userID, productID, qty)
			return err
		default:
			return err
		}
	})
	if err == nil || isDomainErr(err) {
		return err
	}
	return unavailable(ctx, "cart.add", err)
}

// List returns the cart, newest line first, with its total.
func (s *CartService) List(ctx context.Context, userID int64) (domain.Cart, error) {
	items, err := s.Store.Cart().ListByUser(ctx, userID)
	if err != nil {
		return domain.Cart{}, unavailable(ctx, "cart.list", err)
	}
	return domain.NewCart(items), nil
}

// UpdateQuantity sets a line's quantity. Zero or less removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID int64, qty int) error {
	if qty <= 0 {
		return s.Remove(ctx, userID, itemID)
	}

	item, err := s.Store.Cart().FindByID(ctx, userID, itemID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrCartItemNotFound
	}
	if err != nil {
		return unavailable(ctx, "cart.update.lookup", err)
	}
	if qty > item.ProductStock {
		return ErrInsufficientStock
	}

	err = s.Store.Cart().SetQuantity(ctx, userID, itemID, qty)
	if errors.Is(err, store.ErrNotFound) {
		return ErrCartItemNotFound
	}
	if err != nil {
		return unavailable(ctx, "cart.update", err)
	}
	return nil
}

func (s *CartService) Remove(ctx context.Context, userID, itemID int64) error {
	err := s.Store.Cart().Delete(ctx, userID, itemID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrCartItemNotFound
	}
	if err != nil {
		return unavailable(ctx, "cart.remove", err)
	}
	return nil
}

func (s *CartService) Clear(ctx context.Context, userID int64) error {
	if err := s.Store.Cart().Clear(ctx, userID); err != nil {
		return unavailable(ctx, "cart.clear", err)
	}
	return nil
}
