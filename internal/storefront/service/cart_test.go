package service_test

import (
	"context"
	"testing"

	"github.com/Kareem09qyu/Okta/internal/storefront/domain"
	"github.com/Kareem09qyu/Okta/internal/storefront/service"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	mug := h.product(t, "Mug", 1250, 5)
	_, err := h.store.Products().Insert(ctx, domain.NewProduct{Name: "Lamp", PriceCents: 4999, StockQuantity: 1, IsFeatured: true})
	require.NoError(t, err)

	all, err := h.cat.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "Lamp", all[0].Name)

	featured, err := h.cat.ListFeatured(ctx)
	require.NoError(t, err)
	require.Len(t, featured, 1)
	require.True(t, featured[0].IsFeatured)

	p, err := h.cat.GetProduct(ctx, mug)
	require.NoError(t, err)
	require.Equal(t, int64(1250), p.PriceCents)

	_, err = h.cat.GetProduct(ctx, mug+100)
	require.ErrorIs(t, err, service.ErrProductNotFound)
}

func TestCartAddMergesAndChecksStock(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	uid := h.register(t, "alice", "alice@x.com", "secret123")
	mug := h.product(t, "Mug", 1250, 3)

	require.NoError(t, h.cart.Add(ctx, uid, mug, 0))
	require.NoError(t, h.cart.Add(ctx, uid, mug, 2))

	cart, err := h.cart.List(ctx, uid)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, 3, cart.Items[0].Quantity)
	require.Equal(t, int64(3750), cart.TotalCents)

	require.ErrorIs(t, h.cart.Add(ctx, uid, mug, 1), service.ErrInsufficientStock)
	require.ErrorIs(t, h.cart.Add(ctx, uid, mug+100, 1), service.ErrProductNotFound)

	var verr *service.ValidationError
	require.ErrorAs(t, h.cart.Add(ctx, uid, mug, -1), &verr)
}

func TestCartUpdateRemoveClear(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	alice := h.register(t, "alice", "alice@x.com", "secret123")
	bob := h.register(t, "bob", "bob@x.com", "secret123")
	mug := h.product(t, "Mug", 1250, 4)
	lamp := h.product(t, "Lamp", 4999, 2)

	require.NoError(t, h.cart.Add(ctx, alice, mug, 1))
	require.NoError(t, h.cart.Add(ctx, alice, lamp, 1))

	cart, err := h.cart.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	lampItem := cart.Items[0]
	require.Equal(t, lamp, lampItem.ProductID)

	require.NoError(t, h.cart.UpdateQuantity(ctx, alice, lampItem.ID, 2))
	require.ErrorIs(t, h.cart.UpdateQuantity(ctx, alice, lampItem.ID, 3), service.ErrInsufficientStock)

	// Other users cannot see or touch the item.
	require.ErrorIs(t, h.cart.UpdateQuantity(ctx, bob, lampItem.ID, 1), service.ErrCartItemNotFound)
	require.ErrorIs(t, h.cart.Remove(ctx, bob, lampItem.ID), service.ErrCartItemNotFound)

	cart, err = h.cart.List(ctx, alice)
	require.NoError(t, err)
	require.Equal(t, int64(1250+2*4999), cart.TotalCents)

	require.NoError(t, h.cart.UpdateQuantity(ctx, alice, lampItem.ID, 0))
	cart, err = h.cart.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	require.NoError(t, h.cart.Clear(ctx, alice))
	cart, err = h.cart.List(ctx, alice)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
	require.Zero(t, cart.TotalCents)
}
