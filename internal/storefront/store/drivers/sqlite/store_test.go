package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Kareem09qyu/Okta/internal/storefront/domain"
	"github.com/Kareem09qyu/Okta/internal/storefront/store"
	"github.com/Kareem09qyu/Okta/internal/storefront/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "storefront.db"))
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func insertUser(t *testing.T, s store.Store, username, email string) int64 {
	t.Helper()
	id, err := s.Users().Insert(context.Background(), domain.NewUser{
		Username:     username,
		Email:        email,
		PasswordHash: "$argon2id$test",
	})
	require.NoError(t, err)
	return id
}

func ptr[T any](v T) *T { return &v }

func TestApplyMigrations_Idempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	id, err := s.Users().Insert(ctx, domain.NewUser{
		Username:     "alice",
		Email:        "alice@x.com",
		PasswordHash: "$argon2id$hash",
		FullName:     ptr("Alice Example"),
	})
	require.NoError(t, err)
	require.Positive(t, id)

	t.Run("find by username", func(t *testing.T) {
		u, err := s.Users().FindByUsername(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, id, u.ID)
		require.Equal(t, "$argon2id$hash", u.PasswordHash)
		require.Equal(t, "Alice Example", *u.FullName)
		require.Nil(t, u.Phone)
		require.False(t, u.IsAdmin)
		require.False(t, u.CreatedAt.IsZero())
	})

	t.Run("find by username or email", func(t *testing.T) {
		u, err := s.Users().FindByUsernameOrEmail(ctx, "nobody", "alice@x.com")
		require.NoError(t, err)
		require.Equal(t, id, u.ID)

		u, err = s.Users().FindByUsernameOrEmail(ctx, "alice", "other@x.com")
		require.NoError(t, err)
		require.Equal(t, id, u.ID)

		_, err = s.Users().FindByUsernameOrEmail(ctx, "bob", "bob@x.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("public profile", func(t *testing.T) {
		u, err := s.Users().FindPublicByID(ctx, id)
		require.NoError(t, err)
		require.Equal(t, "alice@x.com", u.Email)

		_, err = s.Users().FindPublicByID(ctx, id+100)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("username by id", func(t *testing.T) {
		name, err := s.Users().FindUsernameByID(ctx, id)
		require.NoError(t, err)
		require.Equal(t, "alice", name)
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := s.Users().Insert(ctx, domain.NewUser{Username: "alice", Email: "new@x.com", PasswordHash: "h"})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := s.Users().Insert(ctx, domain.NewUser{Username: "alice2", Email: "alice@x.com", PasswordHash: "h"})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	n, err := s.Users().Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestTwoFactor(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	uid := insertUser(t, s, "alice", "alice@x.com")

	_, err := s.TwoFactor().FindByUserID(ctx, uid)
	require.ErrorIs(t, err, store.ErrNotFound)
	require.ErrorIs(t, s.TwoFactor().Enable(ctx, uid), store.ErrNotFound)

	require.NoError(t, s.TwoFactor().Insert(ctx, uid, "JBSWY3DPEHPK3PXP"))
	require.ErrorIs(t, s.TwoFactor().Insert(ctx, uid, "OTHER"), store.ErrAlreadyExists)

	rec, err := s.TwoFactor().FindByUserID(ctx, uid)
	require.NoError(t, err)
	require.Equal(t, "JBSWY3DPEHPK3PXP", rec.SecretKey)
	require.False(t, rec.IsEnabled)

	require.NoError(t, s.TwoFactor().Enable(ctx, uid))
	require.NoError(t, s.TwoFactor().Enable(ctx, uid))

	rec, err = s.TwoFactor().FindByUserID(ctx, uid)
	require.NoError(t, err)
	require.True(t, rec.IsEnabled)

	n, err := s.TwoFactor().Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestTwoFactor_RequiresUser(t *testing.T) {
	s := newTestStore(t)
	err := s.TwoFactor().Insert(context.Background(), 999, "SECRET")
	require.Error(t, err)
}

func TestWithTx_RollsBack(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(tx store.Tx) error {
		id, err := tx.Users().Insert(ctx, domain.NewUser{Username: "bob", Email: "bob@x.com", PasswordHash: "h"})
		require.NoError(t, err)
		require.NoError(t, tx.TwoFactor().Insert(ctx, id, "SECRET"))
		return boom
	})
	require.ErrorIs(t, err, boom)

	users, err := s.Users().Count(ctx)
	require.NoError(t, err)
	require.Zero(t, users)

	records, err := s.TwoFactor().Count(ctx)
	require.NoError(t, err)
	require.Zero(t, records)
}

func TestWithTx_Commits(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	err := s.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Users().Insert(ctx, domain.NewUser{Username: "bob", Email: "bob@x.com", PasswordHash: "h"})
		return err
	})
	require.NoError(t, err)

	_, err = s.Users().FindByUsername(ctx, "bob")
	require.NoError(t, err)
}

func TestProducts(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	shirt, err := s.Products().Insert(ctx, domain.NewProduct{
		Name: "Shirt", PriceCents: 1999, StockQuantity: 5, IsFeatured: true,
		Description: ptr("cotton"),
	})
	require.NoError(t, err)
	hat, err := s.Products().Insert(ctx, domain.NewProduct{
		Name: "Hat", PriceCents: 999, StockQuantity: 0, DiscountPriceCents: ptr[int64](799),
	})
	require.NoError(t, err)

	all, err := s.Products().List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, hat, all[0].ID, "newest first")

	featured, err := s.Products().ListFeatured(ctx)
	require.NoError(t, err)
	require.Len(t, featured, 1)
	require.Equal(t, shirt, featured[0].ID)

	p, err := s.Products().FindByID(ctx, hat)
	require.NoError(t, err)
	require.Equal(t, int64(799), *p.DiscountPriceCents)
	require.Nil(t, p.Description)

	_, err = s.Products().FindByID(ctx, 12345)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestCart(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := insertUser(t, s, "alice", "alice@x.com")
	bob := insertUser(t, s, "bob", "bob@x.com")

	shirt, err := s.Products().Insert(ctx, domain.NewProduct{Name: "Shirt", PriceCents: 1999, StockQuantity: 5})
	require.NoError(t, err)
	hat, err := s.Products().Insert(ctx, domain.NewProduct{Name: "Hat", PriceCents: 500, StockQuantity: 5})
	require.NoError(t, err)

	first, err := s.Cart().Insert(ctx, alice, shirt, 2)
	require.NoError(t, err)
	second, err := s.Cart().Insert(ctx, alice, hat, 1)
	require.NoError(t, err)

	_, err = s.Cart().Insert(ctx, alice, shirt, 1)
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	items, err := s.Cart().ListByUser(ctx, alice)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, second, items[0].ID)
	require.Equal(t, "Shirt", items[1].ProductName)
	require.Equal(t, int64(1999), items[1].ProductPriceCents)
	require.Equal(t, 5, items[1].ProductStock)

	it, err := s.Cart().FindByProduct(ctx, alice, shirt)
	require.NoError(t, err)
	require.Equal(t, first, it.ID)

	_, err = s.Cart().FindByID(ctx, bob, first)
	require.ErrorIs(t, err, store.ErrNotFound)
	require.ErrorIs(t, s.Cart().SetQuantity(ctx, bob, first, 3), store.ErrNotFound)
	require.ErrorIs(t, s.Cart().Delete(ctx, bob, first), store.ErrNotFound)

	require.NoError(t, s.Cart().SetQuantity(ctx, alice, first, 4))
	it, err = s.Cart().FindByID(ctx, alice, first)
	require.NoError(t, err)
	require.Equal(t, 4, it.Quantity)

	require.NoError(t, s.Cart().Delete(ctx, alice, second))
	require.NoError(t, s.Cart().Clear(ctx, alice))

	items, err = s.Cart().ListByUser(ctx, alice)
	require.NoError(t, err)
	require.Empty(t, items)
}
