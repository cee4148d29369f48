package store

import (
	"context"
	"errors"

	"github.com/Kareem09qyu/Okta/internal/storefront/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface implemented by the sqlite and
// postgres drivers. Repositories hang off it so a transaction can hand out
// the same repositories bound to the tx.
type Store interface {
	Users() Users
	TwoFactor() TwoFactor
	Products() Products
	Cart() Cart

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller must Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing if it returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. Nested transactions are not supported.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// FindByUsernameOrEmail returns any user holding either identifier.
	FindByUsernameOrEmail(ctx context.Context, username, email string) (domain.User, error)

	FindByUsername(ctx context.Context, username string) (domain.User, error)

	// Insert creates a user and returns its generated id. A username or email
	// collision is ErrAlreadyExists.
	Insert(ctx context.Context, u domain.NewUser) (int64, error)

	// FindPublicByID never selects the password hash.
	FindPublicByID(ctx context.Context, id int64) (domain.PublicUser, error)

	FindUsernameByID(ctx context.Context, id int64) (string, error)

	// UpdatePasswordHash replaces the stored hash, used to upgrade legacy
	// hashes after a successful login.
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error

	Count(ctx context.Context) (int, error)
}

type TwoFactor interface {
	FindByUserID(ctx context.Context, userID int64) (domain.TwoFactorRecord, error)

	// Insert stores a disabled record. A second record for the same user is
	// ErrAlreadyExists.
	Insert(ctx context.Context, userID int64, secret string) error

	// Enable sets is_enabled. Enabling an enabled record is not an error;
	// a missing record is ErrNotFound.
	Enable(ctx context.Context, userID int64) error

	Count(ctx context.Context) (int, error)
}

type Products interface {
	// List returns all products, newest first.
	List(ctx context.Context) ([]domain.Product, error)

	// ListFeatured returns featured products, newest first.
	ListFeatured(ctx context.Context) ([]domain.Product, error)

	FindByID(ctx context.Context, id int64) (domain.Product, error)

	Insert(ctx context.Context, p domain.NewProduct) (int64, error)
}

type Cart interface {
	// ListByUser returns the user's cart rows joined with their products,
	// newest first.
	ListByUser(ctx context.Context, userID int64) ([]domain.CartItem, error)

	// FindByID returns the item only if it belongs to userID.
	FindByID(ctx context.Context, userID, itemID int64) (domain.CartItem, error)

	FindByProduct(ctx context.Context, userID, productID int64) (domain.CartItem, error)

	// Insert adds a row; a second row for the same product is ErrAlreadyExists.
	Insert(ctx context.Context, userID, productID int64, quantity int) (int64, error)

	SetQuantity(ctx context.Context, userID, itemID int64, quantity int) error

	Delete(ctx context.Context, userID, itemID int64) error

	Clear(ctx context.Context, userID int64) error
}
