package repository

import (
	"context"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// querier is the subset of pgx operations shared by pools and transactions.
// Repository methods that accept a pgx.Tx run against the pool when tx is nil.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ProductRepository defines the interface for catalogue data access.
type ProductRepository interface {
	// GetAll retrieves products with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by its ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// Search performs a case-insensitive substring match over name and description.
	Search(ctx context.Context, query string) ([]model.Product, error)

	// GetByCategory retrieves all products in a category.
	GetByCategory(ctx context.Context, category string) ([]model.Product, error)

	// GetFeatured retrieves all featured products.
	GetFeatured(ctx context.Context) ([]model.Product, error)

	// Create inserts a new product.
	Create(ctx context.Context, product *model.Product) error

	// Update overwrites a product's mutable fields. Returns false when the
	// product does not exist.
	Update(ctx context.Context, product *model.Product) (bool, error)

	// Delete removes a product. Returns false when the product does not exist.
	Delete(ctx context.Context, id string) (bool, error)

	// DecrementStock conditionally subtracts quantity from a product's stock.
	// The update applies only when the remaining stock covers the quantity,
	// so stock can never go negative. It returns the new stock level and
	// false when the condition failed or the product is missing.
	DecrementStock(ctx context.Context, tx pgx.Tx, id string, quantity int) (int, bool, error)
}

// CartRepository defines the interface for per-user cart line data access.
type CartRepository interface {
	// GetLines retrieves a user's cart joined with live product data.
	GetLines(ctx context.Context, userID string) ([]model.CartLine, error)

	// GetItem retrieves a single cart line, or nil when absent.
	GetItem(ctx context.Context, userID, productID string) (*model.CartItem, error)

	// Upsert creates or replaces a cart line.
	Upsert(ctx context.Context, item model.CartItem) error

	// Delete removes one cart line.
	Delete(ctx context.Context, userID, productID string) error

	// Clear removes every line in a user's cart.
	Clear(ctx context.Context, tx pgx.Tx, userID string) error

	// ClampToStock shrinks every user's line for the product down to the new
	// stock level and deletes lines once the stock reaches zero.
	ClampToStock(ctx context.Context, tx pgx.Tx, productID string, stock int) error
}

// WishlistRepository defines the interface for wishlist data access.
type WishlistRepository interface {
	// GetAll retrieves a user's wishlist.
	GetAll(ctx context.Context, userID string) ([]model.WishlistItem, error)

	// Contains reports whether the product is already saved.
	Contains(ctx context.Context, userID, productID string) (bool, error)

	// Add saves a product snapshot. Adding an existing product is a no-op.
	Add(ctx context.Context, item model.WishlistItem) error

	// Delete removes one wishlist entry.
	Delete(ctx context.Context, userID, productID string) error

	// Clear removes every entry in a user's wishlist.
	Clear(ctx context.Context, userID string) error
}

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// Create inserts a new order within the provided transaction.
	Create(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateItems inserts the order's snapshot items within the provided transaction.
	CreateItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order with its snapshot items, or nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// ListByUser retrieves all orders owned by a user, newest first.
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)

	// ListAll retrieves every order, newest first.
	ListAll(ctx context.Context) ([]model.Order, error)

	// ListByStatus retrieves every order in the given status, newest first.
	ListByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error)

	// UpdateStatus moves an order from one status to another. The write is
	// conditional on the current status so concurrent updates cannot clobber
	// each other; it returns false when the order was not in `from`.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to model.OrderStatus) (bool, error)
}

// UserRepository defines the interface for identity lookups.
type UserRepository interface {
	// GetByToken retrieves the user owning an API token, or nil when unknown.
	GetByToken(ctx context.Context, token string) (*model.User, error)

	// GetByID retrieves a user by ID, or nil when absent.
	GetByID(ctx context.Context, id string) (*model.User, error)

	// Create inserts a new user.
	Create(ctx context.Context, user *model.User) error
}
