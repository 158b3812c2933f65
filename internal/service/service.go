package service

import (
	"context"

	"storefront/internal/model"

	"github.com/google/uuid"
)

// CatalogService defines operations for product management. Reads are open to
// anyone; mutations require an admin actor.
type CatalogService interface {
	// List retrieves products with pagination.
	List(ctx context.Context, limit, offset int) ([]model.Product, error)

	// Get retrieves a single product by ID.
	Get(ctx context.Context, id string) (*model.Product, error)

	// Search performs a case-insensitive substring match over name and description.
	Search(ctx context.Context, query string) ([]model.Product, error)

	// ListByCategory retrieves all products in a category.
	ListByCategory(ctx context.Context, category string) ([]model.Product, error)

	// ListFeatured retrieves all featured products.
	ListFeatured(ctx context.Context) ([]model.Product, error)

	// Add creates a new product on behalf of an admin actor.
	Add(ctx context.Context, actor *model.User, req *model.ProductRequest) (*model.Product, error)

	// Update overwrites a product on behalf of an admin actor. Lowering the
	// stock clamps every cart line referencing the product.
	Update(ctx context.Context, actor *model.User, id string, req *model.ProductRequest) (*model.Product, error)

	// Delete removes a product and any cart lines referencing it.
	Delete(ctx context.Context, actor *model.User, id string) error
}

// CartService defines stock-aware operations on a user's cart.
type CartService interface {
	// Get retrieves the user's cart reconciled against live stock, with the
	// total and item count recomputed from current line state.
	Get(ctx context.Context, user *model.User) (*model.Cart, error)

	// Add puts quantity units of a product in the cart, clamped so the line
	// never exceeds the product's live stock.
	Add(ctx context.Context, user *model.User, productID string, quantity int) (*model.Cart, error)

	// UpdateQuantity sets a line's quantity, clamped to live stock.
	// Quantities below 1 are ignored; use Remove to delete a line.
	UpdateQuantity(ctx context.Context, user *model.User, productID string, quantity int) (*model.Cart, error)

	// Remove deletes a line unconditionally.
	Remove(ctx context.Context, user *model.User, productID string) error

	// Clear deletes every line in the user's cart.
	Clear(ctx context.Context, user *model.User) error
}

// WishlistService defines operations on a user's saved products.
type WishlistService interface {
	// List retrieves the user's wishlist.
	List(ctx context.Context, user *model.User) ([]model.WishlistItem, error)

	// Add saves a snapshot of the product. Adding twice is a no-op.
	Add(ctx context.Context, user *model.User, productID string) error

	// Remove deletes one saved product.
	Remove(ctx context.Context, user *model.User, productID string) error

	// Contains reports whether the product is saved.
	Contains(ctx context.Context, user *model.User, productID string) (bool, error)

	// Clear deletes the whole wishlist.
	Clear(ctx context.Context, user *model.User) error
}

// OrderService defines order placement and back-office operations.
type OrderService interface {
	// Create places an order from the user's current cart: it snapshots the
	// cart lines, decrements stock conditionally per line, reconciles other
	// carts, and clears the user's cart, all in one transaction.
	// idempotencyKey deduplicates retries and may be empty.
	Create(ctx context.Context, user *model.User, req *model.OrderRequest, idempotencyKey string) (*model.Order, error)

	// Get retrieves an order visible to the caller (owner or admin).
	Get(ctx context.Context, user *model.User, id uuid.UUID) (*model.Order, error)

	// List retrieves the caller's orders; admins see every order.
	List(ctx context.Context, user *model.User) ([]model.Order, error)

	// ListByStatus retrieves the caller's orders in the given status; admins
	// see every order in that status.
	ListByStatus(ctx context.Context, user *model.User, status model.OrderStatus) ([]model.Order, error)

	// UpdateStatus moves an order along the enforced status lifecycle on
	// behalf of an admin actor.
	UpdateStatus(ctx context.Context, actor *model.User, id uuid.UUID, status model.OrderStatus) (*model.Order, error)
}
