package repository

import (
	"context"
	"fmt"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// wishlistRepository implements the WishlistRepository interface using PostgreSQL.
type wishlistRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewWishlistRepository creates a new PostgreSQL-backed wishlist repository.
func NewWishlistRepository(pool *pgxpool.Pool, logger zerolog.Logger) WishlistRepository {
	return &wishlistRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "wishlist").Logger(),
	}
}

// GetAll retrieves a user's wishlist.
func (r *wishlistRepository) GetAll(ctx context.Context, userID string) ([]model.WishlistItem, error) {
	query := `
		SELECT user_id, product_id, name, price, category, image_url, added_at
		FROM wishlist_items
		WHERE user_id = $1
		ORDER BY added_at
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query wishlist")
		return nil, fmt.Errorf("failed to query wishlist: %w", err)
	}
	defer rows.Close()

	var items []model.WishlistItem
	for rows.Next() {
		var item model.WishlistItem
		err := rows.Scan(
			&item.UserID,
			&item.ProductID,
			&item.Name,
			&item.Price,
			&item.Category,
			&item.ImageURL,
			&item.AddedAt,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan wishlist row")
			return nil, fmt.Errorf("failed to scan wishlist item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating wishlist rows")
		return nil, fmt.Errorf("error iterating wishlist items: %w", err)
	}

	return items, nil
}

// Contains reports whether the product is already saved.
func (r *wishlistRepository) Contains(ctx context.Context, userID, productID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM wishlist_items WHERE user_id = $1 AND product_id = $2
		)
	`

	var exists bool
	err := r.pool.QueryRow(ctx, query, userID, productID).Scan(&exists)
	if err != nil {
		r.logger.Error().Err(err).
			Str("user_id", userID).
			Str("product_id", productID).
			Msg("failed to check wishlist membership")
		return false, fmt.Errorf("failed to check wishlist membership: %w", err)
	}

	return exists, nil
}

// Add saves a product snapshot. The conflict clause makes adds idempotent and
// keeps the snapshot taken at first add.
func (r *wishlistRepository) Add(ctx context.Context, item model.WishlistItem) error {
	query := `
		INSERT INTO wishlist_items (user_id, product_id, name, price, category, image_url, added_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, product_id) DO NOTHING
	`

	_, err := r.pool.Exec(ctx, query,
		item.UserID, item.ProductID, item.Name, item.Price, item.Category, item.ImageURL, item.AddedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).
			Str("user_id", item.UserID).
			Str("product_id", item.ProductID).
			Msg("failed to add wishlist item")
		return fmt.Errorf("failed to add wishlist item: %w", err)
	}

	return nil
}

// Delete removes one wishlist entry.
func (r *wishlistRepository) Delete(ctx context.Context, userID, productID string) error {
	query := `DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`

	_, err := r.pool.Exec(ctx, query, userID, productID)
	if err != nil {
		r.logger.Error().Err(err).
			Str("user_id", userID).
			Str("product_id", productID).
			Msg("failed to delete wishlist item")
		return fmt.Errorf("failed to delete wishlist item: %w", err)
	}

	return nil
}

// Clear removes every entry in a user's wishlist.
func (r *wishlistRepository) Clear(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM wishlist_items WHERE user_id = $1`, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to clear wishlist")
		return fmt.Errorf("failed to clear wishlist: %w", err)
	}

	return nil
}
