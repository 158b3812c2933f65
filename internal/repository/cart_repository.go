package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

func (r *cartRepository) q(tx pgx.Tx) querier {
	if tx != nil {
		return tx
	}
	return r.pool
}

// GetLines retrieves a user's cart joined with live product data. Price and
// stock come from the products table on every read, so a line is never priced
// from a stale snapshot.
func (r *cartRepository) GetLines(ctx context.Context, userID string) ([]model.CartLine, error) {
	query := `
		SELECT c.product_id, p.name, p.price, p.image_url, p.stock, c.quantity
		FROM cart_items c
		JOIN products p ON p.id = c.product_id
		WHERE c.user_id = $1
		ORDER BY c.added_at
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query cart lines")
		return nil, fmt.Errorf("failed to query cart lines: %w", err)
	}
	defer rows.Close()

	var lines []model.CartLine
	for rows.Next() {
		var l model.CartLine
		err := rows.Scan(&l.ProductID, &l.Name, &l.Price, &l.ImageURL, &l.Stock, &l.Quantity)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan cart line row")
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		lines = append(lines, l)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating cart line rows")
		return nil, fmt.Errorf("error iterating cart lines: %w", err)
	}

	return lines, nil
}

// GetItem retrieves a single cart line, or nil when absent.
func (r *cartRepository) GetItem(ctx context.Context, userID, productID string) (*model.CartItem, error) {
	query := `
		SELECT user_id, product_id, quantity, added_at
		FROM cart_items
		WHERE user_id = $1 AND product_id = $2
	`

	var item model.CartItem
	err := r.pool.QueryRow(ctx, query, userID, productID).Scan(
		&item.UserID,
		&item.ProductID,
		&item.Quantity,
		&item.AddedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).
			Str("user_id", userID).
			Str("product_id", productID).
			Msg("failed to query cart item")
		return nil, fmt.Errorf("failed to query cart item: %w", err)
	}

	return &item, nil
}

// Upsert creates or replaces a cart line.
func (r *cartRepository) Upsert(ctx context.Context, item model.CartItem) error {
	query := `
		INSERT INTO cart_items (user_id, product_id, quantity, added_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity
	`

	_, err := r.pool.Exec(ctx, query, item.UserID, item.ProductID, item.Quantity, item.AddedAt)
	if err != nil {
		r.logger.Error().Err(err).
			Str("user_id", item.UserID).
			Str("product_id", item.ProductID).
			Msg("failed to upsert cart item")
		return fmt.Errorf("failed to upsert cart item: %w", err)
	}

	r.logger.Debug().
		Str("user_id", item.UserID).
		Str("product_id", item.ProductID).
		Int("quantity", item.Quantity).
		Msg("cart item written")

	return nil
}

// Delete removes one cart line.
func (r *cartRepository) Delete(ctx context.Context, userID, productID string) error {
	query := `DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`

	_, err := r.pool.Exec(ctx, query, userID, productID)
	if err != nil {
		r.logger.Error().Err(err).
			Str("user_id", userID).
			Str("product_id", productID).
			Msg("failed to delete cart item")
		return fmt.Errorf("failed to delete cart item: %w", err)
	}

	return nil
}

// Clear removes every line in a user's cart.
func (r *cartRepository) Clear(ctx context.Context, tx pgx.Tx, userID string) error {
	_, err := r.q(tx).Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	r.logger.Debug().Str("user_id", userID).Msg("cart cleared")

	return nil
}

// ClampToStock shrinks every user's line for the product down to the new
// stock level. Lines are deleted outright once the stock reaches zero, so no
// cart ever holds a quantity the catalogue cannot cover.
func (r *cartRepository) ClampToStock(ctx context.Context, tx pgx.Tx, productID string, stock int) error {
	q := r.q(tx)

	if stock <= 0 {
		_, err := q.Exec(ctx, `DELETE FROM cart_items WHERE product_id = $1`, productID)
		if err != nil {
			r.logger.Error().Err(err).Str("product_id", productID).Msg("failed to drop depleted cart lines")
			return fmt.Errorf("failed to drop depleted cart lines: %w", err)
		}
		return nil
	}

	query := `
		UPDATE cart_items
		SET quantity = $2
		WHERE product_id = $1 AND quantity > $2
	`

	tag, err := q.Exec(ctx, query, productID, stock)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID).Msg("failed to clamp cart lines")
		return fmt.Errorf("failed to clamp cart lines: %w", err)
	}

	if tag.RowsAffected() > 0 {
		r.logger.Debug().
			Str("product_id", productID).
			Int("stock", stock).
			Int64("lines", tag.RowsAffected()).
			Msg("cart lines clamped to stock")
	}

	return nil
}
