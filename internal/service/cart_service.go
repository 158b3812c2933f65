package service

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
)

// cartService implements CartService. Every mutation clamps the affected
// line against the product's live stock, so the invariant
// 1 <= quantity <= stock holds after any successful call.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "cart").Logger(),
	}
}

// Get retrieves the user's cart reconciled against live stock.
func (s *cartService) Get(ctx context.Context, user *model.User) (*model.Cart, error) {
	if user == nil {
		return nil, model.ErrUnauthenticated
	}

	lines, err := s.cartRepo.GetLines(ctx, user.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to load cart")
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	lines, err = s.reconcile(ctx, user.ID, lines)
	if err != nil {
		return nil, err
	}

	cart := &model.Cart{Items: lines}
	for _, line := range lines {
		cart.Total += line.Subtotal()
		cart.Count += line.Quantity
	}

	return cart, nil
}

// reconcile shrinks any line whose quantity exceeds live stock and deletes
// lines whose stock has been depleted. Another user's order may have lowered
// stock since the line was written; the cart must never claim more units than
// the catalogue can cover.
func (s *cartService) reconcile(ctx context.Context, userID string, lines []model.CartLine) ([]model.CartLine, error) {
	kept := lines[:0]
	for _, line := range lines {
		switch {
		case line.Quantity <= line.Stock:
			kept = append(kept, line)

		case line.Stock <= 0:
			if err := s.cartRepo.Delete(ctx, userID, line.ProductID); err != nil {
				return nil, fmt.Errorf("failed to drop depleted cart line: %w", err)
			}
			s.logger.Info().
				Str("user_id", userID).
				Str("product_id", line.ProductID).
				Msg("dropped depleted cart line")

		default:
			line.Quantity = line.Stock
			err := s.cartRepo.Upsert(ctx, model.CartItem{
				UserID:    userID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				AddedAt:   time.Now(),
			})
			if err != nil {
				return nil, fmt.Errorf("failed to clamp cart line: %w", err)
			}
			s.logger.Info().
				Str("user_id", userID).
				Str("product_id", line.ProductID).
				Int("quantity", line.Quantity).
				Msg("clamped cart line to stock")
			kept = append(kept, line)
		}
	}
	return kept, nil
}

// Add puts quantity units of a product in the cart. An existing line grows by
// quantity; either way the result is clamped to the product's live stock.
func (s *cartService) Add(ctx context.Context, user *model.User, productID string, quantity int) (*model.Cart, error) {
	if user == nil {
		return nil, model.ErrUnauthenticated
	}

	if quantity < 1 {
		return nil, model.NewDomainError(model.ErrCodeValidation, "quantity must be at least 1")
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", productID).Msg("failed to load product")
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	if product.Stock <= 0 {
		s.logger.Debug().Str("product_id", productID).Msg("add to cart refused: out of stock")
		return nil, model.ErrOutOfStock
	}

	newQuantity := quantity
	existing, err := s.cartRepo.GetItem(ctx, user.ID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart line: %w", err)
	}
	if existing != nil {
		newQuantity += existing.Quantity
	}
	newQuantity = min(newQuantity, product.Stock)

	err = s.cartRepo.Upsert(ctx, model.CartItem{
		UserID:    user.ID,
		ProductID: productID,
		Quantity:  newQuantity,
		AddedAt:   time.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to write cart line: %w", err)
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Str("product_id", productID).
		Int("requested", quantity).
		Int("quantity", newQuantity).
		Msg("added to cart")

	return s.Get(ctx, user)
}

// UpdateQuantity sets a line's quantity, clamped to live stock. Values below
// 1 leave the cart untouched.
func (s *cartService) UpdateQuantity(ctx context.Context, user *model.User, productID string, quantity int) (*model.Cart, error) {
	if user == nil {
		return nil, model.ErrUnauthenticated
	}

	if quantity < 1 {
		return s.Get(ctx, user)
	}

	existing, err := s.cartRepo.GetItem(ctx, user.ID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart line: %w", err)
	}
	if existing == nil {
		return s.Get(ctx, user)
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	if product == nil || product.Stock <= 0 {
		// The product vanished or sold out while it was in the cart.
		if err := s.cartRepo.Delete(ctx, user.ID, productID); err != nil {
			return nil, fmt.Errorf("failed to drop depleted cart line: %w", err)
		}
		return s.Get(ctx, user)
	}

	newQuantity := min(quantity, product.Stock)

	err = s.cartRepo.Upsert(ctx, model.CartItem{
		UserID:    user.ID,
		ProductID: productID,
		Quantity:  newQuantity,
		AddedAt:   existing.AddedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to write cart line: %w", err)
	}

	s.logger.Debug().
		Str("user_id", user.ID).
		Str("product_id", productID).
		Int("requested", quantity).
		Int("quantity", newQuantity).
		Msg("cart quantity updated")

	return s.Get(ctx, user)
}

// Remove deletes a line unconditionally.
func (s *cartService) Remove(ctx context.Context, user *model.User, productID string) error {
	if user == nil {
		return model.ErrUnauthenticated
	}

	if err := s.cartRepo.Delete(ctx, user.ID, productID); err != nil {
		return fmt.Errorf("failed to remove cart line: %w", err)
	}

	return nil
}

// Clear deletes every line in the user's cart.
func (s *cartService) Clear(ctx context.Context, user *model.User) error {
	if user == nil {
		return model.ErrUnauthenticated
	}

	if err := s.cartRepo.Clear(ctx, nil, user.ID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}
