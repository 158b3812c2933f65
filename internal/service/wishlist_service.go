package service

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
)

// wishlistService implements WishlistService. Unlike the cart, wishlist
// entries carry no stock constraint: they are snapshots taken at add time.
type wishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
	logger       zerolog.Logger
}

// NewWishlistService creates a new wishlist service.
func NewWishlistService(
	wishlistRepo repository.WishlistRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) WishlistService {
	return &wishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
		logger:       logger.With().Str("service", "wishlist").Logger(),
	}
}

// List retrieves the user's wishlist.
func (s *wishlistService) List(ctx context.Context, user *model.User) ([]model.WishlistItem, error) {
	if user == nil {
		return nil, model.ErrUnauthenticated
	}

	items, err := s.wishlistRepo.GetAll(ctx, user.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to load wishlist")
		return nil, fmt.Errorf("failed to load wishlist: %w", err)
	}

	return items, nil
}

// Add saves a snapshot of the product. Adding an already-saved product is a no-op.
func (s *wishlistService) Add(ctx context.Context, user *model.User, productID string) error {
	if user == nil {
		return model.ErrUnauthenticated
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to load product: %w", err)
	}
	if product == nil {
		return model.ErrProductNotFound
	}

	err = s.wishlistRepo.Add(ctx, model.WishlistItem{
		UserID:    user.ID,
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Category:  product.Category,
		ImageURL:  product.ImageURL,
		AddedAt:   time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to add wishlist item: %w", err)
	}

	s.logger.Debug().
		Str("user_id", user.ID).
		Str("product_id", productID).
		Msg("added to wishlist")

	return nil
}

// Remove deletes one saved product.
func (s *wishlistService) Remove(ctx context.Context, user *model.User, productID string) error {
	if user == nil {
		return model.ErrUnauthenticated
	}

	if err := s.wishlistRepo.Delete(ctx, user.ID, productID); err != nil {
		return fmt.Errorf("failed to remove wishlist item: %w", err)
	}

	return nil
}

// Contains reports whether the product is saved.
func (s *wishlistService) Contains(ctx context.Context, user *model.User, productID string) (bool, error) {
	if user == nil {
		return false, nil
	}

	return s.wishlistRepo.Contains(ctx, user.ID, productID)
}

// Clear deletes the whole wishlist.
func (s *wishlistService) Clear(ctx context.Context, user *model.User) error {
	if user == nil {
		return model.ErrUnauthenticated
	}

	if err := s.wishlistRepo.Clear(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to clear wishlist: %w", err)
	}

	return nil
}
