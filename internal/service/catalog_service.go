package service

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// catalogService implements CatalogService.
type catalogService struct {
	productRepo repository.ProductRepository
	cartRepo    repository.CartRepository
	logger      zerolog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(
	productRepo repository.ProductRepository,
	cartRepo repository.CartRepository,
	logger zerolog.Logger,
) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		cartRepo:    cartRepo,
		logger:      logger.With().Str("service", "catalog").Logger(),
	}
}

// List retrieves products with pagination.
func (s *catalogService) List(ctx context.Context, limit, offset int) ([]model.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	products, err := s.productRepo.GetAll(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}

// Get retrieves a single product by ID.
func (s *catalogService) Get(ctx context.Context, id string) (*model.Product, error) {
	if id == "" {
		return nil, model.ErrProductNotFound
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// Search performs a case-insensitive substring match over name and description.
func (s *catalogService) Search(ctx context.Context, query string) ([]model.Product, error) {
	if query == "" {
		return []model.Product{}, nil
	}

	products, err := s.productRepo.Search(ctx, query)
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("failed to search products")
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	return products, nil
}

// ListByCategory retrieves all products in a category.
func (s *catalogService) ListByCategory(ctx context.Context, category string) ([]model.Product, error) {
	products, err := s.productRepo.GetByCategory(ctx, category)
	if err != nil {
		s.logger.Error().Err(err).Str("category", category).Msg("failed to list products by category")
		return nil, fmt.Errorf("failed to list products by category: %w", err)
	}

	return products, nil
}

// ListFeatured retrieves all featured products.
func (s *catalogService) ListFeatured(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.GetFeatured(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list featured products")
		return nil, fmt.Errorf("failed to list featured products: %w", err)
	}

	return products, nil
}

// Add creates a new product on behalf of an admin actor.
func (s *catalogService) Add(ctx context.Context, actor *model.User, req *model.ProductRequest) (*model.Product, error) {
	if !actor.IsAdmin() {
		s.logger.Warn().Msg("non-admin attempted to add product")
		return nil, model.ErrForbidden
	}

	if req == nil {
		return nil, model.NewDomainError(model.ErrCodeValidation, "product payload is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	product := &model.Product{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Featured:    req.Featured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("product_id", product.ID).Msg("failed to add product")
		return nil, fmt.Errorf("failed to add product: %w", err)
	}

	s.logger.Info().
		Str("product_id", product.ID).
		Str("actor", actor.ID).
		Msg("product added")

	return product, nil
}

// Update overwrites a product on behalf of an admin actor. When the update
// lowers stock, every cart line referencing the product is clamped down so no
// cart claims units the catalogue no longer has.
func (s *catalogService) Update(ctx context.Context, actor *model.User, id string, req *model.ProductRequest) (*model.Product, error) {
	if !actor.IsAdmin() {
		s.logger.Warn().Str("product_id", id).Msg("non-admin attempted to update product")
		return nil, model.ErrForbidden
	}

	if req == nil {
		return nil, model.NewDomainError(model.ErrCodeValidation, "product payload is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if existing == nil {
		return nil, model.ErrProductNotFound
	}

	product := &model.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Featured:    req.Featured,
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   time.Now(),
	}

	found, err := s.productRepo.Update(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to update product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if !found {
		return nil, model.ErrProductNotFound
	}

	if req.Stock < existing.Stock {
		if err := s.cartRepo.ClampToStock(ctx, nil, id, req.Stock); err != nil {
			s.logger.Error().Err(err).Str("product_id", id).Msg("failed to reconcile carts after stock change")
			return nil, fmt.Errorf("failed to reconcile carts after stock change: %w", err)
		}
	}

	s.logger.Info().
		Str("product_id", id).
		Str("actor", actor.ID).
		Int("stock", req.Stock).
		Msg("product updated")

	return product, nil
}

// Delete removes a product and any cart lines referencing it.
func (s *catalogService) Delete(ctx context.Context, actor *model.User, id string) error {
	if !actor.IsAdmin() {
		s.logger.Warn().Str("product_id", id).Msg("non-admin attempted to delete product")
		return model.ErrForbidden
	}

	found, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if !found {
		return model.ErrProductNotFound
	}

	// A deleted product can no longer be bought; drop any lines pointing at it.
	if err := s.cartRepo.ClampToStock(ctx, nil, id, 0); err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to drop cart lines for deleted product")
		return fmt.Errorf("failed to drop cart lines for deleted product: %w", err)
	}

	s.logger.Info().
		Str("product_id", id).
		Str("actor", actor.ID).
		Msg("product deleted")

	return nil
}
