package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/cache"
	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// orderService implements OrderService. Order placement is the one operation
// that touches orders, products, and carts together; everything it writes
// goes through a single transaction so a failure anywhere leaves no
// partially-applied order behind.
type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	cartRepo    repository.CartRepository
	idempotency cache.IdempotencyStore
	logger      zerolog.Logger
}

// NewOrderService creates a new order service. idempotency may be nil, in
// which case duplicate submissions are not detected.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	cartRepo repository.CartRepository,
	idempotency cache.IdempotencyStore,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		idempotency: idempotency,
		logger:      logger.With().Str("service", "order").Logger(),
	}
}

// Create places an order from the user's current cart.
func (s *orderService) Create(ctx context.Context, user *model.User, req *model.OrderRequest, idempotencyKey string) (*model.Order, error) {
	if user == nil {
		return nil, model.ErrUnauthenticated
	}

	if req == nil {
		return nil, model.NewDomainError(model.ErrCodeValidation, "order payload is required")
	}
	if err := req.Shipping.Validate(); err != nil {
		return nil, err
	}

	lines, err := s.cartRepo.GetLines(ctx, user.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to load cart for order")
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(lines) == 0 {
		return nil, model.ErrEmptyCart
	}

	reserved, err := s.reserveKey(ctx, idempotencyKey)
	if err != nil {
		return nil, err
	}
	if !reserved {
		s.logger.Warn().Str("user_id", user.ID).Msg("duplicate order submission")
		return nil, model.ErrDuplicateOrder
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.releaseKey(ctx, idempotencyKey)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	order, err := s.placeOrder(ctx, tx, user, req, lines)
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
		}
		s.reconcileAfterRejection(ctx, user.ID, lines, err)
		s.releaseKey(ctx, idempotencyKey)
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit order")
		s.releaseKey(ctx, idempotencyKey)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("user_id", user.ID).
		Int("item_count", len(order.Items)).
		Msg("order placed")

	return order, nil
}

// placeOrder runs the whole placement inside the given transaction: persist
// the order and its snapshot, conditionally decrement stock per line, clamp
// other users' carts to the new stock, and clear this user's cart.
func (s *orderService) placeOrder(ctx context.Context, tx pgx.Tx, user *model.User, req *model.OrderRequest, lines []model.CartLine) (*model.Order, error) {
	now := time.Now()
	order := &model.Order{
		ID:        uuid.New(),
		UserID:    user.ID,
		UserEmail: user.Email,
		UserName:  user.Name,
		Status:    model.OrderStatusPending,
		Shipping:  req.Shipping,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Snapshot the cart. Name, price and image are denormalised here so the
	// order stays accurate when the catalogue later changes.
	items := make([]model.OrderItem, len(lines))
	for i, line := range lines {
		items[i] = model.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			ImageURL:  line.ImageURL,
			Quantity:  line.Quantity,
		}
	}

	if err := s.orderRepo.Create(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err := s.orderRepo.CreateItems(ctx, tx, items); err != nil {
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	for _, item := range items {
		newStock, ok, err := s.productRepo.DecrementStock(ctx, tx, item.ProductID, item.Quantity)
		if err != nil {
			return nil, fmt.Errorf("failed to decrement stock: %w", err)
		}
		if !ok {
			s.logger.Warn().
				Str("order_id", order.ID.String()).
				Str("product_id", item.ProductID).
				Int("quantity", item.Quantity).
				Msg("order rejected: insufficient stock")
			return nil, model.NewInsufficientStock(item.ProductID)
		}

		if err := s.cartRepo.ClampToStock(ctx, tx, item.ProductID, newStock); err != nil {
			return nil, fmt.Errorf("failed to reconcile carts: %w", err)
		}
	}

	if err := s.cartRepo.Clear(ctx, tx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	order.Items = items
	return order, nil
}

// reconcileAfterRejection clamps the user's cart to live stock after an
// insufficient-stock rejection, so a retry sees quantities the catalogue can
// actually cover. Best effort; the rejection itself already rolled back.
func (s *orderService) reconcileAfterRejection(ctx context.Context, userID string, lines []model.CartLine, cause error) {
	var derr *model.DomainError
	if !errors.As(cause, &derr) || derr.Code != model.ErrCodeInsufficientStock {
		return
	}

	for _, line := range lines {
		product, err := s.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			s.logger.Error().Err(err).Str("product_id", line.ProductID).Msg("failed to reload product for cart reconcile")
			continue
		}

		stock := 0
		if product != nil {
			stock = product.Stock
		}
		if line.Quantity <= stock {
			continue
		}

		if err := s.cartRepo.ClampToStock(ctx, nil, line.ProductID, stock); err != nil {
			s.logger.Error().Err(err).Str("product_id", line.ProductID).Msg("failed to clamp cart after rejection")
		}
	}
}

func (s *orderService) reserveKey(ctx context.Context, key string) (bool, error) {
	if s.idempotency == nil || key == "" {
		return true, nil
	}

	ok, err := s.idempotency.Reserve(ctx, key)
	if err != nil {
		return false, fmt.Errorf("idempotency check failed: %w", err)
	}
	return ok, nil
}

func (s *orderService) releaseKey(ctx context.Context, key string) {
	if s.idempotency == nil || key == "" {
		return
	}

	if err := s.idempotency.Release(ctx, key); err != nil {
		s.logger.Error().Err(err).Msg("failed to release idempotency key")
	}
}

// Get retrieves an order visible to the caller. Non-admins can only see
// their own orders; anything else reads as not found.
func (s *orderService) Get(ctx context.Context, user *model.User, id uuid.UUID) (*model.Order, error) {
	if user == nil {
		return nil, model.ErrUnauthenticated
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order == nil || (!user.IsAdmin() && order.UserID != user.ID) {
		return nil, model.ErrOrderNotFound
	}

	return order, nil
}

// List retrieves the caller's orders; admins see every order.
func (s *orderService) List(ctx context.Context, user *model.User) ([]model.Order, error) {
	if user == nil {
		return nil, model.ErrUnauthenticated
	}

	if user.IsAdmin() {
		return s.orderRepo.ListAll(ctx)
	}
	return s.orderRepo.ListByUser(ctx, user.ID)
}

// ListByStatus retrieves the caller's orders in the given status.
func (s *orderService) ListByStatus(ctx context.Context, user *model.User, status model.OrderStatus) ([]model.Order, error) {
	if user == nil {
		return nil, model.ErrUnauthenticated
	}

	if !status.Valid() {
		return nil, model.NewDomainError(model.ErrCodeValidation, fmt.Sprintf("unknown order status %q", status))
	}

	if user.IsAdmin() {
		return s.orderRepo.ListByStatus(ctx, status)
	}

	orders, err := s.orderRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	filtered := orders[:0]
	for _, order := range orders {
		if order.Status == status {
			filtered = append(filtered, order)
		}
	}
	return filtered, nil
}

// UpdateStatus moves an order along the enforced status lifecycle. Admin
// only; illegal transitions are rejected and the order left untouched.
func (s *orderService) UpdateStatus(ctx context.Context, actor *model.User, id uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	if !actor.IsAdmin() {
		s.logger.Warn().Str("order_id", id.String()).Msg("non-admin attempted status update")
		return nil, model.ErrForbidden
	}

	if !status.Valid() {
		return nil, model.NewDomainError(model.ErrCodeValidation, fmt.Sprintf("unknown order status %q", status))
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	if !order.Status.CanTransitionTo(status) {
		return nil, model.NewDomainError(
			model.ErrCodeInvalidTransition,
			fmt.Sprintf("cannot move order from %s to %s", order.Status, status),
		)
	}

	// Guarded on the status we just read; a concurrent admin update makes
	// this lose cleanly rather than overwrite.
	ok, err := s.orderRepo.UpdateStatus(ctx, id, order.Status, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if !ok {
		return nil, model.NewDomainError(
			model.ErrCodeInvalidTransition,
			"order status changed concurrently, please retry",
		)
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Str("actor", actor.ID).
		Str("from", string(order.Status)).
		Str("to", string(status)).
		Msg("order status updated")

	order.Status = status
	order.UpdatedAt = time.Now()
	return order, nil
}
