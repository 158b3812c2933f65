package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// statusTransitions is the enforced lifecycle graph: the fulfilment states
// advance monotonically, and cancelled is reachable from any non-terminal state.
var statusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// Terminal reports whether no further transitions are allowed from s.
func (s OrderStatus) Terminal() bool {
	return len(statusTransitions[s]) == 0 && s.Valid()
}

// CanTransitionTo reports whether moving from s to next is a legal transition.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ShippingDetails holds the delivery address captured at checkout.
type ShippingDetails struct {
	Name     string `json:"name" db:"shipping_name"`
	Address  string `json:"address" db:"shipping_address"`
	City     string `json:"city" db:"shipping_city"`
	Postcode string `json:"postcode" db:"shipping_postcode"`
	Country  string `json:"country" db:"shipping_country"`
}

// Validate checks that all required shipping fields are present.
func (d *ShippingDetails) Validate() error {
	if d.Name == "" || d.Address == "" || d.City == "" || d.Postcode == "" || d.Country == "" {
		return NewDomainError(ErrCodeValidation, "all shipping fields are required")
	}
	return nil
}

// Order represents a placed order. Items is a frozen snapshot of the cart at
// placement time; later product edits never change it.
type Order struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	UserID    string          `json:"userId" db:"user_id"`
	UserEmail string          `json:"userEmail" db:"user_email"`
	UserName  string          `json:"userName" db:"user_name"`
	Status    OrderStatus     `json:"status" db:"status"`
	Shipping  ShippingDetails `json:"shipping"`
	Items     []OrderItem     `json:"items"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time       `json:"updatedAt" db:"updated_at"`
}

// Total returns the order value recomputed from the snapshot items.
func (o *Order) Total() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// OrderItem is one snapshotted line of an order, denormalised from the
// product at placement time.
type OrderItem struct {
	ID        uuid.UUID `json:"-" db:"id"`
	OrderID   uuid.UUID `json:"-" db:"order_id"`
	ProductID string    `json:"productId" db:"product_id"`
	Name      string    `json:"name" db:"name"`
	Price     float64   `json:"price" db:"price"`
	ImageURL  string    `json:"imageUrl" db:"image_url"`
	Quantity  int       `json:"quantity" db:"quantity"`
}

// OrderRequest represents the request payload for placing an order.
type OrderRequest struct {
	Shipping ShippingDetails `json:"shipping"`
}

// StatusUpdateRequest represents the admin payload for changing an order's status.
type StatusUpdateRequest struct {
	Status OrderStatus `json:"status"`
}
