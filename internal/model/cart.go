package model

import "time"

// CartItem is one (product, quantity) pairing owned by a single user.
// Quantity is clamped to the product's live stock on every mutation.
type CartItem struct {
	UserID    string    `json:"-" db:"user_id"`
	ProductID string    `json:"productId" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	AddedAt   time.Time `json:"addedAt" db:"added_at"`
}

// CartLine is a cart item joined with the live product record. Price and
// stock are always read fresh from the catalogue, never cached on the line.
type CartLine struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"imageUrl"`
	Stock     int     `json:"stock"`
	Quantity  int     `json:"quantity"`
}

// Subtotal returns the line value at the current live price.
func (l CartLine) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

// Cart is a user's reconciled cart with totals recomputed from line state.
type Cart struct {
	Items []CartLine `json:"items"`
	Total float64    `json:"total"`
	Count int        `json:"count"`
}

// AddToCartRequest represents the payload for adding an item to the cart.
type AddToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// UpdateQuantityRequest represents the payload for changing a line's quantity.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}
