package model

import "time"

// WishlistItem is a saved product reference with a denormalised snapshot of
// the product taken at add time. It carries no quantity or stock constraint.
type WishlistItem struct {
	UserID    string    `json:"-" db:"user_id"`
	ProductID string    `json:"productId" db:"product_id"`
	Name      string    `json:"name" db:"name"`
	Price     float64   `json:"price" db:"price"`
	Category  string    `json:"category" db:"category"`
	ImageURL  string    `json:"imageUrl" db:"image_url"`
	AddedAt   time.Time `json:"addedAt" db:"added_at"`
}

// AddToWishlistRequest represents the payload for saving a product.
type AddToWishlistRequest struct {
	ProductID string `json:"productId"`
}
