package model

import "time"

// Product represents an item in the storefront catalogue. Stock is the
// single quantity that cart lines and order placement must never exceed.
type Product struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	Stock       int       `json:"stock" db:"stock"`
	Category    string    `json:"category" db:"category"`
	ImageURL    string    `json:"imageUrl" db:"image_url"`
	Featured    bool      `json:"featured" db:"featured"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// ProductRequest represents the payload for creating or updating a product.
type ProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"imageUrl"`
	Featured    bool    `json:"featured"`
}

// Validate checks the request fields that affect inventory consistency.
func (r *ProductRequest) Validate() error {
	if r.Name == "" {
		return NewDomainError(ErrCodeValidation, "product name is required")
	}
	if r.Price < 0 {
		return NewDomainError(ErrCodeValidation, "product price must not be negative")
	}
	if r.Stock < 0 {
		return NewDomainError(ErrCodeValidation, "product stock must not be negative")
	}
	return nil
}
