package model

import "fmt"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON       = "INVALID_JSON"
	ErrCodeValidation        = "VALIDATION_FAILED"
	ErrCodeUnauthenticated   = "UNAUTHENTICATED"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeProductNotFound   = "PRODUCT_NOT_FOUND"
	ErrCodeOrderNotFound     = "ORDER_NOT_FOUND"
	ErrCodeOutOfStock        = "OUT_OF_STOCK"
	ErrCodeInsufficientStock = "INSUFFICIENT_STOCK"
	ErrCodeEmptyCart         = "EMPTY_CART"
	ErrCodeInvalidTransition = "INVALID_STATUS_TRANSITION"
	ErrCodeDuplicateRequest  = "DUPLICATE_REQUEST"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewInsufficientStock creates an insufficient-stock error naming the product
// whose conditional decrement failed.
func NewInsufficientStock(productID string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInsufficientStock,
		Message: fmt.Sprintf("insufficient stock for product %s", productID),
	}
}

// Common domain errors
var (
	ErrUnauthenticated = NewDomainError(ErrCodeUnauthenticated, "Please log in to continue")
	ErrForbidden       = NewDomainError(ErrCodeForbidden, "Administrator access required")
	ErrProductNotFound = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrOrderNotFound   = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrOutOfStock      = NewDomainError(ErrCodeOutOfStock, "This item is out of stock")
	ErrEmptyCart       = NewDomainError(ErrCodeEmptyCart, "Cannot place an order with an empty cart")
	ErrDuplicateOrder  = NewDomainError(ErrCodeDuplicateRequest, "This order has already been submitted")
)
