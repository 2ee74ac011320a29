package model

import "errors"

// ErrorKind classifies a domain error so the HTTP layer can map it to a
// status code without inspecting message text.
type ErrorKind string

const (
	KindValidation   ErrorKind = "VALIDATION"
	KindUnauthorized ErrorKind = "UNAUTHORIZED"
	KindForbidden    ErrorKind = "FORBIDDEN"
	KindNotFound     ErrorKind = "NOT_FOUND"
	KindInvalidState ErrorKind = "INVALID_STATE"
)

// DomainError is a business-rule failure with a client-safe message.
type DomainError struct {
	Kind    ErrorKind
	Message string
	Field   string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error, optionally naming the
// offending input field.
func NewValidationError(message, field string) *DomainError {
	return &DomainError{Kind: KindValidation, Message: message, Field: field}
}

// NewNotFoundError creates a not-found error.
func NewNotFoundError(message string) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: message}
}

// NewInvalidStateError creates an error for an action not permitted in the
// entity's current lifecycle state.
func NewInvalidStateError(message string) *DomainError {
	return &DomainError{Kind: KindInvalidState, Message: message}
}

// Common domain errors
var (
	ErrUnauthorized       = &DomainError{Kind: KindUnauthorized, Message: "Must be logged in"}
	ErrForbidden          = &DomainError{Kind: KindForbidden, Message: "Operation not permitted"}
	ErrInvalidCredentials = &DomainError{Kind: KindUnauthorized, Message: "Invalid credentials"}
	ErrCartNotFound       = &DomainError{Kind: KindNotFound, Message: "Cart not found"}
	ErrCartItemNotFound   = &DomainError{Kind: KindNotFound, Message: "Cart item not found"}
	ErrCartEmpty          = &DomainError{Kind: KindInvalidState, Message: "Cart is empty"}
	ErrOrderNotFound      = &DomainError{Kind: KindNotFound, Message: "Order not found"}
	ErrProductNotFound    = &DomainError{Kind: KindNotFound, Message: "Product not found"}
	ErrVariantNotFound    = &DomainError{Kind: KindNotFound, Message: "Product variant not found"}
	ErrUserNotFound       = &DomainError{Kind: KindNotFound, Message: "User not found"}
	ErrProductInactive    = NewValidationError("Product is not available for purchase", "variantId")
	ErrInvalidQuantity    = NewValidationError("Quantity must be at least 1", "quantity")
	ErrEmailInUse         = NewValidationError("Email already in use", "email")
)

// KindOf extracts the error kind from err, or "" when err is not a domain
// error.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
