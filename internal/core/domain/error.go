package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInternal = errors.New("internal error")

	// * Data errors.
	ErrDataNotFound    = errors.New("data not found")
	ErrConflictingData = errors.New("data conflicts with existing data in unique column")

	// * Communication errors.
	ErrBadRequest   = errors.New("error parsing request")
	ErrInvalidInput = errors.New("invalid input")

	// * Authority errors.
	ErrTokenCreation              = errors.New("error creating token")
	ErrExpiredToken               = errors.New("access token has expired")
	ErrInvalidToken               = errors.New("access token is invalid")
	ErrInvalidCredentials         = errors.New("invalid email or password")
	ErrEmptyAuthorizationHeader   = errors.New("authorization header is not provided")
	ErrInvalidAuthorizationHeader = errors.New("authorization header format is invalid")
	ErrInvalidAuthorizationType   = errors.New("authorization type is not supported")
	ErrForbidden                  = errors.New("access is restricted to administrators")

	// * Business errors.
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock for product")
	ErrStoreUnavailable  = errors.New("store is unavailable, try again later")
)

// ItemError reports which line item of an order failed.
type ItemError struct {
	ProductID string
	Err       error
}

func NewItemError(productID string, err error) *ItemError {
	return &ItemError{ProductID: productID, Err: err}
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err, e.ProductID)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

// IsRetryable tells whether the same request may succeed later without changes.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable) || errors.Is(err, ErrInsufficientStock)
}
