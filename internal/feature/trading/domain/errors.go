// Package domain defines the trade side and domain-level errors for the trading feature.
package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is wrapped by every input error that is rejected before the store is touched.
var ErrValidation = errors.New("validation failed")

var (
	ErrInvalidQuantity = fmt.Errorf("%w: quantity must be a positive integer", ErrValidation)
	ErrInvalidPrice    = fmt.Errorf("%w: price must be a non-negative amount", ErrValidation)
	ErrInvalidSide     = fmt.Errorf("%w: transaction_type must be BUY or SELL", ErrValidation)
	// ErrSideMismatch is returned when the body's transaction_type disagrees with the endpoint.
	ErrSideMismatch = fmt.Errorf("%w: transaction_type does not match endpoint", ErrValidation)
	// ErrPositionTooLarge は保有数量が int64 を超える買いに返されます。
	ErrPositionTooLarge = fmt.Errorf("%w: resulting holding quantity is too large", ErrValidation)
)

// Settlement rule violations.
var (
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInsufficientShares = errors.New("insufficient shares")
	ErrNoPosition         = errors.New("no holding for this stock")
)

var (
	// ErrHoldingNotFound is returned by the store when (user, stock) has no holding.
	ErrHoldingNotFound = errors.New("holding not found")
	// ErrAccountNotFound is returned when the settling user no longer exists.
	ErrAccountNotFound = errors.New("account not found")
)
