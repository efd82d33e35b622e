// Package domain defines domain-level errors for the stocks feature.
package domain

import "errors"

var (
	// ErrStockNotFound indicates that no stock matches the given id or symbol.
	ErrStockNotFound = errors.New("stock not found")

	// ErrSymbolAlreadyExists indicates that the symbol is already listed.
	ErrSymbolAlreadyExists = errors.New("stock symbol already exists")

	// ErrValidation wraps malformed stock fields.
	ErrValidation = errors.New("validation failed")
)
