// Package errors provides custom error types for cart operations.
package errors

import "errors"

var ErrOutOfStock = errors.New("requested amount exceeds available stock")
var ErrItemNotFound = errors.New("item not found in cart")
var ErrProductNotFound = errors.New("product not found")

var ErrStockLookup = errors.New("failed to fetch stock")
var ErrProductLookup = errors.New("failed to fetch product")

var ErrCartLoad = errors.New("failed to load cart")
var ErrCartSave = errors.New("failed to save cart")
