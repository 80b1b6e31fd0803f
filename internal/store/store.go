// Package store provides the persistent key-value storage of the cart.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shoply/cartd/internal/cart"
	carterrors "github.com/shoply/cartd/internal/errors"
)

// cartKey is the fixed, namespaced key the serialized cart lives under.
// Every mutation rewrites the full value; there is no delta format.
const cartKey = "cartd:cart"

// CartStore is an interface for cart persistence.
// It abstracts the underlying key-value store, allowing for different
// implementations (e.g., in-memory, Redis).
type CartStore interface {
	// Load reads the persisted cart. An absent key yields (nil, nil).
	Load(ctx context.Context) ([]cart.Item, error)

	// Save overwrites the persisted cart with the given items as a single
	// atomic write of the full value.
	Save(ctx context.Context, items []cart.Item) error
}

func encodeItems(items []cart.Item) ([]byte, error) {
	if items == nil {
		items = []cart.Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, carterrors.ErrCartSave)
	}
	return data, nil
}

func decodeItems(data []byte) ([]cart.Item, error) {
	var items []cart.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%v: %w", err, carterrors.ErrCartLoad)
	}
	return items, nil
}
