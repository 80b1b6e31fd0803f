// Package cart defines the cart domain types and the copy-on-write helpers
// used to mutate a cart as a whole value.
package cart

import "maps"

// Metadata holds the catalog fields of a product. The cart never interprets
// them; they are passed through unchanged from the catalog service.
type Metadata map[string]any

// Item is one product line in the cart. An item present in a cart always has
// Amount >= 1; a line that would reach zero is removed instead.
type Item struct {
	ID     int64    `json:"id"`
	Amount int      `json:"amount"`
	Meta   Metadata `json:"metadata,omitempty"`
}

// IndexOf returns the position of the item with the given product ID,
// or -1 when the cart does not contain it.
func IndexOf(items []Item, id int64) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the cart. Metadata maps are copied so the
// result shares no mutable state with the input.
func Clone(items []Item) []Item {
	if items == nil {
		return nil
	}
	cloned := make([]Item, len(items))
	for i, it := range items {
		it.Meta = maps.Clone(it.Meta)
		cloned[i] = it
	}
	return cloned
}

// WithAmount returns a copy of the cart with the amount of one item replaced.
// The input cart is left untouched.
func WithAmount(items []Item, id int64, amount int) []Item {
	next := Clone(items)
	if i := IndexOf(next, id); i >= 0 {
		next[i].Amount = amount
	}
	return next
}

// Without returns a copy of the cart with the item removed.
func Without(items []Item, id int64) []Item {
	next := make([]Item, 0, len(items))
	for _, it := range items {
		if it.ID == id {
			continue
		}
		it.Meta = maps.Clone(it.Meta)
		next = append(next, it)
	}
	return next
}
