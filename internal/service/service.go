// Package service provides the implementation of the cart business logic.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shoply/cartd/internal/cart"
	carterrors "github.com/shoply/cartd/internal/errors"
	"github.com/shoply/cartd/internal/notify"
	"github.com/shoply/cartd/internal/products"
	"github.com/shoply/cartd/internal/store"
)

// User-facing messages emitted through the notification sink. Callers never
// receive errors from cart operations; these messages are the only visible
// failure signal.
const (
	MsgOutOfStock   = "requested quantity exceeds stock"
	MsgAddFailed    = "failed to add product"
	MsgRemoveFailed = "failed to remove product"
	MsgUpdateFailed = "failed to update quantity"
	MsgClearFailed  = "failed to clear cart"
)

// CartService defines the operations on the cart. Every operation returns
// the resulting cart; failures are absorbed and reported through the
// notification sink, leaving the cart at its pre-operation value.
type CartService interface {
	// Items returns a snapshot of the current cart.
	Items(ctx context.Context) []cart.Item

	// AddProduct adds one unit of the product to the cart, appending a new
	// line with the catalog metadata when the product is not in the cart yet.
	AddProduct(ctx context.Context, productID int64) []cart.Item

	// RemoveProduct removes the product's line from the cart. Removing a
	// product that is not in the cart is an error condition.
	RemoveProduct(ctx context.Context, productID int64) []cart.Item

	// UpdateProductAmount sets the desired amount of a product already in
	// the cart. Amounts <= 0 are ignored.
	UpdateProductAmount(ctx context.Context, productID int64, amount int) []cart.Item

	// Clear empties the cart.
	Clear(ctx context.Context) []cart.Item
}

// Service implements CartService. It is the single writer of both the
// in-memory cart and the persisted value: a mutation is first written to the
// store and only installed in memory when the write succeeds, so the two
// never diverge.
type Service struct {
	mu       sync.Mutex
	items    []cart.Item
	store    store.CartStore
	products products.Gateway
	notifier notify.Notifier
	logger   *slog.Logger
}

// NewService creates the cart service and loads the persisted cart. An
// absent key yields an empty cart; a storage failure is fatal rather than
// silently degraded.
func NewService(ctx context.Context, cartStore store.CartStore, gateway products.Gateway, notifier notify.Notifier, logger *slog.Logger) (*Service, error) {
	items, err := cartStore.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load persisted cart: %w", err)
	}
	return &Service{
		items:    items,
		store:    cartStore,
		products: gateway,
		notifier: notifier,
		logger:   logger.With("component", "cart"),
	}, nil
}

// Items returns a snapshot of the current cart.
func (s *Service) Items(_ context.Context) []cart.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// AddProduct adds one unit of the product to the cart.
func (s *Service) AddProduct(ctx context.Context, productID int64) []cart.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.addProduct(ctx, productID)
	if err != nil {
		s.report(ctx, "add", productID, err, MsgAddFailed)
		return s.snapshot()
	}
	s.items = next
	return s.snapshot()
}

// addProduct computes and persists the new cart, without touching s.items.
func (s *Service) addProduct(ctx context.Context, productID int64) ([]cart.Item, error) {
	current := 0
	idx := cart.IndexOf(s.items, productID)
	if idx >= 0 {
		current = s.items[idx].Amount
	}
	desired := current + 1

	stock, err := s.products.Stock(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("stock lookup for product %d: %w", productID, err)
	}
	if desired > stock.Amount {
		return nil, fmt.Errorf("product %d: desired %d, available %d: %w",
			productID, desired, stock.Amount, carterrors.ErrOutOfStock)
	}

	var next []cart.Item
	if idx >= 0 {
		next = cart.WithAmount(s.items, productID, desired)
	} else {
		meta, err := s.products.Product(ctx, productID)
		if err != nil {
			return nil, fmt.Errorf("catalog lookup for product %d: %w", productID, err)
		}
		next = append(cart.Clone(s.items), cart.Item{ID: productID, Amount: 1, Meta: meta})
	}

	if err := s.store.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("persist cart after adding product %d: %w", productID, err)
	}
	return next, nil
}

// RemoveProduct removes the product's line from the cart.
func (s *Service) RemoveProduct(ctx context.Context, productID int64) []cart.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.removeProduct(ctx, productID)
	if err != nil {
		s.report(ctx, "remove", productID, err, MsgRemoveFailed)
		return s.snapshot()
	}
	s.items = next
	return s.snapshot()
}

func (s *Service) removeProduct(ctx context.Context, productID int64) ([]cart.Item, error) {
	if cart.IndexOf(s.items, productID) < 0 {
		return nil, fmt.Errorf("product %d: %w", productID, carterrors.ErrItemNotFound)
	}

	next := cart.Without(s.items, productID)
	if err := s.store.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("persist cart after removing product %d: %w", productID, err)
	}
	return next, nil
}

// UpdateProductAmount sets the desired amount of a product already in the
// cart. Amounts <= 0 are a guarded no-op: decrementing below one is ignored
// rather than reported.
func (s *Service) UpdateProductAmount(ctx context.Context, productID int64, amount int) []cart.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	if amount <= 0 {
		return s.snapshot()
	}

	next, err := s.updateProductAmount(ctx, productID, amount)
	if err != nil {
		s.report(ctx, "update", productID, err, MsgUpdateFailed)
		return s.snapshot()
	}
	s.items = next
	return s.snapshot()
}

func (s *Service) updateProductAmount(ctx context.Context, productID int64, amount int) ([]cart.Item, error) {
	stock, err := s.products.Stock(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("stock lookup for product %d: %w", productID, err)
	}
	if amount > stock.Amount {
		return nil, fmt.Errorf("product %d: desired %d, available %d: %w",
			productID, amount, stock.Amount, carterrors.ErrOutOfStock)
	}

	if cart.IndexOf(s.items, productID) < 0 {
		return nil, fmt.Errorf("product %d: %w", productID, carterrors.ErrItemNotFound)
	}

	next := cart.WithAmount(s.items, productID, amount)
	if err := s.store.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("persist cart after updating product %d: %w", productID, err)
	}
	return next, nil
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context) []cart.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := []cart.Item{}
	if err := s.store.Save(ctx, next); err != nil {
		s.report(ctx, "clear", 0, fmt.Errorf("persist empty cart: %w", err), MsgClearFailed)
		return s.snapshot()
	}
	s.items = next
	return s.snapshot()
}

// snapshot returns a copy of the current items; callers must hold s.mu.
// It never returns nil so the cart always serializes as an array.
func (s *Service) snapshot() []cart.Item {
	if s.items == nil {
		return []cart.Item{}
	}
	return cart.Clone(s.items)
}

// report collapses an internal error into a single user-facing message and
// fires it through the notification sink.
func (s *Service) report(ctx context.Context, op string, productID int64, err error, fallback string) {
	message := fallback
	if errors.Is(err, carterrors.ErrOutOfStock) {
		message = MsgOutOfStock
		s.logger.WarnContext(ctx, "Cart operation rejected", "op", op, "product_id", productID, "error", err)
	} else {
		s.logger.ErrorContext(ctx, "Cart operation failed", "op", op, "product_id", productID, "error", err)
	}
	s.notifier.Error(ctx, message)
}
