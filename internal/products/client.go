// Package products provides the clients for the remote stock and catalog
// services.
package products

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/shoply/cartd/internal/cart"
	carterrors "github.com/shoply/cartd/internal/errors"
	"github.com/shoply/cartd/pkg/config"
	"github.com/shoply/cartd/pkg/httpclient"
	"github.com/sony/gobreaker/v2"
)

// StockInfo is a read-only snapshot of the units available for a product.
// It is fetched fresh on every mutating cart operation and never cached.
type StockInfo struct {
	ID     int64 `json:"id"`
	Amount int   `json:"amount"`
}

// Gateway defines the remote product lookups the cart depends on.
type Gateway interface {
	// Stock returns the current available quantity for a product.
	// Returns ErrProductNotFound if the product does not exist.
	Stock(ctx context.Context, id int64) (*StockInfo, error)

	// Product returns the catalog metadata of a product, excluding any
	// quantity information.
	// Returns ErrProductNotFound if the product does not exist.
	Product(ctx context.Context, id int64) (cart.Metadata, error)
}

// Client implements Gateway against the products REST API.
type Client struct {
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker[*resty.Response]
	logger  *slog.Logger
}

// NewClient creates a products client with the shared retry and
// circuit-breaker policy. A missing product is a business error and does not
// trip the breaker.
func NewClient(cfg config.ClientConfig, res config.ResilienceConfig, logger *slog.Logger) *Client {
	isSuccessful := func(err error) bool {
		return err == nil || errors.Is(err, carterrors.ErrProductNotFound)
	}
	return &Client{
		http:    httpclient.New(cfg, res.Retry),
		breaker: httpclient.NewBreaker("products-api", res.CircuitBreaker, isSuccessful),
		logger:  logger.With("component", "products"),
	}
}

// Stock fetches /stock/{id}.
func (c *Client) Stock(ctx context.Context, id int64) (*StockInfo, error) {
	resp, err := c.get(ctx, fmt.Sprintf("/stock/%d", id))
	if err != nil {
		if errors.Is(err, carterrors.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%v: %w", err, carterrors.ErrStockLookup)
	}

	var info StockInfo
	if err := json.Unmarshal(resp.Body(), &info); err != nil {
		return nil, fmt.Errorf("malformed stock response for product %d: %v: %w", id, err, carterrors.ErrStockLookup)
	}
	return &info, nil
}

// Product fetches /products/{id} and returns the body as opaque metadata.
// The id and amount keys are stripped: the cart keeps the ID itself and the
// catalog must never carry a quantity.
func (c *Client) Product(ctx context.Context, id int64) (cart.Metadata, error) {
	resp, err := c.get(ctx, fmt.Sprintf("/products/%d", id))
	if err != nil {
		if errors.Is(err, carterrors.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%v: %w", err, carterrors.ErrProductLookup)
	}

	var meta cart.Metadata
	if err := json.Unmarshal(resp.Body(), &meta); err != nil {
		return nil, fmt.Errorf("malformed product response for product %d: %v: %w", id, err, carterrors.ErrProductLookup)
	}
	delete(meta, "id")
	delete(meta, "amount")
	return meta, nil
}

func (c *Client) get(ctx context.Context, path string) (*resty.Response, error) {
	return c.breaker.Execute(func() (*resty.Response, error) {
		resp, err := c.http.R().SetContext(ctx).Get(path)
		if err != nil {
			return nil, err
		}
		switch {
		case resp.StatusCode() == http.StatusNotFound:
			return nil, fmt.Errorf("%s: %w", path, carterrors.ErrProductNotFound)
		case resp.StatusCode() >= http.StatusBadRequest:
			return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode(), path)
		}
		return resp, nil
	})
}
