package products

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shoply/cartd/internal/cart"
	carterrors "github.com/shoply/cartd/internal/errors"
	"github.com/shoply/cartd/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	cfg := config.ClientConfig{BaseURL: baseURL, Timeout: 2 * time.Second}
	res := config.ResilienceConfig{}
	res.Retry.MaxAttempts = 0 // no retries, the tests count requests
	res.Retry.InitialBackoff = time.Millisecond
	res.CircuitBreaker.ConsecutiveFailures = 3
	res.CircuitBreaker.ErrorRatePercent = 100
	res.CircuitBreaker.OpenTimeout = time.Minute

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient(cfg, res, logger)
}

func Test_Client_Stock(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/stock/1":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id": 1, "amount": 5}`))
		case "/stock/99":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer ts.Close()
	client := newTestClient(t, ts.URL)

	t.Run("Success - stock snapshot returned", func(t *testing.T) {
		info, err := client.Stock(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, &StockInfo{ID: 1, Amount: 5}, info)
	})

	t.Run("Error - missing product", func(t *testing.T) {
		_, err := client.Stock(context.Background(), 99)

		assert.ErrorIs(t, err, carterrors.ErrProductNotFound)
	})

	t.Run("Error - server failure maps to stock lookup error", func(t *testing.T) {
		_, err := client.Stock(context.Background(), 2)

		assert.ErrorIs(t, err, carterrors.ErrStockLookup)
	})
}

func Test_Client_Product(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products/1":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id": 1, "title": "Sneakers", "price": 179.9, "image": "sneakers.jpg", "amount": 3}`))
		case "/products/99":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer ts.Close()
	client := newTestClient(t, ts.URL)

	t.Run("Success - metadata is opaque, id and amount stripped", func(t *testing.T) {
		meta, err := client.Product(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, cart.Metadata{"title": "Sneakers", "price": 179.9, "image": "sneakers.jpg"}, meta)
	})

	t.Run("Error - missing product", func(t *testing.T) {
		_, err := client.Product(context.Background(), 99)

		assert.ErrorIs(t, err, carterrors.ErrProductNotFound)
	})

	t.Run("Error - server failure maps to product lookup error", func(t *testing.T) {
		_, err := client.Product(context.Background(), 2)

		assert.ErrorIs(t, err, carterrors.ErrProductLookup)
	})
}

// Consecutive system failures must open the breaker so later calls fail
// without reaching the server. Not-found responses must not trip it.
func Test_Client_CircuitBreaker(t *testing.T) {
	var hits atomic.Int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()
	client := newTestClient(t, ts.URL)

	for i := 0; i < 10; i++ {
		_, err := client.Stock(context.Background(), 1)
		require.Error(t, err)
	}

	// the breaker opened after the configured consecutive failures,
	// so not every call reached the server
	assert.Less(t, hits.Load(), int64(10))
}

func Test_Client_NotFoundDoesNotTripBreaker(t *testing.T) {
	var hits atomic.Int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()
	client := newTestClient(t, ts.URL)

	for i := 0; i < 10; i++ {
		_, err := client.Stock(context.Background(), 1)
		assert.ErrorIs(t, err, carterrors.ErrProductNotFound)
	}

	assert.Equal(t, int64(10), hits.Load())
}
