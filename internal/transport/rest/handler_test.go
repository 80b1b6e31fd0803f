package rest

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shoply/cartd/internal/cart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeService records the calls the handlers make and plays back a canned
// cart. Every mutating operation returns the same snapshot: the handlers must
// not inspect it, only relay it.
type fakeService struct {
	items []cart.Item

	addedID   int64
	removedID int64
	updatedID int64
	amount    int
	cleared   bool
}

func (f *fakeService) Items(_ context.Context) []cart.Item { return f.items }

func (f *fakeService) AddProduct(_ context.Context, id int64) []cart.Item {
	f.addedID = id
	return f.items
}

func (f *fakeService) RemoveProduct(_ context.Context, id int64) []cart.Item {
	f.removedID = id
	return f.items
}

func (f *fakeService) UpdateProductAmount(_ context.Context, id int64, amount int) []cart.Item {
	f.updatedID = id
	f.amount = amount
	return f.items
}

func (f *fakeService) Clear(_ context.Context) []cart.Item {
	f.cleared = true
	return f.items
}

func newTestRouter(svc *fakeService) *chi.Mux {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(svc, logger)
	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func doRequest(t *testing.T, router http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func Test_GetCart(t *testing.T) {
	svc := &fakeService{items: []cart.Item{{ID: 1, Amount: 2, Meta: cart.Metadata{"title": "Sneakers"}}}}
	router := newTestRouter(svc)

	rr := doRequest(t, router, http.MethodGet, "/api/v1/cart", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{"id": 1, "amount": 2, "metadata": {"title": "Sneakers"}}]`, rr.Body.String())
}

func Test_AddProduct(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantID     int64
	}{
		{
			name:       "Success - valid id responds with resulting cart",
			target:     "/api/v1/cart/items/42",
			wantStatus: http.StatusOK,
			wantID:     42,
		},
		{
			name:       "Error - non-numeric id",
			target:     "/api/v1/cart/items/abc",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Error - non-positive id",
			target:     "/api/v1/cart/items/0",
			wantStatus: http.StatusBadRequest,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeService{items: []cart.Item{{ID: 42, Amount: 1}}}
			router := newTestRouter(svc)

			rr := doRequest(t, router, http.MethodPost, tc.target, nil)

			require.Equal(t, tc.wantStatus, rr.Code)
			assert.Equal(t, tc.wantID, svc.addedID)
			if tc.wantStatus == http.StatusOK {
				assert.JSONEq(t, `[{"id": 42, "amount": 1}]`, rr.Body.String())
			}
		})
	}
}

func Test_RemoveProduct(t *testing.T) {
	svc := &fakeService{items: []cart.Item{}}
	router := newTestRouter(svc)

	rr := doRequest(t, router, http.MethodDelete, "/api/v1/cart/items/7", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(7), svc.removedID)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func Test_UpdateAmount(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		body       string
		wantStatus int
		wantID     int64
		wantAmount int
	}{
		{
			name:       "Success - valid amount",
			target:     "/api/v1/cart/items/5",
			body:       `{"amount": 3}`,
			wantStatus: http.StatusOK,
			wantID:     5,
			wantAmount: 3,
		},
		{
			name:       "Success - zero amount passes through to the service",
			target:     "/api/v1/cart/items/5",
			body:       `{"amount": 0}`,
			wantStatus: http.StatusOK,
			wantID:     5,
			wantAmount: 0,
		},
		{
			name:       "Error - amount missing",
			target:     "/api/v1/cart/items/5",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Error - malformed body",
			target:     "/api/v1/cart/items/5",
			body:       `{"amount": `,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Error - invalid id",
			target:     "/api/v1/cart/items/-1",
			body:       `{"amount": 3}`,
			wantStatus: http.StatusBadRequest,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeService{items: []cart.Item{{ID: 5, Amount: 3}}}
			router := newTestRouter(svc)

			rr := doRequest(t, router, http.MethodPut, tc.target, []byte(tc.body))

			require.Equal(t, tc.wantStatus, rr.Code)
			assert.Equal(t, tc.wantID, svc.updatedID)
			if tc.wantStatus == http.StatusOK {
				assert.Equal(t, tc.wantAmount, svc.amount)
			}
		})
	}
}

func Test_UpdateAmount_MissingAmountReportsValidation(t *testing.T) {
	svc := &fakeService{}
	router := newTestRouter(svc)

	rr := doRequest(t, router, http.MethodPut, "/api/v1/cart/items/5", []byte(`{}`))

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"validation_errors": {"Amount": "failed on rule: required"}}`, rr.Body.String())
}

func Test_ClearCart(t *testing.T) {
	svc := &fakeService{items: []cart.Item{}}
	router := newTestRouter(svc)

	rr := doRequest(t, router, http.MethodDelete, "/api/v1/cart", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, svc.cleared)
}

func Test_HealthCheck(t *testing.T) {
	router := newTestRouter(&fakeService{})

	rr := doRequest(t, router, http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
}
