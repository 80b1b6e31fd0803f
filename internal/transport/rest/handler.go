// Package rest provides HTTP handlers for cart operations.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shoply/cartd/internal/service"
	"github.com/shoply/cartd/pkg/web"
)

type Handler struct {
	service  service.CartService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a new instance of the cart API with the provided service.
func NewHandler(service service.CartService, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the cart service.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Get("/", h.GetCart)
		r.Delete("/", h.ClearCart)

		r.Route("/items/{id}", func(r chi.Router) {
			r.Post("/", h.AddProduct)
			r.Put("/", h.UpdateAmount)
			r.Delete("/", h.RemoveProduct)
		})
	})
	r.Get("/healthz", h.HealthCheck)
}

// UpdateAmountDto carries the desired amount for a cart line. Amount is a
// pointer so presence is validated while zero and negative values pass
// through: the service treats those as a guarded no-op.
type UpdateAmountDto struct {
	Amount *int `json:"amount" validate:"required"`
}

// GetCart returns the current cart.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	items := h.service.Items(r.Context())
	web.RespondJSON(w, mLogger, http.StatusOK, items)
}

// AddProduct adds one unit of the product to the cart. Operation failures
// are absorbed by the service and reported through the notification sink, so
// the response is always the resulting cart.
func (h *Handler) AddProduct(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to add product", "product_id", id)
	items := h.service.AddProduct(r.Context(), id)
	web.RespondJSON(w, mLogger, http.StatusOK, items)
}

// RemoveProduct removes the product's line from the cart.
func (h *Handler) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to remove product", "product_id", id)
	items := h.service.RemoveProduct(r.Context(), id)
	web.RespondJSON(w, mLogger, http.StatusOK, items)
}

// UpdateAmount sets the desired amount for a product in the cart.
func (h *Handler) UpdateAmount(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	var dto UpdateAmountDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(dto); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			errorResponse := make(map[string]string)
			for _, fieldErr := range validationErrors {
				errorResponse[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
			}
			mLogger.WarnContext(r.Context(), "Validation errors occurred", "errors", errorResponse)
			web.RespondJSON(w, mLogger, http.StatusBadRequest, map[string]any{"validation_errors": errorResponse})
			return
		}
		mLogger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to update amount", "product_id", id, "amount", *dto.Amount)
	items := h.service.UpdateProductAmount(r.Context(), id, *dto.Amount)
	web.RespondJSON(w, mLogger, http.StatusOK, items)
}

// ClearCart empties the cart.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	mLogger.DebugContext(r.Context(), "Received request to clear cart")
	items := h.service.Clear(r.Context())
	web.RespondJSON(w, mLogger, http.StatusOK, items)
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID, _ := web.GetRequestID(r.Context())
	return h.logger.With("request_id", reqID)
}
