package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dviradani/amazon-backend/internal/auth"
	"github.com/dviradani/amazon-backend/internal/domain"
	"github.com/dviradani/amazon-backend/internal/store"
)

// OrderItemInput is one submitted line item. Only the product identifier is
// kept; quantity, price and any other storefront fields are dropped.
type OrderItemInput struct {
	ID int64 `json:"_id" validate:"required,gt=0"`
}

// CreateOrderInput defines the expected input for placing an order.
type CreateOrderInput struct {
	OrderItems      []OrderItemInput `json:"orderItems" validate:"required,min=1,dive"`
	ShippingAddress *json.RawMessage `json:"shippingAddress"`
	PaymentMethod   *string          `json:"paymentMethod"`
	ItemsPrice      float64          `json:"itemsPrice" validate:"gte=0"`
	ShippingPrice   float64          `json:"shippingPrice" validate:"gte=0"`
	TaxPrice        float64          `json:"taxPrice" validate:"gte=0"`
	TotalPrice      float64          `json:"totalPrice" validate:"gte=0"`
}

// CreateOrderResponse wraps the created order with a success message.
type CreateOrderResponse struct {
	Message string        `json:"message"`
	Order   *domain.Order `json:"order"`
}

// CreateOrder persists a submitted order for the authenticated user. There is
// no inventory check, no price verification against the current catalog and
// no idempotency key; resubmission creates a duplicate order.
func (h *HTTPHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	user := auth.FromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "No token provided")
		return
	}

	var input CreateOrderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	items := make([]domain.OrderItem, 0, len(input.OrderItems))
	for _, item := range input.OrderItems {
		items = append(items, domain.OrderItem{Product: item.ID})
	}

	order := &domain.Order{
		UserID:          user.ID,
		OrderItems:      items,
		ShippingAddress: input.ShippingAddress,
		PaymentMethod:   input.PaymentMethod,
		ItemsPrice:      input.ItemsPrice,
		ShippingPrice:   input.ShippingPrice,
		TaxPrice:        input.TaxPrice,
		TotalPrice:      input.TotalPrice,
	}

	createdOrder, err := h.orderStore.CreateOrder(r.Context(), order)
	if err != nil {
		// Always send an explicit server fault here; leaving the client
		// without a response on a failed submission is not acceptable.
		log.Printf("ERROR: CreateOrder store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to create order")
		return
	}

	respondWithJSON(w, http.StatusCreated, CreateOrderResponse{
		Message: "Order created",
		Order:   createdOrder,
	})
}

// GetOrderByID fetches an order by identifier. Any authenticated user may
// fetch any order; there is no ownership check.
func (h *HTTPHandler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	orderID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || orderID <= 0 {
		respondWithError(w, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	order, err := h.orderStore.GetOrderByID(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			respondWithError(w, http.StatusNotFound, "Order not found")
			return
		}
		log.Printf("ERROR: GetOrderByID store operation for ID %d failed: %v", orderID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve order")
		return
	}
	respondWithJSON(w, http.StatusOK, order)
}
