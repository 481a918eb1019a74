package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/mohdnadeem3849/kubecart/internal/domain"
	"github.com/mohdnadeem3849/kubecart/internal/service"
)

type CheckoutService interface {
	Checkout(ctx context.Context, userID uuid.UUID, notes string) (*domain.Order, error)
}

type CheckoutHandler struct {
	checkout CheckoutService
}

func NewCheckoutHandler(checkout CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

type CheckoutRequestDTO struct {
	Notes string `json:"notes"`
}

type ProductUnavailableResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	ProductID int64  `json:"product_id"`
}

func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req CheckoutRequestDTO
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
			return
		}
	}

	order, err := h.checkout.Checkout(r.Context(), userID, req.Notes)
	if err != nil {
		var unavailable *service.ProductUnavailableError
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			respondError(w, http.StatusBadRequest, "empty_cart", "cart is empty, add items before checkout")
		case errors.As(err, &unavailable):
			respondJSON(w, http.StatusConflict, ProductUnavailableResponse{
				Error:     fmt.Sprintf("product %d is no longer available", unavailable.ProductID),
				Code:      "product_unavailable",
				ProductID: unavailable.ProductID,
			})
		default:
			respondError(w, http.StatusInternalServerError, "internal_error", "checkout failed, cart is unchanged; try again")
		}
		return
	}

	respondJSON(w, http.StatusOK, order)
}
