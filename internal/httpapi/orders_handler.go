package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mohdnadeem3849/kubecart/internal/domain"
	"github.com/mohdnadeem3849/kubecart/internal/repository"
	"github.com/mohdnadeem3849/kubecart/internal/service"
)

type OrdersService interface {
	List(ctx context.Context, userID uuid.UUID) ([]domain.Order, error)
	Get(ctx context.Context, userID, orderID uuid.UUID) (*domain.Order, []domain.OrderItem, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (bool, error)
}

type OrdersHandler struct {
	orders OrdersService
}

func NewOrdersHandler(orders OrdersService) *OrdersHandler {
	return &OrdersHandler{orders: orders}
}

type OrderDetailsResponse struct {
	Order *domain.Order      `json:"order"`
	Items []domain.OrderItem `json:"items"`
}

type UpdateStatusRequestDTO struct {
	Status string `json:"status"`
}

func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	orders, err := h.orders.List(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list orders")
		return
	}

	if orders == nil {
		orders = []domain.Order{}
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "order_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order_id must be a UUID")
		return
	}

	order, items, err := h.orders.Get(r.Context(), userID, orderID)
	if errors.Is(err, repository.ErrOrderNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "order not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load order")
		return
	}

	if items == nil {
		items = []domain.OrderItem{}
	}
	respondJSON(w, http.StatusOK, OrderDetailsResponse{Order: order, Items: items})
}

// UpdateStatus is mounted behind the admin gate.
func (h *OrdersHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "order_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order_id must be a UUID")
		return
	}

	var req UpdateStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	changed, err := h.orders.UpdateStatus(r.Context(), orderID, req.Status)
	if errors.Is(err, service.ErrInvalidStatus) {
		respondError(w, http.StatusBadRequest, "invalid_status",
			"status must be one of: Pending, Paid, Shipped, Delivered, Cancelled")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update status")
		return
	}
	if !changed {
		respondError(w, http.StatusNotFound, "not_found", "order not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "order status updated"})
}
