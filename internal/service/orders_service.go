package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mohdnadeem3849/kubecart/internal/domain"
	"github.com/mohdnadeem3849/kubecart/internal/repository"
)

type OrdersService struct {
	repo repository.OrderRepository
}

func NewOrdersService(repo repository.OrderRepository) *OrdersService {
	return &OrdersService{repo: repo}
}

// List returns the user's own orders, newest first.
func (s *OrdersService) List(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	return s.repo.ListOrdersByUser(ctx, userID)
}

// Get returns one order with its items, only when it belongs to the user.
func (s *OrdersService) Get(ctx context.Context, userID, orderID uuid.UUID) (*domain.Order, []domain.OrderItem, error) {
	return s.repo.GetOrderForUser(ctx, userID, orderID)
}

// UpdateStatus is the administrative status transition. The input is matched
// case-insensitively against the fixed status set and stored in canonical
// casing. Reports false when the order id does not exist.
func (s *OrdersService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (bool, error) {
	parsed, err := domain.ParseOrderStatus(status)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}

	changed, err := s.repo.UpdateOrderStatus(ctx, orderID, parsed)
	if err != nil {
		return false, err
	}

	if changed {
		slog.Info("order status updated",
			slog.String("order_id", orderID.String()),
			slog.String("status", parsed.String()))
	}
	return changed, nil
}
