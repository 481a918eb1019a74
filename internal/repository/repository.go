package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/mohdnadeem3849/kubecart/internal/domain"
)

var ErrOrderNotFound = errors.New("order not found")

// CartRepository owns the mutable per-user cart lines.
type CartRepository interface {
	ListLines(ctx context.Context, userID uuid.UUID) ([]domain.CartLine, error)
	UpsertLine(ctx context.Context, userID uuid.UUID, productID int64, quantity int32) (*domain.CartLine, error)
	RemoveLine(ctx context.Context, userID uuid.UUID, lineID uuid.UUID) (bool, error)
	ClearLines(ctx context.Context, userID uuid.UUID) error
}

// OrderRepository owns the immutable order records. CreateOrder persists the
// order, its items and the cart-clearing delete in one transaction.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order, items []domain.OrderItem) error
	ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error)
	GetOrderForUser(ctx context.Context, userID, orderID uuid.UUID) (*domain.Order, []domain.OrderItem, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) (bool, error)
}
