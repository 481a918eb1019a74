package cache

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/mohdnadeem3849/kubecart/internal/domain"
)

// CartCache is a read cache in front of the cart repository. A nil entry is
// never cached; an empty cart is cached as an empty slice.
type CartCache interface {
	Get(ctx context.Context, userID uuid.UUID) ([]domain.CartLine, error)
	Set(ctx context.Context, userID uuid.UUID, lines []domain.CartLine) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

var ErrCacheMiss = errors.New("cache miss")
