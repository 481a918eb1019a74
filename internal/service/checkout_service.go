package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/mohdnadeem3849/kubecart/internal/cache"
	"github.com/mohdnadeem3849/kubecart/internal/domain"
	"github.com/mohdnadeem3849/kubecart/internal/events"
	"github.com/mohdnadeem3849/kubecart/internal/metrics"
	"github.com/mohdnadeem3849/kubecart/internal/repository"
)

// PriceResolver answers what a product costs right now. Implementations cross
// a network boundary and must bound their own latency.
type PriceResolver interface {
	Resolve(ctx context.Context, productID int64) (*domain.ProductSnapshot, error)
}

const defaultResolveConcurrency = 4

type CheckoutService struct {
	carts    repository.CartRepository
	orders   repository.OrderRepository
	resolver PriceResolver
	cache    cache.CartCache
	events   events.Publisher
	metrics  *metrics.CheckoutMetrics

	resolveConcurrency int
	userLocks          sync.Map // uuid.UUID -> *sync.Mutex
}

func NewCheckoutService(
	carts repository.CartRepository,
	orders repository.OrderRepository,
	resolver PriceResolver,
	cache cache.CartCache,
	publisher events.Publisher,
	checkoutMetrics *metrics.CheckoutMetrics,
) *CheckoutService {
	return &CheckoutService{
		carts:              carts,
		orders:             orders,
		resolver:           resolver,
		cache:              cache,
		events:             publisher,
		metrics:            checkoutMetrics,
		resolveConcurrency: defaultResolveConcurrency,
	}
}

// Checkout converts the user's cart into an immutable priced order.
//
// All cart lines are priced against the catalog before any write happens, so
// the transaction holds no locks while waiting on the network. The order row,
// its items and the cart-clearing delete then commit as one unit: a failed
// attempt leaves the cart untouched and no order visible.
//
// Attempts for the same user are serialized, so two racing checkouts cannot
// both charge the same cart snapshot; the loser finds an empty cart.
func (s *CheckoutService) Checkout(ctx context.Context, userID uuid.UUID, notes string) (*domain.Order, error) {
	started := time.Now()

	lock := s.lockFor(userID)
	lock.Lock()
	defer lock.Unlock()

	lines, err := s.carts.ListLines(ctx, userID)
	if err != nil {
		s.metrics.Observe("storage_error", started)
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if len(lines) == 0 {
		s.metrics.Observe("empty_cart", started)
		return nil, ErrEmptyCart
	}

	orderID := uuid.New()
	createdAt := time.Now().UTC()

	snapshots, err := s.priceLines(ctx, lines)
	if err != nil {
		s.metrics.Observe("product_unavailable", started)
		return nil, err
	}

	total := decimal.Zero
	items := make([]domain.OrderItem, 0, len(lines))
	for i, line := range lines {
		product := snapshots[i]
		total = total.Add(product.Price.Mul(decimal.NewFromInt32(line.Quantity)))
		items = append(items, domain.OrderItem{
			ID:          uuid.New(),
			OrderID:     orderID,
			ProductID:   line.ProductID,
			Quantity:    line.Quantity,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			ImageURL:    product.ImageURL,
		})
	}

	order := &domain.Order{
		ID:          orderID,
		UserID:      userID,
		Notes:       notes,
		Status:      domain.OrderStatusPending,
		TotalAmount: total,
		CreatedAt:   createdAt,
	}

	if err := s.orders.CreateOrder(ctx, order, items); err != nil {
		s.metrics.Observe("storage_error", started)
		return nil, fmt.Errorf("persist order: %w", err)
	}

	s.afterCommit(order, items)
	s.metrics.Observe("committed", started)

	slog.Info("checkout committed",
		slog.String("order_id", orderID.String()),
		slog.String("user_id", userID.String()),
		slog.String("total_amount", total.String()),
		slog.Int("items", len(items)))

	return order, nil
}

// priceLines resolves every cart line against the catalog concurrently,
// preserving cart order. Any resolution failure aborts the whole attempt.
func (s *CheckoutService) priceLines(ctx context.Context, lines []domain.CartLine) ([]*domain.ProductSnapshot, error) {
	snapshots := make([]*domain.ProductSnapshot, len(lines))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.resolveConcurrency)

	for i, line := range lines {
		g.Go(func() error {
			product, err := s.resolver.Resolve(gctx, line.ProductID)
			if err != nil {
				return &ProductUnavailableError{ProductID: line.ProductID, Err: err}
			}
			snapshots[i] = product
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snapshots, nil
}

// afterCommit runs the best-effort side effects. The order is already durable;
// failures here are logged, never surfaced.
func (s *CheckoutService) afterCommit(order *domain.Order, items []domain.OrderItem) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.cache.Delete(ctx, order.UserID); err != nil {
		slog.Warn("cart cache invalidate failed",
			slog.String("user_id", order.UserID.String()), slog.String("error", err.Error()))
	}

	if err := s.events.PublishOrderCreated(ctx, order, items); err != nil {
		slog.Warn("order created event publish failed",
			slog.String("order_id", order.ID.String()), slog.String("error", err.Error()))
	}
}

func (s *CheckoutService) lockFor(userID uuid.UUID) *sync.Mutex {
	v, _ := s.userLocks.LoadOrStore(userID, &sync.Mutex{})
	return v.(*sync.Mutex)
}
