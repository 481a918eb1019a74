package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/mohdnadeem3849/kubecart/internal/catalog"
	"github.com/mohdnadeem3849/kubecart/internal/domain"
)

// mockCartRepo implements repository.CartRepository for testing.
type mockCartRepo struct {
	mu        sync.Mutex
	lines     []domain.CartLine
	listErr   error
	listCalls int

	upsertErr  error
	removed    bool
	removeErr  error
	clearErr   error
	clearedFor []uuid.UUID
}

func (m *mockCartRepo) ListLines(_ context.Context, _ uuid.UUID) ([]domain.CartLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]domain.CartLine, len(m.lines))
	copy(out, m.lines)
	return out, nil
}

func (m *mockCartRepo) UpsertLine(_ context.Context, userID uuid.UUID, productID int64, quantity int32) (*domain.CartLine, error) {
	if m.upsertErr != nil {
		return nil, m.upsertErr
	}
	return &domain.CartLine{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}, nil
}

func (m *mockCartRepo) RemoveLine(_ context.Context, _ uuid.UUID, _ uuid.UUID) (bool, error) {
	return m.removed, m.removeErr
}

func (m *mockCartRepo) ClearLines(_ context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.clearErr != nil {
		return m.clearErr
	}
	m.clearedFor = append(m.clearedFor, userID)
	m.lines = nil
	return nil
}

// clearOnCreate empties the mock cart, mimicking the cart-clearing delete
// inside the real checkout transaction.
func (m *mockCartRepo) clearOnCreate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = nil
}

// mockOrderRepo implements repository.OrderRepository for testing. It captures
// the order and items passed to CreateOrder.
type mockOrderRepo struct {
	mu           sync.Mutex
	createErr    error
	createdOrder *domain.Order
	createdItems []domain.OrderItem
	createCalls  int
	onCreate     func()

	orders        []domain.Order
	order         *domain.Order
	items         []domain.OrderItem
	getErr        error
	updateChanged bool
	updateErr     error
	lastStatus    domain.OrderStatus
}

func (m *mockOrderRepo) CreateOrder(_ context.Context, order *domain.Order, items []domain.OrderItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.createCalls++
	m.createdOrder = order
	m.createdItems = items
	if m.onCreate != nil {
		m.onCreate()
	}
	return nil
}

func (m *mockOrderRepo) ListOrdersByUser(_ context.Context, _ uuid.UUID) ([]domain.Order, error) {
	return m.orders, m.getErr
}

func (m *mockOrderRepo) GetOrderForUser(_ context.Context, _, _ uuid.UUID) (*domain.Order, []domain.OrderItem, error) {
	if m.getErr != nil {
		return nil, nil, m.getErr
	}
	return m.order, m.items, nil
}

func (m *mockOrderRepo) UpdateOrderStatus(_ context.Context, _ uuid.UUID, status domain.OrderStatus) (bool, error) {
	m.lastStatus = status
	return m.updateChanged, m.updateErr
}

// mockResolver implements PriceResolver for testing.
type mockResolver struct {
	mu       sync.Mutex
	products map[int64]*domain.ProductSnapshot
	errs     map[int64]error
	calls    int
}

func (m *mockResolver) Resolve(_ context.Context, productID int64) (*domain.ProductSnapshot, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if err, ok := m.errs[productID]; ok {
		return nil, err
	}
	if product, ok := m.products[productID]; ok {
		return product, nil
	}
	return nil, catalog.ErrProductNotFound
}

// mockCache implements cache.CartCache for testing.
type mockCache struct {
	mu      sync.Mutex
	lines   []domain.CartLine
	getErr  error
	setErr  error
	deletes []uuid.UUID
	sets    int
}

func (m *mockCache) Get(_ context.Context, _ uuid.UUID) ([]domain.CartLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.lines, nil
}

func (m *mockCache) Set(_ context.Context, _ uuid.UUID, lines []domain.CartLine) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	return m.setErr
}

func (m *mockCache) Delete(_ context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes = append(m.deletes, userID)
	return nil
}

func (m *mockCache) deleteCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.deletes)
}

func (m *mockCache) setCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sets
}

// mockPublisher implements events.Publisher for testing.
type mockPublisher struct {
	mu        sync.Mutex
	published []*domain.Order
	err       error
}

func (m *mockPublisher) PublishOrderCreated(_ context.Context, order *domain.Order, _ []domain.OrderItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, order)
	return nil
}

func (m *mockPublisher) Close() error { return nil }

func (m *mockPublisher) publishedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.published)
}
