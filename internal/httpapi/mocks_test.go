package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mohdnadeem3849/kubecart/internal/domain"
)

// --- Mocks ---

type cartServiceMock struct {
	lines   []domain.CartLine
	line    *domain.CartLine
	removed bool
	err     error
}

func (m cartServiceMock) List(_ context.Context, _ uuid.UUID) ([]domain.CartLine, error) {
	return m.lines, m.err
}

func (m cartServiceMock) Add(_ context.Context, _ uuid.UUID, _ int64, _ int32) (*domain.CartLine, error) {
	return m.line, m.err
}

func (m cartServiceMock) Remove(_ context.Context, _ uuid.UUID, _ uuid.UUID) (bool, error) {
	return m.removed, m.err
}

type checkoutServiceMock struct {
	order *domain.Order
	err   error
}

func (m checkoutServiceMock) Checkout(_ context.Context, _ uuid.UUID, _ string) (*domain.Order, error) {
	return m.order, m.err
}

type ordersServiceMock struct {
	orders  []domain.Order
	order   *domain.Order
	items   []domain.OrderItem
	changed bool
	err     error
}

func (m ordersServiceMock) List(_ context.Context, _ uuid.UUID) ([]domain.Order, error) {
	return m.orders, m.err
}

func (m ordersServiceMock) Get(_ context.Context, _, _ uuid.UUID) (*domain.Order, []domain.OrderItem, error) {
	if m.err != nil {
		return nil, nil, m.err
	}
	return m.order, m.items, nil
}

func (m ordersServiceMock) UpdateStatus(_ context.Context, _ uuid.UUID, _ string) (bool, error) {
	return m.changed, m.err
}

// --- helpers ---

func withUser(r *http.Request, userID uuid.UUID) *http.Request {
	ctx := context.WithValue(r.Context(), userIDKey, userID)
	return r.WithContext(ctx)
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
