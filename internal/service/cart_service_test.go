package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohdnadeem3849/kubecart/internal/cache"
	"github.com/mohdnadeem3849/kubecart/internal/domain"
)

func TestAdd_RejectsNonPositiveQuantity(t *testing.T) {
	svc := NewCartService(&mockCartRepo{}, &mockCache{getErr: cache.ErrCacheMiss})

	for _, quantity := range []int32{0, -1, -99} {
		_, err := svc.Add(context.Background(), uuid.New(), 10, quantity)
		assert.ErrorIs(t, err, ErrInvalidQuantity, "quantity %d", quantity)
	}
}

func TestAdd_UpsertsAndInvalidatesCache(t *testing.T) {
	repo := &mockCartRepo{}
	cartCache := &mockCache{getErr: cache.ErrCacheMiss}
	svc := NewCartService(repo, cartCache)
	userID := uuid.New()

	line, err := svc.Add(context.Background(), userID, 42, 3)

	require.NoError(t, err)
	assert.Equal(t, int64(42), line.ProductID)
	assert.Equal(t, int32(3), line.Quantity)
	assert.Equal(t, 1, cartCache.deleteCount())
}

func TestAdd_RepositoryError(t *testing.T) {
	repo := &mockCartRepo{upsertErr: errors.New("db down")}
	cartCache := &mockCache{getErr: cache.ErrCacheMiss}
	svc := NewCartService(repo, cartCache)

	_, err := svc.Add(context.Background(), uuid.New(), 42, 1)

	require.Error(t, err)
	assert.Equal(t, 0, cartCache.deleteCount(), "failed add must not invalidate the cache")
}

func TestList_CacheHitSkipsRepository(t *testing.T) {
	userID := uuid.New()
	cached := []domain.CartLine{{ID: uuid.New(), UserID: userID, ProductID: 10, Quantity: 2}}
	repo := &mockCartRepo{}
	svc := NewCartService(repo, &mockCache{lines: cached})

	lines, err := svc.List(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, cached, lines)
	assert.Equal(t, 0, repo.listCalls)
}

func TestList_CacheMissFallsBackToRepository(t *testing.T) {
	userID := uuid.New()
	repo := &mockCartRepo{lines: []domain.CartLine{cartLine(userID, 10, 2)}}
	cartCache := &mockCache{getErr: cache.ErrCacheMiss}
	svc := NewCartService(repo, cartCache)

	lines, err := svc.List(context.Background(), userID)

	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, int64(10), lines[0].ProductID)

	// cache repopulation happens off the request path
	assert.Eventually(t, func() bool {
		return cartCache.setCount() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestRemove_MissReportsFalse(t *testing.T) {
	repo := &mockCartRepo{removed: false}
	cartCache := &mockCache{getErr: cache.ErrCacheMiss}
	svc := NewCartService(repo, cartCache)

	removed, err := svc.Remove(context.Background(), uuid.New(), uuid.New())

	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 0, cartCache.deleteCount(), "a miss must not invalidate the cache")
}

func TestRemove_HitInvalidatesCache(t *testing.T) {
	repo := &mockCartRepo{removed: true}
	cartCache := &mockCache{getErr: cache.ErrCacheMiss}
	svc := NewCartService(repo, cartCache)

	removed, err := svc.Remove(context.Background(), uuid.New(), uuid.New())

	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, 1, cartCache.deleteCount())
}

func TestClear_InvalidatesCache(t *testing.T) {
	userID := uuid.New()
	repo := &mockCartRepo{lines: []domain.CartLine{cartLine(userID, 10, 2)}}
	cartCache := &mockCache{getErr: cache.ErrCacheMiss}
	svc := NewCartService(repo, cartCache)

	require.NoError(t, svc.Clear(context.Background(), userID))

	lines, err := repo.ListLines(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, lines)
	assert.Equal(t, 1, cartCache.deleteCount())
}
