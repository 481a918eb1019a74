package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/mohdnadeem3849/kubecart/internal/cache"
	"github.com/mohdnadeem3849/kubecart/internal/domain"
	"github.com/mohdnadeem3849/kubecart/internal/repository"
)

type CartService struct {
	repo  repository.CartRepository
	cache cache.CartCache
	sfg   singleflight.Group // prevents cache stampede on List
}

func NewCartService(repo repository.CartRepository, cache cache.CartCache) *CartService {
	return &CartService{
		repo:  repo,
		cache: cache,
	}
}

// List returns the user's cart lines, most recent first. Reads go through the
// cache; concurrent misses for the same user collapse into one repository read.
func (s *CartService) List(ctx context.Context, userID uuid.UUID) ([]domain.CartLine, error) {
	v, err, _ := s.sfg.Do(userID.String(), func() (interface{}, error) {
		lines, err := s.cache.Get(ctx, userID)
		if err == nil {
			return lines, nil
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			slog.Warn("cart cache get failed", slog.String("user_id", userID.String()), slog.String("error", err.Error()))
		}

		lines, err = s.repo.ListLines(ctx, userID)
		if err != nil {
			return nil, err
		}

		go func() {
			setCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if errSet := s.cache.Set(setCtx, userID, lines); errSet != nil {
				slog.Warn("cart cache set failed", slog.String("user_id", userID.String()), slog.String("error", errSet.Error()))
			}
		}()

		return lines, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]domain.CartLine), nil
}

// Add merges quantity into the existing line for (user, product) or creates a
// new one. Quantity must be positive.
func (s *CartService) Add(ctx context.Context, userID uuid.UUID, productID int64, quantity int32) (*domain.CartLine, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	line, err := s.repo.UpsertLine(ctx, userID, productID, quantity)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(userID)
	return line, nil
}

// Remove deletes the line if it belongs to the user. A missing or foreign line
// reports false rather than an error.
func (s *CartService) Remove(ctx context.Context, userID uuid.UUID, lineID uuid.UUID) (bool, error) {
	removed, err := s.repo.RemoveLine(ctx, userID, lineID)
	if err != nil {
		return false, err
	}

	if removed {
		s.invalidateCache(userID)
	}
	return removed, nil
}

// Clear empties the user's cart. Idempotent.
func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.ClearLines(ctx, userID); err != nil {
		return err
	}

	s.invalidateCache(userID)
	return nil
}

func (s *CartService) invalidateCache(userID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, userID); err != nil {
		slog.Warn("cart cache invalidate failed", slog.String("user_id", userID.String()), slog.String("error", err.Error()))
	}
}
