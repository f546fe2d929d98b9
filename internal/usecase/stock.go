package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	domainErrors "github.com/polkiloo/bookshop/internal/domain/errors"
	"github.com/polkiloo/bookshop/internal/domain/repository"
)

// StockUseCase handles restocking.
type StockUseCase struct {
	books    repository.BookRepository
	cache    repository.StockCache
	tasks    TaskScheduler
	notifier StockNotifier
	logger   *zap.Logger
}

// NewStockUseCase constructs StockUseCase.
func NewStockUseCase(books repository.BookRepository, cache repository.StockCache, tasks TaskScheduler, notifier StockNotifier, logger *zap.Logger) *StockUseCase {
	return &StockUseCase{books: books, cache: cache, tasks: tasks, notifier: notifier, logger: logger}
}

// Restock adds delta copies to the store and the cached counter, then
// schedules a fanout for the new level.
func (u *StockUseCase) Restock(ctx context.Context, bookID, delta int64) (int64, error) {
	if delta <= 0 {
		return 0, fmt.Errorf("restock delta must be positive: %w", domainErrors.ErrInvalidRequest)
	}

	quantity, err := u.books.AddStock(ctx, bookID, delta)
	if err != nil {
		return 0, err
	}

	cached, err := u.cache.Increment(ctx, bookID, delta)
	switch {
	case err == nil:
		quantity = cached
	case errors.Is(err, domainErrors.ErrNotFound):
	default:
		u.logger.Warn("cached stock increment failed, evicting", zap.Int64("book_id", bookID), zap.Error(err))
		if evictErr := u.cache.Evict(ctx, bookID); evictErr != nil {
			u.logger.Error("stock cache evict failed", zap.Int64("book_id", bookID), zap.Error(evictErr))
		}
	}

	u.tasks.Submit(taskStockNotification, func(ctx context.Context) {
		if err := u.notifier.Notify(ctx, bookID, quantity); err != nil {
			u.logger.Warn("stock notification failed", zap.Int64("book_id", bookID), zap.Error(err))
		}
	})

	u.logger.Info("book restocked", zap.Int64("book_id", bookID), zap.Int64("delta", delta), zap.Int64("quantity", quantity))
	return quantity, nil
}
