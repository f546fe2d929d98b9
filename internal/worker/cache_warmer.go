package worker

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	domainErrors "github.com/polkiloo/bookshop/internal/domain/errors"
	"github.com/polkiloo/bookshop/internal/domain/model"
	"github.com/polkiloo/bookshop/internal/domain/repository"
)

// CacheWarmer periodically loads the best selling books into the stock cache.
type CacheWarmer struct {
	books    repository.BookRepository
	cache    repository.StockCache
	interval time.Duration
	ratio    float64
	ttl      time.Duration
	workers  int
	logger   *zap.Logger

	jobs      chan model.Book
	refreshed atomic.Int64
	wg        sync.WaitGroup
	cancel    context.CancelFunc
	mu        sync.Mutex
}

// NewCacheWarmer constructs cache warmer with its refresh workers.
func NewCacheWarmer(books repository.BookRepository, cache repository.StockCache, interval time.Duration, ratio float64, ttl time.Duration, workers int, logger *zap.Logger) *CacheWarmer {
	if workers <= 0 {
		workers = 1
	}
	if interval <= 0 {
		interval = time.Hour
	}
	if ratio <= 0 || ratio > 1 {
		ratio = 1
	}
	return &CacheWarmer{
		books:    books,
		cache:    cache,
		interval: interval,
		ratio:    ratio,
		ttl:      ttl,
		workers:  workers,
		logger:   logger,
	}
}

// Start warms the cache immediately and then on every interval.
func (w *CacheWarmer) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	w.cancel = cancel
	w.jobs = make(chan model.Book, w.workers)

	for i := 0; i < w.workers; i++ {
		w.wg.Add(1)
		go w.worker(runCtx)
	}

	w.wg.Add(1)
	go w.dispatch(runCtx)
}

// Stop cancels warming and waits for all workers to finish.
func (w *CacheWarmer) Stop() {
	w.mu.Lock()
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.mu.Unlock()

	w.wg.Wait()
}

// Refreshed reports how many books were written to the cache so far.
func (w *CacheWarmer) Refreshed() int64 {
	return w.refreshed.Load()
}

func (w *CacheWarmer) dispatch(ctx context.Context) {
	defer w.wg.Done()
	defer close(w.jobs)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.fetchAndDispatch(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.fetchAndDispatch(ctx)
		}
	}
}

// warmLimit returns ceil(total * ratio).
func (w *CacheWarmer) warmLimit(total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) * w.ratio))
}

func (w *CacheWarmer) fetchAndDispatch(ctx context.Context) {
	total, err := w.books.Count(ctx)
	if err != nil {
		w.logger.Error("count books for cache warming failed", zap.Error(err))
		return
	}
	limit := w.warmLimit(total)
	if limit == 0 {
		return
	}
	books, err := w.books.TopByOrderVolume(ctx, limit)
	if err != nil {
		w.logger.Error("load top books for cache warming failed", zap.Int("limit", limit), zap.Error(err))
		return
	}
	w.logger.Info("warming stock cache", zap.Int("books", len(books)))
	for _, book := range books {
		select {
		case <-ctx.Done():
			return
		case w.jobs <- book:
		}
	}
}

func (w *CacheWarmer) worker(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case book, ok := <-w.jobs:
			if !ok {
				return
			}
			w.refresh(ctx, book)
		}
	}
}

// refresh re-reads the stored quantity right before seeding so that orders
// committed since the ranking query are not undone by a stale counter.
func (w *CacheWarmer) refresh(ctx context.Context, listed model.Book) {
	book, err := w.books.GetByID(ctx, listed.ID)
	if err != nil {
		if !errors.Is(err, domainErrors.ErrNotFound) {
			w.logger.Warn("reload book for cache warming failed", zap.Int64("book_id", listed.ID), zap.Error(err))
		}
		return
	}
	if err := w.cache.Refresh(ctx, *book, w.ttl); err != nil {
		w.logger.Warn("refresh cached book failed", zap.Int64("book_id", book.ID), zap.Error(err))
		return
	}
	w.refreshed.Add(1)
}
