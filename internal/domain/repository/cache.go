package repository

import (
	"context"
	"time"

	"github.com/polkiloo/bookshop/internal/domain/model"
)

// StockCache is the fast copy of book records and their stock counters.
// A false bool means the entry is absent.
type StockCache interface {
	Get(ctx context.Context, id int64) (*model.Book, bool, error)
	Put(ctx context.Context, book model.Book, ttl time.Duration) error
	// Refresh updates descriptive fields and sets the counter only when the
	// entry has none.
	Refresh(ctx context.Context, book model.Book, ttl time.Duration) error
	GetQuantity(ctx context.Context, id int64) (int64, bool, error)
	// Decrement atomically checks and subtracts n, returning the remaining
	// quantity.
	Decrement(ctx context.Context, id int64, n int64) (int64, error)
	Increment(ctx context.Context, id int64, n int64) (int64, error)
	Evict(ctx context.Context, id int64) error
}

// GradeCache stores grade policy snapshots.
type GradeCache interface {
	Get(ctx context.Context, name string) (*model.GradeInfo, bool, error)
	Set(ctx context.Context, grade model.GradeInfo) error
	Delete(ctx context.Context, name string) error
	DeleteAll(ctx context.Context) error
}
