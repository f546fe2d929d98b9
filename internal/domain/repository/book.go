package repository

import (
	"context"

	"github.com/polkiloo/bookshop/internal/domain/model"
)

// BookRepository is the authoritative book store.
type BookRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Book, error)
	// SetQuantity overwrites the stock counter. Repeating it with the same
	// value has no further effect.
	SetQuantity(ctx context.Context, id int64, quantity int64) error
	AddStock(ctx context.Context, id int64, delta int64) (int64, error)
	Count(ctx context.Context) (int64, error)
	TopByOrderVolume(ctx context.Context, limit int) ([]model.Book, error)
}
