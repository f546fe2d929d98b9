package repository

import (
	"context"

	"github.com/polkiloo/bookshop/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	// Create persists the order, its lines and the point movement in a
	// single transaction.
	Create(ctx context.Context, draft model.OrderDraft) (*model.Order, error)
	// CreateReservingStock does what Create does and also decrements the
	// stock of every line inside the same transaction. It returns the
	// remaining quantity of the first line's book.
	CreateReservingStock(ctx context.Context, draft model.OrderDraft) (*model.Order, int64, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id int64, from, to model.OrderStatus) error
}
