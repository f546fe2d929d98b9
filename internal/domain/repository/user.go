package repository

import (
	"context"

	"github.com/polkiloo/bookshop/internal/domain/model"
)

// UserRepository describes read access to customers.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}
