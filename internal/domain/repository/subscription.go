package repository

import (
	"context"

	"github.com/polkiloo/bookshop/internal/domain/model"
)

// SubscriptionRepository manages stock threshold subscriptions and their
// delivery log.
type SubscriptionRepository interface {
	Upsert(ctx context.Context, userID, bookID, threshold int64) (*model.NotificationSubscription, error)
	Deactivate(ctx context.Context, id, userID int64) error
	GetByID(ctx context.Context, id int64) (*model.NotificationSubscription, error)
	ListByUser(ctx context.Context, userID int64) ([]model.NotificationSubscription, error)
	ListActiveForStock(ctx context.Context, bookID, quantity int64) ([]model.SubscriptionTarget, error)
	LogDispatch(ctx context.Context, entry model.NotificationLog) error
}
