package handlers

import (
	"context"

	"github.com/polkiloo/bookshop/internal/domain/model"
)

// IdentityFacade resolves the customer behind a request.
type IdentityFacade interface {
	Identify(ctx context.Context, userID string) (*model.User, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, user *model.User, req model.OrderRequest) (*model.PlacedOrder, error)
	Quote(ctx context.Context, user *model.User, req model.OrderRequest) (*model.OrderCalculationResult, error)
	Orders(ctx context.Context, userID int64) ([]model.Order, error)
	Order(ctx context.Context, userID, orderID int64) (*model.Order, error)
	AdvanceOrder(ctx context.Context, userID, orderID int64, next model.OrderStatus) error
}

// SubscriptionFacade manages stock alert subscriptions.
type SubscriptionFacade interface {
	Subscribe(ctx context.Context, userID, bookID, threshold int64) (*model.NotificationSubscription, error)
	Subscriptions(ctx context.Context, userID int64) ([]model.NotificationSubscription, error)
	Unsubscribe(ctx context.Context, userID, subscriptionID int64) error
}

// CatalogFacade covers stock and grade maintenance.
type CatalogFacade interface {
	Restock(ctx context.Context, bookID, delta int64) (int64, error)
	EvictGrade(ctx context.Context, name string) error
	EvictGrades(ctx context.Context)
}

// BookstoreFacade aggregates the full set of operations used across handlers.
type BookstoreFacade interface {
	IdentityFacade
	OrderFacade
	SubscriptionFacade
	CatalogFacade
}
