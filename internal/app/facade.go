package app

import (
	"context"

	"github.com/polkiloo/bookshop/internal/domain/model"
	"github.com/polkiloo/bookshop/internal/usecase"
)

// BookstoreFacade exposes use cases to the HTTP layer.
type BookstoreFacade struct {
	identity      *usecase.IdentityUseCase
	orders        *usecase.OrderUseCase
	subscriptions *usecase.SubscriptionUseCase
	stock         *usecase.StockUseCase
	grades        *usecase.GradeUseCase
}

func NewBookstoreFacade(
	identity *usecase.IdentityUseCase,
	orders *usecase.OrderUseCase,
	subscriptions *usecase.SubscriptionUseCase,
	stock *usecase.StockUseCase,
	grades *usecase.GradeUseCase,
) *BookstoreFacade {
	return &BookstoreFacade{
		identity:      identity,
		orders:        orders,
		subscriptions: subscriptions,
		stock:         stock,
		grades:        grades,
	}
}

func (f *BookstoreFacade) Identify(ctx context.Context, userID string) (*model.User, error) {
	return f.identity.Identify(ctx, userID)
}

func (f *BookstoreFacade) PlaceOrder(ctx context.Context, user *model.User, req model.OrderRequest) (*model.PlacedOrder, error) {
	return f.orders.PlaceOrder(ctx, user, req)
}

func (f *BookstoreFacade) Quote(ctx context.Context, user *model.User, req model.OrderRequest) (*model.OrderCalculationResult, error) {
	return f.orders.Quote(ctx, user, req)
}

func (f *BookstoreFacade) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID)
}

func (f *BookstoreFacade) Order(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	return f.orders.Get(ctx, userID, orderID)
}

func (f *BookstoreFacade) AdvanceOrder(ctx context.Context, userID, orderID int64, next model.OrderStatus) error {
	return f.orders.AdvanceStatus(ctx, userID, orderID, next)
}

func (f *BookstoreFacade) Subscribe(ctx context.Context, userID, bookID, threshold int64) (*model.NotificationSubscription, error) {
	return f.subscriptions.Subscribe(ctx, userID, bookID, threshold)
}

func (f *BookstoreFacade) Subscriptions(ctx context.Context, userID int64) ([]model.NotificationSubscription, error) {
	return f.subscriptions.List(ctx, userID)
}

func (f *BookstoreFacade) Unsubscribe(ctx context.Context, userID, subscriptionID int64) error {
	return f.subscriptions.Unsubscribe(ctx, userID, subscriptionID)
}

func (f *BookstoreFacade) Restock(ctx context.Context, bookID, delta int64) (int64, error) {
	return f.stock.Restock(ctx, bookID, delta)
}

func (f *BookstoreFacade) EvictGrade(ctx context.Context, name string) error {
	return f.grades.Evict(ctx, name)
}

func (f *BookstoreFacade) EvictGrades(ctx context.Context) {
	f.grades.EvictAll(ctx)
}
