package test

import (
	"context"
	"sync"

	domainErrors "github.com/polkiloo/bookshop/internal/domain/errors"
	"github.com/polkiloo/bookshop/internal/domain/model"
)

// IdentityFacadeStub resolves forwarded user ids.
type IdentityFacadeStub struct {
	IdentifyFn func(context.Context, string) (*model.User, error)
	User       *model.User
	Err        error
}

// Identify returns configured user or a default customer.
func (s IdentityFacadeStub) Identify(ctx context.Context, userID string) (*model.User, error) {
	if s.IdentifyFn != nil {
		return s.IdentifyFn(ctx, userID)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.User != nil {
		return s.User, nil
	}
	return &model.User{ID: 1, Email: "reader@example.com", GradeName: "BRONZE"}, nil
}

// OrderFacadeStub provides configurable order operations.
type OrderFacadeStub struct {
	PlaceFn   func(context.Context, *model.User, model.OrderRequest) (*model.PlacedOrder, error)
	QuoteFn   func(context.Context, *model.User, model.OrderRequest) (*model.OrderCalculationResult, error)
	OrdersFn  func(context.Context, int64) ([]model.Order, error)
	OrderFn   func(context.Context, int64, int64) (*model.Order, error)
	AdvanceFn func(context.Context, int64, int64, model.OrderStatus) error
}

// PlaceOrder delegates to PlaceFn or echoes the request as a READY order.
func (s OrderFacadeStub) PlaceOrder(ctx context.Context, user *model.User, req model.OrderRequest) (*model.PlacedOrder, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, user, req)
	}
	amount := req.UnitPrice * req.Quantity
	return &model.PlacedOrder{
		Order: &model.Order{
			ID:         1,
			UserID:     user.ID,
			Status:     model.OrderStatusReady,
			TotalPrice: amount,
			Lines:      []model.OrderLine{{BookID: req.BookID, Quantity: req.Quantity, UnitPrice: req.UnitPrice}},
		},
		Calculation: model.OrderCalculationResult{OriginalAmount: amount, FinalAmount: amount},
	}, nil
}

// Quote delegates to QuoteFn or returns an undiscounted breakdown.
func (s OrderFacadeStub) Quote(ctx context.Context, user *model.User, req model.OrderRequest) (*model.OrderCalculationResult, error) {
	if s.QuoteFn != nil {
		return s.QuoteFn(ctx, user, req)
	}
	amount := req.UnitPrice * req.Quantity
	return &model.OrderCalculationResult{OriginalAmount: amount, FinalAmount: amount}, nil
}

// Orders delegates to OrdersFn or returns nothing.
func (s OrderFacadeStub) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return nil, nil
}

// Order delegates to OrderFn or returns not found.
func (s OrderFacadeStub) Order(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, userID, orderID)
	}
	return nil, domainErrors.ErrNotFound
}

// AdvanceOrder delegates to AdvanceFn or succeeds.
func (s OrderFacadeStub) AdvanceOrder(ctx context.Context, userID, orderID int64, next model.OrderStatus) error {
	if s.AdvanceFn != nil {
		return s.AdvanceFn(ctx, userID, orderID, next)
	}
	return nil
}

// SubscriptionFacadeStub provides configurable subscription operations.
type SubscriptionFacadeStub struct {
	SubscribeFn   func(context.Context, int64, int64, int64) (*model.NotificationSubscription, error)
	ListFn        func(context.Context, int64) ([]model.NotificationSubscription, error)
	UnsubscribeFn func(context.Context, int64, int64) error
}

// Subscribe delegates to SubscribeFn or returns an active subscription.
func (s SubscriptionFacadeStub) Subscribe(ctx context.Context, userID, bookID, threshold int64) (*model.NotificationSubscription, error) {
	if s.SubscribeFn != nil {
		return s.SubscribeFn(ctx, userID, bookID, threshold)
	}
	return &model.NotificationSubscription{ID: 1, UserID: userID, BookID: bookID, Threshold: threshold, Active: true}, nil
}

// Subscriptions delegates to ListFn or returns nothing.
func (s SubscriptionFacadeStub) Subscriptions(ctx context.Context, userID int64) ([]model.NotificationSubscription, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, userID)
	}
	return nil, nil
}

// Unsubscribe delegates to UnsubscribeFn or succeeds.
func (s SubscriptionFacadeStub) Unsubscribe(ctx context.Context, userID, subscriptionID int64) error {
	if s.UnsubscribeFn != nil {
		return s.UnsubscribeFn(ctx, userID, subscriptionID)
	}
	return nil
}

// CatalogFacadeStub records stock and grade maintenance calls.
type CatalogFacadeStub struct {
	RestockFn func(context.Context, int64, int64) (int64, error)
	EvictErr  error

	mu      sync.Mutex
	evicted []string
	cleared int
}

// Restock delegates to RestockFn or returns delta as the new level.
func (s *CatalogFacadeStub) Restock(ctx context.Context, bookID, delta int64) (int64, error) {
	if s.RestockFn != nil {
		return s.RestockFn(ctx, bookID, delta)
	}
	return delta, nil
}

// EvictGrade records the grade name.
func (s *CatalogFacadeStub) EvictGrade(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.EvictErr != nil {
		return s.EvictErr
	}
	s.evicted = append(s.evicted, name)
	return nil
}

// EvictGrades counts full evictions.
func (s *CatalogFacadeStub) EvictGrades(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleared++
}

// Evicted returns recorded grade evictions and the number of full clears.
func (s *CatalogFacadeStub) Evicted() ([]string, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.evicted...), s.cleared
}

// BookstoreFacadeStub aggregates all facade stubs.
type BookstoreFacadeStub struct {
	IdentityFacadeStub
	OrderFacadeStub
	SubscriptionFacadeStub
	*CatalogFacadeStub
}

// NewBookstoreFacadeStub constructs facade with default behaviour.
func NewBookstoreFacadeStub() *BookstoreFacadeStub {
	return &BookstoreFacadeStub{CatalogFacadeStub: &CatalogFacadeStub{}}
}
