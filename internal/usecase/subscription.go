package usecase

import (
	"context"
	"fmt"

	domainErrors "github.com/polkiloo/bookshop/internal/domain/errors"
	"github.com/polkiloo/bookshop/internal/domain/model"
	"github.com/polkiloo/bookshop/internal/domain/repository"
)

// SubscriptionUseCase manages stock alert subscriptions.
type SubscriptionUseCase struct {
	subscriptions repository.SubscriptionRepository
	books         repository.BookRepository
}

// NewSubscriptionUseCase constructs SubscriptionUseCase.
func NewSubscriptionUseCase(subscriptions repository.SubscriptionRepository, books repository.BookRepository) *SubscriptionUseCase {
	return &SubscriptionUseCase{subscriptions: subscriptions, books: books}
}

// Subscribe creates or re-activates the user's subscription for the book.
func (u *SubscriptionUseCase) Subscribe(ctx context.Context, userID, bookID, threshold int64) (*model.NotificationSubscription, error) {
	if threshold < 0 {
		return nil, fmt.Errorf("threshold must not be negative: %w", domainErrors.ErrInvalidRequest)
	}
	if bookID <= 0 {
		return nil, fmt.Errorf("book id must be positive: %w", domainErrors.ErrInvalidRequest)
	}
	if _, err := u.books.GetByID(ctx, bookID); err != nil {
		return nil, err
	}
	return u.subscriptions.Upsert(ctx, userID, bookID, threshold)
}

// Unsubscribe deactivates the subscription. Rows are kept for the dispatch log.
func (u *SubscriptionUseCase) Unsubscribe(ctx context.Context, userID, subscriptionID int64) error {
	return u.subscriptions.Deactivate(ctx, subscriptionID, userID)
}

// List returns the user's subscriptions.
func (u *SubscriptionUseCase) List(ctx context.Context, userID int64) ([]model.NotificationSubscription, error) {
	return u.subscriptions.ListByUser(ctx, userID)
}
