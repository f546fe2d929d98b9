package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/bookshop/internal/domain/errors"
	"github.com/polkiloo/bookshop/internal/domain/model"
)

// Upsert creates a subscription or re-activates the existing one for the
// same user and book with the new threshold.
func (r *subscriptionRepository) Upsert(ctx context.Context, userID, bookID, threshold int64) (*model.NotificationSubscription, error) {
	const query = `INSERT INTO notification_subscriptions (user_id, book_id, threshold_quantity, is_active)
                   VALUES ($1, $2, $3, TRUE)
                   ON CONFLICT (user_id, book_id) DO UPDATE
                   SET threshold_quantity = EXCLUDED.threshold_quantity, is_active = TRUE
                   RETURNING id, created_at`
	sub := &model.NotificationSubscription{
		UserID:    userID,
		BookID:    bookID,
		Threshold: threshold,
		Active:    true,
	}
	if err := r.storage.pool.QueryRow(ctx, query, userID, bookID, threshold).Scan(&sub.ID, &sub.CreatedAt); err != nil {
		return nil, err
	}
	return sub, nil
}

func (r *subscriptionRepository) Deactivate(ctx context.Context, id, userID int64) error {
	const query = `UPDATE notification_subscriptions SET is_active=FALSE WHERE id=$1 AND user_id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *subscriptionRepository) GetByID(ctx context.Context, id int64) (*model.NotificationSubscription, error) {
	const query = `SELECT id, user_id, book_id, threshold_quantity, is_active, created_at
                   FROM notification_subscriptions WHERE id=$1`
	var s model.NotificationSubscription
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&s.ID, &s.UserID, &s.BookID, &s.Threshold, &s.Active, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *subscriptionRepository) ListByUser(ctx context.Context, userID int64) ([]model.NotificationSubscription, error) {
	const query = `SELECT id, user_id, book_id, threshold_quantity, is_active, created_at
                   FROM notification_subscriptions WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.NotificationSubscription
	for rows.Next() {
		var s model.NotificationSubscription
		if err := rows.Scan(&s.ID, &s.UserID, &s.BookID, &s.Threshold, &s.Active, &s.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *subscriptionRepository) ListActiveForStock(ctx context.Context, bookID, quantity int64) ([]model.SubscriptionTarget, error) {
	const query = `SELECT s.id, s.user_id, s.book_id, s.threshold_quantity, s.is_active, s.created_at, u.email
                   FROM notification_subscriptions s
                   JOIN users u ON u.id = s.user_id
                   WHERE s.book_id=$1 AND s.is_active AND s.threshold_quantity >= $2
                   ORDER BY s.id`
	rows, err := r.storage.pool.Query(ctx, query, bookID, quantity)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.SubscriptionTarget
	for rows.Next() {
		var t model.SubscriptionTarget
		if err := rows.Scan(&t.ID, &t.UserID, &t.BookID, &t.Threshold, &t.Active, &t.CreatedAt, &t.Email); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *subscriptionRepository) LogDispatch(ctx context.Context, entry model.NotificationLog) error {
	const query = `INSERT INTO notification_logs (subscription_id, user_id, book_id, threshold_quantity, current_stock, message)
                   VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.storage.pool.Exec(ctx, query, entry.SubscriptionID, entry.UserID, entry.BookID, entry.Threshold, entry.CurrentStock, entry.Message)
	return err
}
