package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/bookshop/internal/domain/errors"
	"github.com/polkiloo/bookshop/internal/domain/model"
)

func (r *orderRepository) Create(ctx context.Context, draft model.OrderDraft) (*model.Order, error) {
	var order *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		order, err = r.insertTx(ctx, tx, draft)
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) CreateReservingStock(ctx context.Context, draft model.OrderDraft) (*model.Order, int64, error) {
	if len(draft.Lines) == 0 {
		return nil, 0, domainErrors.ErrInvalidRequest
	}

	var (
		order     *model.Order
		remaining int64
	)
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		for i, line := range draft.Lines {
			left, err := reserveStockTx(ctx, tx, line.BookID, line.Quantity)
			if err != nil {
				return err
			}
			if i == 0 {
				remaining = left
			}
		}

		var err error
		order, err = r.insertTx(ctx, tx, draft)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return order, remaining, nil
}

// reserveStockTx is the commit point for orders that bypass the stock cache.
func reserveStockTx(ctx context.Context, tx pgx.Tx, bookID, quantity int64) (int64, error) {
	const query = `UPDATE books SET quantity = quantity - $1, updated_at=NOW()
                   WHERE id=$2 AND quantity >= $1
                   RETURNING quantity`
	var left int64
	if err := tx.QueryRow(ctx, query, quantity, bookID).Scan(&left); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domainErrors.ErrInsufficientStock
		}
		return 0, fmt.Errorf("reserve stock: %w", err)
	}
	return left, nil
}

func (r *orderRepository) insertTx(ctx context.Context, tx pgx.Tx, draft model.OrderDraft) (*model.Order, error) {
	const updatePoints = `UPDATE users SET points = points - $1 + $2
                          WHERE id=$3 AND points >= $1`
	tag, err := tx.Exec(ctx, updatePoints, draft.UsedPoints, draft.EarnedMileage, draft.UserID)
	if err != nil {
		return nil, fmt.Errorf("update points: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domainErrors.ErrInsufficientPoints
	}

	const insertOrder = `INSERT INTO orders (user_id, status, total_price, used_points, earned_mileage, grade_name)
                         VALUES ($1, $2, $3, $4, $5, $6)
                         RETURNING id, created_at, updated_at`
	order := &model.Order{
		UserID:        draft.UserID,
		Status:        model.OrderStatusReady,
		TotalPrice:    draft.TotalPrice,
		UsedPoints:    draft.UsedPoints,
		EarnedMileage: draft.EarnedMileage,
		GradeName:     draft.GradeName,
	}
	err = tx.QueryRow(ctx, insertOrder, draft.UserID, model.OrderStatusReady, draft.TotalPrice, draft.UsedPoints, draft.EarnedMileage, draft.GradeName).
		Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	const insertLine = `INSERT INTO order_lines (order_id, book_id, quantity, unit_price)
                        VALUES ($1, $2, $3, $4) RETURNING id`
	for _, line := range draft.Lines {
		line.OrderID = order.ID
		if err := tx.QueryRow(ctx, insertLine, order.ID, line.BookID, line.Quantity, line.UnitPrice).Scan(&line.ID); err != nil {
			return nil, fmt.Errorf("insert order line: %w", err)
		}
		order.Lines = append(order.Lines, line)
	}

	return order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	const query = `SELECT id, user_id, status, total_price, used_points, earned_mileage, grade_name, created_at, updated_at
                   FROM orders WHERE id=$1`
	var o model.Order
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&o.ID, &o.UserID, &o.Status, &o.TotalPrice, &o.UsedPoints, &o.EarnedMileage, &o.GradeName, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	const linesQuery = `SELECT id, order_id, book_id, quantity, unit_price
                        FROM order_lines WHERE order_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, linesQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var l model.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.BookID, &l.Quantity, &l.UnitPrice); err != nil {
			return nil, err
		}
		o.Lines = append(o.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	const query = `SELECT id, user_id, status, total_price, used_points, earned_mileage, grade_name, created_at, updated_at
                   FROM orders WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.TotalPrice, &o.UsedPoints, &o.EarnedMileage, &o.GradeName, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateStatus moves the order from one status to another only if it is
// still in the expected status.
func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, from, to model.OrderStatus) error {
	const query = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2 AND status=$3`
	tag, err := r.storage.pool.Exec(ctx, query, to, id, from)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrInvalidTransition
	}
	return nil
}
