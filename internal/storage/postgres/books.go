package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/bookshop/internal/domain/errors"
	"github.com/polkiloo/bookshop/internal/domain/model"
)

func (r *bookRepository) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	const query = `SELECT id, title, author, publisher, isbn, price, discount, quantity, updated_at
                   FROM books WHERE id=$1`
	var b model.Book
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&b.ID, &b.Title, &b.Author, &b.Publisher, &b.ISBN, &b.Price, &b.Discount, &b.Quantity, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *bookRepository) SetQuantity(ctx context.Context, id int64, quantity int64) error {
	if quantity < 0 {
		return domainErrors.ErrInvalidRequest
	}
	const query = `UPDATE books SET quantity=$1, updated_at=NOW() WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, quantity, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *bookRepository) AddStock(ctx context.Context, id int64, delta int64) (int64, error) {
	if delta <= 0 {
		return 0, domainErrors.ErrInvalidRequest
	}
	const query = `UPDATE books SET quantity = quantity + $1, updated_at=NOW() WHERE id=$2 RETURNING quantity`
	var quantity int64
	if err := r.storage.pool.QueryRow(ctx, query, delta, id).Scan(&quantity); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domainErrors.ErrNotFound
		}
		return 0, err
	}
	return quantity, nil
}

func (r *bookRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.storage.pool.QueryRow(ctx, `SELECT COUNT(*) FROM books`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *bookRepository) TopByOrderVolume(ctx context.Context, limit int) ([]model.Book, error) {
	const query = `SELECT b.id, b.title, b.author, b.publisher, b.isbn, b.price, b.discount, b.quantity, b.updated_at
                   FROM books b
                   LEFT JOIN order_lines l ON l.book_id = b.id
                   GROUP BY b.id
                   ORDER BY COALESCE(SUM(l.quantity), 0) DESC, b.id
                   LIMIT $1`
	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Publisher, &b.ISBN, &b.Price, &b.Discount, &b.Quantity, &b.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
