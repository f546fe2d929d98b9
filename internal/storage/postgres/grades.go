package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/bookshop/internal/domain/errors"
	"github.com/polkiloo/bookshop/internal/domain/model"
)

// Rates are stored as NUMERIC fractions and read back in basis points.
func (r *gradeRepository) GetByName(ctx context.Context, name string) (*model.GradeInfo, error) {
	const query = `SELECT grade_name, min_usage, order_count,
                          ROUND(discount_rate * 10000)::BIGINT,
                          ROUND(mileage_rate * 10000)::BIGINT
                   FROM user_grades WHERE grade_name=$1`
	var (
		g                 model.GradeInfo
		discount, mileage int64
	)
	err := r.storage.pool.QueryRow(ctx, query, name).Scan(&g.Name, &g.MinUsage, &g.OrderCount, &discount, &mileage)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	g.DiscountRate = model.Rate(discount)
	g.MileageRate = model.Rate(mileage)
	return &g, nil
}
