package repository

import (
	"context"

	"github.com/polkiloo/bookshop/internal/domain/model"
)

// GradeRepository reads the authoritative grade table.
type GradeRepository interface {
	GetByName(ctx context.Context, name string) (*model.GradeInfo, error)
}
