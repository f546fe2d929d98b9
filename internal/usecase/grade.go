package usecase

import (
	"context"
	"fmt"

	domainErrors "github.com/polkiloo/bookshop/internal/domain/errors"
)

// GradeEvictor drops cached grade policies.
type GradeEvictor interface {
	Evict(ctx context.Context, gradeName string)
	EvictAll(ctx context.Context)
}

// GradeUseCase exposes grade cache maintenance.
type GradeUseCase struct {
	evictor GradeEvictor
}

// NewGradeUseCase constructs GradeUseCase.
func NewGradeUseCase(evictor GradeEvictor) *GradeUseCase {
	return &GradeUseCase{evictor: evictor}
}

// Evict drops a single grade so the next lookup reads the table.
func (u *GradeUseCase) Evict(ctx context.Context, gradeName string) error {
	name := NormalizeGradeName(gradeName)
	if name == "" {
		return fmt.Errorf("grade name required: %w", domainErrors.ErrInvalidRequest)
	}
	u.evictor.Evict(ctx, name)
	return nil
}

// EvictAll drops every cached grade.
func (u *GradeUseCase) EvictAll(ctx context.Context) {
	u.evictor.EvictAll(ctx)
}
