package pricing

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	domainErrors "github.com/polkiloo/bookshop/internal/domain/errors"
	"github.com/polkiloo/bookshop/internal/domain/model"
	"github.com/polkiloo/bookshop/internal/domain/repository"
)

// Resolver maps grade names to pricing policies through a read-through cache
// over the grade table.
type Resolver struct {
	grades      repository.GradeRepository
	cache       repository.GradeCache
	fallback    model.GradeInfo
	shippingFee int64
	logger      *zap.Logger
	group       singleflight.Group
}

// NewResolver creates resolver. fallback is returned for grades that cannot be
// resolved.
func NewResolver(grades repository.GradeRepository, cache repository.GradeCache, fallback model.GradeInfo, shippingFee int64, logger *zap.Logger) *Resolver {
	return &Resolver{
		grades:      grades,
		cache:       cache,
		fallback:    fallback,
		shippingFee: shippingFee,
		logger:      logger,
	}
}

// Resolve never fails. Cache trouble falls through to the table and an
// unresolvable grade yields the fallback policy.
func (r *Resolver) Resolve(ctx context.Context, gradeName string) Policy {
	if gradeName == "" {
		return NewPolicy(r.fallback, r.shippingFee)
	}

	grade, ok, err := r.cache.Get(ctx, gradeName)
	if err != nil {
		r.logger.Warn("grade cache read failed", zap.String("grade", gradeName), zap.Error(err))
	}
	if ok && err == nil {
		return NewPolicy(*grade, r.shippingFee)
	}

	v, _, _ := r.group.Do(gradeName, func() (any, error) {
		return r.load(context.WithoutCancel(ctx), gradeName), nil
	})
	return NewPolicy(v.(model.GradeInfo), r.shippingFee)
}

func (r *Resolver) load(ctx context.Context, gradeName string) model.GradeInfo {
	grade, err := r.grades.GetByName(ctx, gradeName)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			r.logger.Info("unknown grade, using fallback", zap.String("grade", gradeName), zap.String("fallback", r.fallback.Name))
		} else {
			r.logger.Error("grade lookup failed, using fallback", zap.String("grade", gradeName), zap.Error(err))
		}
		return r.fallback
	}

	if err := r.cache.Set(ctx, *grade); err != nil {
		r.logger.Warn("grade cache write failed", zap.String("grade", gradeName), zap.Error(err))
	}
	return *grade
}

// Evict drops a single grade from the cache. Failures are logged only.
func (r *Resolver) Evict(ctx context.Context, gradeName string) {
	if err := r.cache.Delete(ctx, gradeName); err != nil {
		r.logger.Warn("grade cache evict failed", zap.String("grade", gradeName), zap.Error(err))
	}
}

// EvictAll drops every cached grade. Failures are logged only.
func (r *Resolver) EvictAll(ctx context.Context) {
	if err := r.cache.DeleteAll(ctx); err != nil {
		r.logger.Warn("grade cache clear failed", zap.Error(err))
	}
}
