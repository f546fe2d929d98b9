package pricing

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/polkiloo/bookshop/internal/config"
	"github.com/polkiloo/bookshop/internal/domain/model"
	"github.com/polkiloo/bookshop/internal/domain/repository"
)

// Module wires grade resolution and order price calculation.
var Module = fx.Options(
	fx.Provide(
		newResolver,
		func(r *Resolver) PolicyResolver { return r },
		NewCalculator,
	),
)

type resolverParams struct {
	fx.In

	Grades repository.GradeRepository
	Cache  repository.GradeCache
	Config *config.Config
	Logger *zap.Logger
}

func newResolver(p resolverParams) *Resolver {
	fallback := model.GradeInfo{
		Name:     p.Config.DefaultGrade,
		MinUsage: p.Config.DefaultGradeMinUse,
	}
	return NewResolver(p.Grades, p.Cache, fallback, p.Config.ShippingFee, p.Logger)
}
