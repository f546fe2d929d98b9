package usecase

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/polkiloo/bookshop/internal/config"
	"github.com/polkiloo/bookshop/internal/domain/repository"
	"github.com/polkiloo/bookshop/internal/notification"
	"github.com/polkiloo/bookshop/internal/pricing"
	"github.com/polkiloo/bookshop/internal/worker"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewIdentityUseCase,
	newOrderUseCase,
	NewSubscriptionUseCase,
	func(r *pricing.Resolver) *GradeUseCase { return NewGradeUseCase(r) },
	newStockUseCase,
)

type orderParams struct {
	fx.In

	Orders     repository.OrderRepository
	Books      repository.BookRepository
	Cache      repository.StockCache
	Calculator *pricing.Calculator
	Pool       *worker.Pool
	Fanout     *notification.Fanout
	Config     *config.Config
	Logger     *zap.Logger
}

func newOrderUseCase(p orderParams) *OrderUseCase {
	return NewOrderUseCase(p.Orders, p.Books, p.Cache, p.Calculator, p.Pool, p.Fanout, p.Config.StockCompensation, p.Logger)
}

type stockParams struct {
	fx.In

	Books  repository.BookRepository
	Cache  repository.StockCache
	Pool   *worker.Pool
	Fanout *notification.Fanout
	Logger *zap.Logger
}

func newStockUseCase(p stockParams) *StockUseCase {
	return NewStockUseCase(p.Books, p.Cache, p.Pool, p.Fanout, p.Logger)
}
