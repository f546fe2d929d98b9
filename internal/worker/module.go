package worker

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/polkiloo/bookshop/internal/config"
	"github.com/polkiloo/bookshop/internal/domain/repository"
)

// Module provides the background task pool and the stock cache warmer.
// Their lifecycle is driven by the app module.
var Module = fx.Provide(
	newPool,
	newCacheWarmer,
)

type poolParams struct {
	fx.In

	Config *config.Config
	Logger *zap.Logger
}

func newPool(p poolParams) *Pool {
	return NewPool(p.Config.WorkerPoolSize, p.Config.TaskQueueSize, p.Logger)
}

type warmerParams struct {
	fx.In

	Books  repository.BookRepository
	Cache  repository.StockCache
	Config *config.Config
	Logger *zap.Logger
}

func newCacheWarmer(p warmerParams) *CacheWarmer {
	return NewCacheWarmer(
		p.Books,
		p.Cache,
		p.Config.CacheWarmInterval,
		p.Config.CacheWarmRatio,
		p.Config.StockCacheTTL,
		p.Config.WorkerPoolSize,
		p.Logger,
	)
}
