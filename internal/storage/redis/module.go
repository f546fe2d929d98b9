package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/polkiloo/bookshop/internal/config"
	"github.com/polkiloo/bookshop/internal/domain/repository"
)

// Module wires the Redis client and the caches built on it.
var Module = fx.Options(
	fx.Provide(
		NewClient,
		func(c *redis.Client) *BookCache { return NewBookCache(c) },
		func(c *redis.Client, cfg *config.Config) *GradeCache { return NewGradeCache(c, cfg.GradeCacheTTL) },
		func(c *BookCache) repository.StockCache { return c },
		func(c *GradeCache) repository.GradeCache { return c },
	),
	fx.Invoke(registerLifecycle),
)

func registerLifecycle(lc fx.Lifecycle, client *redis.Client) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
}
