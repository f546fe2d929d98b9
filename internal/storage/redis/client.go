package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/polkiloo/bookshop/internal/config"
)

// NewClient builds the Redis client. An unreachable server is logged and
// tolerated; commands fail individually and callers fall back to PostgreSQL.
func NewClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unavailable at start", zap.String("addr", cfg.RedisAddress), zap.Error(err))
	}

	return client
}
