package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/bookshop/internal/adapter/mail"
	"github.com/polkiloo/bookshop/internal/app"
	"github.com/polkiloo/bookshop/internal/config"
	"github.com/polkiloo/bookshop/internal/logger"
	"github.com/polkiloo/bookshop/internal/notification"
	"github.com/polkiloo/bookshop/internal/pricing"
	"github.com/polkiloo/bookshop/internal/server/http/router"
	"github.com/polkiloo/bookshop/internal/storage/postgres"
	"github.com/polkiloo/bookshop/internal/storage/redis"
	"github.com/polkiloo/bookshop/internal/usecase"
	"github.com/polkiloo/bookshop/internal/worker"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		postgres.Module,
		redis.Module,
		pricing.Module,
		mail.Module,
		notification.Module,
		worker.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
