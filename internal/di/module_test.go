package di

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/polkiloo/bookshop/internal/app"
	"github.com/polkiloo/bookshop/internal/config"
	"github.com/polkiloo/bookshop/internal/domain/model"
	"github.com/polkiloo/bookshop/internal/domain/repository"
	"github.com/polkiloo/bookshop/internal/notification"
	"github.com/polkiloo/bookshop/internal/storage/postgres"
	"github.com/polkiloo/bookshop/internal/test"
	"github.com/polkiloo/bookshop/internal/worker"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := &config.Config{
		RunAddress:          ":0",
		DatabaseURI:         "postgres://stub",
		RedisAddress:        mr.Addr(),
		WorkerPoolSize:      1,
		TaskQueueSize:       1,
		DispatchConcurrency: 1,
		ShutdownTimeout:     time.Millisecond,
		GradeCacheTTL:       time.Minute,
		StockCacheTTL:       time.Minute,
		CacheWarmInterval:   time.Hour,
		CacheWarmRatio:      0.2,
		ShippingFee:         3000,
		DefaultGrade:        "BRONZE",
		DefaultGradeMinUse:  50000,
	}

	var (
		facade *app.BookstoreFacade
		engine *gin.Engine
		pool   *worker.Pool
		sender notification.Sender
	)
	fxApp := fx.New(
		fx.NopLogger,
		fx.Provide(func() context.Context { return context.Background() }),
		Module(
			fx.Replace(cfg),
			fx.Replace(zap.NewNop()),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(fx.Annotate(test.NewUserRepositoryStub(), fx.As(new(repository.UserRepository)))),
			fx.Replace(fx.Annotate(test.NewBookRepositoryStub(model.Book{ID: 1}), fx.As(new(repository.BookRepository)))),
			fx.Replace(fx.Annotate(&test.OrderRepositoryStub{}, fx.As(new(repository.OrderRepository)))),
			fx.Replace(fx.Annotate(test.NewGradeRepositoryStub(), fx.As(new(repository.GradeRepository)))),
			fx.Replace(fx.Annotate(test.NewSubscriptionRepositoryStub(), fx.As(new(repository.SubscriptionRepository)))),
		),
		fx.Populate(&facade, &engine, &pool, &sender),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil || engine == nil || pool == nil {
		t.Fatal("expected facade, router and task pool instances")
	}
	if sender == nil {
		t.Fatal("expected log sender without AMQP_URL")
	}
}
