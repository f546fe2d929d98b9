package router

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/polkiloo/bookshop/internal/config"
	"github.com/polkiloo/bookshop/internal/server/http/handlers"
	"github.com/polkiloo/bookshop/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.BookstoreFacade, cfg *config.Config, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithDecompressFn(gzip.DefaultDecompressHandle)))

	orderHandler := handlers.NewOrderHandler(facade)
	subscriptionHandler := handlers.NewSubscriptionHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)

	api := engine.Group("/api")

	customer := api.Group("", middleware.UserRequired(facade))
	customer.POST("/orders", orderHandler.Place)
	customer.POST("/orders/quote", orderHandler.Quote)
	customer.GET("/orders", orderHandler.List)
	customer.GET("/orders/:id", orderHandler.Get)
	customer.PATCH("/orders/:id/status", orderHandler.AdvanceStatus)

	customer.POST("/subscriptions", subscriptionHandler.Subscribe)
	customer.GET("/subscriptions", subscriptionHandler.List)
	customer.DELETE("/subscriptions/:id", subscriptionHandler.Unsubscribe)

	operator := api.Group("", middleware.OperatorRequired(cfg.OperatorToken))
	operator.POST("/books/:id/restock", catalogHandler.Restock)
	operator.DELETE("/grades/cache/:name", catalogHandler.EvictGrade)
	operator.DELETE("/grades/cache", catalogHandler.EvictGrades)

	return engine
}
