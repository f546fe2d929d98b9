package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	domainErrors "github.com/polkiloo/bookshop/internal/domain/errors"
	"github.com/polkiloo/bookshop/internal/domain/model"
	"github.com/polkiloo/bookshop/internal/domain/repository"
)

// PriceCalculator prices an order for a grade.
type PriceCalculator interface {
	Calculate(ctx context.Context, gradeName string, originalAmount, usedPoints int64) model.OrderCalculationResult
}

// TaskScheduler accepts background work without blocking.
type TaskScheduler interface {
	Submit(name string, task func(context.Context)) bool
}

// StockNotifier starts notification delivery for a new stock level.
type StockNotifier interface {
	Notify(ctx context.Context, bookID, quantity int64) error
}

const (
	taskStockSync         = "stock_sync"
	taskStockNotification = "stock_notification"
)

// OrderUseCase places orders against the cached and the authoritative stock.
type OrderUseCase struct {
	orders     repository.OrderRepository
	books      repository.BookRepository
	cache      repository.StockCache
	calculator PriceCalculator
	tasks      TaskScheduler
	notifier   StockNotifier
	compensate bool
	logger     *zap.Logger
	tracer     trace.Tracer
}

// NewOrderUseCase constructs OrderUseCase. When compensate is set a cache
// decrement is given back if the order cannot be persisted.
func NewOrderUseCase(
	orders repository.OrderRepository,
	books repository.BookRepository,
	cache repository.StockCache,
	calculator PriceCalculator,
	tasks TaskScheduler,
	notifier StockNotifier,
	compensate bool,
	logger *zap.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orders:     orders,
		books:      books,
		cache:      cache,
		calculator: calculator,
		tasks:      tasks,
		notifier:   notifier,
		compensate: compensate,
		logger:     logger,
		tracer:     otel.Tracer("bookshop/usecase"),
	}
}

type placement struct {
	state  model.PlacementState
	logger *zap.Logger
}

func (p *placement) advance(next model.PlacementState) {
	p.logger.Debug("order placement state", zap.String("from", string(p.state)), zap.String("to", string(next)))
	p.state = next
}

type reservation struct {
	cacheHit  bool
	remaining int64
}

// Quote prices the request without reserving stock.
func (u *OrderUseCase) Quote(ctx context.Context, user *model.User, req model.OrderRequest) (*model.OrderCalculationResult, error) {
	points, err := ValidateOrderRequest(user, req)
	if err != nil {
		return nil, err
	}
	calc := u.calculator.Calculate(ctx, user.GradeName, req.UnitPrice*req.Quantity, points)
	return &calc, nil
}

// PlaceOrder validates and prices the request, reserves stock, persists the
// order and schedules the stock sync and the notification fanout.
func (u *OrderUseCase) PlaceOrder(ctx context.Context, user *model.User, req model.OrderRequest) (*model.PlacedOrder, error) {
	ctx, span := u.tracer.Start(ctx, "place_order", trace.WithAttributes(
		attribute.Int64("book.id", req.BookID),
		attribute.Int64("order.quantity", req.Quantity),
	))
	defer span.End()

	p := &placement{state: model.PlacementValidating, logger: u.logger.With(zap.Int64("book_id", req.BookID))}
	placed, err := u.place(ctx, p, user, req)
	if err != nil {
		p.advance(model.PlacementFailed)
		span.RecordError(err)
		span.SetStatus(codes.Error, "order placement failed")
		return nil, err
	}
	span.SetAttributes(
		attribute.Int64("order.id", placed.Order.ID),
		attribute.Bool("stock.cache_hit", placed.CacheHit),
	)
	return placed, nil
}

func (u *OrderUseCase) place(ctx context.Context, p *placement, user *model.User, req model.OrderRequest) (*model.PlacedOrder, error) {
	points, err := ValidateOrderRequest(user, req)
	if err != nil {
		return nil, err
	}
	calc := u.calculator.Calculate(ctx, user.GradeName, req.UnitPrice*req.Quantity, points)

	draft := model.OrderDraft{
		UserID:        user.ID,
		TotalPrice:    calc.FinalAmount,
		UsedPoints:    calc.UsedPoints,
		EarnedMileage: calc.EarnedMileage,
		GradeName:     calc.GradeName,
		Lines: []model.OrderLine{{
			BookID:    req.BookID,
			Quantity:  req.Quantity,
			UnitPrice: req.UnitPrice,
		}},
	}

	res, err := u.reserveFromCache(ctx, req)
	if err != nil {
		return nil, err
	}

	var order *model.Order
	if res.cacheHit {
		p.advance(model.PlacementStockReserved)
		order, err = u.orders.Create(ctx, draft)
		if err != nil {
			u.logger.Error("order persist failed after cache reservation",
				zap.Int64("user_id", user.ID),
				zap.Int64("book_id", req.BookID),
				zap.Int64("quantity", req.Quantity),
				zap.Error(err),
			)
			u.giveBack(ctx, req.BookID, req.Quantity)
			return nil, fmt.Errorf("persist order: %w", err)
		}
	} else {
		order, res.remaining, err = u.placeUncached(ctx, draft, req)
		if err != nil {
			return nil, err
		}
		p.advance(model.PlacementStockReserved)
	}
	p.advance(model.PlacementPersisted)

	p.advance(model.PlacementSyncing)
	u.scheduleFollowUps(req.BookID, res.remaining, res.cacheHit)
	p.advance(model.PlacementDone)

	u.logger.Info("order placed",
		zap.Int64("order_id", order.ID),
		zap.Int64("user_id", user.ID),
		zap.Int64("book_id", req.BookID),
		zap.Int64("remaining", res.remaining),
		zap.Bool("cache_hit", res.cacheHit),
	)

	return &model.PlacedOrder{
		Order:          order,
		Calculation:    calc,
		CacheHit:       res.cacheHit,
		RemainingStock: res.remaining,
	}, nil
}

// reserveFromCache decrements the cached counter. A zero reservation with
// cacheHit unset means the cache cannot serve this book and the store must.
func (u *OrderUseCase) reserveFromCache(ctx context.Context, req model.OrderRequest) (reservation, error) {
	ctx, span := u.tracer.Start(ctx, "reserve_stock_cache")
	defer span.End()

	available, found, err := u.cache.GetQuantity(ctx, req.BookID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrCorruptEntry) {
			u.evictCorrupt(ctx, req.BookID)
			return reservation{}, nil
		}
		// A live counter must never be bypassed by the store path.
		span.RecordError(err)
		return reservation{}, fmt.Errorf("read stock cache: %w", err)
	}
	if !found {
		return reservation{}, nil
	}
	if available < req.Quantity {
		return reservation{}, fmt.Errorf("book %d has %d left: %w", req.BookID, available, domainErrors.ErrInsufficientStock)
	}

	remaining, err := u.cache.Decrement(ctx, req.BookID, req.Quantity)
	switch {
	case err == nil:
		return reservation{cacheHit: true, remaining: remaining}, nil
	case errors.Is(err, domainErrors.ErrNotFound):
		return reservation{}, nil
	case errors.Is(err, domainErrors.ErrCorruptEntry):
		u.evictCorrupt(ctx, req.BookID)
		return reservation{}, nil
	case errors.Is(err, domainErrors.ErrInsufficientStock):
		return reservation{}, fmt.Errorf("book %d sold out concurrently: %w", req.BookID, err)
	default:
		span.RecordError(err)
		return reservation{}, fmt.Errorf("reserve stock: %w", err)
	}
}

func (u *OrderUseCase) evictCorrupt(ctx context.Context, bookID int64) {
	u.logger.Warn("corrupt stock cache entry evicted", zap.Int64("book_id", bookID))
	if err := u.cache.Evict(ctx, bookID); err != nil {
		u.logger.Warn("stock cache evict failed", zap.Int64("book_id", bookID), zap.Error(err))
	}
}

// placeUncached checks the authoritative stock and persists the order with
// the conditional stock update as its commit point.
func (u *OrderUseCase) placeUncached(ctx context.Context, draft model.OrderDraft, req model.OrderRequest) (*model.Order, int64, error) {
	book, err := u.books.GetByID(ctx, req.BookID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, 0, fmt.Errorf("book %d: %w", req.BookID, err)
		}
		return nil, 0, fmt.Errorf("load book: %w", err)
	}
	if book.Quantity < req.Quantity {
		return nil, 0, fmt.Errorf("book %d has %d left: %w", req.BookID, book.Quantity, domainErrors.ErrInsufficientStock)
	}

	order, remaining, err := u.orders.CreateReservingStock(ctx, draft)
	if err != nil {
		return nil, 0, fmt.Errorf("persist order: %w", err)
	}
	return order, remaining, nil
}

func (u *OrderUseCase) giveBack(ctx context.Context, bookID, quantity int64) {
	if !u.compensate {
		return
	}
	restored, err := u.cache.Increment(context.WithoutCancel(ctx), bookID, quantity)
	if err != nil {
		u.logger.Error("stock compensation failed",
			zap.Int64("book_id", bookID),
			zap.Int64("quantity", quantity),
			zap.Error(err),
		)
		return
	}
	u.logger.Info("stock compensated", zap.Int64("book_id", bookID), zap.Int64("quantity", restored))
}

// scheduleFollowUps hands the authoritative sync and the fanout to the task
// pool. Only a cache reservation needs the sync; an uncached order already
// updated the row.
func (u *OrderUseCase) scheduleFollowUps(bookID, remaining int64, syncStore bool) {
	if syncStore {
		u.tasks.Submit(taskStockSync, func(ctx context.Context) {
			u.syncStock(ctx, bookID, remaining)
		})
	}
	u.tasks.Submit(taskStockNotification, func(ctx context.Context) {
		if err := u.notifier.Notify(ctx, bookID, remaining); err != nil {
			u.logger.Warn("stock notification failed", zap.Int64("book_id", bookID), zap.Error(err))
		}
	})
}

// syncStock writes the cached counter to the store. The counter is re-read
// so that out of order syncs still converge on the latest value.
func (u *OrderUseCase) syncStock(ctx context.Context, bookID, remaining int64) {
	quantity := remaining
	if current, ok, err := u.cache.GetQuantity(ctx, bookID); err == nil && ok {
		quantity = current
	}
	if err := u.books.SetQuantity(ctx, bookID, quantity); err != nil {
		u.logger.Error("stock sync failed",
			zap.Int64("book_id", bookID),
			zap.Int64("quantity", quantity),
			zap.Error(err),
		)
	}
}

// ListByUser returns orders of the user, newest first.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// Get returns an order owned by the user.
func (u *OrderUseCase) Get(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainErrors.ErrNotFound
	}
	return order, nil
}

// AdvanceStatus moves an order owned by the user one step forward in its
// lifecycle.
func (u *OrderUseCase) AdvanceStatus(ctx context.Context, userID, orderID int64, next model.OrderStatus) error {
	if !next.Valid() {
		return fmt.Errorf("unknown status %q: %w", next, domainErrors.ErrInvalidRequest)
	}
	order, err := u.Get(ctx, userID, orderID)
	if err != nil {
		return err
	}
	if !order.Status.CanTransitionTo(next) {
		return fmt.Errorf("%s to %s: %w", order.Status, next, domainErrors.ErrInvalidTransition)
	}
	return u.orders.UpdateStatus(ctx, orderID, order.Status, next)
}
