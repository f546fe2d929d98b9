package notification

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	domainErrors "github.com/polkiloo/bookshop/internal/domain/errors"
	"github.com/polkiloo/bookshop/internal/domain/model"
	"github.com/polkiloo/bookshop/internal/domain/repository"
)

// Sender delivers a rendered alert. It either succeeds or returns an error.
type Sender interface {
	Send(ctx context.Context, alert model.StockAlert) error
}

// Report summarises a finished fanout.
type Report struct {
	Matched int
	Sent    int
	Skipped int
	Failed  int
}

// Dispatch is a running fanout.
type Dispatch struct {
	group   errgroup.Group
	matched int
	sent    atomic.Int64
	skipped atomic.Int64
	failed  atomic.Int64
}

// Wait blocks until every delivery finished.
func (d *Dispatch) Wait() Report {
	_ = d.group.Wait()
	return Report{
		Matched: d.matched,
		Sent:    int(d.sent.Load()),
		Skipped: int(d.skipped.Load()),
		Failed:  int(d.failed.Load()),
	}
}

// Fanout sends stock alerts to every subscriber whose threshold is reached.
type Fanout struct {
	subscriptions repository.SubscriptionRepository
	books         repository.BookRepository
	sender        Sender
	sem           *semaphore.Weighted
	logger        *zap.Logger
	tracer        trace.Tracer
}

// NewFanout creates fanout delivering at most concurrency alerts at once.
func NewFanout(subscriptions repository.SubscriptionRepository, books repository.BookRepository, sender Sender, concurrency int, logger *zap.Logger) *Fanout {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Fanout{
		subscriptions: subscriptions,
		books:         books,
		sender:        sender,
		sem:           semaphore.NewWeighted(int64(concurrency)),
		logger:        logger,
		tracer:        otel.Tracer("bookshop/notification"),
	}
}

// Notify runs a fanout and blocks until every delivery finished. It is meant
// to run on the task pool so that pool shutdown drains deliveries too.
func (f *Fanout) Notify(ctx context.Context, bookID, quantity int64) error {
	d, err := f.NotifyStockChange(ctx, bookID, quantity)
	if err != nil {
		return err
	}
	report := d.Wait()
	f.logger.Debug("stock notification finished",
		zap.Int64("book_id", bookID),
		zap.Int("sent", report.Sent),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed),
	)
	return nil
}

// NotifyStockChange loads matching subscriptions and starts one delivery per
// subscription. It returns once every delivery is scheduled.
func (f *Fanout) NotifyStockChange(ctx context.Context, bookID, quantity int64) (*Dispatch, error) {
	ctx, span := f.tracer.Start(ctx, "stock_notification_fanout")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("book.id", bookID),
		attribute.Int64("book.quantity", quantity),
	)

	targets, err := f.subscriptions.ListActiveForStock(ctx, bookID, quantity)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "subscription lookup failed")
		return nil, fmt.Errorf("list subscriptions for book %d: %w", bookID, err)
	}

	d := &Dispatch{matched: len(targets)}
	span.SetAttributes(attribute.Int("notification.matched", len(targets)))
	if len(targets) == 0 {
		return d, nil
	}

	title := f.bookTitle(ctx, bookID)
	for _, target := range targets {
		target := target
		d.group.Go(func() error {
			f.deliver(ctx, d, target, title, quantity)
			return nil
		})
	}

	f.logger.Info("stock notification scheduled",
		zap.Int64("book_id", bookID),
		zap.Int64("quantity", quantity),
		zap.Int("subscriptions", len(targets)),
	)
	return d, nil
}

func (f *Fanout) bookTitle(ctx context.Context, bookID int64) string {
	book, err := f.books.GetByID(ctx, bookID)
	if err != nil {
		if !errors.Is(err, domainErrors.ErrNotFound) {
			f.logger.Warn("book title lookup failed", zap.Int64("book_id", bookID), zap.Error(err))
		}
		return fmt.Sprintf("book #%d", bookID)
	}
	return book.Title
}

func (f *Fanout) deliver(ctx context.Context, d *Dispatch, target model.SubscriptionTarget, title string, quantity int64) {
	log := f.logger.With(zap.Int64("subscription_id", target.ID), zap.Int64("book_id", target.BookID))

	defer func() {
		if r := recover(); r != nil {
			d.failed.Add(1)
			log.Error("stock notification panicked", zap.Any("panic", r))
		}
	}()

	if err := f.sem.Acquire(ctx, 1); err != nil {
		d.failed.Add(1)
		log.Warn("stock notification abandoned", zap.Error(err))
		return
	}
	defer f.sem.Release(1)

	// The subscription may have been switched off since it was listed.
	sub, err := f.subscriptions.GetByID(ctx, target.ID)
	if err != nil || !sub.Active {
		d.skipped.Add(1)
		if err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
			log.Warn("subscription recheck failed", zap.Error(err))
		}
		return
	}

	alert := model.StockAlert{
		SubscriptionID: target.ID,
		UserID:         target.UserID,
		BookID:         target.BookID,
		Recipient:      target.Email,
		Subject:        Subject(title),
		Body:           Body(title, quantity),
		CurrentStock:   quantity,
	}
	if err := f.sender.Send(ctx, alert); err != nil {
		d.failed.Add(1)
		log.Warn("stock notification delivery failed", zap.String("recipient", target.Email), zap.Error(err))
		return
	}
	d.sent.Add(1)

	entry := model.NotificationLog{
		SubscriptionID: target.ID,
		UserID:         target.UserID,
		BookID:         target.BookID,
		Threshold:      sub.Threshold,
		CurrentStock:   quantity,
		Message:        alert.Body,
	}
	if err := f.subscriptions.LogDispatch(ctx, entry); err != nil {
		log.Warn("notification log write failed", zap.Error(err))
	}
}
