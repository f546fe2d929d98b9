package mail

import (
	"context"

	"go.uber.org/zap"

	"github.com/polkiloo/bookshop/internal/domain/model"
)

// LogSender writes alerts to the log instead of delivering them.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender constructs LogSender.
func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send logs the alert.
func (s *LogSender) Send(ctx context.Context, alert model.StockAlert) error {
	s.logger.Info("stock alert",
		zap.String("to", alert.Recipient),
		zap.String("subject", alert.Subject),
		zap.String("body", alert.Body),
		zap.Int64("book_id", alert.BookID),
		zap.Int64("current_stock", alert.CurrentStock),
	)
	return nil
}
