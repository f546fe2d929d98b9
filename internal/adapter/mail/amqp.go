package mail

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/polkiloo/bookshop/internal/domain/model"
)

// RoutingKey is the topic under which stock alert mail jobs are published.
const RoutingKey = "mail.stock"

// Publisher is the subset of *amqp.Channel used for delivery.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// job is the mail job consumed by the mailer service.
type job struct {
	ID             string    `json:"id"`
	To             string    `json:"to"`
	Subject        string    `json:"subject"`
	Body           string    `json:"body"`
	UserID         int64     `json:"user_id"`
	BookID         int64     `json:"book_id"`
	SubscriptionID int64     `json:"subscription_id"`
	CurrentStock   int64     `json:"current_stock"`
	CreatedAt      time.Time `json:"created_at"`
}

// AMQPSender publishes stock alerts as mail jobs to a topic exchange.
type AMQPSender struct {
	publisher Publisher
	exchange  string
	logger    *zap.Logger
	now       func() time.Time
}

// NewAMQPSender creates sender over an open channel.
func NewAMQPSender(publisher Publisher, exchange string, logger *zap.Logger) *AMQPSender {
	return &AMQPSender{publisher: publisher, exchange: exchange, logger: logger, now: time.Now}
}

// Send publishes a single alert.
func (s *AMQPSender) Send(ctx context.Context, alert model.StockAlert) error {
	now := s.now().UTC()
	msg := job{
		ID:             uuid.NewString(),
		To:             alert.Recipient,
		Subject:        alert.Subject,
		Body:           alert.Body,
		UserID:         alert.UserID,
		BookID:         alert.BookID,
		SubscriptionID: alert.SubscriptionID,
		CurrentStock:   alert.CurrentStock,
		CreatedAt:      now,
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal mail job: %w", err)
	}

	err = s.publisher.PublishWithContext(ctx, s.exchange, RoutingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.ID,
		Timestamp:    now,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish mail job for subscription %d: %w", alert.SubscriptionID, err)
	}
	s.logger.Debug("mail job published", zap.String("message_id", msg.ID), zap.Int64("subscription_id", alert.SubscriptionID))
	return nil
}
