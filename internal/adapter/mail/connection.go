package mail

import (
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	exchangeType = "topic"
	dialAttempts = 5
)

var (
	dialAMQP  = amqp.Dial
	dialPause = 2 * time.Second
)

// Connect dials the broker with a few retries, opens a channel and declares
// the durable topic exchange.
func Connect(url, exchange string, logger *zap.Logger) (*amqp.Connection, *amqp.Channel, error) {
	var (
		conn *amqp.Connection
		err  error
	)
	for i := 0; i < dialAttempts; i++ {
		conn, err = dialAMQP(url)
		if err == nil {
			break
		}
		logger.Warn("connect to rabbitmq failed", zap.Int("attempt", i+1), zap.Error(err))
		if i < dialAttempts-1 {
			time.Sleep(dialPause)
		}
	}
	if err != nil {
		return nil, nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, exchangeType, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return conn, ch, nil
}
