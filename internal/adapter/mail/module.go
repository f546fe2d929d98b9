package mail

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/polkiloo/bookshop/internal/config"
	"github.com/polkiloo/bookshop/internal/notification"
)

// Module provides the notification delivery channel. Without AMQP_URL alerts
// are only logged.
var Module = fx.Provide(newSender)

type senderParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *zap.Logger
}

func newSender(p senderParams) (notification.Sender, error) {
	if p.Config.AMQPURL == "" {
		p.Logger.Info("AMQP_URL not set, stock alerts are logged only")
		return NewLogSender(p.Logger), nil
	}

	conn, ch, err := Connect(p.Config.AMQPURL, p.Config.NotifyExchange, p.Logger)
	if err != nil {
		return nil, err
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			_ = ch.Close()
			return conn.Close()
		},
	})
	return NewAMQPSender(ch, p.Config.NotifyExchange, p.Logger), nil
}
