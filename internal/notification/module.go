package notification

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/polkiloo/bookshop/internal/config"
	"github.com/polkiloo/bookshop/internal/domain/repository"
)

// Module wires stock notification fanout. A Sender must be provided elsewhere.
var Module = fx.Provide(newFanout)

type fanoutParams struct {
	fx.In

	Subscriptions repository.SubscriptionRepository
	Books         repository.BookRepository
	Sender        Sender
	Config        *config.Config
	Logger        *zap.Logger
}

func newFanout(p fanoutParams) *Fanout {
	return NewFanout(p.Subscriptions, p.Books, p.Sender, p.Config.DispatchConcurrency, p.Logger)
}
