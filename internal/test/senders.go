package test

import (
	"context"
	"sync"

	"github.com/polkiloo/bookshop/internal/domain/model"
)

// SenderStub records alerts and fails for configured recipients.
type SenderStub struct {
	mu     sync.Mutex
	Sent   []model.StockAlert
	FailOn map[string]error
	// Block, when set, is received from before each delivery returns.
	Block chan struct{}
}

// Send records the alert unless the recipient is configured to fail.
func (s *SenderStub) Send(ctx context.Context, alert model.StockAlert) error {
	if s.Block != nil {
		select {
		case <-s.Block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.FailOn[alert.Recipient]; ok {
		return err
	}
	s.Sent = append(s.Sent, alert)
	return nil
}

// Alerts returns a snapshot of delivered alerts.
func (s *SenderStub) Alerts() []model.StockAlert {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.StockAlert(nil), s.Sent...)
}
