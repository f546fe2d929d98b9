package test

import (
	"context"
	"sync"
)

// SchedulerStub runs submitted tasks inline unless Reject is set.
type SchedulerStub struct {
	mu     sync.Mutex
	Reject bool
	// Defer queues tasks instead of running them; RunAll executes the queue.
	Defer   bool
	Names   []string
	pending []func(context.Context)
}

// Submit records the task name and runs or queues it.
func (s *SchedulerStub) Submit(name string, task func(context.Context)) bool {
	s.mu.Lock()
	if s.Reject {
		s.mu.Unlock()
		return false
	}
	s.Names = append(s.Names, name)
	if s.Defer {
		s.pending = append(s.pending, task)
		s.mu.Unlock()
		return true
	}
	s.mu.Unlock()
	task(context.Background())
	return true
}

// RunAll executes deferred tasks in submission order.
func (s *SchedulerStub) RunAll() {
	s.mu.Lock()
	tasks := s.pending
	s.pending = nil
	s.mu.Unlock()
	for _, task := range tasks {
		task(context.Background())
	}
}

// Submitted returns recorded task names.
func (s *SchedulerStub) Submitted() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.Names...)
}

// NotifyCall records a single stock change notification.
type NotifyCall struct {
	BookID   int64
	Quantity int64
}

// NotifierStub records stock change notifications.
type NotifierStub struct {
	mu    sync.Mutex
	Err   error
	Calls []NotifyCall
}

// Notify records the call.
func (s *NotifierStub) Notify(ctx context.Context, bookID, quantity int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, NotifyCall{BookID: bookID, Quantity: quantity})
	return s.Err
}

// Notifications returns recorded calls.
func (s *NotifierStub) Notifications() []NotifyCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]NotifyCall(nil), s.Calls...)
}
