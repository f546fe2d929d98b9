package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/bookshop/internal/domain/errors"
	"github.com/polkiloo/bookshop/internal/domain/model"
)

// StockCacheStub is an in-memory stock cache with an atomic decrement.
type StockCacheStub struct {
	mu         sync.Mutex
	Books      map[int64]model.Book
	TTLs       map[int64]time.Duration
	GetErr     error
	PutErr     error
	IncErr     error
	Increments []int64
	// DecrementFn overrides Decrement, used to simulate races and expiry.
	DecrementFn func(context.Context, int64, int64) (int64, error)
}

// NewStockCacheStub constructs cache seeded with books.
func NewStockCacheStub(books ...model.Book) *StockCacheStub {
	s := &StockCacheStub{Books: make(map[int64]model.Book), TTLs: make(map[int64]time.Duration)}
	for _, b := range books {
		s.Books[b.ID] = b
	}
	return s
}

// Get returns cached book.
func (s *StockCacheStub) Get(ctx context.Context, id int64) (*model.Book, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		return nil, false, s.GetErr
	}
	b, ok := s.Books[id]
	if !ok {
		return nil, false, nil
	}
	return &b, true, nil
}

// Put stores the whole book.
func (s *StockCacheStub) Put(ctx context.Context, book model.Book, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.PutErr != nil {
		return s.PutErr
	}
	s.Books[book.ID] = book
	s.TTLs[book.ID] = ttl
	return nil
}

// Refresh stores descriptive fields and keeps an existing counter.
func (s *StockCacheStub) Refresh(ctx context.Context, book model.Book, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.PutErr != nil {
		return s.PutErr
	}
	if existing, ok := s.Books[book.ID]; ok {
		book.Quantity = existing.Quantity
	}
	s.Books[book.ID] = book
	s.TTLs[book.ID] = ttl
	return nil
}

// GetQuantity returns cached counter.
func (s *StockCacheStub) GetQuantity(ctx context.Context, id int64) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		return 0, false, s.GetErr
	}
	b, ok := s.Books[id]
	if !ok {
		return 0, false, nil
	}
	return b.Quantity, true, nil
}

// Decrement checks and subtracts under the stub lock.
func (s *StockCacheStub) Decrement(ctx context.Context, id int64, n int64) (int64, error) {
	if s.DecrementFn != nil {
		return s.DecrementFn(ctx, id, n)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.Books[id]
	if !ok {
		return 0, domainErrors.ErrNotFound
	}
	if b.Quantity < n {
		return b.Quantity, domainErrors.ErrInsufficientStock
	}
	b.Quantity -= n
	s.Books[id] = b
	return b.Quantity, nil
}

// Increment adds to an existing counter.
func (s *StockCacheStub) Increment(ctx context.Context, id int64, n int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Increments = append(s.Increments, n)
	if s.IncErr != nil {
		return 0, s.IncErr
	}
	b, ok := s.Books[id]
	if !ok {
		return 0, domainErrors.ErrNotFound
	}
	b.Quantity += n
	s.Books[id] = b
	return b.Quantity, nil
}

// Evict drops cached entry.
func (s *StockCacheStub) Evict(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Books, id)
	delete(s.TTLs, id)
	return nil
}

// Quantity reports cached quantity for assertions, -1 when absent.
func (s *StockCacheStub) Quantity(id int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.Books[id]; ok {
		return b.Quantity
	}
	return -1
}

// IncrementCalls returns recorded increments.
func (s *StockCacheStub) IncrementCalls() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.Increments...)
}

// GradeCacheStub is an in-memory grade cache.
type GradeCacheStub struct {
	mu        sync.Mutex
	Entries   map[string]model.GradeInfo
	GetErr    error
	SetErr    error
	DeleteErr error
	Sets      int
	Deletes   []string
	Cleared   int
}

// NewGradeCacheStub constructs empty cache.
func NewGradeCacheStub() *GradeCacheStub {
	return &GradeCacheStub{Entries: make(map[string]model.GradeInfo)}
}

// Get returns cached grade.
func (s *GradeCacheStub) Get(ctx context.Context, name string) (*model.GradeInfo, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		return nil, false, s.GetErr
	}
	g, ok := s.Entries[name]
	if !ok {
		return nil, false, nil
	}
	return &g, true, nil
}

// Set stores grade.
func (s *GradeCacheStub) Set(ctx context.Context, grade model.GradeInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sets++
	if s.SetErr != nil {
		return s.SetErr
	}
	s.Entries[grade.Name] = grade
	return nil
}

// Delete removes grade.
func (s *GradeCacheStub) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Deletes = append(s.Deletes, name)
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	delete(s.Entries, name)
	return nil
}

// DeleteAll clears every grade.
func (s *GradeCacheStub) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Cleared++
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	s.Entries = make(map[string]model.GradeInfo)
	return nil
}

// SetCount reports how many writes reached the cache.
func (s *GradeCacheStub) SetCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Sets
}
