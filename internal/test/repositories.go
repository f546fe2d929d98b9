package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/bookshop/internal/domain/errors"
	"github.com/polkiloo/bookshop/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	mu   sync.Mutex
	ByID map[int64]*model.User
	Err  error
}

// NewUserRepositoryStub constructs stub repository seeded with users.
func NewUserRepositoryStub(users ...model.User) *UserRepositoryStub {
	s := &UserRepositoryStub{ByID: make(map[int64]*model.User)}
	for i := range users {
		u := users[i]
		s.ByID[u.ID] = &u
	}
	return s
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// SetQuantityCall records a single authoritative sync.
type SetQuantityCall struct {
	BookID   int64
	Quantity int64
}

// BookRepositoryStub keeps books in memory.
type BookRepositoryStub struct {
	mu       sync.Mutex
	Books    map[int64]*model.Book
	Top      []model.Book
	Err      error
	SetErr   error
	TopErr   error
	SetCalls []SetQuantityCall
}

// NewBookRepositoryStub constructs stub repository seeded with books.
func NewBookRepositoryStub(books ...model.Book) *BookRepositoryStub {
	s := &BookRepositoryStub{Books: make(map[int64]*model.Book)}
	for i := range books {
		b := books[i]
		s.Books[b.ID] = &b
	}
	return s
}

// GetByID returns a copy of the stored book.
func (s *BookRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if b, ok := s.Books[id]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// SetQuantity records the call and overwrites the quantity.
func (s *BookRepositoryStub) SetQuantity(ctx context.Context, id int64, quantity int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SetCalls = append(s.SetCalls, SetQuantityCall{BookID: id, Quantity: quantity})
	if s.SetErr != nil {
		return s.SetErr
	}
	if b, ok := s.Books[id]; ok {
		b.Quantity = quantity
		return nil
	}
	return domainErrors.ErrNotFound
}

// AddStock increases the stored quantity.
func (s *BookRepositoryStub) AddStock(ctx context.Context, id int64, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	b, ok := s.Books[id]
	if !ok {
		return 0, domainErrors.ErrNotFound
	}
	b.Quantity += delta
	return b.Quantity, nil
}

// Count returns number of stored books.
func (s *BookRepositoryStub) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	return int64(len(s.Books)), nil
}

// TopByOrderVolume returns the configured ranking truncated to limit.
func (s *BookRepositoryStub) TopByOrderVolume(ctx context.Context, limit int) ([]model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.TopErr != nil {
		return nil, s.TopErr
	}
	if limit > len(s.Top) {
		limit = len(s.Top)
	}
	return append([]model.Book(nil), s.Top[:limit]...), nil
}

// Quantity reports stored quantity for assertions.
func (s *BookRepositoryStub) Quantity(id int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.Books[id]; ok {
		return b.Quantity
	}
	return -1
}

// Calls returns a snapshot of recorded syncs.
func (s *BookRepositoryStub) Calls() []SetQuantityCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SetQuantityCall(nil), s.SetCalls...)
}

// OrderRepositoryStub provides controllable order persistence.
type OrderRepositoryStub struct {
	CreateFn          func(context.Context, model.OrderDraft) (*model.Order, error)
	CreateReservingFn func(context.Context, model.OrderDraft) (*model.Order, int64, error)
	GetFn             func(context.Context, int64) (*model.Order, error)
	ListFn            func(context.Context, int64) ([]model.Order, error)
	UpdateStatusFn    func(context.Context, int64, model.OrderStatus, model.OrderStatus) error
}

func orderFromDraft(draft model.OrderDraft) *model.Order {
	return &model.Order{
		ID:            1,
		UserID:        draft.UserID,
		Status:        model.OrderStatusReady,
		TotalPrice:    draft.TotalPrice,
		UsedPoints:    draft.UsedPoints,
		EarnedMileage: draft.EarnedMileage,
		GradeName:     draft.GradeName,
		CreatedAt:     time.Now(),
		Lines:         draft.Lines,
	}
}

// Create delegates to CreateFn or echoes the draft.
func (s OrderRepositoryStub) Create(ctx context.Context, draft model.OrderDraft) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, draft)
	}
	return orderFromDraft(draft), nil
}

// CreateReservingStock delegates to CreateReservingFn or echoes the draft.
func (s OrderRepositoryStub) CreateReservingStock(ctx context.Context, draft model.OrderDraft) (*model.Order, int64, error) {
	if s.CreateReservingFn != nil {
		return s.CreateReservingFn(ctx, draft)
	}
	return orderFromDraft(draft), 0, nil
}

// GetByID delegates to GetFn or returns not found.
func (s OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser delegates to ListFn or returns nothing.
func (s OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, userID)
	}
	return nil, nil
}

// UpdateStatus delegates to UpdateStatusFn or succeeds.
func (s OrderRepositoryStub) UpdateStatus(ctx context.Context, id int64, from, to model.OrderStatus) error {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, from, to)
	}
	return nil
}

// GradeRepositoryStub serves grades from memory and counts reads.
type GradeRepositoryStub struct {
	mu     sync.Mutex
	Grades map[string]model.GradeInfo
	Err    error
	Delay  time.Duration
	Reads  int
}

// NewGradeRepositoryStub constructs stub seeded with grades.
func NewGradeRepositoryStub(grades ...model.GradeInfo) *GradeRepositoryStub {
	s := &GradeRepositoryStub{Grades: make(map[string]model.GradeInfo)}
	for _, g := range grades {
		s.Grades[g.Name] = g
	}
	return s
}

// GetByName returns the stored grade.
func (s *GradeRepositoryStub) GetByName(ctx context.Context, name string) (*model.GradeInfo, error) {
	if s.Delay > 0 {
		time.Sleep(s.Delay)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Reads++
	if s.Err != nil {
		return nil, s.Err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if g, ok := s.Grades[name]; ok {
		return &g, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ReadCount reports how many reads reached the stub.
func (s *GradeRepositoryStub) ReadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Reads
}

// SubscriptionRepositoryStub keeps subscriptions and dispatch logs in memory.
type SubscriptionRepositoryStub struct {
	mu      sync.Mutex
	Subs    map[int64]*model.NotificationSubscription
	Emails  map[int64]string
	Logs    []model.NotificationLog
	Next    int64
	ListErr error
	GetErr  error
	LogErr  error
	// GetFn overrides GetByID, used to flip state between listing and dispatch.
	GetFn func(context.Context, int64) (*model.NotificationSubscription, error)
}

// NewSubscriptionRepositoryStub constructs stub with initialized maps.
func NewSubscriptionRepositoryStub() *SubscriptionRepositoryStub {
	return &SubscriptionRepositoryStub{
		Subs:   make(map[int64]*model.NotificationSubscription),
		Emails: make(map[int64]string),
		Next:   1,
	}
}

// Add stores subscription as-is and returns its identifier.
func (s *SubscriptionRepositoryStub) Add(sub model.NotificationSubscription) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sub.ID == 0 {
		sub.ID = s.Next
		s.Next++
	}
	s.Subs[sub.ID] = &sub
	return sub.ID
}

// Upsert creates or re-activates the subscription for the pair.
func (s *SubscriptionRepositoryStub) Upsert(ctx context.Context, userID, bookID, threshold int64) (*model.NotificationSubscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range s.Subs {
		if sub.UserID == userID && sub.BookID == bookID {
			sub.Threshold = threshold
			sub.Active = true
			copied := *sub
			return &copied, nil
		}
	}
	sub := &model.NotificationSubscription{ID: s.Next, UserID: userID, BookID: bookID, Threshold: threshold, Active: true, CreatedAt: time.Now()}
	s.Next++
	s.Subs[sub.ID] = sub
	copied := *sub
	return &copied, nil
}

// Deactivate flips the active flag of an owned subscription.
func (s *SubscriptionRepositoryStub) Deactivate(ctx context.Context, id, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.Subs[id]
	if !ok || sub.UserID != userID {
		return domainErrors.ErrNotFound
	}
	sub.Active = false
	return nil
}

// SetActive changes the active flag directly.
func (s *SubscriptionRepositoryStub) SetActive(id int64, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sub, ok := s.Subs[id]; ok {
		sub.Active = active
	}
}

// GetByID returns stored subscription.
func (s *SubscriptionRepositoryStub) GetByID(ctx context.Context, id int64) (*model.NotificationSubscription, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	if sub, ok := s.Subs[id]; ok {
		copied := *sub
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns subscriptions owned by the user.
func (s *SubscriptionRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.NotificationSubscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	var result []model.NotificationSubscription
	for _, sub := range s.Subs {
		if sub.UserID == userID {
			result = append(result, *sub)
		}
	}
	return result, nil
}

// ListActiveForStock mirrors the SQL filter.
func (s *SubscriptionRepositoryStub) ListActiveForStock(ctx context.Context, bookID, quantity int64) ([]model.SubscriptionTarget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	var result []model.SubscriptionTarget
	for _, sub := range s.Subs {
		if sub.BookID == bookID && sub.Active && sub.Threshold >= quantity {
			result = append(result, model.SubscriptionTarget{NotificationSubscription: *sub, Email: s.Emails[sub.UserID]})
		}
	}
	return result, nil
}

// LogDispatch records delivered notification.
func (s *SubscriptionRepositoryStub) LogDispatch(ctx context.Context, entry model.NotificationLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LogErr != nil {
		return s.LogErr
	}
	s.Logs = append(s.Logs, entry)
	return nil
}

// LogEntries returns a snapshot of recorded dispatches.
func (s *SubscriptionRepositoryStub) LogEntries() []model.NotificationLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.NotificationLog(nil), s.Logs...)
}
