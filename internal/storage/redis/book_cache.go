package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	domainErrors "github.com/polkiloo/bookshop/internal/domain/errors"
	"github.com/polkiloo/bookshop/internal/domain/model"
	"github.com/polkiloo/bookshop/internal/domain/repository"
)

const quantityField = "quantity"

// Script results are {status, value}.
const (
	statusNotFound int64 = iota
	statusCorrupt
	statusInsufficient
	statusOK
)

// decrementScript checks and subtracts in one server-side step so concurrent
// callers never drive the counter below zero.
var decrementScript = redis.NewScript(`
local raw = redis.call('HGET', KEYS[1], 'quantity')
if not raw then
  return {0, 0}
end
local qty = tonumber(raw)
if not qty or qty < 0 or qty ~= math.floor(qty) then
  return {1, 0}
end
local want = tonumber(ARGV[1])
if qty < want then
  return {2, qty}
end
return {3, redis.call('HINCRBY', KEYS[1], 'quantity', -want)}
`)

var incrementScript = redis.NewScript(`
local raw = redis.call('HGET', KEYS[1], 'quantity')
if not raw then
  return {0, 0}
end
local qty = tonumber(raw)
if not qty or qty ~= math.floor(qty) then
  return {1, 0}
end
return {3, redis.call('HINCRBY', KEYS[1], 'quantity', tonumber(ARGV[1]))}
`)

// BookCache keeps book records as hashes under book:<id>.
type BookCache struct {
	client redis.Cmdable
}

var _ repository.StockCache = (*BookCache)(nil)

// NewBookCache creates the stock cache.
func NewBookCache(client redis.Cmdable) *BookCache {
	return &BookCache{client: client}
}

func bookKey(id int64) string {
	return "book:" + strconv.FormatInt(id, 10)
}

func descriptiveFields(b model.Book) []any {
	return []any{
		"id", b.ID,
		"title", b.Title,
		"author", b.Author,
		"publisher", b.Publisher,
		"isbn", b.ISBN,
		"price", b.Price,
		"discount", b.Discount,
	}
}

func (c *BookCache) Get(ctx context.Context, id int64) (*model.Book, bool, error) {
	fields, err := c.client.HGetAll(ctx, bookKey(id)).Result()
	if err != nil {
		return nil, false, err
	}
	if len(fields) == 0 {
		return nil, false, nil
	}

	book := model.Book{
		ID:        id,
		Title:     fields["title"],
		Author:    fields["author"],
		Publisher: fields["publisher"],
		ISBN:      fields["isbn"],
	}
	for name, dst := range map[string]*int64{
		"price":       &book.Price,
		"discount":    &book.Discount,
		quantityField: &book.Quantity,
	} {
		raw, ok := fields[name]
		if !ok {
			continue
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, false, fmt.Errorf("book %d field %s: %w", id, name, domainErrors.ErrCorruptEntry)
		}
		*dst = v
	}
	return &book, true, nil
}

func (c *BookCache) Put(ctx context.Context, book model.Book, ttl time.Duration) error {
	key := bookKey(book.ID)
	values := append(descriptiveFields(book), quantityField, book.Quantity)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, values...)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	return err
}

func (c *BookCache) Refresh(ctx context.Context, book model.Book, ttl time.Duration) error {
	key := bookKey(book.ID)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, descriptiveFields(book)...)
		pipe.HSetNX(ctx, key, quantityField, book.Quantity)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	return err
}

func (c *BookCache) GetQuantity(ctx context.Context, id int64) (int64, bool, error) {
	raw, err := c.client.HGet(ctx, bookKey(id), quantityField).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, err
	}
	qty, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || qty < 0 {
		return 0, false, fmt.Errorf("book %d quantity %q: %w", id, raw, domainErrors.ErrCorruptEntry)
	}
	return qty, true, nil
}

func (c *BookCache) Decrement(ctx context.Context, id int64, n int64) (int64, error) {
	return c.run(ctx, decrementScript, id, n)
}

// Increment adds n to a cached counter. Absent entries are left absent.
func (c *BookCache) Increment(ctx context.Context, id int64, n int64) (int64, error) {
	return c.run(ctx, incrementScript, id, n)
}

func (c *BookCache) run(ctx context.Context, script *redis.Script, id int64, n int64) (int64, error) {
	res, err := script.Run(ctx, c.client, []string{bookKey(id)}, n).Int64Slice()
	if err != nil {
		return 0, err
	}
	if len(res) != 2 {
		return 0, fmt.Errorf("unexpected script reply %v", res)
	}

	switch res[0] {
	case statusOK:
		return res[1], nil
	case statusNotFound:
		return 0, domainErrors.ErrNotFound
	case statusInsufficient:
		return res[1], domainErrors.ErrInsufficientStock
	default:
		return 0, fmt.Errorf("book %d: %w", id, domainErrors.ErrCorruptEntry)
	}
}

func (c *BookCache) Evict(ctx context.Context, id int64) error {
	return c.client.Del(ctx, bookKey(id)).Err()
}
