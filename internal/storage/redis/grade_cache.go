package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domainErrors "github.com/polkiloo/bookshop/internal/domain/errors"
	"github.com/polkiloo/bookshop/internal/domain/model"
	"github.com/polkiloo/bookshop/internal/domain/repository"
)

const (
	gradeKeyPrefix = "grade:"
	scanBatch      = 100
)

// GradeCache stores grade snapshots as JSON strings under grade:<name>.
type GradeCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

var _ repository.GradeCache = (*GradeCache)(nil)

// NewGradeCache creates the grade cache with entries living for ttl.
func NewGradeCache(client redis.Cmdable, ttl time.Duration) *GradeCache {
	return &GradeCache{client: client, ttl: ttl}
}

func gradeKey(name string) string {
	return gradeKeyPrefix + name
}

func (c *GradeCache) Get(ctx context.Context, name string) (*model.GradeInfo, bool, error) {
	raw, err := c.client.Get(ctx, gradeKey(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var grade model.GradeInfo
	if err := json.Unmarshal(raw, &grade); err != nil {
		return nil, false, fmt.Errorf("grade %s: %w", name, domainErrors.ErrCorruptEntry)
	}
	return &grade, true, nil
}

func (c *GradeCache) Set(ctx context.Context, grade model.GradeInfo) error {
	payload, err := json.Marshal(grade)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, gradeKey(grade.Name), payload, c.ttl).Err()
}

func (c *GradeCache) Delete(ctx context.Context, name string) error {
	return c.client.Del(ctx, gradeKey(name)).Err()
}

// DeleteAll removes every grade entry. Keys are collected with SCAN so the
// server is never blocked by KEYS.
func (c *GradeCache) DeleteAll(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, gradeKeyPrefix+"*", scanBatch).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
