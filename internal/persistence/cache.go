package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/account-service/internal/domain"
)

// ErrCacheMiss signals that no entry exists for the requested key.
var ErrCacheMiss = errors.New("cache miss")

// UserCache provides read-through caching of user records by id. Entries are
// stored via the User JSON projection, so PasswordHash never reaches Redis;
// cached records serve read responses only.
type UserCache interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	Set(ctx context.Context, user *domain.User) error
	Invalidate(ctx context.Context, id string) error
}

type redisUserCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewUserCache returns a Redis-backed cache. Entries expire after ttl.
func NewUserCache(r *Redis, ttl time.Duration) UserCache {
	var client *redis.Client
	if r != nil {
		client = r.Client
	}
	return &redisUserCache{client: client, ttl: ttl}
}

func userKey(id string) string {
	return "user:" + id
}

func (c *redisUserCache) Get(ctx context.Context, id string) (*domain.User, error) {
	if c.client == nil {
		return nil, ErrCacheMiss
	}
	raw, err := c.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		// corrupt entry, drop it
		_ = c.client.Del(ctx, userKey(id)).Err()
		return nil, ErrCacheMiss
	}
	return &user, nil
}

func (c *redisUserCache) Set(ctx context.Context, user *domain.User) error {
	if c.client == nil || user == nil {
		return nil
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, userKey(user.ID), raw, c.ttl).Err()
}

func (c *redisUserCache) Invalidate(ctx context.Context, id string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, userKey(id)).Err()
}
