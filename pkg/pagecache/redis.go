package pagecache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis stores pages as JSON in Redis so replicas share one cache.
// The client lifecycle belongs to the caller.
type Redis struct {
	client     redis.UniversalClient
	prefix     string
	defaultTTL time.Duration
}

// NewRedis creates a Redis-backed store.
func NewRedis(client redis.UniversalClient, opts ...RedisOption) *Redis {
	r := &Redis{client: client, prefix: "page", defaultTTL: 10 * time.Minute}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Redis) Get(ctx context.Context, key string) (Page, error) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Page{}, ErrNotFound
	}
	if err != nil {
		return Page{}, err
	}
	var p Page
	if err := json.Unmarshal(data, &p); err != nil {
		return Page{}, errors.Join(ErrUnmarshal, err)
	}
	return p, nil
}

func (r *Redis) Set(ctx context.Context, key string, page Page, ttl time.Duration) error {
	data, err := json.Marshal(page)
	if err != nil {
		return errors.Join(ErrMarshal, err)
	}
	if ttl == 0 {
		ttl = r.defaultTTL
	}
	// Redis reads 0 as no expiry.
	return r.client.Set(ctx, r.key(key), data, max(ttl, 0)).Err()
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

// Purge deletes every key under the prefix with SCAN, never FLUSHDB.
func (r *Redis) Purge(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, r.prefix+":*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if cursor = next; cursor == 0 {
			return nil
		}
	}
}

func (r *Redis) Close() error {
	return nil
}

func (r *Redis) key(key string) string {
	return r.prefix + ":" + key
}

var _ Store = (*Redis)(nil)
