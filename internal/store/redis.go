package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis implements Store on a Redis client. Every capability maps to a
// single native command, so per-key atomicity comes for free.
type Redis struct {
	client *redis.Client
}

// NewRedis wraps an already configured client.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// Dial connects to the store at the given URL (redis://...) and verifies
// the connection with a ping.
func Dial(ctx context.Context, url string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse store url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping store: %w", wrap(err))
	}
	return &Redis{client: client}, nil
}

// Close releases the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) AtomicIncrement(ctx context.Context, counterKey string) (int64, error) {
	n, err := r.client.Incr(ctx, counterKey).Result()
	if err != nil {
		return 0, wrap(err)
	}
	return n, nil
}

func (r *Redis) HashGet(ctx context.Context, key, field string) (string, error) {
	v, err := r.client.HGet(ctx, key, field).Result()
	if err != nil {
		return "", wrap(err)
	}
	return v, nil
}

func (r *Redis) HashSet(ctx context.Context, key, field, value string) error {
	return wrap(r.client.HSet(ctx, key, field, value).Err())
}

func (r *Redis) HashSetMulti(ctx context.Context, key string, fields map[string]string) error {
	args := make([]any, 0, len(fields)*2)
	for f, v := range fields {
		args = append(args, f, v)
	}
	return wrap(r.client.HSet(ctx, key, args...).Err())
}

func (r *Redis) HashSetIfAbsent(ctx context.Context, key, field, value string) (bool, error) {
	claimed, err := r.client.HSetNX(ctx, key, field, value).Result()
	if err != nil {
		return false, wrap(err)
	}
	return claimed, nil
}

func (r *Redis) HashGetAll(ctx context.Context, key string) (map[string]string, error) {
	m, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, wrap(err)
	}
	return m, nil
}

func (r *Redis) HashKeys(ctx context.Context, key string) ([]string, error) {
	keys, err := r.client.HKeys(ctx, key).Result()
	if err != nil {
		return nil, wrap(err)
	}
	return keys, nil
}

func (r *Redis) SetAdd(ctx context.Context, key, member string) error {
	return wrap(r.client.SAdd(ctx, key, member).Err())
}

func (r *Redis) SetMembers(ctx context.Context, key string) ([]string, error) {
	members, err := r.client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, wrap(err)
	}
	return members, nil
}

func (r *Redis) ListPushFront(ctx context.Context, key, value string) error {
	return wrap(r.client.LPush(ctx, key, value).Err())
}

func (r *Redis) ListRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	values, err := r.client.LRange(ctx, key, start, stop).Result()
	if err != nil {
		return nil, wrap(err)
	}
	return values, nil
}

func (r *Redis) ListTrim(ctx context.Context, key string, start, stop int64) error {
	return wrap(r.client.LTrim(ctx, key, start, stop).Err())
}

func (r *Redis) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return wrap(r.client.Expire(ctx, key, ttl).Err())
}

// wrap maps driver errors onto the store taxonomy: a missing key or
// field is ErrNotFound, anything else means the store is unavailable.
func wrap(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, redis.Nil):
		return ErrNotFound
	default:
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
}
