package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// StatsBackend implements app.StatsBackend on Redis. Counters use HINCRBY and
// INCR; capped logs use LPUSH followed by LTRIM inside MULTI/EXEC.
type StatsBackend struct {
	client *redis.Client
}

func NewStatsBackend(client *redis.Client) *StatsBackend {
	return &StatsBackend{client: client}
}

func (b *StatsBackend) IncrHash(ctx context.Context, key, field string) (int64, error) {
	return b.client.HIncrBy(ctx, key, field, 1).Result()
}

func (b *StatsBackend) Incr(ctx context.Context, key string) (int64, error) {
	return b.client.Incr(ctx, key).Result()
}

func (b *StatsBackend) PushCapped(ctx context.Context, key, value string, limit int) error {
	_, err := b.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, key, value)
		if limit > 0 {
			pipe.LTrim(ctx, key, 0, int64(limit-1))
		}
		return nil
	})
	return err
}

func (b *StatsBackend) HashAll(ctx context.Context, key string) (map[string]string, error) {
	return b.client.HGetAll(ctx, key).Result()
}

func (b *StatsBackend) HashGet(ctx context.Context, key, field string) (string, bool, error) {
	v, err := b.client.HGet(ctx, key, field).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (b *StatsBackend) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := b.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (b *StatsBackend) Range(ctx context.Context, key string, limit int) ([]string, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}
	return b.client.LRange(ctx, key, 0, stop).Result()
}

func (b *StatsBackend) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return b.client.SetNX(ctx, key, "1", ttl).Result()
}

func (b *StatsBackend) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return b.client.Del(ctx, keys...).Err()
}

// Ping reports whether Redis is reachable.
func (b *StatsBackend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}
