package resilient

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/fortify/circuitbreaker"
	"github.com/sirupsen/logrus"
	"playstyle-quiz-service/internal/app"
	"playstyle-quiz-service/internal/domain"
)

// StatsBackend guards an app.StatsBackend with a circuit breaker. Once the
// breaker opens, calls fail fast with domain.ErrStoreUnavailable. Nothing is
// retried.
type StatsBackend struct {
	next    app.StatsBackend
	breaker circuitbreaker.CircuitBreaker[any]
}

// BreakerConfig tunes when the breaker trips and how long it stays open.
type BreakerConfig struct {
	FailureThreshold int
	OpenTimeout      time.Duration
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{FailureThreshold: 3, OpenTimeout: 30 * time.Second}
}

func NewStatsBackend(next app.StatsBackend, cfg BreakerConfig, log logrus.FieldLogger) *StatsBackend {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = DefaultBreakerConfig().FailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = DefaultBreakerConfig().OpenTimeout
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	threshold := cfg.FailureThreshold
	return &StatsBackend{
		next: next,
		breaker: circuitbreaker.New[any](circuitbreaker.Config{
			MaxRequests: 1,
			Interval:    10 * time.Second,
			Timeout:     cfg.OpenTimeout,
			ReadyToTrip: func(counts circuitbreaker.Counts) bool {
				return int(counts.ConsecutiveFailures) >= threshold
			},
			OnStateChange: func(from, to circuitbreaker.State) {
				log.WithFields(logrus.Fields{
					"from": from.String(),
					"to":   to.String(),
				}).Warn("stats backend circuit breaker state change")
			},
		}),
	}
}

func call[T any](ctx context.Context, b *StatsBackend, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	out, err := b.breaker.Execute(ctx, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
	}
	v, _ := out.(T)
	return v, nil
}

type found struct {
	value string
	ok    bool
}

func (b *StatsBackend) IncrHash(ctx context.Context, key, field string) (int64, error) {
	return call(ctx, b, "hincr", func(ctx context.Context) (int64, error) {
		return b.next.IncrHash(ctx, key, field)
	})
}

func (b *StatsBackend) Incr(ctx context.Context, key string) (int64, error) {
	return call(ctx, b, "incr", func(ctx context.Context) (int64, error) {
		return b.next.Incr(ctx, key)
	})
}

func (b *StatsBackend) PushCapped(ctx context.Context, key, value string, limit int) error {
	_, err := call(ctx, b, "push", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, b.next.PushCapped(ctx, key, value, limit)
	})
	return err
}

func (b *StatsBackend) HashAll(ctx context.Context, key string) (map[string]string, error) {
	return call(ctx, b, "hgetall", func(ctx context.Context) (map[string]string, error) {
		return b.next.HashAll(ctx, key)
	})
}

func (b *StatsBackend) HashGet(ctx context.Context, key, field string) (string, bool, error) {
	f, err := call(ctx, b, "hget", func(ctx context.Context) (found, error) {
		v, ok, err := b.next.HashGet(ctx, key, field)
		return found{value: v, ok: ok}, err
	})
	return f.value, f.ok, err
}

func (b *StatsBackend) Get(ctx context.Context, key string) (string, bool, error) {
	f, err := call(ctx, b, "get", func(ctx context.Context) (found, error) {
		v, ok, err := b.next.Get(ctx, key)
		return found{value: v, ok: ok}, err
	})
	return f.value, f.ok, err
}

func (b *StatsBackend) Range(ctx context.Context, key string, limit int) ([]string, error) {
	return call(ctx, b, "range", func(ctx context.Context) ([]string, error) {
		return b.next.Range(ctx, key, limit)
	})
}

func (b *StatsBackend) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return call(ctx, b, "claim", func(ctx context.Context) (bool, error) {
		return b.next.Claim(ctx, key, ttl)
	})
}

func (b *StatsBackend) Delete(ctx context.Context, keys ...string) error {
	_, err := call(ctx, b, "delete", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, b.next.Delete(ctx, keys...)
	})
	return err
}
