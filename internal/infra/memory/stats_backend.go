package memory

import (
	"context"
	"strconv"
	"sync"
	"time"
)

// StatsBackend is an in-process implementation of app.StatsBackend. A single
// mutex makes every primitive atomic.
type StatsBackend struct {
	clock func() time.Time

	mu       sync.Mutex
	hashes   map[string]map[string]int64
	counters map[string]int64
	lists    map[string][]string
	claims   map[string]time.Time
}

func NewStatsBackend() *StatsBackend {
	return &StatsBackend{
		clock:    time.Now,
		hashes:   make(map[string]map[string]int64),
		counters: make(map[string]int64),
		lists:    make(map[string][]string),
		claims:   make(map[string]time.Time),
	}
}

func (b *StatsBackend) IncrHash(_ context.Context, key, field string) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	h, ok := b.hashes[key]
	if !ok {
		h = make(map[string]int64)
		b.hashes[key] = h
	}
	h[field]++
	return h[field], nil
}

func (b *StatsBackend) Incr(_ context.Context, key string) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.counters[key]++
	return b.counters[key], nil
}

// PushCapped prepends value and keeps the newest limit entries.
func (b *StatsBackend) PushCapped(_ context.Context, key, value string, limit int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := append([]string{value}, b.lists[key]...)
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	b.lists[key] = list
	return nil
}

func (b *StatsBackend) HashAll(_ context.Context, key string) (map[string]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[string]string, len(b.hashes[key]))
	for field, n := range b.hashes[key] {
		out[field] = strconv.FormatInt(n, 10)
	}
	return out, nil
}

func (b *StatsBackend) HashGet(_ context.Context, key, field string) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, ok := b.hashes[key][field]
	if !ok {
		return "", false, nil
	}
	return strconv.FormatInt(n, 10), true, nil
}

func (b *StatsBackend) Get(_ context.Context, key string) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, ok := b.counters[key]
	if !ok {
		return "", false, nil
	}
	return strconv.FormatInt(n, 10), true, nil
}

// Range returns up to limit entries from the head of the list.
func (b *StatsBackend) Range(_ context.Context, key string, limit int) ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := b.lists[key]
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return append([]string(nil), list...), nil
}

// Claim marks key as taken until ttl elapses. It reports false when the key
// is already held.
func (b *StatsBackend) Claim(_ context.Context, key string, ttl time.Duration) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.clock()
	if expires, ok := b.claims[key]; ok && (expires.IsZero() || expires.After(now)) {
		return false, nil
	}
	var expires time.Time
	if ttl > 0 {
		expires = now.Add(ttl)
	}
	b.claims[key] = expires
	return true, nil
}

func (b *StatsBackend) Delete(_ context.Context, keys ...string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, key := range keys {
		delete(b.hashes, key)
		delete(b.counters, key)
		delete(b.lists, key)
		delete(b.claims, key)
	}
	return nil
}
