package redis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"playstyle-quiz-service/internal/catalog"
	"playstyle-quiz-service/internal/domain"
	"playstyle-quiz-service/internal/infra/memory"
)

func TestBankRepositoryCachesInRedis(t *testing.T) {
	mr, client := newTestRedis(t)

	loader := &countingLoader{BankLoader: memory.NewStaticBankLoader(catalog.DefaultBank())}
	repo := NewBankRepository(client, loader, time.Minute, nil)

	bank, err := repo.GetBank(context.Background(), catalog.DefaultBankID)
	if err != nil {
		t.Fatalf("get bank: %v", err)
	}
	if loader.count() != 1 {
		t.Fatalf("expected loader called once, got %d", loader.count())
	}
	if !mr.Exists("quiz:bank:" + catalog.DefaultBankID) {
		t.Fatalf("expected bank cached in redis")
	}
	if ttl := mr.TTL("quiz:bank:" + catalog.DefaultBankID); ttl < time.Minute || ttl > 66*time.Second {
		t.Fatalf("expected ttl with at most 10%% jitter, got %v", ttl)
	}

	// Second call should hit cache, loader not incremented.
	cached, err := repo.GetBank(context.Background(), catalog.DefaultBankID)
	if err != nil {
		t.Fatalf("get cached bank: %v", err)
	}
	if loader.count() != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.count())
	}
	if len(cached.Questions) != len(bank.Questions) || cached.Questions[0].Options[0].Contributions[0] != bank.Questions[0].Options[0].Contributions[0] {
		t.Fatalf("cached bank differs from loaded bank")
	}
}

func TestBankRepositoryIgnoresCorruptCache(t *testing.T) {
	mr, client := newTestRedis(t)
	_ = mr.Set("quiz:bank:"+catalog.DefaultBankID, "{not json")

	loader := &countingLoader{BankLoader: memory.NewStaticBankLoader(catalog.DefaultBank())}
	repo := NewBankRepository(client, loader, time.Minute, nil)

	if _, err := repo.GetBank(context.Background(), catalog.DefaultBankID); err != nil {
		t.Fatalf("get bank: %v", err)
	}
	if loader.count() != 1 {
		t.Fatalf("expected fallback to loader, calls=%d", loader.count())
	}
}

func TestBankRepositoryPropagatesLoaderErrors(t *testing.T) {
	_, client := newTestRedis(t)
	repo := NewBankRepository(client, memory.NewStaticBankLoader(), time.Minute, nil)

	if _, err := repo.GetBank(context.Background(), "missing"); !errors.Is(err, domain.ErrBankNotFound) {
		t.Fatalf("expected bank not found, got %v", err)
	}
}

type countingLoader struct {
	BankLoader
	mu    sync.Mutex
	calls int
}

func (l *countingLoader) LoadBank(ctx context.Context, bankID string) (domain.Bank, error) {
	l.mu.Lock()
	l.calls++
	l.mu.Unlock()
	return l.BankLoader.LoadBank(ctx, bankID)
}

func (l *countingLoader) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}
