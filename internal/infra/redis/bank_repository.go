package redis

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
	"playstyle-quiz-service/internal/domain"
)

// BankLoader fetches a question bank from a backing store.
type BankLoader interface {
	LoadBank(ctx context.Context, bankID string) (domain.Bank, error)
}

// BankRepository caches whole question banks in Redis as JSON and falls back
// to a loader on a miss:
//
//	SET quiz:bank:{bankID} <json> EX <ttl>
type BankRepository struct {
	client *redis.Client
	loader BankLoader
	ttl    time.Duration
	log    logrus.FieldLogger
	sf     singleflight.Group

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewBankRepository(client *redis.Client, loader BankLoader, ttl time.Duration, log logrus.FieldLogger) *BankRepository {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &BankRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		log:    log,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *BankRepository) GetBank(ctx context.Context, bankID string) (domain.Bank, error) {
	if bank, ok := r.cached(ctx, bankID); ok {
		return bank, nil
	}

	result, err, _ := r.sf.Do(bankID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if bank, ok := r.cached(ctx, bankID); ok {
			return bank, nil
		}

		bank, err := r.loader.LoadBank(ctx, bankID)
		if err != nil {
			return domain.Bank{}, err
		}

		payload, err := json.Marshal(bank)
		if err != nil {
			return domain.Bank{}, err
		}
		if err := r.client.Set(ctx, bankKey(bankID), payload, r.ttlWithJitter()).Err(); err != nil {
			// Cache fill is best effort; the loaded bank is still served.
			r.log.WithError(err).WithField("bank_id", bankID).Warn("cache question bank failed")
		}
		return bank, nil
	})
	if err != nil {
		return domain.Bank{}, err
	}
	return result.(domain.Bank), nil
}

func (r *BankRepository) cached(ctx context.Context, bankID string) (domain.Bank, bool) {
	raw, err := r.client.Get(ctx, bankKey(bankID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.WithError(err).WithField("bank_id", bankID).Warn("read cached question bank failed")
		}
		return domain.Bank{}, false
	}
	var bank domain.Bank
	if err := json.Unmarshal(raw, &bank); err != nil {
		r.log.WithError(err).WithField("bank_id", bankID).Warn("discarding corrupt cached question bank")
		return domain.Bank{}, false
	}
	return bank, true
}

func bankKey(bankID string) string {
	return "quiz:bank:" + bankID
}

func (r *BankRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
