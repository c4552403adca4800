package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"playstyle-quiz-service/internal/domain"
	"playstyle-quiz-service/internal/validation"
)

// Logical cells of the statistics store.
const (
	KeyTypeCounts      = "mbti-counts"
	KeyTotal           = "total-submissions"
	KeyRecentResults   = "recent-results"
	KeyCompletionTimes = "completion-times"
	keySubmissionClaim = "submission:"
)

// StatsBackend exposes the atomic key-value primitives the statistics store
// is built on. Each call must be atomic on its own; PushCapped must apply the
// push and the trim as one step.
type StatsBackend interface {
	IncrHash(ctx context.Context, key, field string) (int64, error)
	Incr(ctx context.Context, key string) (int64, error)
	PushCapped(ctx context.Context, key, value string, limit int) error
	HashAll(ctx context.Context, key string) (map[string]string, error)
	HashGet(ctx context.Context, key, field string) (string, bool, error)
	Get(ctx context.Context, key string) (string, bool, error)
	Range(ctx context.Context, key string, limit int) ([]string, error)
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, keys ...string) error
}

// StatsOptions bounds the logs kept by the statistics store.
type StatsOptions struct {
	RecentLimit     int
	CompletionLimit int
	DashboardRecent int
	IdempotencyTTL  time.Duration
}

// DefaultStatsOptions keeps 100 recent results and completion times and
// shows 10 results on the dashboard.
func DefaultStatsOptions() StatsOptions {
	return StatsOptions{
		RecentLimit:     100,
		CompletionLimit: 100,
		DashboardRecent: 10,
		IdempotencyTTL:  24 * time.Hour,
	}
}

// StatsService folds quiz results into aggregate statistics.
type StatsService struct {
	backend StatsBackend
	opts    StatsOptions
	log     logrus.FieldLogger
	now     func() time.Time
	sf      singleflight.Group
	hub     *dashboardHub
}

func NewStatsService(backend StatsBackend, opts StatsOptions, log logrus.FieldLogger) *StatsService {
	return NewStatsServiceWithClock(backend, opts, log, time.Now)
}

// NewStatsServiceWithClock is used by tests for deterministic timestamps.
func NewStatsServiceWithClock(backend StatsBackend, opts StatsOptions, log logrus.FieldLogger, now func() time.Time) *StatsService {
	defaults := DefaultStatsOptions()
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = defaults.RecentLimit
	}
	if opts.CompletionLimit <= 0 {
		opts.CompletionLimit = defaults.CompletionLimit
	}
	if opts.DashboardRecent <= 0 {
		opts.DashboardRecent = defaults.DashboardRecent
	}
	if opts.IdempotencyTTL <= 0 {
		opts.IdempotencyTTL = defaults.IdempotencyTTL
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &StatsService{
		backend: backend,
		opts:    opts,
		log:     log,
		now:     now,
		hub:     newDashboardHub(),
	}
}

// SubmitResponse is the submission boundary's reply.
type SubmitResponse struct {
	Success          bool           `json:"success"`
	TotalSubmissions int64          `json:"totalSubmissions,omitempty"`
	Duplicate        bool           `json:"duplicate,omitempty"`
	Error            string         `json:"error,omitempty"`
	Details          []domain.Issue `json:"details,omitempty"`
}

// SubmitQuizResult validates a raw client payload and records it. Failures
// are reported in the response; invalid payloads never reach the store.
func (s *StatsService) SubmitQuizResult(ctx context.Context, payload []byte, idempotencyKey string) (SubmitResponse, error) {
	result, err := validation.ParseResult(payload)
	if err != nil {
		return rejection(err), err
	}
	return s.record(ctx, domain.Submission{Result: result, IdempotencyKey: idempotencyKey})
}

// SubmitResult validates an already-typed result and records it.
func (s *StatsService) SubmitResult(ctx context.Context, sub domain.Submission) (SubmitResponse, error) {
	if err := validation.ValidateResult(sub.Result); err != nil {
		return rejection(err), err
	}
	return s.record(ctx, sub)
}

func (s *StatsService) record(ctx context.Context, sub domain.Submission) (SubmitResponse, error) {
	outcome, err := s.Submit(ctx, sub)
	if err != nil {
		s.log.WithError(err).WithField("mbti_type", sub.Result.MBTIType).Error("submit quiz result failed")
		return SubmitResponse{Success: false, Error: "failed to submit result, please try again later"}, err
	}
	return SubmitResponse{
		Success:          true,
		TotalSubmissions: outcome.TotalSubmissions,
		Duplicate:        outcome.Duplicate,
	}, nil
}

func rejection(err error) SubmitResponse {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return SubmitResponse{Success: false, Error: "invalid quiz result", Details: verr.Issues}
	}
	return SubmitResponse{Success: false, Error: err.Error()}
}

// Submit applies a result to the counters and logs. The four updates are not
// one transaction; a failure part-way leaves earlier updates in place.
func (s *StatsService) Submit(ctx context.Context, sub domain.Submission) (domain.SubmitOutcome, error) {
	result := sub.Result

	claimKey := ""
	if sub.IdempotencyKey != "" {
		claimKey = keySubmissionClaim + sub.IdempotencyKey
		fresh, err := s.backend.Claim(ctx, claimKey, s.opts.IdempotencyTTL)
		if err != nil {
			return domain.SubmitOutcome{}, storeErr("claim idempotency key", err)
		}
		if !fresh {
			total, err := s.total(ctx)
			if err != nil {
				return domain.SubmitOutcome{}, err
			}
			s.log.WithField("idempotency_key", sub.IdempotencyKey).Info("duplicate submission ignored")
			return domain.SubmitOutcome{TotalSubmissions: total, Duplicate: true}, nil
		}
	}

	if _, err := s.backend.IncrHash(ctx, KeyTypeCounts, string(result.MBTIType)); err != nil {
		// Nothing has been counted yet, so the key may be retried.
		if claimKey != "" {
			if derr := s.backend.Delete(ctx, claimKey); derr != nil {
				s.log.WithError(derr).Warn("release idempotency key failed")
			}
		}
		return domain.SubmitOutcome{}, storeErr("increment type count", err)
	}

	total, err := s.backend.Incr(ctx, KeyTotal)
	if err != nil {
		return domain.SubmitOutcome{}, storeErr("increment total", err)
	}

	entry, err := json.Marshal(domain.RecentResult{
		MBTIType:       result.MBTIType,
		Timestamp:      s.now().UTC(),
		Scores:         result.Scores,
		CompletionTime: result.CompletionTime,
	})
	if err != nil {
		return domain.SubmitOutcome{}, fmt.Errorf("encode recent result: %w", err)
	}
	if err := s.backend.PushCapped(ctx, KeyRecentResults, string(entry), s.opts.RecentLimit); err != nil {
		return domain.SubmitOutcome{}, storeErr("push recent result", err)
	}
	if err := s.backend.PushCapped(ctx, KeyCompletionTimes, strconv.Itoa(result.CompletionTime), s.opts.CompletionLimit); err != nil {
		return domain.SubmitOutcome{}, storeErr("push completion time", err)
	}

	s.log.WithFields(logrus.Fields{
		"mbti_type": result.MBTIType,
		"total":     total,
	}).Info("quiz result recorded")

	s.publish(ctx)
	return domain.SubmitOutcome{TotalSubmissions: total}, nil
}

// GetStats returns counts and one-decimal percentages per type.
func (s *StatsService) GetStats(ctx context.Context) (domain.Stats, error) {
	var (
		counts map[domain.Type]int64
		total  int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		counts, err = s.counts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.total(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Stats{}, err
	}
	return buildStats(counts, total), nil
}

// GetDashboardStats extends GetStats for the dashboard. Its four reads run
// concurrently and simultaneous callers share one read.
func (s *StatsService) GetDashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	v, err, _ := s.sf.Do("dashboard", func() (interface{}, error) {
		return s.readDashboard(context.WithoutCancel(ctx))
	})
	if err != nil {
		return domain.DashboardStats{}, err
	}
	return v.(domain.DashboardStats), nil
}

func (s *StatsService) readDashboard(ctx context.Context) (domain.DashboardStats, error) {
	var (
		counts  map[domain.Type]int64
		total   int64
		recent  []domain.RecentResult
		samples []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		counts, err = s.counts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.total(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = s.recent(gctx, s.opts.DashboardRecent)
		return err
	})
	g.Go(func() error {
		var err error
		samples, err = s.backend.Range(gctx, KeyCompletionTimes, s.opts.CompletionLimit)
		if err != nil {
			return storeErr("read completion times", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.DashboardStats{}, err
	}

	return domain.DashboardStats{
		Stats:             buildStats(counts, total),
		TopMBTI:           topType(counts),
		AvgCompletionTime: averageSeconds(samples),
		RecentResults:     recent,
	}, nil
}

// GetTypeStats returns the count and share of a single type.
func (s *StatsService) GetTypeStats(ctx context.Context, t domain.Type) (domain.TypeStats, error) {
	if !t.Valid() {
		return domain.TypeStats{}, domain.ErrUnknownType
	}
	raw, ok, err := s.backend.HashGet(ctx, KeyTypeCounts, string(t))
	if err != nil {
		return domain.TypeStats{}, storeErr("read type count", err)
	}
	var count int64
	if ok {
		count = s.parseCount(string(t), raw)
	}
	total, err := s.total(ctx)
	if err != nil {
		return domain.TypeStats{}, err
	}
	return domain.TypeStats{
		MBTIType:         t,
		Count:            count,
		Percentage:       share(count, total),
		TotalSubmissions: total,
	}, nil
}

// GetRecentResults returns up to limit results, newest first.
func (s *StatsService) GetRecentResults(ctx context.Context, limit int) ([]domain.RecentResult, error) {
	if limit <= 0 {
		limit = s.opts.DashboardRecent
	}
	if limit > s.opts.RecentLimit {
		limit = s.opts.RecentLimit
	}
	return s.recent(ctx, limit)
}

// Reset clears every statistics cell, completion times included. It is a
// maintenance operation and is not exposed to end users.
func (s *StatsService) Reset(ctx context.Context) error {
	if err := s.backend.Delete(ctx, KeyTypeCounts, KeyTotal, KeyRecentResults, KeyCompletionTimes); err != nil {
		return storeErr("reset statistics", err)
	}
	s.log.Warn("statistics reset")
	s.publish(ctx)
	return nil
}

// Subscribe returns a channel of dashboard snapshots published after each
// recorded submission. The caller must invoke cancel.
func (s *StatsService) Subscribe() (<-chan domain.DashboardStats, func()) {
	return s.hub.subscribe()
}

func (s *StatsService) publish(ctx context.Context) {
	if !s.hub.active() {
		return
	}
	stats, err := s.readDashboard(ctx)
	if err != nil {
		s.log.WithError(err).Warn("dashboard broadcast skipped")
		return
	}
	s.hub.broadcast(stats)
}

func (s *StatsService) counts(ctx context.Context) (map[domain.Type]int64, error) {
	raw, err := s.backend.HashAll(ctx, KeyTypeCounts)
	if err != nil {
		return nil, storeErr("read type counts", err)
	}
	counts := make(map[domain.Type]int64, len(raw))
	for field, value := range raw {
		t := domain.Type(field)
		if !t.Valid() {
			s.log.WithField("field", field).Warn("ignoring unknown type in counts")
			continue
		}
		counts[t] = s.parseCount(field, value)
	}
	return counts, nil
}

func (s *StatsService) parseCount(field, raw string) int64 {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.log.WithField("field", field).WithError(err).Warn("ignoring unparseable counter")
		return 0
	}
	return n
}

func (s *StatsService) total(ctx context.Context) (int64, error) {
	raw, ok, err := s.backend.Get(ctx, KeyTotal)
	if err != nil {
		return 0, storeErr("read total", err)
	}
	if !ok {
		return 0, nil
	}
	return s.parseCount(KeyTotal, raw), nil
}

func (s *StatsService) recent(ctx context.Context, limit int) ([]domain.RecentResult, error) {
	raw, err := s.backend.Range(ctx, KeyRecentResults, limit)
	if err != nil {
		return nil, storeErr("read recent results", err)
	}
	out := make([]domain.RecentResult, 0, len(raw))
	for _, item := range raw {
		var r domain.RecentResult
		if err := json.Unmarshal([]byte(item), &r); err != nil || !r.MBTIType.Valid() {
			s.log.Warn("dropping malformed recent result")
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func buildStats(counts map[domain.Type]int64, total int64) domain.Stats {
	percentages := make(map[domain.Type]float64, len(counts))
	for t, n := range counts {
		percentages[t] = share(n, total)
	}
	return domain.Stats{
		MBTICounts:       counts,
		TotalSubmissions: total,
		Percentages:      percentages,
	}
}

// share is count/total as a percentage with one decimal place.
func share(count, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return math.Floor(float64(count)/float64(total)*1000+0.5) / 10
}

// topType scans types in canonical order; the first strictly greater count
// wins, so ties resolve to the earlier type code.
func topType(counts map[domain.Type]int64) *domain.Type {
	var (
		top *domain.Type
		max int64
	)
	for _, t := range domain.Types {
		if counts[t] > max {
			max = counts[t]
			winner := t
			top = &winner
		}
	}
	return top
}

// averageSeconds is the rounded mean of the parseable, positive samples that
// fit in an int32, or 0.
func averageSeconds(samples []string) int {
	var sum, n int64
	for _, raw := range samples {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v <= 0 || v > math.MaxInt32 {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0
	}
	return int(math.Floor(float64(sum)/float64(n) + 0.5))
}

func storeErr(op string, err error) error {
	if errors.Is(err, domain.ErrStoreUnavailable) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
}
