package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strconv"
	"sync"
	"testing"
	"time"

	"playstyle-quiz-service/internal/app"
	"playstyle-quiz-service/internal/domain"
)

func TestSubmitEndToEndDashboard(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStatsService()

	resp, err := svc.SubmitResult(ctx, domain.Submission{Result: resultFor("INTJ", 120)})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !resp.Success || resp.TotalSubmissions != 1 {
		t.Fatalf("unexpected response %+v", resp)
	}

	dash, err := svc.GetDashboardStats(ctx)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if dash.MBTICounts["INTJ"] != 1 {
		t.Fatalf("expected INTJ count 1, got %d", dash.MBTICounts["INTJ"])
	}
	if dash.TopMBTI == nil || *dash.TopMBTI != "INTJ" {
		t.Fatalf("expected top INTJ, got %v", dash.TopMBTI)
	}
	if dash.AvgCompletionTime != 120 {
		t.Fatalf("expected avg 120, got %d", dash.AvgCompletionTime)
	}
	if dash.Percentages["INTJ"] != 100 {
		t.Fatalf("expected 100%%, got %v", dash.Percentages["INTJ"])
	}
	if len(dash.RecentResults) != 1 || dash.RecentResults[0].CompletionTime != 120 {
		t.Fatalf("unexpected recent results %+v", dash.RecentResults)
	}
}

func TestSubmitQuizResultRejectsUnknownType(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStatsService()

	payload, _ := json.Marshal(resultFor("INTJ", 60))
	var raw map[string]any
	_ = json.Unmarshal(payload, &raw)
	raw["mbtiType"] = "XXXX"
	payload, _ = json.Marshal(raw)

	resp, err := svc.SubmitQuizResult(ctx, payload, "")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if resp.Success || len(resp.Details) == 0 || resp.Details[0].Path != "mbtiType" {
		t.Fatalf("expected structured mbtiType issue, got %+v", resp)
	}

	stats, err := svc.GetStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalSubmissions != 0 || len(stats.MBTICounts) != 0 {
		t.Fatalf("expected untouched statistics, got %+v", stats)
	}
}

func TestSubmitResultRejectsNonPositiveCompletion(t *testing.T) {
	svc, _ := newStatsService()
	if _, err := svc.SubmitResult(context.Background(), domain.Submission{Result: resultFor("ENFP", 0)}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSubmitQuizResultRejectsOversizedCompletion(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStatsService()

	payload, _ := json.Marshal(resultFor("INTJ", 60))
	var raw map[string]any
	_ = json.Unmarshal(payload, &raw)
	raw["completionTime"] = 1e20
	payload, _ = json.Marshal(raw)

	resp, err := svc.SubmitQuizResult(ctx, payload, "")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if resp.Success || len(resp.Details) == 0 || resp.Details[0].Path != "completionTime" {
		t.Fatalf("expected completionTime issue, got %+v", resp)
	}

	dash, err := svc.GetDashboardStats(ctx)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if dash.TotalSubmissions != 0 || dash.AvgCompletionTime != 0 || len(dash.RecentResults) != 0 {
		t.Fatalf("expected untouched statistics, got %+v", dash)
	}
}

func TestDashboardAverageIgnoresOutOfRangeSamples(t *testing.T) {
	ctx := context.Background()
	svc, backend := newStatsService()
	_, _ = svc.Submit(ctx, domain.Submission{Result: resultFor("INTJ", 90)})
	_ = backend.PushCapped(ctx, app.KeyCompletionTimes, "9223372036854775807", 100)
	_ = backend.PushCapped(ctx, app.KeyCompletionTimes, "9223372036854775807", 100)
	_ = backend.PushCapped(ctx, app.KeyCompletionTimes, "-9223372036854775808", 100)

	dash, err := svc.GetDashboardStats(ctx)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if dash.AvgCompletionTime != 90 {
		t.Fatalf("expected out-of-range samples ignored, got %d", dash.AvgCompletionTime)
	}
}

// ctxAwareHash fails hash reads once the caller's context is done.
type ctxAwareHash struct {
	app.StatsBackend
}

func (b ctxAwareHash) HashAll(ctx context.Context, key string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return b.StatsBackend.HashAll(ctx, key)
}

func TestDashboardSurvivesCanceledCaller(t *testing.T) {
	_, backend := newStatsService()
	svc := app.NewStatsService(ctxAwareHash{backend}, app.DefaultStatsOptions(), quietLogger())
	_, _ = svc.Submit(context.Background(), domain.Submission{Result: resultFor("ISTP", 45)})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	dash, err := svc.GetDashboardStats(ctx)
	if err != nil {
		t.Fatalf("dashboard with canceled caller: %v", err)
	}
	if dash.TotalSubmissions != 1 {
		t.Fatalf("expected total 1, got %d", dash.TotalSubmissions)
	}
}

func TestConcurrentSubmitsKeepCountersExact(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStatsService()
	const n = 100

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Submit(ctx, domain.Submission{Result: resultFor("ENTP", 90)}); err != nil {
				t.Errorf("submit: %v", err)
			}
		}()
	}
	wg.Wait()

	stats, err := svc.GetStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.MBTICounts["ENTP"] != n || stats.TotalSubmissions != n {
		t.Fatalf("expected %d/%d, got %d/%d", n, n, stats.MBTICounts["ENTP"], stats.TotalSubmissions)
	}
}

func TestBoundedListsEvictOldest(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStatsService()

	for i := 1; i <= 150; i++ {
		if _, err := svc.Submit(ctx, domain.Submission{Result: resultFor("ISTJ", i)}); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}

	all, err := svc.GetRecentResults(ctx, 1000)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(all) != 100 {
		t.Fatalf("expected 100 retained, got %d", len(all))
	}
	if all[0].CompletionTime != 150 || all[99].CompletionTime != 51 {
		t.Fatalf("expected entries 150..51, got %d..%d", all[0].CompletionTime, all[99].CompletionTime)
	}

	dash, err := svc.GetDashboardStats(ctx)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if len(dash.RecentResults) != 10 || dash.RecentResults[0].CompletionTime != 150 {
		t.Fatalf("expected newest 10, got %d starting %d", len(dash.RecentResults), dash.RecentResults[0].CompletionTime)
	}
	// Mean of 51..150.
	if dash.AvgCompletionTime != 101 {
		t.Fatalf("expected avg 101, got %d", dash.AvgCompletionTime)
	}
	if dash.TotalSubmissions != 150 {
		t.Fatalf("expected total 150, got %d", dash.TotalSubmissions)
	}
}

func TestReadsAreIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStatsService()
	_, _ = svc.Submit(ctx, domain.Submission{Result: resultFor("INFP", 30)})
	_, _ = svc.Submit(ctx, domain.Submission{Result: resultFor("ESFJ", 40)})

	first, _ := svc.GetStats(ctx)
	second, _ := svc.GetStats(ctx)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical reads, got %+v and %+v", first, second)
	}

	d1, _ := svc.GetDashboardStats(ctx)
	d2, _ := svc.GetDashboardStats(ctx)
	if !reflect.DeepEqual(d1, d2) {
		t.Fatalf("expected identical dashboards")
	}
}

func TestPercentagesUseOneDecimal(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStatsService()
	_, _ = svc.Submit(ctx, domain.Submission{Result: resultFor("INTJ", 30)})
	_, _ = svc.Submit(ctx, domain.Submission{Result: resultFor("ENFP", 30)})
	_, _ = svc.Submit(ctx, domain.Submission{Result: resultFor("ENFP", 30)})

	stats, _ := svc.GetStats(ctx)
	if stats.Percentages["INTJ"] != 33.3 || stats.Percentages["ENFP"] != 66.7 {
		t.Fatalf("unexpected percentages %v", stats.Percentages)
	}

	ts, err := svc.GetTypeStats(ctx, "ENFP")
	if err != nil {
		t.Fatalf("type stats: %v", err)
	}
	if ts.Count != 2 || ts.Percentage != 66.7 || ts.TotalSubmissions != 3 {
		t.Fatalf("unexpected type stats %+v", ts)
	}
	if _, err := svc.GetTypeStats(ctx, "ABCD"); !errors.Is(err, domain.ErrUnknownType) {
		t.Fatalf("expected unknown type, got %v", err)
	}
}

func TestTopTypeTieGoesToCanonicalOrder(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStatsService()
	// ESFP is submitted first but INTP precedes it in type order.
	_, _ = svc.Submit(ctx, domain.Submission{Result: resultFor("ESFP", 30)})
	_, _ = svc.Submit(ctx, domain.Submission{Result: resultFor("INTP", 30)})

	dash, _ := svc.GetDashboardStats(ctx)
	if dash.TopMBTI == nil || *dash.TopMBTI != "INTP" {
		t.Fatalf("expected INTP, got %v", dash.TopMBTI)
	}
}

func TestEmptyDashboard(t *testing.T) {
	svc, _ := newStatsService()
	dash, err := svc.GetDashboardStats(context.Background())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if dash.TopMBTI != nil || dash.TotalSubmissions != 0 || dash.AvgCompletionTime != 0 || len(dash.RecentResults) != 0 {
		t.Fatalf("expected empty dashboard, got %+v", dash)
	}
}

func TestDashboardSkipsMalformedEntries(t *testing.T) {
	ctx := context.Background()
	svc, backend := newStatsService()
	_, _ = svc.Submit(ctx, domain.Submission{Result: resultFor("INTJ", 100)})
	_ = backend.PushCapped(ctx, app.KeyCompletionTimes, "not-a-number", 100)
	_ = backend.PushCapped(ctx, app.KeyRecentResults, "{broken", 100)

	dash, err := svc.GetDashboardStats(ctx)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if dash.AvgCompletionTime != 100 {
		t.Fatalf("expected unparseable sample ignored, got %d", dash.AvgCompletionTime)
	}
	if len(dash.RecentResults) != 1 {
		t.Fatalf("expected malformed entry dropped, got %d", len(dash.RecentResults))
	}
}

func TestResetClearsEverything(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStatsService()
	for i := 0; i < 5; i++ {
		_, _ = svc.Submit(ctx, domain.Submission{Result: resultFor("ISTP", 45)})
	}

	if err := svc.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	dash, _ := svc.GetDashboardStats(ctx)
	if dash.TotalSubmissions != 0 || len(dash.MBTICounts) != 0 || len(dash.RecentResults) != 0 || dash.AvgCompletionTime != 0 {
		t.Fatalf("expected cleared statistics, got %+v", dash)
	}
}

func TestDuplicateIdempotencyKeyIsCountedOnce(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStatsService()
	sub := domain.Submission{Result: resultFor("ENTJ", 70), IdempotencyKey: "session-1:1714564800000"}

	first, err := svc.SubmitResult(ctx, sub)
	if err != nil || first.Duplicate {
		t.Fatalf("unexpected first submit %+v %v", first, err)
	}
	second, err := svc.SubmitResult(ctx, sub)
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if !second.Success || !second.Duplicate || second.TotalSubmissions != 1 {
		t.Fatalf("expected duplicate acknowledgement, got %+v", second)
	}

	stats, _ := svc.GetStats(ctx)
	if stats.MBTICounts["ENTJ"] != 1 || stats.TotalSubmissions != 1 {
		t.Fatalf("expected single count, got %+v", stats)
	}
}

// failingHash fails type-count increments only.
type failingHash struct {
	app.StatsBackend
}

func (failingHash) IncrHash(context.Context, string, string) (int64, error) {
	return 0, errors.New("boom")
}

func TestFailedFirstIncrementReleasesIdempotencyKey(t *testing.T) {
	ctx := context.Background()
	_, backend := newStatsService()
	broken := app.NewStatsService(failingHash{backend}, app.DefaultStatsOptions(), quietLogger())
	sub := domain.Submission{Result: resultFor("ENTJ", 70), IdempotencyKey: "retry-me"}

	resp, err := broken.SubmitResult(ctx, sub)
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected store unavailable, got %v", err)
	}
	if resp.Success || resp.Error == "" {
		t.Fatalf("expected readable failure, got %+v", resp)
	}

	healthy := app.NewStatsService(backend, app.DefaultStatsOptions(), quietLogger())
	again, err := healthy.SubmitResult(ctx, sub)
	if err != nil || again.Duplicate {
		t.Fatalf("expected retry to be accepted, got %+v %v", again, err)
	}
}

func TestSubscribersReceiveSnapshots(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStatsService()
	ch, cancel := svc.Subscribe()
	defer cancel()

	for i := 1; i <= 3; i++ {
		_, _ = svc.Submit(ctx, domain.Submission{Result: resultFor("INFJ", i*10)})
	}

	select {
	case snap := <-ch:
		// Latest wins: only the newest snapshot is buffered.
		if snap.TotalSubmissions != 3 {
			t.Fatalf("expected latest snapshot with 3 submissions, got %d", snap.TotalSubmissions)
		}
	case <-time.After(time.Second):
		t.Fatalf("expected a dashboard snapshot")
	}
}

func TestGetRecentResultsDefaultsToTen(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStatsService()
	for i := 0; i < 12; i++ {
		_, _ = svc.Submit(ctx, domain.Submission{Result: resultFor("ESTP", 20+i)})
	}
	recent, err := svc.GetRecentResults(ctx, 0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 10 {
		t.Fatalf("expected 10, got %d", len(recent))
	}
	if got := strconv.Itoa(recent[0].CompletionTime); got != "31" {
		t.Fatalf("expected newest first, got %s", got)
	}
}
