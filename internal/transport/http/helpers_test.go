package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"playstyle-quiz-service/internal/app"
	"playstyle-quiz-service/internal/catalog"
	"playstyle-quiz-service/internal/infra/memory"
	"playstyle-quiz-service/internal/scoring"
)

type testEnv struct {
	server *httptest.Server
	stats  *app.StatsService
}

func newTestEnv(t *testing.T, opts ...APIOption) *testEnv {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	banks := memory.NewBankRepository(memory.NewStaticBankLoader(catalog.DefaultBank()), time.Minute)
	scorer := scoring.NewScorer(log)
	quiz := app.NewQuizService(banks, catalog.DefaultBankID, scorer)
	sessions := app.NewSessionServiceWithClock(memory.NewSessionStore(time.Hour), banks, catalog.DefaultBankID, scorer, steppingClock(10*time.Second))
	stats := app.NewStatsService(memory.NewStatsBackend(), app.DefaultStatsOptions(), log)

	server := httptest.NewServer(NewRouter(NewAPI(quiz, sessions, stats, opts...), NewWSHandler(stats)))
	t.Cleanup(server.Close)
	return &testEnv{server: server, stats: stats}
}

// steppingClock advances by step on every reading so completed sessions have
// a positive duration.
func steppingClock(step time.Duration) func() time.Time {
	var mu sync.Mutex
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(step)
		return now
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, headers map[string]string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case []byte:
		reader = bytes.NewReader(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, e.server.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return v
}

func validResult() map[string]any {
	return map[string]any{
		"mbtiType":       "INTJ",
		"scores":         map[string]int{"E": 0, "I": 4, "S": 0, "N": 5, "T": 6, "F": 1, "J": 3, "P": 0},
		"percentages":    map[string]int{"E": 0, "I": 100, "S": 0, "N": 100, "T": 86, "F": 14, "J": 100, "P": 0},
		"dominantTraits": []string{"N", "T", "I", "J"},
		"completionTime": 120,
		"totalQuestions": 8,
	}
}
