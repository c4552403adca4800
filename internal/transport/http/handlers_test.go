package http

import (
	"fmt"
	"net/http"
	"testing"

	"playstyle-quiz-service/internal/app"
	"playstyle-quiz-service/internal/domain"
)

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)
	status, body := env.do(t, http.MethodGet, "/healthz", nil, nil)
	if status != http.StatusOK || string(body) != "ok" {
		t.Fatalf("unexpected health %d %s", status, body)
	}
}

func TestQuestionsAndProfiles(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodGet, "/api/questions", nil, nil)
	if status != http.StatusOK {
		t.Fatalf("questions status %d", status)
	}
	bank := decode[domain.Bank](t, body)
	if len(bank.Questions) != 8 || len(bank.Questions[0].Options[0].Contributions) == 0 {
		t.Fatalf("unexpected bank %+v", bank)
	}

	status, body = env.do(t, http.MethodGet, "/api/profiles/ENFP", nil, nil)
	if status != http.StatusOK || decode[domain.PlaystyleProfile](t, body).MBTIType != "ENFP" {
		t.Fatalf("unexpected profile %d %s", status, body)
	}

	status, _ = env.do(t, http.MethodGet, "/api/profiles/XXXX", nil, nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown type, got %d", status)
	}
}

func TestCompatibilityEndpoint(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodGet, "/api/compatibility?a=INTJ&b=INTJ", nil, nil)
	if status != http.StatusOK || decode[map[string]any](t, body)["score"] != float64(100) {
		t.Fatalf("unexpected compatibility %d %s", status, body)
	}

	status, body = env.do(t, http.MethodGet, "/api/compatibility?a=INTJ&b=nope", nil, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if resp := decode[errorResponse](t, body); len(resp.Details) != 1 || resp.Details[0].Path != "b" {
		t.Fatalf("expected issue on b, got %+v", resp)
	}
}

func TestScoreEndpoint(t *testing.T) {
	env := newTestEnv(t)
	req := map[string]any{
		"answers":   []map[string]string{{"questionId": "q1", "optionId": "q1_a"}},
		"startTime": "2024-05-01T12:00:00Z",
		"endTime":   "2024-05-01T12:01:30Z",
	}
	status, body := env.do(t, http.MethodPost, "/api/score", req, nil)
	if status != http.StatusOK {
		t.Fatalf("score status %d: %s", status, body)
	}
	out := decode[app.ScoreOutcome](t, body)
	if out.Complete || out.Result.CompletionTime != 90 || out.Profile == nil {
		t.Fatalf("unexpected outcome %+v", out)
	}

	status, _ = env.do(t, http.MethodPost, "/api/score", []byte("{"), nil)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", status)
	}
}

func TestSubmitAndReadStats(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodPost, "/api/stats/submit", validResult(), nil)
	if status != http.StatusOK {
		t.Fatalf("submit status %d: %s", status, body)
	}
	resp := decode[app.SubmitResponse](t, body)
	if !resp.Success || resp.TotalSubmissions != 1 {
		t.Fatalf("unexpected submit response %+v", resp)
	}

	status, body = env.do(t, http.MethodGet, "/api/dashboard", nil, nil)
	if status != http.StatusOK {
		t.Fatalf("dashboard status %d", status)
	}
	dash := decode[domain.DashboardStats](t, body)
	if dash.TopMBTI == nil || *dash.TopMBTI != "INTJ" || dash.AvgCompletionTime != 120 {
		t.Fatalf("unexpected dashboard %+v", dash)
	}

	status, body = env.do(t, http.MethodGet, "/api/stats", nil, nil)
	if status != http.StatusOK || decode[domain.Stats](t, body).TotalSubmissions != 1 {
		t.Fatalf("unexpected stats %d %s", status, body)
	}

	status, body = env.do(t, http.MethodGet, "/api/stats/types/INTJ", nil, nil)
	if status != http.StatusOK || decode[domain.TypeStats](t, body).Percentage != 100 {
		t.Fatalf("unexpected type stats %d %s", status, body)
	}

	status, body = env.do(t, http.MethodGet, "/api/stats/recent?limit=5", nil, nil)
	if status != http.StatusOK || len(decode[[]domain.RecentResult](t, body)) != 1 {
		t.Fatalf("unexpected recent %d %s", status, body)
	}

	status, _ = env.do(t, http.MethodGet, "/api/stats/recent?limit=zero", nil, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad limit, got %d", status)
	}
}

func TestSubmitRejectsInvalidResult(t *testing.T) {
	env := newTestEnv(t)
	payload := validResult()
	payload["mbtiType"] = "XXXX"
	payload["completionTime"] = -5

	status, body := env.do(t, http.MethodPost, "/api/stats/submit", payload, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	resp := decode[app.SubmitResponse](t, body)
	if resp.Success || len(resp.Details) != 2 {
		t.Fatalf("expected two issues, got %+v", resp)
	}

	_, body = env.do(t, http.MethodGet, "/api/stats", nil, nil)
	if decode[domain.Stats](t, body).TotalSubmissions != 0 {
		t.Fatalf("invalid submission reached statistics")
	}
}

func TestSubmitIdempotencyHeader(t *testing.T) {
	env := newTestEnv(t)
	headers := map[string]string{"Idempotency-Key": "abc-123"}

	_, _ = env.do(t, http.MethodPost, "/api/stats/submit", validResult(), headers)
	status, body := env.do(t, http.MethodPost, "/api/stats/submit", validResult(), headers)
	if status != http.StatusOK {
		t.Fatalf("expected 200 for duplicate, got %d", status)
	}
	resp := decode[app.SubmitResponse](t, body)
	if !resp.Duplicate || resp.TotalSubmissions != 1 {
		t.Fatalf("expected duplicate acknowledgement, got %+v", resp)
	}
}

func TestSubmitRateLimited(t *testing.T) {
	env := newTestEnv(t, WithSubmitLimiter(NewSubmitLimiter(1, 1)))

	status, _ := env.do(t, http.MethodPost, "/api/stats/submit", validResult(), nil)
	if status != http.StatusOK {
		t.Fatalf("expected first submit accepted, got %d", status)
	}
	status, _ = env.do(t, http.MethodPost, "/api/stats/submit", validResult(), nil)
	if status != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", status)
	}
}

func TestSessionLifecycleOverHTTP(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodPost, "/api/sessions", nil, nil)
	if status != http.StatusCreated {
		t.Fatalf("start status %d: %s", status, body)
	}
	id := decode[app.SessionView](t, body).Session.ID

	status, _ = env.do(t, http.MethodPost, "/api/sessions/"+id+"/complete", nil, nil)
	if status != http.StatusConflict {
		t.Fatalf("expected 409 for incomplete quiz, got %d", status)
	}

	for i := 1; i <= 8; i++ {
		answer := map[string]string{"questionId": fmt.Sprintf("q%d", i), "optionId": fmt.Sprintf("q%d_b", i)}
		status, body = env.do(t, http.MethodPut, "/api/sessions/"+id+"/answers", answer, nil)
		if status != http.StatusOK {
			t.Fatalf("answer q%d status %d: %s", i, status, body)
		}
	}

	status, body = env.do(t, http.MethodPost, "/api/sessions/"+id+"/navigate", map[string]any{"action": "goto", "index": 3}, nil)
	if status != http.StatusOK || decode[app.SessionView](t, body).Session.CurrentQuestionIndex != 3 {
		t.Fatalf("unexpected navigate %d %s", status, body)
	}

	status, body = env.do(t, http.MethodPost, "/api/sessions/"+id+"/complete", nil, nil)
	if status != http.StatusOK {
		t.Fatalf("complete status %d: %s", status, body)
	}
	done := decode[completeResponse](t, body)
	if done.Session.State != domain.SessionCompleted || done.Session.Result == nil {
		t.Fatalf("expected completed session, got %+v", done.Session)
	}
	if !done.Submission.Success || done.Submission.TotalSubmissions != 1 {
		t.Fatalf("expected result submitted, got %+v", done.Submission)
	}

	status, body = env.do(t, http.MethodPost, "/api/sessions/"+id+"/reset", nil, nil)
	if status != http.StatusOK || decode[app.SessionView](t, body).Session.State != domain.SessionIdle {
		t.Fatalf("unexpected reset %d %s", status, body)
	}

	status, body = env.do(t, http.MethodPost, "/api/sessions/"+id+"/start", nil, nil)
	if status != http.StatusOK || decode[app.SessionView](t, body).Session.State != domain.SessionInProgress {
		t.Fatalf("unexpected restart %d %s", status, body)
	}

	status, _ = env.do(t, http.MethodGet, "/api/sessions/does-not-exist", nil, nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
}
