package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/felixgeelhaar/fortify/ratelimit"
	"github.com/go-chi/chi/v5"
	"playstyle-quiz-service/internal/app"
	"playstyle-quiz-service/internal/catalog"
	"playstyle-quiz-service/internal/config"
	"playstyle-quiz-service/internal/domain"
	"playstyle-quiz-service/internal/scoring"
)

const maxBodyBytes = 64 << 10

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

// API serves the REST endpoints.
type API struct {
	quiz     *app.QuizService
	sessions *app.SessionService
	stats    *app.StatsService
	limiter  ratelimit.RateLimiter
	health   HealthCheck
	now      func() time.Time
}

// APIOption customizes an API.
type APIOption func(*API)

// WithSubmitLimiter throttles result submissions per client address.
func WithSubmitLimiter(limiter ratelimit.RateLimiter) APIOption {
	return func(a *API) { a.limiter = limiter }
}

// WithHealthCheck makes /healthz probe a dependency.
func WithHealthCheck(check HealthCheck) APIOption {
	return func(a *API) { a.health = check }
}

func NewAPI(quiz *app.QuizService, sessions *app.SessionService, stats *app.StatsService, opts ...APIOption) *API {
	a := &API{quiz: quiz, sessions: sessions, stats: stats, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewSubmitLimiter allows ratePerMinute submissions per client with the given burst.
func NewSubmitLimiter(ratePerMinute, burst int) ratelimit.RateLimiter {
	return ratelimit.New(&ratelimit.Config{
		Rate:     ratePerMinute,
		Burst:    burst,
		Interval: time.Minute,
	})
}

func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	if a.health != nil {
		if err := a.health(r.Context()); err != nil {
			config.WithContext(r.Context()).WithError(err).Warn("health check failed")
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	_, _ = w.Write([]byte("ok"))
}

func (a *API) Questions(w http.ResponseWriter, r *http.Request) {
	bank, err := a.quiz.Questions(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, bank)
}

func (a *API) Profile(w http.ResponseWriter, r *http.Request) {
	t, err := domain.ParseType(chi.URLParam(r, "type"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	profile, err := catalog.Profile(t)
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, profile)
}

func (a *API) Compatibility(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	first, errA := domain.ParseType(q.Get("a"))
	second, errB := domain.ParseType(q.Get("b"))
	if errA != nil || errB != nil {
		issues := []domain.Issue{}
		if errA != nil {
			issues = append(issues, domain.Issue{Path: "a", Message: "expected a 4-letter type code"})
		}
		if errB != nil {
			issues = append(issues, domain.Issue{Path: "b", Message: "expected a 4-letter type code"})
		}
		writeError(w, r, &domain.ValidationError{Issues: issues})
		return
	}
	config.JSON(w, http.StatusOK, map[string]any{
		"a":     first,
		"b":     second,
		"score": scoring.Compatibility(first, second),
	})
}

type scoreRequest struct {
	Answers   []domain.Answer `json:"answers"`
	StartTime *time.Time      `json:"startTime"`
	EndTime   *time.Time      `json:"endTime"`
}

func (a *API) Score(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	end := a.now()
	if req.EndTime != nil {
		end = *req.EndTime
	}
	start := end
	if req.StartTime != nil {
		start = *req.StartTime
	}
	out, err := a.quiz.Score(r.Context(), req.Answers, start, end)
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, out)
}

// Submit is the result submission boundary. The body is a QuizResult; an
// optional Idempotency-Key header deduplicates retries.
func (a *API) Submit(w http.ResponseWriter, r *http.Request) {
	if a.limiter != nil && !a.limiter.Allow(r.Context(), clientKey(r)) {
		config.JSON(w, http.StatusTooManyRequests, app.SubmitResponse{Success: false, Error: domain.ErrRateLimited.Error()})
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, r, badRequest("", "request body too large or unreadable"))
		return
	}

	resp, err := a.stats.SubmitQuizResult(r.Context(), body, r.Header.Get("Idempotency-Key"))
	if err != nil {
		config.JSON(w, statusFor(err), resp)
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

func (a *API) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.stats.GetStats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, stats)
}

func (a *API) TypeStats(w http.ResponseWriter, r *http.Request) {
	t, err := domain.ParseType(chi.URLParam(r, "type"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	stats, err := a.stats.GetTypeStats(r.Context(), t)
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, stats)
}

func (a *API) RecentResults(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, r, badRequest("limit", "expected a positive integer"))
			return
		}
		limit = n
	}
	recent, err := a.stats.GetRecentResults(r.Context(), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, recent)
}

func (a *API) Dashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := a.stats.GetDashboardStats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, dash)
}

func (a *API) StartSession(w http.ResponseWriter, r *http.Request) {
	view, err := a.sessions.Start(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusCreated, view)
}

func (a *API) GetSession(w http.ResponseWriter, r *http.Request) {
	view, err := a.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, view)
}

type answerRequest struct {
	QuestionID string `json:"questionId"`
	OptionID   string `json:"optionId"`
}

func (a *API) AnswerSession(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	view, err := a.sessions.Answer(r.Context(), chi.URLParam(r, "id"), req.QuestionID, req.OptionID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, view)
}

type navigateRequest struct {
	Action app.Navigation `json:"action"`
	Index  int            `json:"index"`
}

func (a *API) NavigateSession(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	view, err := a.sessions.Navigate(r.Context(), chi.URLParam(r, "id"), req.Action, req.Index)
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, view)
}

type completeResponse struct {
	app.SessionView
	Submission app.SubmitResponse `json:"submission"`
}

// CompleteSession scores the session and submits the result to statistics.
// A failed submission is reported alongside the result, never instead of it.
func (a *API) CompleteSession(w http.ResponseWriter, r *http.Request) {
	view, err := a.sessions.Complete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp := completeResponse{SessionView: view}
	resp.Submission, _ = a.stats.SubmitResult(r.Context(), domain.Submission{
		Result:         *view.Session.Result,
		IdempotencyKey: app.SubmissionKey(view.Session),
	})
	config.JSON(w, http.StatusOK, resp)
}

func (a *API) ResetSession(w http.ResponseWriter, r *http.Request) {
	view, err := a.sessions.Reset(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, view)
}

func (a *API) RestartSession(w http.ResponseWriter, r *http.Request) {
	view, err := a.sessions.Restart(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, view)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &typeErr):
			return badRequest(typeErr.Field, "unexpected type "+typeErr.Value)
		case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
			return badRequest("", "malformed JSON body")
		default:
			return badRequest("", err.Error())
		}
	}
	return nil
}

// clientKey identifies the caller for rate limiting. RealIP has already
// rewritten RemoteAddr from proxy headers.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
