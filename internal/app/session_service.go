package app

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"playstyle-quiz-service/internal/catalog"
	"playstyle-quiz-service/internal/domain"
	"playstyle-quiz-service/internal/scoring"
	"playstyle-quiz-service/internal/validation"
)

// SessionRepository abstracts how quiz sessions are stored (in-memory, Redis, etc).
type SessionRepository interface {
	Save(ctx context.Context, session domain.QuizSession) error
	Get(ctx context.Context, id string) (domain.QuizSession, error)
	Delete(ctx context.Context, id string) error
}

// Transition applies an event to a session state. Unknown combinations
// return ErrInvalidTransition.
func Transition(state domain.SessionState, event domain.SessionEvent) (domain.SessionState, error) {
	switch event {
	case domain.EventReset:
		return domain.SessionIdle, nil
	case domain.EventStart:
		if state == domain.SessionIdle {
			return domain.SessionInProgress, nil
		}
	case domain.EventAnswer:
		if state == domain.SessionInProgress {
			return domain.SessionInProgress, nil
		}
	case domain.EventFinish:
		if state == domain.SessionInProgress {
			return domain.SessionCompleted, nil
		}
	}
	return state, fmt.Errorf("%w: %s on %s", domain.ErrInvalidTransition, event, state)
}

// Navigation moves the current question pointer.
type Navigation string

const (
	NavigateNext     Navigation = "next"
	NavigatePrevious Navigation = "previous"
	NavigateGoTo     Navigation = "goto"
)

// SessionView pairs a session with its derived progress.
type SessionView struct {
	Session  domain.QuizSession `json:"session"`
	Progress domain.Progress    `json:"progress"`
}

const lockStripes = 64

// SessionService drives server-held quiz sessions. Each operation loads,
// mutates and saves a session under a per-id lock.
type SessionService struct {
	sessions SessionRepository
	banks    BankRepository
	bankID   string
	scorer   *scoring.Scorer
	now      func() time.Time
	newID    func() string
	locks    [lockStripes]sync.Mutex
}

func NewSessionService(sessions SessionRepository, banks BankRepository, bankID string, scorer *scoring.Scorer) *SessionService {
	return NewSessionServiceWithClock(sessions, banks, bankID, scorer, time.Now)
}

// NewSessionServiceWithClock is test-only for deterministic timestamps.
func NewSessionServiceWithClock(sessions SessionRepository, banks BankRepository, bankID string, scorer *scoring.Scorer, now func() time.Time) *SessionService {
	if bankID == "" {
		bankID = catalog.DefaultBankID
	}
	return &SessionService{
		sessions: sessions,
		banks:    banks,
		bankID:   bankID,
		scorer:   scorer,
		now:      now,
		newID:    uuid.NewString,
	}
}

// Start creates a new in-progress session.
func (s *SessionService) Start(ctx context.Context) (SessionView, error) {
	bank, err := s.banks.GetBank(ctx, s.bankID)
	if err != nil {
		return SessionView{}, err
	}
	state, err := Transition(domain.SessionIdle, domain.EventStart)
	if err != nil {
		return SessionView{}, err
	}
	session := domain.QuizSession{
		ID:        s.newID(),
		BankID:    bank.ID,
		State:     state,
		Answers:   []domain.Answer{},
		StartTime: s.now().UTC(),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return SessionView{}, err
	}
	return SessionView{Session: session, Progress: progressOf(session, bank)}, nil
}

// Get returns a session and its progress.
func (s *SessionService) Get(ctx context.Context, id string) (SessionView, error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return SessionView{}, err
	}
	bank, err := s.banks.GetBank(ctx, session.BankID)
	if err != nil {
		return SessionView{}, err
	}
	return SessionView{Session: session, Progress: progressOf(session, bank)}, nil
}

// Restart begins an idle (reset) session again with a fresh start time.
func (s *SessionService) Restart(ctx context.Context, id string) (SessionView, error) {
	return s.update(ctx, id, func(session *domain.QuizSession, _ domain.Bank) error {
		state, err := Transition(session.State, domain.EventStart)
		if err != nil {
			return err
		}
		session.State = state
		session.StartTime = s.now().UTC()
		return nil
	})
}

// Answer records the chosen option for a question. An earlier answer to the
// same question is replaced in place.
func (s *SessionService) Answer(ctx context.Context, id, questionID, optionID string) (SessionView, error) {
	answer := domain.Answer{QuestionID: questionID, OptionID: optionID}
	if err := validation.ValidateAnswer(answer); err != nil {
		return SessionView{}, err
	}
	return s.update(ctx, id, func(session *domain.QuizSession, bank domain.Bank) error {
		state, err := Transition(session.State, domain.EventAnswer)
		if err != nil {
			return err
		}
		if err := resolveOption(bank, questionID, optionID); err != nil {
			return err
		}
		answer.Timestamp = s.now().UTC()
		session.State = state
		for i := range session.Answers {
			if session.Answers[i].QuestionID == questionID {
				session.Answers[i] = answer
				return nil
			}
		}
		session.Answers = append(session.Answers, answer)
		return nil
	})
}

// Navigate moves the question pointer, clamped to the bank bounds.
func (s *SessionService) Navigate(ctx context.Context, id string, nav Navigation, index int) (SessionView, error) {
	return s.update(ctx, id, func(session *domain.QuizSession, bank domain.Bank) error {
		next := session.CurrentQuestionIndex
		switch nav {
		case NavigateNext:
			next++
		case NavigatePrevious:
			next--
		case NavigateGoTo:
			next = index
		default:
			return &domain.ValidationError{Issues: []domain.Issue{{Path: "action", Message: fmt.Sprintf("unknown navigation %q", nav)}}}
		}
		session.CurrentQuestionIndex = clamp(next, 0, len(bank.Questions)-1)
		return nil
	})
}

// Complete scores a fully answered session and marks it completed.
func (s *SessionService) Complete(ctx context.Context, id string) (SessionView, error) {
	return s.update(ctx, id, func(session *domain.QuizSession, bank domain.Bank) error {
		state, err := Transition(session.State, domain.EventFinish)
		if err != nil {
			return err
		}
		if len(session.Answers) != len(bank.Questions) {
			return fmt.Errorf("%w: %d of %d answered", domain.ErrQuizIncomplete, len(session.Answers), len(bank.Questions))
		}
		end := s.now().UTC()
		result := s.scorer.ComputeResult(session.Answers, bank.Questions, session.StartTime, end)
		session.State = state
		session.EndTime = &end
		session.Result = &result
		if profile, err := catalog.Profile(result.MBTIType); err == nil {
			session.Profile = &profile
		}
		return nil
	})
}

// Reset returns a session to idle with its answers cleared.
func (s *SessionService) Reset(ctx context.Context, id string) (SessionView, error) {
	return s.update(ctx, id, func(session *domain.QuizSession, _ domain.Bank) error {
		state, err := Transition(session.State, domain.EventReset)
		if err != nil {
			return err
		}
		session.State = state
		session.CurrentQuestionIndex = 0
		session.Answers = []domain.Answer{}
		session.EndTime = nil
		session.Result = nil
		session.Profile = nil
		return nil
	})
}

// SubmissionKey is the idempotency key used when a completed session's
// result is submitted to statistics.
func SubmissionKey(session domain.QuizSession) string {
	if session.EndTime == nil {
		return ""
	}
	return fmt.Sprintf("%s:%d", session.ID, session.EndTime.UnixMilli())
}

func (s *SessionService) update(ctx context.Context, id string, mutate func(*domain.QuizSession, domain.Bank) error) (SessionView, error) {
	mu := s.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return SessionView{}, err
	}
	bank, err := s.banks.GetBank(ctx, session.BankID)
	if err != nil {
		return SessionView{}, err
	}
	if err := mutate(&session, bank); err != nil {
		return SessionView{}, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return SessionView{}, err
	}
	return SessionView{Session: session, Progress: progressOf(session, bank)}, nil
}

func (s *SessionService) lockFor(id string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return &s.locks[h.Sum32()%lockStripes]
}

func resolveOption(bank domain.Bank, questionID, optionID string) error {
	for _, q := range bank.Questions {
		if q.ID != questionID {
			continue
		}
		for _, o := range q.Options {
			if o.ID == optionID {
				return nil
			}
		}
		return fmt.Errorf("%w: %s/%s", domain.ErrOptionNotFound, questionID, optionID)
	}
	return fmt.Errorf("%w: %s", domain.ErrQuestionNotFound, questionID)
}

// progressOf counts answered questions overall and per category. All six
// categories are present in the breakdown.
func progressOf(session domain.QuizSession, bank domain.Bank) domain.Progress {
	categories := make(map[domain.Category]int, len(domain.Categories))
	for _, c := range domain.Categories {
		categories[c] = 0
	}
	byID := make(map[string]domain.Category, len(bank.Questions))
	for _, q := range bank.Questions {
		byID[q.ID] = q.Category
	}
	for _, a := range session.Answers {
		if c, ok := byID[a.QuestionID]; ok {
			categories[c]++
		}
	}

	p := domain.Progress{
		Current:          len(session.Answers),
		Total:            len(bank.Questions),
		CategoryProgress: categories,
	}
	if p.Total > 0 {
		p.Percentage = int(math.Floor(float64(p.Current)/float64(p.Total)*100 + 0.5))
	}
	return p
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
