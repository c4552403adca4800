package app

import (
	"context"
	"fmt"
	"time"

	"playstyle-quiz-service/internal/catalog"
	"playstyle-quiz-service/internal/domain"
	"playstyle-quiz-service/internal/scoring"
	"playstyle-quiz-service/internal/validation"
)

// BankRepository loads question banks (from cache/backing store).
type BankRepository interface {
	GetBank(ctx context.Context, bankID string) (domain.Bank, error)
}

// QuizService serves the question catalog and stateless scoring.
type QuizService struct {
	banks  BankRepository
	bankID string
	scorer *scoring.Scorer
}

func NewQuizService(banks BankRepository, bankID string, scorer *scoring.Scorer) *QuizService {
	if bankID == "" {
		bankID = catalog.DefaultBankID
	}
	return &QuizService{banks: banks, bankID: bankID, scorer: scorer}
}

// Questions returns the active question bank.
func (s *QuizService) Questions(ctx context.Context) (domain.Bank, error) {
	return s.banks.GetBank(ctx, s.bankID)
}

// ScoreOutcome is the reply of a stateless scoring request.
type ScoreOutcome struct {
	Result   domain.QuizResult        `json:"result"`
	Profile  *domain.PlaystyleProfile `json:"profile,omitempty"`
	Complete bool                     `json:"complete"`
}

// Score runs the scorer over a full answer list against the active bank.
// Complete reports whether every question was answered.
func (s *QuizService) Score(ctx context.Context, answers []domain.Answer, start, end time.Time) (ScoreOutcome, error) {
	for i, a := range answers {
		if err := validation.ValidateAnswer(a); err != nil {
			return ScoreOutcome{}, fmt.Errorf("answer %d: %w", i, err)
		}
	}
	bank, err := s.Questions(ctx)
	if err != nil {
		return ScoreOutcome{}, err
	}

	result := s.scorer.ComputeResult(answers, bank.Questions, start, end)
	out := ScoreOutcome{
		Result:   result,
		Complete: answeredAll(answers, bank.Questions),
	}
	if profile, err := catalog.Profile(result.MBTIType); err == nil {
		out.Profile = &profile
	}
	return out, nil
}

func answeredAll(answers []domain.Answer, questions []domain.Question) bool {
	seen := make(map[string]bool, len(answers))
	for _, a := range answers {
		seen[a.QuestionID] = true
	}
	for _, q := range questions {
		if !seen[q.ID] {
			return false
		}
	}
	return true
}
