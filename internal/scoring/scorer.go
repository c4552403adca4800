// Package scoring turns answered questions into a type classification.
package scoring

import (
	"math"
	"sort"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"playstyle-quiz-service/internal/domain"
)

// Scorer computes quiz results. It holds no quiz state and is safe for
// concurrent use; the only shared field is the skip counter.
type Scorer struct {
	log     logrus.FieldLogger
	skipped atomic.Int64
}

// NewScorer returns a scorer that logs unresolved answers to log.
func NewScorer(log logrus.FieldLogger) *Scorer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Scorer{log: log}
}

// Skipped returns how many answers referenced unknown questions or options.
func (s *Scorer) Skipped() int64 {
	return s.skipped.Load()
}

// ComputeResult scores answers against questions. Callers decide whether a
// partial answer set is final; the scorer never rejects input.
func (s *Scorer) ComputeResult(answers []domain.Answer, questions []domain.Question, start, end time.Time) domain.QuizResult {
	scores, unresolved := Accumulate(answers, questions)
	for _, a := range unresolved {
		s.skipped.Add(1)
		s.log.WithFields(logrus.Fields{
			"question_id": a.QuestionID,
			"option_id":   a.OptionID,
		}).Debug("skipping unresolved answer")
	}
	return buildResult(scores, len(questions), start, end)
}

// ComputeResult is the logger-free form of Scorer.ComputeResult.
func ComputeResult(answers []domain.Answer, questions []domain.Question, start, end time.Time) domain.QuizResult {
	scores, _ := Accumulate(answers, questions)
	return buildResult(scores, len(questions), start, end)
}

func buildResult(scores domain.ScoreVector, total int, start, end time.Time) domain.QuizResult {
	return domain.QuizResult{
		MBTIType:       DetermineType(scores),
		Scores:         scores,
		Percentages:    Percentages(scores),
		DominantTraits: DominantTraits(scores),
		CompletionTime: CompletionSeconds(start, end),
		TotalQuestions: total,
	}
}

// Accumulate sums option contributions per dimension. Answers whose question
// or option cannot be resolved are returned instead of being applied.
func Accumulate(answers []domain.Answer, questions []domain.Question) (domain.ScoreVector, []domain.Answer) {
	scores := domain.NewScoreVector()
	var unresolved []domain.Answer
	for _, answer := range answers {
		option, ok := resolve(questions, answer)
		if !ok {
			unresolved = append(unresolved, answer)
			continue
		}
		for _, c := range option.Contributions {
			scores[c.Dimension] += c.Value
		}
	}
	return scores, unresolved
}

func resolve(questions []domain.Question, answer domain.Answer) (*domain.Option, bool) {
	for i := range questions {
		if questions[i].ID != answer.QuestionID {
			continue
		}
		for j := range questions[i].Options {
			if questions[i].Options[j].ID == answer.OptionID {
				return &questions[i].Options[j], true
			}
		}
		return nil, false
	}
	return nil, false
}

// winner picks the axis pole with the strictly greater sum; ties go to Second.
func winner(scores domain.ScoreVector, axis domain.Axis) domain.Dimension {
	if scores[axis.First] > scores[axis.Second] {
		return axis.First
	}
	return axis.Second
}

// DetermineType concatenates the winning pole of each axis.
func DetermineType(scores domain.ScoreVector) domain.Type {
	code := make([]byte, 0, len(domain.Axes))
	for _, axis := range domain.Axes {
		code = append(code, string(winner(scores, axis))...)
	}
	return domain.Type(code)
}

// Percentages normalizes each pole against its axis partner using absolute
// sums. An axis with both sums at zero reports 50 for each pole.
func Percentages(scores domain.ScoreVector) map[domain.Dimension]int {
	out := make(map[domain.Dimension]int, len(domain.Dimensions))
	for _, axis := range domain.Axes {
		first := abs(scores[axis.First])
		second := abs(scores[axis.Second])
		total := first + second
		if total == 0 {
			out[axis.First] = 50
			out[axis.Second] = 50
			continue
		}
		out[axis.First] = roundHalfUp(float64(first) / float64(total) * 100)
		out[axis.Second] = roundHalfUp(float64(second) / float64(total) * 100)
	}
	return out
}

// DominantTraits orders the winning poles by axis margin, largest first.
// Equal margins keep axis order.
func DominantTraits(scores domain.ScoreVector) []domain.Dimension {
	type ranked struct {
		pole   domain.Dimension
		margin int
	}
	pairs := make([]ranked, 0, len(domain.Axes))
	for _, axis := range domain.Axes {
		pairs = append(pairs, ranked{
			pole:   winner(scores, axis),
			margin: abs(scores[axis.First] - scores[axis.Second]),
		})
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].margin > pairs[j].margin
	})

	traits := make([]domain.Dimension, 0, len(pairs))
	for _, p := range pairs {
		traits = append(traits, p.pole)
	}
	return traits
}

// CompletionSeconds rounds the elapsed time to whole seconds. A clock going
// backwards yields a non-positive value, which is kept as-is.
func CompletionSeconds(start, end time.Time) int {
	return roundHalfUp(float64(end.Sub(start).Milliseconds()) / 1000)
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
