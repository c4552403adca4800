package app_test

import (
	"time"

	"github.com/sirupsen/logrus"
	"playstyle-quiz-service/internal/app"
	"playstyle-quiz-service/internal/domain"
	"playstyle-quiz-service/internal/infra/memory"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	return log
}

func newStatsService() (*app.StatsService, *memory.StatsBackend) {
	backend := memory.NewStatsBackend()
	clock := func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return app.NewStatsServiceWithClock(backend, app.DefaultStatsOptions(), quietLogger(), clock), backend
}

func resultFor(mbti domain.Type, seconds int) domain.QuizResult {
	return domain.QuizResult{
		MBTIType: mbti,
		Scores:   domain.ScoreVector{"E": 0, "I": 4, "S": 0, "N": 5, "T": 6, "F": 1, "J": 3, "P": 0},
		Percentages: map[domain.Dimension]int{
			"E": 0, "I": 100, "S": 0, "N": 100, "T": 86, "F": 14, "J": 100, "P": 0,
		},
		DominantTraits: []domain.Dimension{"N", "T", "I", "J"},
		CompletionTime: seconds,
		TotalQuestions: 8,
	}
}
