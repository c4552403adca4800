package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"playstyle-quiz-service/internal/catalog"
	"playstyle-quiz-service/internal/config"
	"playstyle-quiz-service/internal/domain"
	"playstyle-quiz-service/internal/scoring"
)

// NewScoreCmd scores an answer list offline against the built-in bank.
func NewScoreCmd() *cobra.Command {
	var (
		answers string
		seconds int
	)
	cmd := &cobra.Command{
		Use:     "score",
		Short:   "Score answers offline and print the result with its profile",
		Example: "playstyle-quiz score --answers q1=q1_a,q2=q2_c,q3=q3_b",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd.OutOrStdout(), answers, seconds)
		},
	}
	cmd.Flags().StringVar(&answers, "answers", "", "comma-separated questionId=optionId pairs")
	cmd.Flags().IntVar(&seconds, "seconds", 0, "completion time to record")
	_ = cmd.MarkFlagRequired("answers")
	return cmd
}

func runScore(out io.Writer, raw string, seconds int) error {
	parsed, err := parseAnswers(raw)
	if err != nil {
		return err
	}

	scorer := scoring.NewScorer(config.Logger())
	end := time.Now()
	start := end.Add(-time.Duration(seconds) * time.Second)
	result := scorer.ComputeResult(parsed, catalog.Questions(), start, end)
	if n := scorer.Skipped(); n > 0 {
		fmt.Fprintf(out, "warning: %d answer(s) did not match the question bank\n", n)
	}

	report := struct {
		Result  domain.QuizResult        `json:"result"`
		Profile *domain.PlaystyleProfile `json:"profile,omitempty"`
	}{Result: result}
	if profile, err := catalog.Profile(result.MBTIType); err == nil {
		report.Profile = &profile
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func parseAnswers(raw string) ([]domain.Answer, error) {
	var answers []domain.Answer
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		q, o, ok := strings.Cut(pair, "=")
		if !ok || q == "" || o == "" {
			return nil, fmt.Errorf("invalid answer %q, expected questionId=optionId", pair)
		}
		answers = append(answers, domain.Answer{QuestionID: q, OptionID: o})
	}
	return answers, nil
}
