package validation

import (
	"fmt"
	"strings"

	"playstyle-quiz-service/internal/domain"
)

const (
	minContribution = -2
	maxContribution = 2
)

// ValidateQuestion checks one question and its options.
func ValidateQuestion(q domain.Question) error {
	var c collector
	validateQuestion(&c, "", q)
	return c.err()
}

// ValidateBank checks every question and requires unique question ids.
func ValidateBank(bank domain.Bank) error {
	var c collector
	if len(bank.Questions) == 0 {
		c.add("questions", "bank has no questions")
	}
	seen := make(map[string]bool, len(bank.Questions))
	for i, q := range bank.Questions {
		prefix := fmt.Sprintf("questions.%d.", i)
		if seen[q.ID] {
			c.add(prefix+"id", "duplicate question id %q", q.ID)
		}
		seen[q.ID] = true
		validateQuestion(&c, prefix, q)
	}
	return c.err()
}

// ValidateAnswer requires both ids to be present.
func ValidateAnswer(a domain.Answer) error {
	var c collector
	if strings.TrimSpace(a.QuestionID) == "" {
		c.add("questionId", "question id must not be empty")
	}
	if strings.TrimSpace(a.OptionID) == "" {
		c.add("optionId", "option id must not be empty")
	}
	return c.err()
}

func validateQuestion(c *collector, prefix string, q domain.Question) {
	if q.ID == "" {
		c.add(prefix+"id", "question id must not be empty")
	}
	if q.Prompt == "" {
		c.add(prefix+"question", "question text must not be empty")
	}
	if !q.Category.Valid() {
		c.add(prefix+"category", "invalid enum value %q", q.Category)
	}
	if len(q.Options) < 2 {
		c.add(prefix+"options", "at least 2 options are required")
	}
	for i, o := range q.Options {
		op := fmt.Sprintf("%soptions.%d.", prefix, i)
		if o.ID == "" {
			c.add(op+"id", "option id must not be empty")
		}
		if o.Text == "" {
			c.add(op+"text", "option text must not be empty")
		}
		if len(o.Contributions) == 0 {
			c.add(op+"scores", "at least one score is required")
		}
		for j, s := range o.Contributions {
			sp := fmt.Sprintf("%sscores.%d.", op, j)
			if !s.Dimension.Valid() {
				c.add(sp+"dimension", "invalid enum value %q", s.Dimension)
			}
			if s.Value < minContribution || s.Value > maxContribution {
				c.add(sp+"value", "score must be between %d and %d", minContribution, maxContribution)
			}
		}
	}
}
