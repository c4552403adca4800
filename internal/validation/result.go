// Package validation schema-checks client payloads and static quiz data.
package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"playstyle-quiz-service/internal/domain"
)

// maxMagnitude bounds every integer field read from a payload.
const maxMagnitude = math.MaxInt32

type collector struct {
	issues []domain.Issue
}

func (c *collector) add(path, format string, args ...any) {
	c.issues = append(c.issues, domain.Issue{Path: path, Message: fmt.Sprintf(format, args...)})
}

func (c *collector) err() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &domain.ValidationError{Issues: c.issues}
}

// ParseResult decodes and validates a submitted quiz result. Every offending
// field is reported; nothing is returned unless the whole payload is valid.
func ParseResult(data []byte) (domain.QuizResult, error) {
	var c collector
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		c.add("", "expected a JSON object")
		return domain.QuizResult{}, c.err()
	}

	var result domain.QuizResult

	var mbti string
	if decodeField(&c, fields, "mbtiType", &mbti) {
		if t, err := domain.ParseType(mbti); err != nil {
			c.add("mbtiType", "invalid enum value %q, expected one of the 16 type codes", mbti)
		} else {
			result.MBTIType = t
		}
	}

	var scores map[string]float64
	if decodeField(&c, fields, "scores", &scores) {
		result.Scores = domain.ScoreVector{}
		for _, key := range sortedKeys(scores) {
			path := "scores." + key
			if !domain.Dimension(key).Valid() {
				c.add(path, "unknown dimension")
				continue
			}
			if !isWhole(scores[key]) {
				c.add(path, "expected an integer")
				continue
			}
			if math.Abs(scores[key]) > maxMagnitude {
				c.add(path, "score out of range")
				continue
			}
			result.Scores[domain.Dimension(key)] = int(scores[key])
		}
	}

	var percentages map[string]float64
	if decodeField(&c, fields, "percentages", &percentages) {
		result.Percentages = map[domain.Dimension]int{}
		for _, key := range sortedKeys(percentages) {
			path := "percentages." + key
			v := percentages[key]
			switch {
			case !domain.Dimension(key).Valid():
				c.add(path, "unknown dimension")
			case v < 0 || v > 100:
				c.add(path, "must be between 0 and 100")
			case !isWhole(v):
				c.add(path, "expected an integer")
			default:
				result.Percentages[domain.Dimension(key)] = int(v)
			}
		}
	}

	var traits []string
	if decodeField(&c, fields, "dominantTraits", &traits) {
		if len(traits) != len(domain.Axes) {
			c.add("dominantTraits", "expected %d traits, got %d", len(domain.Axes), len(traits))
		}
		for i, trait := range traits {
			if !domain.Dimension(trait).Valid() {
				c.add(fmt.Sprintf("dominantTraits.%d", i), "invalid enum value %q", trait)
				continue
			}
			result.DominantTraits = append(result.DominantTraits, domain.Dimension(trait))
		}
	}

	var completion float64
	if decodeField(&c, fields, "completionTime", &completion) {
		switch {
		case completion <= 0:
			c.add("completionTime", "completion time must be positive")
		case completion > maxMagnitude:
			c.add("completionTime", "completion time out of range")
		case !isWhole(completion):
			c.add("completionTime", "expected whole seconds")
		default:
			result.CompletionTime = int(completion)
		}
	}

	var total float64
	if decodeField(&c, fields, "totalQuestions", &total) {
		switch {
		case !isWhole(total):
			c.add("totalQuestions", "expected an integer")
		case total <= 0:
			c.add("totalQuestions", "total questions must be a positive integer")
		case total > maxMagnitude:
			c.add("totalQuestions", "total questions out of range")
		default:
			result.TotalQuestions = int(total)
		}
	}

	if err := c.err(); err != nil {
		return domain.QuizResult{}, err
	}
	return result, nil
}

// ValidateResult checks an already-typed result with the same rules as ParseResult.
func ValidateResult(result domain.QuizResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = ParseResult(data)
	return err
}

// decodeField reports whether the required field was present and well-typed.
func decodeField(c *collector, fields map[string]json.RawMessage, name string, dst any) bool {
	raw, ok := fields[name]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		c.add(name, "required")
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		c.add(name, "expected %s", describe(dst))
		return false
	}
	return true
}

func describe(dst any) string {
	switch dst.(type) {
	case *string:
		return "a string"
	case *float64:
		return "a number"
	case *[]string:
		return "an array of strings"
	case *map[string]float64:
		return "an object of numbers"
	default:
		return "a different type"
	}
}

func isWhole(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v) && math.Trunc(v) == v
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
