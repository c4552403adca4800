package domain

import "time"

// Dimension is one pole of a personality axis.
type Dimension string

const (
	Extraversion Dimension = "E"
	Introversion Dimension = "I"
	Sensing      Dimension = "S"
	Intuition    Dimension = "N"
	Thinking     Dimension = "T"
	Feeling      Dimension = "F"
	Judging      Dimension = "J"
	Perceiving   Dimension = "P"
)

// Axis pairs two opposed poles. Second wins exact ties.
type Axis struct {
	First  Dimension
	Second Dimension
}

// Axes lists the four axes in type-code order.
var Axes = [4]Axis{
	{First: Extraversion, Second: Introversion},
	{First: Sensing, Second: Intuition},
	{First: Thinking, Second: Feeling},
	{First: Judging, Second: Perceiving},
}

// Dimensions lists all eight poles in axis order.
var Dimensions = []Dimension{
	Extraversion, Introversion,
	Sensing, Intuition,
	Thinking, Feeling,
	Judging, Perceiving,
}

// Valid reports whether d is one of the eight poles.
func (d Dimension) Valid() bool {
	for _, known := range Dimensions {
		if d == known {
			return true
		}
	}
	return false
}

// Type is a 4-letter type code such as "INTJ".
type Type string

// Types lists the 16 type codes. Iteration over counts follows this order.
var Types = []Type{
	"INTJ", "INTP", "ENTJ", "ENTP",
	"INFJ", "INFP", "ENFJ", "ENFP",
	"ISTJ", "ISFJ", "ESTJ", "ESFJ",
	"ISTP", "ISFP", "ESTP", "ESFP",
}

// Valid reports whether t is one of the 16 type codes.
func (t Type) Valid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// ParseType returns the type for s or ErrUnknownType.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.Valid() {
		return "", ErrUnknownType
	}
	return t, nil
}

// Category groups questions by theme.
type Category string

const (
	CategoryGameplayStyle     Category = "gameplay_style"
	CategoryTeamPlay          Category = "team_play"
	CategoryProblemSolving    Category = "problem_solving"
	CategoryGamePreference    Category = "game_preference"
	CategorySocialInteraction Category = "social_interaction"
	CategoryAchievement       Category = "achievement"
)

// Categories lists the six question categories.
var Categories = []Category{
	CategoryGameplayStyle,
	CategoryTeamPlay,
	CategoryProblemSolving,
	CategoryGamePreference,
	CategorySocialInteraction,
	CategoryAchievement,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Contribution adds Value (in [-2, 2]) to a dimension's running sum.
type Contribution struct {
	Dimension Dimension `json:"dimension"`
	Value     int       `json:"value"`
}

// Option represents a possible answer for a question.
type Option struct {
	ID            string         `json:"id"`
	Text          string         `json:"text"`
	Description   string         `json:"description,omitempty"`
	Contributions []Contribution `json:"scores"`
}

// Question models a multiple-choice question.
type Question struct {
	ID          string   `json:"id"`
	Prompt      string   `json:"question"`
	Description string   `json:"description,omitempty"`
	Category    Category `json:"category"`
	Options     []Option `json:"options"`
}

// Bank is an ordered question set.
type Bank struct {
	ID        string     `json:"id"`
	Questions []Question `json:"questions"`
}

// Answer records the option chosen for a question.
type Answer struct {
	QuestionID string    `json:"questionId"`
	OptionID   string    `json:"optionId"`
	Timestamp  time.Time `json:"timestamp"`
}

// ScoreVector maps every pole to its accumulated sum.
type ScoreVector map[Dimension]int

// NewScoreVector returns a vector with all eight poles at zero.
func NewScoreVector() ScoreVector {
	v := make(ScoreVector, len(Dimensions))
	for _, d := range Dimensions {
		v[d] = 0
	}
	return v
}

// QuizResult is the scorer output and the unit submitted to statistics.
type QuizResult struct {
	MBTIType       Type              `json:"mbtiType"`
	Scores         ScoreVector       `json:"scores"`
	Percentages    map[Dimension]int `json:"percentages"`
	DominantTraits []Dimension       `json:"dominantTraits"`
	CompletionTime int               `json:"completionTime"` // seconds
	TotalQuestions int               `json:"totalQuestions"`
}

// PlaystyleProfile is static content keyed by type code.
type PlaystyleProfile struct {
	MBTIType              Type     `json:"mbtiType"`
	Title                 string   `json:"title"`
	Description           string   `json:"description"`
	Strengths             []string `json:"strengths"`
	Weaknesses            []string `json:"weaknesses"`
	RecommendedGames      []string `json:"recommendedGames"`
	RecommendedWeapons    []string `json:"recommendedWeapons"`
	RecommendedStrategies []string `json:"recommendedStrategies"`
	CompatibleTypes       []Type   `json:"compatibleTypes"`
	Tips                  []string `json:"tips"`
}
