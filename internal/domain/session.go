package domain

import "time"

// SessionState is the lifecycle state of a quiz session.
type SessionState string

const (
	SessionIdle       SessionState = "idle"
	SessionInProgress SessionState = "in-progress"
	SessionCompleted  SessionState = "completed"
)

// SessionEvent drives session state transitions.
type SessionEvent string

const (
	EventStart  SessionEvent = "START"
	EventAnswer SessionEvent = "ANSWER"
	EventFinish SessionEvent = "FINISH"
	EventReset  SessionEvent = "RESET"
)

// QuizSession is the server-held state of one user's quiz run.
type QuizSession struct {
	ID                   string            `json:"id"`
	BankID               string            `json:"bankId"`
	State                SessionState      `json:"state"`
	CurrentQuestionIndex int               `json:"currentQuestionIndex"`
	Answers              []Answer          `json:"answers"`
	StartTime            time.Time         `json:"startTime"`
	EndTime              *time.Time        `json:"endTime,omitempty"`
	Result               *QuizResult       `json:"result,omitempty"`
	Profile              *PlaystyleProfile `json:"profile,omitempty"`
}

// Progress summarizes how far a session has come.
type Progress struct {
	Current          int              `json:"current"`
	Total            int              `json:"total"`
	Percentage       int              `json:"percentage"`
	CategoryProgress map[Category]int `json:"categoryProgress"`
}
