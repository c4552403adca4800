package domain

import (
	"errors"
	"strings"
)

var (
	// ErrSessionNotFound is returned when a quiz session does not exist or has expired.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrBankNotFound indicates the question bank could not be loaded.
	ErrBankNotFound = errors.New("question bank not found")
	// ErrQuestionNotFound indicates a submitted question ID is invalid.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrOptionNotFound indicates a submitted option ID is invalid.
	ErrOptionNotFound = errors.New("option not found")
	// ErrUnknownType is returned for strings outside the 16 type codes.
	ErrUnknownType = errors.New("unknown type code")
	// ErrProfileNotFound is returned when no profile exists for a type.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrInvalidTransition is returned when an event is not allowed in the session's state.
	ErrInvalidTransition = errors.New("invalid session transition")
	// ErrQuizIncomplete is returned when completing a session with unanswered questions.
	ErrQuizIncomplete = errors.New("not all questions have been answered")
	// ErrValidation marks schema failures; see ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrStoreUnavailable wraps failures of the statistics backend.
	ErrStoreUnavailable = errors.New("statistics store unavailable")
	// ErrRateLimited is returned when a client submits too often.
	ErrRateLimited = errors.New("too many submissions")
)

// Issue is a single field-level validation failure.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError carries every issue found in one payload.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.Path+": "+issue.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
