package http

import (
	"errors"
	"net/http"

	"playstyle-quiz-service/internal/config"
	"playstyle-quiz-service/internal/domain"
)

type errorResponse struct {
	Error   string         `json:"error"`
	Details []domain.Issue `json:"details,omitempty"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrBankNotFound),
		errors.Is(err, domain.ErrQuestionNotFound),
		errors.Is(err, domain.ErrOptionNotFound),
		errors.Is(err, domain.ErrUnknownType),
		errors.Is(err, domain.ErrProfileNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrQuizIncomplete):
		return http.StatusConflict
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps err onto a status code and a JSON body. Internal errors are
// logged and reported without detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	resp := errorResponse{Error: err.Error()}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		resp.Error = "validation failed"
		resp.Details = verr.Issues
	}
	switch status {
	case http.StatusInternalServerError:
		config.WithContext(r.Context()).WithError(err).Error("request failed")
		resp.Error = "internal error"
	case http.StatusServiceUnavailable:
		config.WithContext(r.Context()).WithError(err).Warn("backing store unavailable")
		resp.Error = "service temporarily unavailable, please try again later"
	}
	config.JSON(w, status, resp)
}

func badRequest(path, message string) error {
	return &domain.ValidationError{Issues: []domain.Issue{{Path: path, Message: message}}}
}
