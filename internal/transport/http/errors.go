package http

import (
	"errors"
	"net/http"

	"trivia-quiz/internal/domain"
)

type errorPayload struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

var errorKinds = []struct {
	err    error
	kind   string
	status int
}{
	{domain.ErrSessionNotFound, "session_not_found", http.StatusNotFound},
	{domain.ErrNoSelection, "no_selection", http.StatusBadRequest},
	{domain.ErrInvalidSelection, "invalid_selection", http.StatusUnprocessableEntity},
	{domain.ErrInvalidConfig, "invalid_config", http.StatusBadRequest},
	{domain.ErrInvalidPlayer, "invalid_player", http.StatusBadRequest},
	{domain.ErrSessionNotStarted, "session_not_started", http.StatusConflict},
	{domain.ErrSessionStarted, "session_started", http.StatusConflict},
	{domain.ErrSessionCompleted, "session_completed", http.StatusConflict},
	{domain.ErrSessionNotCompleted, "session_not_completed", http.StatusConflict},
	{domain.ErrScoreAlreadySubmitted, "score_already_submitted", http.StatusConflict},
	{domain.ErrContentFetch, "content_fetch", http.StatusBadGateway},
	{domain.ErrPersistence, "persistence", http.StatusServiceUnavailable},
}

// classify maps a use-case error to its wire kind and HTTP status.
func classify(err error) (errorPayload, int) {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return errorPayload{Kind: k.kind, Message: err.Error()}, k.status
		}
	}
	return errorPayload{Kind: "internal", Message: "internal error"}, http.StatusInternalServerError
}
