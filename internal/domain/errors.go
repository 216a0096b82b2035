package domain

import "errors"

var (
	// ErrContentFetch is returned when the question provider is unreachable or returns unusable content.
	ErrContentFetch = errors.New("content fetch failed")
	// ErrPersistence is returned when the leaderboard store cannot be read or written.
	ErrPersistence = errors.New("leaderboard persistence failed")
	// ErrInvalidSelection indicates an answer for a non-current question or an unknown option.
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrNoSelection is returned when an answer is submitted without choosing an option.
	ErrNoSelection = errors.New("no answer selected")
	// ErrSessionNotFound is returned when a quiz session does not exist.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrSessionNotStarted indicates a step that needs questions was attempted too early.
	ErrSessionNotStarted = errors.New("quiz session not started")
	// ErrSessionStarted indicates Start was called on a session that already has questions.
	ErrSessionStarted = errors.New("quiz session already started")
	// ErrSessionCompleted indicates a mutation was attempted on a finished session.
	ErrSessionCompleted = errors.New("quiz session completed")
	// ErrSessionNotCompleted is returned when asking for a result mid-quiz.
	ErrSessionNotCompleted = errors.New("quiz session not completed")
	// ErrInvalidConfig indicates a quiz configuration outside the supported range.
	ErrInvalidConfig = errors.New("invalid quiz configuration")
	// ErrInvalidPlayer indicates an empty or overlong player name.
	ErrInvalidPlayer = errors.New("invalid player name")
	// ErrScoreAlreadySubmitted is returned on a second score submission for one session.
	ErrScoreAlreadySubmitted = errors.New("score already submitted")
)
