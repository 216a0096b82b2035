package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"trivia-quiz/internal/domain"
)

type categoriesMsg struct {
	categories []domain.Category
	err        error
}

type startedMsg struct {
	sessionID string
	view      domain.SessionView
	err       error
}

type answeredMsg struct {
	feedback domain.AnswerFeedback
	view     domain.SessionView
	err      error
}

type resultMsg struct {
	result domain.QuizResult
	err    error
}

type scoreMsg struct {
	record domain.ScoreRecord
	err    error
}

type leaderboardMsg struct {
	records []domain.ScoreRecord
	err     error
}

func loadCategories(ctx context.Context, svc Service) tea.Cmd {
	return func() tea.Msg {
		cats, err := svc.Categories(ctx)
		return categoriesMsg{categories: cats, err: err}
	}
}

// startQuiz reuses sessionID after a failed start, otherwise opens a new session.
func startQuiz(ctx context.Context, svc Service, sessionID string, cfg domain.QuizConfig) tea.Cmd {
	return func() tea.Msg {
		if sessionID == "" {
			created, err := svc.CreateSession(ctx)
			if err != nil {
				return startedMsg{err: err}
			}
			sessionID = created.ID
		}
		view, err := svc.Start(ctx, sessionID, cfg)
		return startedMsg{sessionID: sessionID, view: view, err: err}
	}
}

func submitAnswer(ctx context.Context, svc Service, sessionID string, sub domain.AnswerSubmission) tea.Cmd {
	return func() tea.Msg {
		feedback, err := svc.Submit(ctx, sessionID, sub)
		if err != nil {
			return answeredMsg{err: err}
		}
		view, err := svc.Session(ctx, sessionID)
		return answeredMsg{feedback: feedback, view: view, err: err}
	}
}

func loadResult(ctx context.Context, svc Service, sessionID string) tea.Cmd {
	return func() tea.Msg {
		result, err := svc.Result(ctx, sessionID)
		return resultMsg{result: result, err: err}
	}
}

func submitScore(ctx context.Context, svc Service, sessionID, player string) tea.Cmd {
	return func() tea.Msg {
		record, err := svc.SubmitScore(ctx, sessionID, player)
		return scoreMsg{record: record, err: err}
	}
}

func loadLeaderboard(ctx context.Context, svc Service, limit int) tea.Cmd {
	return func() tea.Msg {
		records, err := svc.Leaderboard(ctx, limit)
		return leaderboardMsg{records: records, err: err}
	}
}

// abandon deletes the session in the background; failures are ignored.
func abandon(ctx context.Context, svc Service, sessionID string) tea.Cmd {
	if sessionID == "" {
		return nil
	}
	return func() tea.Msg {
		_ = svc.Abandon(ctx, sessionID)
		return nil
	}
}
