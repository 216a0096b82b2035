// Package tui is the interactive terminal front end used by `trivia-quiz play`.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"trivia-quiz/internal/domain"
)

// Service is the subset of the quiz use cases the UI drives.
type Service interface {
	CreateSession(ctx context.Context) (domain.SessionView, error)
	Start(ctx context.Context, id string, cfg domain.QuizConfig) (domain.SessionView, error)
	Session(ctx context.Context, id string) (domain.SessionView, error)
	Submit(ctx context.Context, id string, sub domain.AnswerSubmission) (domain.AnswerFeedback, error)
	Result(ctx context.Context, id string) (domain.QuizResult, error)
	SubmitScore(ctx context.Context, id, player string) (domain.ScoreRecord, error)
	Leaderboard(ctx context.Context, n int) ([]domain.ScoreRecord, error)
	Categories(ctx context.Context) ([]domain.Category, error)
	Abandon(ctx context.Context, id string) error
}

type screen int

const (
	screenSettings screen = iota
	screenLoading
	screenQuestion
	screenFeedback
	screenResult
	screenLeaderboard
)

var difficulties = []domain.Difficulty{
	domain.DifficultyAny,
	domain.DifficultyEasy,
	domain.DifficultyMedium,
	domain.DifficultyHard,
}

// Options configures the UI model.
type Options struct {
	Amount           int
	LeaderboardLimit int
	NoColor          bool
}

// Model is the bubbletea model for one play-through at a time.
type Model struct {
	ctx     context.Context
	service Service
	opts    Options
	screen  screen

	categories  []domain.Category
	categoryIdx int
	difficulty  int

	sessionID string
	view      domain.SessionView
	selected  int
	feedback  domain.AnswerFeedback
	result    domain.QuizResult

	input     textinput.Model
	submitted bool
	board     table.Model

	notice string
	width  int
}

// NewModel builds the UI in the settings screen.
func NewModel(ctx context.Context, service Service, opts Options) Model {
	if opts.Amount <= 0 {
		opts.Amount = domain.DefaultAmount
	}
	if opts.LeaderboardLimit <= 0 {
		opts.LeaderboardLimit = 10
	}
	input := textinput.New()
	input.Placeholder = "your name"
	input.CharLimit = domain.MaxPlayerNameLen
	input.Width = domain.MaxPlayerNameLen + 1

	return Model{
		ctx:        ctx,
		service:    service,
		opts:       opts,
		screen:     screenSettings,
		categories: []domain.Category{{ID: domain.AnyCategory, Name: domain.AnyCategoryName}},
		selected:   -1,
		input:      input,
		board:      newBoard(opts.NoColor),
	}
}

// Init loads the category list.
func (m Model) Init() tea.Cmd {
	return loadCategories(m.ctx, m.service)
}

// Update routes key presses by screen and applies service replies.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		return m, nil
	case categoriesMsg:
		if typed.err != nil {
			m.notice = "Could not load categories: " + typed.err.Error()
			return m, nil
		}
		m.categories = typed.categories
		m.categoryIdx = 0
		return m, nil
	case startedMsg:
		return m.applyStarted(typed), nil
	case answeredMsg:
		return m.applyAnswered(typed), nil
	case resultMsg:
		if typed.err != nil {
			m.notice = typed.err.Error()
			return m, nil
		}
		m.result = typed.result
		m.screen = screenResult
		m.input.SetValue("")
		m.input.Focus()
		return m, nil
	case scoreMsg:
		if typed.err != nil {
			m.notice = "Could not save score: " + typed.err.Error()
			return m, nil
		}
		m.submitted = true
		m.input.Blur()
		m.notice = "Score saved for " + typed.record.Player
		return m, loadLeaderboard(m.ctx, m.service, m.opts.LeaderboardLimit)
	case leaderboardMsg:
		m.screen = screenLeaderboard
		if typed.err != nil {
			m.notice = "Leaderboard unavailable: " + typed.err.Error()
			m.board.SetRows(nil)
			return m, nil
		}
		m.board.SetRows(boardRows(typed.records))
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(typed)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}
	if key == "ctrl+r" {
		return m.reset(), abandon(m.ctx, m.service, m.sessionID)
	}

	switch m.screen {
	case screenSettings:
		return m.settingsKey(key)
	case screenQuestion:
		return m.questionKey(key)
	case screenFeedback:
		if key == "enter" || key == " " {
			return m.advance()
		}
	case screenResult:
		return m.resultKey(msg)
	case screenLeaderboard:
		switch key {
		case "n":
			return m.reset(), abandon(m.ctx, m.service, m.sessionID)
		case "tab", "esc", "b":
			return m.back(), nil
		case "q":
			return m, tea.Quit
		}
	}
	if key == "q" && m.screen != screenLoading {
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) settingsKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "up", "k":
		if m.categoryIdx > 0 {
			m.categoryIdx--
		}
	case "down", "j":
		if m.categoryIdx < len(m.categories)-1 {
			m.categoryIdx++
		}
	case "left", "h":
		m.difficulty = (m.difficulty + len(difficulties) - 1) % len(difficulties)
	case "right", "l", "tab":
		m.difficulty = (m.difficulty + 1) % len(difficulties)
	case "b":
		return m, loadLeaderboard(m.ctx, m.service, m.opts.LeaderboardLimit)
	case "enter":
		m.screen = screenLoading
		m.notice = ""
		return m, startQuiz(m.ctx, m.service, m.sessionID, m.quizConfig())
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) questionKey(key string) (tea.Model, tea.Cmd) {
	if m.view.Current == nil {
		return m, nil
	}
	options := m.view.Current.Options
	switch key {
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		} else {
			m.selected = 0
		}
	case "down", "j":
		if m.selected < len(options)-1 {
			m.selected++
		}
	case "1", "2", "3", "4", "5", "6":
		if idx := int(key[0] - '1'); idx < len(options) {
			m.selected = idx
		}
	case "enter":
		if m.selected < 0 {
			m.notice = "Please select an answer before submitting."
			return m, nil
		}
		m.notice = ""
		sub := domain.AnswerSubmission{QuestionIndex: m.view.Current.Index, Answer: options[m.selected]}
		return m, submitAnswer(m.ctx, m.service, m.sessionID, sub)
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) resultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if m.submitted {
			return m, loadLeaderboard(m.ctx, m.service, m.opts.LeaderboardLimit)
		}
		name := strings.TrimSpace(m.input.Value())
		if name == "" {
			m.notice = "Enter a name to save your score."
			return m, nil
		}
		return m, submitScore(m.ctx, m.service, m.sessionID, name)
	case "tab":
		return m, loadLeaderboard(m.ctx, m.service, m.opts.LeaderboardLimit)
	}
	if m.submitted {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) applyStarted(msg startedMsg) Model {
	if m.screen != screenLoading {
		return m
	}
	if msg.sessionID != "" {
		m.sessionID = msg.sessionID
	}
	if msg.err != nil {
		m.screen = screenSettings
		m.notice = "Could not load questions: " + msg.err.Error()
		return m
	}
	m.view = msg.view
	m.selected = -1
	m.screen = screenQuestion
	return m
}

func (m Model) applyAnswered(msg answeredMsg) Model {
	if msg.err != nil {
		m.notice = msg.err.Error()
		return m
	}
	m.feedback = msg.feedback
	m.view = msg.view
	m.selected = -1
	m.screen = screenFeedback
	return m
}

func (m Model) advance() (tea.Model, tea.Cmd) {
	if m.feedback.State == domain.StateCompleted {
		return m, loadResult(m.ctx, m.service, m.sessionID)
	}
	m.screen = screenQuestion
	return m, nil
}

// scorePending reports a finished quiz whose score has not been saved yet.
func (m Model) scorePending() bool {
	return m.result.Total > 0 && !m.submitted
}

// back leaves the leaderboard for the screen it was opened from.
func (m Model) back() Model {
	switch {
	case m.scorePending():
		m.screen = screenResult
		m.notice = ""
		m.input.Focus()
	case m.result.Total == 0:
		m.screen = screenSettings
		m.notice = ""
	}
	return m
}

// reset drops the current run and returns to the settings screen.
func (m Model) reset() Model {
	m.screen = screenSettings
	m.sessionID = ""
	m.view = domain.SessionView{}
	m.feedback = domain.AnswerFeedback{}
	m.result = domain.QuizResult{}
	m.selected = -1
	m.submitted = false
	m.notice = ""
	m.input.SetValue("")
	m.input.Blur()
	return m
}

func (m Model) quizConfig() domain.QuizConfig {
	return domain.QuizConfig{
		CategoryID: m.categories[m.categoryIdx].ID,
		Difficulty: difficulties[m.difficulty],
		Amount:     m.opts.Amount,
	}
}
