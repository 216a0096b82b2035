package app

import (
	"fmt"
	"time"

	"trivia-quiz/internal/domain"
)

// Session is one player's run through a fixed set of questions.
// It is not safe for concurrent mutation; stores hand out independent copies.
type Session struct {
	id             string
	state          domain.SessionState
	config         domain.QuizConfig
	questions      []domain.Question
	current        int
	selections     map[int]string
	score          int
	scoreSubmitted bool
	createdAt      time.Time
	completedAt    time.Time
	now            func() time.Time
}

// NewSession creates a session in the NotStarted state.
func NewSession(id string) *Session {
	return NewSessionWithClock(id, time.Now)
}

// NewSessionWithClock allows deterministic timestamps in tests.
func NewSessionWithClock(id string, now func() time.Time) *Session {
	return &Session{
		id:         id,
		state:      domain.StateNotStarted,
		selections: make(map[int]string),
		createdAt:  now(),
		now:        now,
	}
}

func (s *Session) ID() string                 { return s.id }
func (s *Session) State() domain.SessionState { return s.state }
func (s *Session) Config() domain.QuizConfig  { return s.config }

// Start moves NotStarted -> InProgress. The question count must match the configured amount.
func (s *Session) Start(cfg domain.QuizConfig, questions []domain.Question) error {
	switch s.state {
	case domain.StateCompleted:
		return domain.ErrSessionCompleted
	case domain.StateInProgress:
		return domain.ErrSessionStarted
	}
	if len(questions) == 0 {
		return fmt.Errorf("%w: provider returned no questions", domain.ErrContentFetch)
	}
	if len(questions) != cfg.Amount {
		return fmt.Errorf("%w: requested %d questions, got %d", domain.ErrContentFetch, cfg.Amount, len(questions))
	}

	s.config = cfg
	s.questions = append([]domain.Question(nil), questions...)
	s.current = 0
	s.score = 0
	s.selections = make(map[int]string, len(questions))
	s.state = domain.StateInProgress
	return nil
}

// Submit records the answer for the current question and advances.
// Rejected submissions leave the session untouched.
func (s *Session) Submit(sub domain.AnswerSubmission) (domain.AnswerFeedback, error) {
	switch s.state {
	case domain.StateNotStarted:
		return domain.AnswerFeedback{}, domain.ErrSessionNotStarted
	case domain.StateCompleted:
		return domain.AnswerFeedback{}, domain.ErrSessionCompleted
	}
	if sub.Answer == "" {
		return domain.AnswerFeedback{}, domain.ErrNoSelection
	}
	if sub.QuestionIndex != s.current {
		return domain.AnswerFeedback{}, fmt.Errorf("%w: question %d is not current (current is %d)", domain.ErrInvalidSelection, sub.QuestionIndex, s.current)
	}

	question := s.questions[s.current]
	if !question.HasOption(sub.Answer) {
		return domain.AnswerFeedback{}, fmt.Errorf("%w: %q is not an option for question %d", domain.ErrInvalidSelection, sub.Answer, sub.QuestionIndex)
	}

	s.selections[s.current] = sub.Answer
	correct := sub.Answer == question.CorrectAnswer
	if correct {
		s.score++
	}
	s.current++
	if s.current == len(s.questions) {
		s.complete()
	}

	return domain.AnswerFeedback{
		QuestionIndex: sub.QuestionIndex,
		Correct:       correct,
		CorrectAnswer: question.CorrectAnswer,
		Score:         s.score,
		State:         s.state,
	}, nil
}

func (s *Session) complete() {
	s.score = gradeSelections(s.questions, s.selections)
	s.state = domain.StateCompleted
	s.completedAt = s.now()
}

// Result returns the final grade. Only completed sessions have one.
func (s *Session) Result() (domain.QuizResult, error) {
	if s.state != domain.StateCompleted {
		return domain.QuizResult{}, domain.ErrSessionNotCompleted
	}
	total := len(s.questions)
	return domain.QuizResult{
		SessionID:  s.id,
		Score:      s.score,
		Total:      total,
		Percentage: domain.Percentage(s.score, total),
		CategoryID: s.config.CategoryID,
		Difficulty: s.config.Difficulty,
		Completed:  s.completedAt,
	}, nil
}

// MarkScoreSubmitted flips the one-shot leaderboard flag.
func (s *Session) MarkScoreSubmitted() error {
	if s.state != domain.StateCompleted {
		return domain.ErrSessionNotCompleted
	}
	if s.scoreSubmitted {
		return domain.ErrScoreAlreadySubmitted
	}
	s.scoreSubmitted = true
	return nil
}

func (s *Session) ScoreSubmitted() bool { return s.scoreSubmitted }

// CategoryName is the provider's name for the session's category.
func (s *Session) CategoryName() string {
	if s.config.CategoryID == domain.AnyCategory {
		return domain.AnyCategoryName
	}
	if len(s.questions) > 0 {
		return s.questions[0].Category
	}
	return ""
}

// View projects the session for clients without leaking the answer key.
func (s *Session) View() domain.SessionView {
	view := domain.SessionView{
		ID:             s.id,
		State:          s.state,
		Config:         s.config,
		Total:          len(s.questions),
		Answered:       len(s.selections),
		Score:          s.score,
		ScoreSubmitted: s.scoreSubmitted,
	}
	if s.state == domain.StateInProgress {
		q := s.questions[s.current]
		view.Current = &domain.QuestionView{
			Index:      s.current,
			Prompt:     q.Prompt,
			Options:    append([]string(nil), q.Options...),
			Category:   q.Category,
			Difficulty: q.Difficulty,
		}
	}
	return view
}

func gradeSelections(questions []domain.Question, selections map[int]string) int {
	score := 0
	for i, answer := range selections {
		if i < len(questions) && questions[i].CorrectAnswer == answer {
			score++
		}
	}
	return score
}

// SessionSnapshot is the serializable form of a Session used by stores.
type SessionSnapshot struct {
	ID             string              `json:"id"`
	State          domain.SessionState `json:"state"`
	Config         domain.QuizConfig   `json:"config"`
	Questions      []domain.Question   `json:"questions"`
	Current        int                 `json:"current"`
	Selections     map[int]string      `json:"selections"`
	Score          int                 `json:"score"`
	ScoreSubmitted bool                `json:"scoreSubmitted"`
	CreatedAt      time.Time           `json:"createdAt"`
	CompletedAt    time.Time           `json:"completedAt,omitempty"`
}

// Snapshot copies the session state.
func (s *Session) Snapshot() SessionSnapshot {
	selections := make(map[int]string, len(s.selections))
	for k, v := range s.selections {
		selections[k] = v
	}
	return SessionSnapshot{
		ID:             s.id,
		State:          s.state,
		Config:         s.config,
		Questions:      append([]domain.Question(nil), s.questions...),
		Current:        s.current,
		Selections:     selections,
		Score:          s.score,
		ScoreSubmitted: s.scoreSubmitted,
		CreatedAt:      s.createdAt,
		CompletedAt:    s.completedAt,
	}
}

// RestoreSession rebuilds a session from a snapshot.
func RestoreSession(snap SessionSnapshot) *Session {
	s := NewSessionWithClock(snap.ID, time.Now)
	s.state = snap.State
	s.config = snap.Config
	s.questions = append([]domain.Question(nil), snap.Questions...)
	s.current = snap.Current
	for k, v := range snap.Selections {
		s.selections[k] = v
	}
	s.score = snap.Score
	s.scoreSubmitted = snap.ScoreSubmitted
	s.createdAt = snap.CreatedAt
	s.completedAt = snap.CompletedAt
	return s
}
