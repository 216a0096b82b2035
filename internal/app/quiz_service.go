package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"trivia-quiz/internal/domain"
	"trivia-quiz/pkg/validator"
)

// SessionRepository abstracts how quiz sessions are stored (in-memory, Redis, etc).
// Get returns an independent copy; changes are persisted with Save.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, id string) error
}

// QuestionProvider fetches questions for a quiz configuration.
type QuestionProvider interface {
	FetchQuestions(ctx context.Context, cfg domain.QuizConfig) ([]domain.Question, error)
}

// CategoryCatalog lists the provider's categories.
type CategoryCatalog interface {
	Categories(ctx context.Context) ([]domain.Category, error)
}

// Leaderboard persists score records and returns the best ones.
type Leaderboard interface {
	Submit(ctx context.Context, record domain.ScoreRecord) error
	Top(ctx context.Context, n int) ([]domain.ScoreRecord, error)
}

const (
	DefaultLeaderboardLimit = 10
	MaxLeaderboardLimit     = 100
)

// QuizService contains the core quiz use cases.
type QuizService struct {
	sessions    SessionRepository
	questions   QuestionProvider
	categories  CategoryCatalog
	leaderboard Leaderboard
	log         *zap.Logger
	now         func() time.Time
	newID       func() string

	// scoreMu serializes SubmitScore so the submitted flag is checked and set
	// atomically within this process. Instances sharing a Redis session store
	// still rely on one client driving a session at a time.
	scoreMu sync.Mutex
}

// NewQuizService wires the use cases. A nil leaderboard means scores cannot be saved.
func NewQuizService(sessions SessionRepository, questions QuestionProvider, categories CategoryCatalog, leaderboard Leaderboard, log *zap.Logger) *QuizService {
	if log == nil {
		log = zap.NewNop()
	}
	return &QuizService{
		sessions:    sessions,
		questions:   questions,
		categories:  categories,
		leaderboard: leaderboard,
		log:         log,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// WithClock is test-only for deterministic timestamps.
func (s *QuizService) WithClock(now func() time.Time) *QuizService {
	s.now = now
	return s
}

// CreateSession opens a NotStarted session.
func (s *QuizService) CreateSession(ctx context.Context) (domain.SessionView, error) {
	session := NewSessionWithClock(s.newID(), s.now)
	if err := s.sessions.Create(ctx, session); err != nil {
		return domain.SessionView{}, err
	}
	return session.View(), nil
}

// Start fetches questions and moves the session to InProgress.
// On a fetch failure the session stays NotStarted so the caller can retry.
func (s *QuizService) Start(ctx context.Context, id string, cfg domain.QuizConfig) (domain.SessionView, error) {
	cfg = cfg.WithDefaults()
	if err := validateConfig(cfg); err != nil {
		return domain.SessionView{}, err
	}

	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return domain.SessionView{}, err
	}
	switch session.State() {
	case domain.StateInProgress:
		return domain.SessionView{}, domain.ErrSessionStarted
	case domain.StateCompleted:
		return domain.SessionView{}, domain.ErrSessionCompleted
	}

	questions, err := s.questions.FetchQuestions(ctx, cfg)
	if err != nil {
		s.log.Warn("fetch questions failed", zap.String("session_id", id), zap.Int("category", cfg.CategoryID), zap.String("difficulty", cfg.Difficulty.Label()), zap.Error(err))
		return domain.SessionView{}, err
	}
	if err := session.Start(cfg, questions); err != nil {
		s.log.Warn("start session rejected", zap.String("session_id", id), zap.Error(err))
		return domain.SessionView{}, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return domain.SessionView{}, err
	}
	s.log.Info("session started", zap.String("session_id", id), zap.Int("questions", len(questions)))
	return session.View(), nil
}

// Session returns the client view of a session.
func (s *QuizService) Session(ctx context.Context, id string) (domain.SessionView, error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return domain.SessionView{}, err
	}
	return session.View(), nil
}

// Submit grades the answer for the current question.
func (s *QuizService) Submit(ctx context.Context, id string, sub domain.AnswerSubmission) (domain.AnswerFeedback, error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return domain.AnswerFeedback{}, err
	}
	feedback, err := session.Submit(sub)
	if err != nil {
		return domain.AnswerFeedback{}, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return domain.AnswerFeedback{}, err
	}
	if feedback.State == domain.StateCompleted {
		s.log.Info("session completed", zap.String("session_id", id), zap.Int("score", feedback.Score))
	}
	return feedback, nil
}

// Result returns the final grade of a completed session.
func (s *QuizService) Result(ctx context.Context, id string) (domain.QuizResult, error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return domain.QuizResult{}, err
	}
	return session.Result()
}

type scoreSubmission struct {
	Player string `validate:"required,max=15"`
}

// SubmitScore archives a completed session on the leaderboard. Each session submits at most once.
func (s *QuizService) SubmitScore(ctx context.Context, id, player string) (domain.ScoreRecord, error) {
	player = strings.TrimSpace(player)
	if err := validator.ValidateStruct(scoreSubmission{Player: player}); err != nil {
		return domain.ScoreRecord{}, fmt.Errorf("%w: %v", domain.ErrInvalidPlayer, err)
	}

	s.scoreMu.Lock()
	defer s.scoreMu.Unlock()

	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return domain.ScoreRecord{}, err
	}
	result, err := session.Result()
	if err != nil {
		return domain.ScoreRecord{}, err
	}
	if session.ScoreSubmitted() {
		return domain.ScoreRecord{}, domain.ErrScoreAlreadySubmitted
	}
	if s.leaderboard == nil {
		return domain.ScoreRecord{}, fmt.Errorf("%w: leaderboard offline", domain.ErrPersistence)
	}

	record := domain.ScoreRecord{
		ID:         s.newID(),
		Player:     player,
		Score:      result.Score,
		Total:      result.Total,
		Percentage: result.Percentage,
		Category:   session.CategoryName(),
		Difficulty: result.Difficulty.Label(),
		Timestamp:  s.now(),
	}
	if err := s.leaderboard.Submit(ctx, record); err != nil {
		s.log.Warn("save score failed", zap.String("session_id", id), zap.String("player", player), zap.Error(err))
		return domain.ScoreRecord{}, err
	}

	if err := session.MarkScoreSubmitted(); err != nil {
		return domain.ScoreRecord{}, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return domain.ScoreRecord{}, err
	}
	return record, nil
}

// Leaderboard returns the top n scores; n <= 0 selects the default.
func (s *QuizService) Leaderboard(ctx context.Context, n int) ([]domain.ScoreRecord, error) {
	if n <= 0 {
		n = DefaultLeaderboardLimit
	}
	if n > MaxLeaderboardLimit {
		n = MaxLeaderboardLimit
	}
	if s.leaderboard == nil {
		return nil, fmt.Errorf("%w: leaderboard offline", domain.ErrPersistence)
	}
	records, err := s.leaderboard.Top(ctx, n)
	if err != nil {
		s.log.Warn("load leaderboard failed", zap.Error(err))
		return nil, err
	}
	return records, nil
}

// Categories lists the available categories with the "any" entry first.
func (s *QuizService) Categories(ctx context.Context) ([]domain.Category, error) {
	all := []domain.Category{{ID: domain.AnyCategory, Name: domain.AnyCategoryName}}
	if s.categories == nil {
		return all, nil
	}
	cats, err := s.categories.Categories(ctx)
	if err != nil {
		s.log.Warn("load categories failed", zap.Error(err))
		return nil, err
	}
	return append(all, cats...), nil
}

// Abandon drops a session; the player starts over with a new one.
func (s *QuizService) Abandon(ctx context.Context, id string) error {
	return s.sessions.Delete(ctx, id)
}

func validateConfig(cfg domain.QuizConfig) error {
	if err := validator.ValidateStruct(cfg); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	if !cfg.Difficulty.Valid() {
		return fmt.Errorf("%w: unknown difficulty %q", domain.ErrInvalidConfig, cfg.Difficulty)
	}
	return nil
}
