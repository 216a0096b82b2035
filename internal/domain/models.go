package domain

import "time"

// Difficulty filters questions on the content provider. The empty value means any difficulty.
type Difficulty string

const (
	DifficultyAny    Difficulty = ""
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the supported difficulties.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyAny, DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Label is the human readable name used on score records.
func (d Difficulty) Label() string {
	if d == DifficultyAny {
		return "any"
	}
	return string(d)
}

// ParseDifficulty accepts "any" and "all" as aliases for DifficultyAny.
func ParseDifficulty(raw string) (Difficulty, bool) {
	switch raw {
	case "", "any", "all":
		return DifficultyAny, true
	}
	d := Difficulty(raw)
	return d, d.Valid()
}

const (
	// AnyCategory asks the provider for questions across all categories.
	AnyCategory = 0
	// AnyCategoryName labels score records from mixed-category quizzes.
	AnyCategoryName = "Any Category"

	DefaultAmount = 10
	MaxAmount     = 50

	// MaxPlayerNameLen bounds the player name on submitted scores.
	MaxPlayerNameLen = 15
)

// Category is a provider category.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// QuizConfig selects the questions fetched when a session starts.
type QuizConfig struct {
	CategoryID int        `json:"category" validate:"min=0"`
	Difficulty Difficulty `json:"difficulty"`
	Amount     int        `json:"amount" validate:"min=1,max=50"`
}

// WithDefaults fills a zero amount.
func (c QuizConfig) WithDefaults() QuizConfig {
	if c.Amount == 0 {
		c.Amount = DefaultAmount
	}
	return c
}

// Question models an MCQ question with exactly one correct answer.
type Question struct {
	Prompt           string     `json:"prompt"`
	CorrectAnswer    string     `json:"correctAnswer"`
	IncorrectAnswers []string   `json:"incorrectAnswers"`
	Options          []string   `json:"options"` // shuffled presentation order
	Category         string     `json:"category"`
	Difficulty       Difficulty `json:"difficulty"`
}

// HasOption reports whether answer is one of the presented options.
func (q Question) HasOption(answer string) bool {
	for _, opt := range q.Options {
		if opt == answer {
			return true
		}
	}
	return false
}

// SessionState is the lifecycle position of a quiz session.
type SessionState string

const (
	StateNotStarted SessionState = "not_started"
	StateInProgress SessionState = "in_progress"
	StateCompleted  SessionState = "completed"
)

// AnswerSubmission is the player's selection for the question at QuestionIndex.
type AnswerSubmission struct {
	QuestionIndex int    `json:"questionIndex"`
	Answer        string `json:"answer"`
}

// AnswerFeedback summarizes the outcome of one submission.
type AnswerFeedback struct {
	QuestionIndex int          `json:"questionIndex"`
	Correct       bool         `json:"correct"`
	CorrectAnswer string       `json:"correctAnswer"`
	Score         int          `json:"score"`
	State         SessionState `json:"state"`
}

// QuizResult is the final grade of a completed session.
type QuizResult struct {
	SessionID  string     `json:"sessionId"`
	Score      int        `json:"score"`
	Total      int        `json:"total"`
	Percentage float64    `json:"percentage"`
	CategoryID int        `json:"category"`
	Difficulty Difficulty `json:"difficulty"`
	Completed  time.Time  `json:"completedAt"`
}

// QuestionView is a question as shown to the player, without the answer key.
type QuestionView struct {
	Index      int        `json:"index"`
	Prompt     string     `json:"prompt"`
	Options    []string   `json:"options"`
	Category   string     `json:"category"`
	Difficulty Difficulty `json:"difficulty"`
}

// SessionView is the client-facing projection of a session.
type SessionView struct {
	ID             string        `json:"id"`
	State          SessionState  `json:"state"`
	Config         QuizConfig    `json:"config"`
	Total          int           `json:"total"`
	Answered       int           `json:"answered"`
	Score          int           `json:"score"`
	Current        *QuestionView `json:"current,omitempty"`
	ScoreSubmitted bool          `json:"scoreSubmitted"`
}

// ScoreRecord is one completed session on the leaderboard. Never mutated after creation.
type ScoreRecord struct {
	ID         string    `json:"id"`
	Player     string    `json:"player"`
	Score      int       `json:"score"`
	Total      int       `json:"total"`
	Percentage float64   `json:"percentage"`
	Category   string    `json:"category"`
	Difficulty string    `json:"difficulty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Ranks reports whether a sorts before b on the leaderboard:
// score desc, then percentage desc, then earliest timestamp.
func Ranks(a, b ScoreRecord) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Percentage != b.Percentage {
		return a.Percentage > b.Percentage
	}
	return a.Timestamp.Before(b.Timestamp)
}

// Percentage returns score/total*100, or 0 for an empty quiz.
func Percentage(score, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(score) / float64(total) * 100
}
