package http

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/domain"
	"trivia-quiz/internal/infra/memory"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeProvider serves arithmetic questions whose answer is always "4".
type fakeProvider struct {
	err error
}

func (p *fakeProvider) FetchQuestions(_ context.Context, cfg domain.QuizConfig) ([]domain.Question, error) {
	if p.err != nil {
		return nil, p.err
	}
	questions := make([]domain.Question, 0, cfg.Amount)
	for i := 0; i < cfg.Amount; i++ {
		questions = append(questions, domain.Question{
			Prompt:           fmt.Sprintf("What is 2 + 2? (%d)", i+1),
			CorrectAnswer:    "4",
			IncorrectAnswers: []string{"3", "5", "22"},
			Options:          []string{"3", "4", "5", "22"},
			Category:         "Science: Mathematics",
			Difficulty:       domain.DifficultyEasy,
		})
	}
	return questions, nil
}

type fixture struct {
	service  *app.QuizService
	provider *fakeProvider
	router   *gin.Engine
}

func newFixture(t *testing.T, leaderboard app.Leaderboard) *fixture {
	t.Helper()
	provider := &fakeProvider{}
	categories := memory.NewCategoryCache(memory.NewStaticCategoryLoader([]domain.Category{
		{ID: 19, Name: "Science: Mathematics"},
	}), time.Minute)
	service := app.NewQuizService(memory.NewSessionStore(), provider, categories, leaderboard, nil)
	return &fixture{
		service:  service,
		provider: provider,
		router:   NewRouter(service, nil, 10),
	}
}
