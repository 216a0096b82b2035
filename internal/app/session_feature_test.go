package app_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/cucumber/godog"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/domain"
)

func TestSessionFeatures(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "quiz-session",
		ScenarioInitializer: initializeSessionScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
			Strict:   true,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("session features failed")
	}
}

type sessionFeature struct {
	provider  *stubProvider
	service   *app.QuizService
	sessionID string
	lastErr   error
}

var featureCategories = map[string]int{
	"Any":     domain.AnyCategory,
	"Science": 17,
}

func initializeSessionScenario(sc *godog.ScenarioContext) {
	f := &sessionFeature{}

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		f.provider = &stubProvider{}
		f.service, _ = newTestService(f.provider)
		f.sessionID = ""
		f.lastErr = nil
		return ctx, nil
	})

	sc.Step(`^the trivia provider is available$`, f.providerAvailable)
	sc.Step(`^the trivia provider is unreachable$`, f.providerUnreachable)
	sc.Step(`^I start a quiz in "([^"]*)" at "([^"]*)" difficulty with (\d+) questions$`, f.startQuiz)
	sc.Step(`^I answer (\d+) questions correctly and (\d+) incorrectly$`, f.answer)
	sc.Step(`^I submit without selecting an answer$`, f.submitEmpty)
	sc.Step(`^I try to answer question (\d+) again$`, f.answerAgain)
	sc.Step(`^the session is completed$`, f.sessionCompleted)
	sc.Step(`^the session has not started$`, f.sessionNotStarted)
	sc.Step(`^the final score is (\d+) out of (\d+)$`, f.finalScore)
	sc.Step(`^the percentage is (\d+)$`, f.percentage)
	sc.Step(`^the submission is rejected as missing a selection$`, f.rejectedNoSelection)
	sc.Step(`^the submission is rejected because the session is completed$`, f.rejectedCompleted)
	sc.Step(`^the current question is number (\d+)$`, f.currentQuestion)
	sc.Step(`^the running score is (\d+)$`, f.runningScore)
	sc.Step(`^starting fails with a content fetch error$`, f.startFailed)
}

func (f *sessionFeature) providerAvailable() error {
	f.provider.err = nil
	return nil
}

func (f *sessionFeature) providerUnreachable() error {
	f.provider.err = fmt.Errorf("%w: dial tcp: connection refused", domain.ErrContentFetch)
	return nil
}

func (f *sessionFeature) startQuiz(category, difficulty string, amount int) error {
	ctx := context.Background()
	catID, ok := featureCategories[category]
	if !ok {
		return fmt.Errorf("unknown category %q", category)
	}
	diff, ok := domain.ParseDifficulty(difficulty)
	if !ok {
		return fmt.Errorf("unknown difficulty %q", difficulty)
	}

	view, err := f.service.CreateSession(ctx)
	if err != nil {
		return err
	}
	f.sessionID = view.ID
	started, err := f.service.Start(ctx, view.ID, domain.QuizConfig{CategoryID: catID, Difficulty: diff, Amount: amount})
	f.lastErr = err
	if err == nil && started.Total != amount {
		return fmt.Errorf("expected %d questions, got %d", amount, started.Total)
	}
	return nil
}

func (f *sessionFeature) answer(correct, incorrect int) error {
	ctx := context.Background()
	for i := 0; i < correct+incorrect; i++ {
		answer := "right"
		if i >= correct {
			answer = "wrong-3"
		}
		if _, err := f.service.Submit(ctx, f.sessionID, domain.AnswerSubmission{QuestionIndex: i, Answer: answer}); err != nil {
			return fmt.Errorf("answer %d: %w", i, err)
		}
	}
	return nil
}

func (f *sessionFeature) submitEmpty() error {
	_, f.lastErr = f.service.Submit(context.Background(), f.sessionID, domain.AnswerSubmission{QuestionIndex: 0})
	return nil
}

func (f *sessionFeature) answerAgain(number int) error {
	_, f.lastErr = f.service.Submit(context.Background(), f.sessionID, domain.AnswerSubmission{QuestionIndex: number - 1, Answer: "right"})
	return nil
}

func (f *sessionFeature) view() (domain.SessionView, error) {
	return f.service.Session(context.Background(), f.sessionID)
}

func (f *sessionFeature) sessionCompleted() error {
	view, err := f.view()
	if err != nil {
		return err
	}
	if view.State != domain.StateCompleted {
		return fmt.Errorf("expected completed, got %s", view.State)
	}
	return nil
}

func (f *sessionFeature) sessionNotStarted() error {
	view, err := f.view()
	if err != nil {
		return err
	}
	if view.State != domain.StateNotStarted {
		return fmt.Errorf("expected not started, got %s", view.State)
	}
	return nil
}

func (f *sessionFeature) finalScore(score, total int) error {
	result, err := f.service.Result(context.Background(), f.sessionID)
	if err != nil {
		return err
	}
	if result.Score != score || result.Total != total {
		return fmt.Errorf("expected %d/%d, got %d/%d", score, total, result.Score, result.Total)
	}
	return nil
}

func (f *sessionFeature) percentage(pct int) error {
	result, err := f.service.Result(context.Background(), f.sessionID)
	if err != nil {
		return err
	}
	if result.Percentage != float64(pct) {
		return fmt.Errorf("expected %d%%, got %.1f%%", pct, result.Percentage)
	}
	return nil
}

func (f *sessionFeature) rejectedNoSelection() error {
	if !errors.Is(f.lastErr, domain.ErrNoSelection) {
		return fmt.Errorf("expected no selection error, got %v", f.lastErr)
	}
	return nil
}

func (f *sessionFeature) rejectedCompleted() error {
	if !errors.Is(f.lastErr, domain.ErrSessionCompleted) {
		return fmt.Errorf("expected completed error, got %v", f.lastErr)
	}
	return nil
}

func (f *sessionFeature) currentQuestion(number int) error {
	view, err := f.view()
	if err != nil {
		return err
	}
	if view.Current == nil || view.Current.Index != number-1 {
		return fmt.Errorf("expected question %d current, got %+v", number, view.Current)
	}
	return nil
}

func (f *sessionFeature) runningScore(score int) error {
	view, err := f.view()
	if err != nil {
		return err
	}
	if view.Score != score || view.Answered != 0 {
		return fmt.Errorf("expected score %d with nothing answered, got %+v", score, view)
	}
	return nil
}

func (f *sessionFeature) startFailed() error {
	if !errors.Is(f.lastErr, domain.ErrContentFetch) {
		return fmt.Errorf("expected content fetch error, got %v", f.lastErr)
	}
	return nil
}
