package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"trivia-quiz/internal/domain"
)

var (
	colorTitle   = lipgloss.Color("33")
	colorMuted   = lipgloss.Color("242")
	colorCorrect = lipgloss.Color("42")
	colorWrong   = lipgloss.Color("203")
	colorNotice  = lipgloss.Color("214")
)

// View renders the current screen.
func (m Model) View() string {
	var body string
	switch m.screen {
	case screenSettings:
		body = m.settingsView()
	case screenLoading:
		body = m.stylize("Loading questions...", colorMuted)
	case screenQuestion:
		body = m.questionView()
	case screenFeedback:
		body = m.feedbackView()
	case screenResult:
		body = m.resultView()
	case screenLeaderboard:
		body = m.leaderboardView()
	}
	parts := []string{m.stylize("Trivia Quiz", colorTitle), body}
	if m.notice != "" {
		parts = append(parts, m.stylize(m.notice, colorNotice))
	}
	parts = append(parts, m.stylize(m.helpLine(), colorMuted))
	return lipgloss.JoinVertical(lipgloss.Left, parts...) + "\n"
}

func (m Model) settingsView() string {
	var b strings.Builder
	b.WriteString("Category:\n")
	for i, c := range m.categories {
		cursor := "  "
		if i == m.categoryIdx {
			cursor = "> "
		}
		b.WriteString(cursor + c.Name + "\n")
	}
	fmt.Fprintf(&b, "\nDifficulty: < %s >\n", difficultyName(difficulties[m.difficulty]))
	fmt.Fprintf(&b, "Questions:  %d\n", m.opts.Amount)
	return b.String()
}

func (m Model) questionView() string {
	q := m.view.Current
	if q == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Question %d of %d  |  Score %d\n", q.Index+1, m.view.Total, m.view.Score)
	b.WriteString(m.stylize(q.Category+" / "+difficultyName(q.Difficulty), colorMuted) + "\n\n")
	b.WriteString(q.Prompt + "\n\n")
	for i, opt := range q.Options {
		marker := "( )"
		if i == m.selected {
			marker = "(*)"
		}
		fmt.Fprintf(&b, "%d %s %s\n", i+1, marker, opt)
	}
	return b.String()
}

func (m Model) feedbackView() string {
	var line string
	if m.feedback.Correct {
		line = m.stylize("Correct!", colorCorrect)
	} else {
		line = m.stylize("Incorrect. The correct answer was: "+m.feedback.CorrectAnswer, colorWrong)
	}
	next := "Press enter for the next question."
	if m.feedback.State == domain.StateCompleted {
		next = "Press enter to see your results."
	}
	return fmt.Sprintf("%s\nScore: %d\n\n%s\n", line, m.feedback.Score, next)
}

func (m Model) resultView() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Quiz complete!\n\nYou scored %d out of %d (%.1f%%)\n\n", m.result.Score, m.result.Total, m.result.Percentage)
	if m.submitted {
		b.WriteString("Score saved. Press enter to view the leaderboard.\n")
		return b.String()
	}
	b.WriteString("Save your score to the leaderboard:\n")
	b.WriteString(m.input.View() + "\n")
	return b.String()
}

func (m Model) leaderboardView() string {
	return "Leaderboard\n\n" + m.board.View() + "\n"
}

func (m Model) helpLine() string {
	switch m.screen {
	case screenSettings:
		return "up/down category  left/right difficulty  enter start  b leaderboard  q quit"
	case screenQuestion:
		return "up/down or 1-4 select  enter submit  ctrl+r reset  q quit"
	case screenFeedback:
		return "enter continue  ctrl+r reset  q quit"
	case screenResult:
		return "enter save  tab leaderboard  ctrl+r reset"
	case screenLeaderboard:
		if m.scorePending() {
			return "tab back to save your score  n new quiz  q quit"
		}
		if m.result.Total == 0 {
			return "tab back  n new quiz  q quit"
		}
		return "n new quiz  q quit"
	}
	return "ctrl+c quit"
}

func (m Model) stylize(text string, color lipgloss.Color) string {
	if m.opts.NoColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

func difficultyName(d domain.Difficulty) string {
	if d == domain.DifficultyAny {
		return "Any"
	}
	return strings.ToUpper(string(d[:1])) + string(d[1:])
}
