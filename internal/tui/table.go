package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"trivia-quiz/internal/domain"
)

func boardColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 3},
		{Title: "Player", Width: domain.MaxPlayerNameLen},
		{Title: "Score", Width: 7},
		{Title: "%", Width: 6},
		{Title: "Category", Width: 24},
		{Title: "Difficulty", Width: 10},
	}
}

func newBoard(noColor bool) table.Model {
	t := table.New(
		table.WithColumns(boardColumns()),
		table.WithRows([]table.Row{}),
		table.WithFocused(false),
		table.WithHeight(11),
	)
	styles := table.DefaultStyles()
	if !noColor {
		styles.Header = styles.Header.Foreground(lipgloss.Color("252")).Bold(true)
	}
	t.SetStyles(styles)
	return t
}

// boardRows converts score records into table rows in rank order.
func boardRows(records []domain.ScoreRecord) []table.Row {
	rows := make([]table.Row, 0, len(records))
	for i, r := range records {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			r.Player,
			fmt.Sprintf("%d/%d", r.Score, r.Total),
			fmt.Sprintf("%.1f", r.Percentage),
			r.Category,
			r.Difficulty,
		})
	}
	return rows
}
