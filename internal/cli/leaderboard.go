package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"trivia-quiz/internal/config"
	"trivia-quiz/internal/domain"
	"trivia-quiz/internal/logging"
)

// NewLeaderboardCmd prints the top scores from the configured backend.
func NewLeaderboardCmd(configPath *string) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Print the top scores",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			log, err := logging.New(cfg.App.Env)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			service, cleanup, err := buildService(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer cleanup()

			if limit <= 0 {
				limit = cfg.Leaderboard.Limit
			}
			records, err := service.Leaderboard(cmd.Context(), limit)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderLeaderboard(records))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "number of scores to show (default leaderboard.limit)")
	return cmd
}

func renderLeaderboard(records []domain.ScoreRecord) string {
	if len(records) == 0 {
		return "No scores yet."
	}
	t := table.New().Headers("#", "Player", "Score", "%", "Category", "Difficulty", "When")
	for i, r := range records {
		t.Row(
			strconv.Itoa(i+1),
			r.Player,
			fmt.Sprintf("%d/%d", r.Score, r.Total),
			fmt.Sprintf("%.1f", r.Percentage),
			r.Category,
			r.Difficulty,
			r.Timestamp.Format("2006-01-02 15:04"),
		)
	}
	return t.String()
}
