package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"trivia-quiz/internal/config"
	"trivia-quiz/internal/tui"
)

// NewPlayCmd runs the interactive terminal quiz in-process.
func NewPlayCmd(configPath *string) *cobra.Command {
	var (
		logFile string
		noColor bool
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			// The terminal belongs to the UI, so logs only go to an explicit file.
			log := zap.NewNop()
			if logFile != "" {
				zcfg := zap.NewProductionConfig()
				zcfg.OutputPaths = []string{logFile}
				zcfg.ErrorOutputPaths = []string{logFile}
				if log, err = zcfg.Build(); err != nil {
					return err
				}
			}
			defer func() { _ = log.Sync() }()

			ctx := cmd.Context()
			service, cleanup, err := buildService(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer cleanup()

			model := tui.NewModel(ctx, service, tui.Options{
				Amount:           cfg.OpenTDB.Amount,
				LeaderboardLimit: cfg.Leaderboard.Limit,
				NoColor:          noColor,
			})
			_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}
	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colors")
	return cmd
}
