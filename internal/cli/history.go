package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anishk/signalrank-mcp/internal/config"
	"github.com/anishk/signalrank-mcp/internal/database"
	"github.com/anishk/signalrank-mcp/internal/output"
)

var (
	historyLimit int
	historyStats bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent feedback events",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20,
		"maximum number of events to show")
	historyCmd.Flags().BoolVar(&historyStats, "stats", false,
		"show aggregate feedback statistics instead of events")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	setupLogging(cfg)

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if historyStats {
		stats, err := db.GetFeedbackStats(ctx, cfg.User.ID)
		if err != nil {
			return fmt.Errorf("failed to load feedback stats: %w", err)
		}
		return output.Output(outputFmt, stats)
	}

	events, err := db.ListFeedbackEvents(ctx, cfg.User.ID, historyLimit)
	if err != nil {
		return fmt.Errorf("failed to load feedback history: %w", err)
	}
	return output.Output(outputFmt, events)
}
