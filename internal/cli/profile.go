package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anishk/signalrank-mcp/internal/config"
	"github.com/anishk/signalrank-mcp/internal/database"
	"github.com/anishk/signalrank-mcp/internal/output"
)

var profileUserID string

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the learned profile summary",
	Long: `Show a summary of the learned relevance profile: top category
preferences, top competitor interest, model accuracy, and behavior
patterns. A user with no recorded feedback sees the neutral defaults.`,
	RunE: runProfile,
}

func init() {
	profileCmd.Flags().StringVar(&profileUserID, "user", "",
		"user ID (default: configured user)")

	rootCmd.AddCommand(profileCmd)
}

func runProfile(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	setupLogging(cfg)

	userID := profileUserID
	if userID == "" {
		userID = cfg.User.ID
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	engine := buildEngine(cfg, db)
	summary := engine.ProfileSummary(ctx, userID)

	return output.Output(outputFmt, summary)
}
