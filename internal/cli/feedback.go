package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anishk/signalrank-mcp/internal/config"
	"github.com/anishk/signalrank-mcp/internal/database"
	"github.com/anishk/signalrank-mcp/internal/signal"
)

var (
	feedbackType  string
	feedbackValue string
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback <signal.json>",
	Short: "Record feedback on a signal to tune your profile",
	Long: `Record explicit feedback on a scored signal.

The signal is read as JSON from the given file, or from stdin when the
argument is "-". The feedback type drives learning:

  Positive:  action, flag, create_task, share, save
  Negative:  dismiss, irrelevant
  Neutral:   anything else (counted, but no preference shift)

Example:
  signalrank feedback signal.json --type action`,
	Args: cobra.ExactArgs(1),
	RunE: runFeedback,
}

func init() {
	feedbackCmd.Flags().StringVarP(&feedbackType, "type", "t", "",
		"feedback type (action, flag, create_task, share, save, dismiss, irrelevant, ...)")
	feedbackCmd.Flags().StringVar(&feedbackValue, "value", "",
		"optional value attached to the feedback (e.g. a note or rating)")
	feedbackCmd.MarkFlagRequired("type")

	rootCmd.AddCommand(feedbackCmd)
}

func runFeedback(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	setupLogging(cfg)

	sig, err := loadSignal(args[0])
	if err != nil {
		return err
	}

	fb := &signal.Feedback{
		Type:     signal.FeedbackType(feedbackType),
		Value:    feedbackValue,
		SignalID: sig.ID,
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	engine := buildEngine(cfg, db)
	if err := engine.UpdateWithFeedback(ctx, cfg.User.ID, sig, fb); err != nil {
		return err
	}

	// Keep an audit trail alongside the profile update
	event := &database.FeedbackEvent{
		UserID:       cfg.User.ID,
		SignalID:     sig.ID,
		FeedbackType: string(fb.Type),
		Positive:     signal.Classify(fb),
	}
	if err := db.RecordFeedbackEvent(ctx, event); err != nil {
		return fmt.Errorf("failed to record feedback event: %w", err)
	}

	switch positive := signal.Classify(fb); {
	case positive == nil:
		fmt.Printf("Recorded %q feedback for %s (neutral, no preference shift)\n", fb.Type, sig.ID)
	case *positive:
		fmt.Printf("Recorded %q feedback for %s (positive)\n", fb.Type, sig.ID)
	default:
		fmt.Printf("Recorded %q feedback for %s (negative)\n", fb.Type, sig.ID)
	}
	return nil
}
