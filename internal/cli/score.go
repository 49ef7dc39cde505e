package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/anishk/signalrank-mcp/internal/config"
	"github.com/anishk/signalrank-mcp/internal/database"
	"github.com/anishk/signalrank-mcp/internal/output"
	"github.com/anishk/signalrank-mcp/internal/signal"
)

var scoreCmd = &cobra.Command{
	Use:   "score <signal.json>",
	Short: "Score a signal's relevance for the configured user",
	Long: `Score a normalized signal for personal relevance.

The signal is read as JSON from the given file, or from stdin when the
argument is "-". Example signal:

  {
    "id": "sig-123",
    "title": "Acme launches enterprise tier",
    "summary": "Acme announced new enterprise pricing...",
    "category": "pricing_change",
    "keywords": ["pricing", "enterprise"],
    "entities": [{"type": "company", "name": "Acme", "is_competitor": true}],
    "source_id": "technews",
    "trust_level": "verified",
    "priority": "high",
    "published_at": "2026-08-29T08:00:00Z"
  }`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
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

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	engine := buildEngine(cfg, db)
	result := engine.CalculateRelevance(ctx, sig, cfg.User.ToUser())

	return output.Output(outputFmt, &result)
}

// loadSignal reads a signal from a JSON file, or stdin when path is "-"
func loadSignal(path string) (*signal.Signal, error) {
	var data []byte
	var err error

	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read signal: %w", err)
	}

	var sig signal.Signal
	if err := json.Unmarshal(data, &sig); err != nil {
		return nil, fmt.Errorf("failed to parse signal JSON: %w", err)
	}

	if sig.ID == "" {
		return nil, fmt.Errorf("signal is missing required field: id")
	}
	if sig.PublishedAt.IsZero() {
		sig.PublishedAt = time.Now()
	}

	return &sig, nil
}
