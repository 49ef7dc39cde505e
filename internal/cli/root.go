package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/anishk/signalrank-mcp/internal/config"
	"github.com/anishk/signalrank-mcp/internal/database"
	"github.com/anishk/signalrank-mcp/internal/profile"
	"github.com/anishk/signalrank-mcp/internal/relevance"
)

var (
	// Version info set from main
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"

	// Global flags
	configPath string
	outputFmt  string
)

// SetVersionInfo sets version information from build flags
func SetVersionInfo(v, c, b string) {
	version = v
	commit = c
	buildTime = b
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "signalrank",
	Short: "Personalized relevance scoring for competitive intelligence signals",
	Long: `signalrank scores normalized market signals (product launches, funding
rounds, acquisitions...) for per-user relevance and learns from your
feedback over time.

It provides:
  - Multi-factor relevance scoring with human-readable explanations
  - Bounded online learning from explicit feedback
  - Per-user profiles persisted in a local SQLite database
  - MCP server for AI assistant integration`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"config file (default: ~/.config/signalrank/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "table",
		"output format (table, json)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}
		configPath = filepath.Join(home, ".config", "signalrank", "config.toml")
	}
}

// setupLogging configures the global zerolog logger from config.
// Logs always go to stderr so stdout stays clean for command output
// and the MCP stdio transport.
func setupLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Logging.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		log.Logger = log.Output(os.Stderr)
	}
}

// buildEngine wires a scoring engine over the database-backed profile
// store using the configured tuning
func buildEngine(cfg *config.Config, db *database.DB) *relevance.Engine {
	store := profile.NewStore(db, profile.WithTTL(cfg.Engine.ProfileTTL()))
	return relevance.New(store,
		relevance.WithLearningRate(cfg.Engine.LearningRate),
		relevance.WithMinFeedbackThreshold(cfg.Engine.MinFeedbackThreshold),
		relevance.WithWorkHours(relevance.WorkHoursBetween(cfg.Engine.WorkHoursStart, cfg.Engine.WorkHoursEnd)),
	)
}

// versionCmd shows version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("signalrank %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", buildTime)
	},
}
