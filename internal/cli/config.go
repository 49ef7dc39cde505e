package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(home, ".config", "signalrank")
	dataDir := filepath.Join(home, ".local", "share", "signalrank")

	// Create directories
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	configFile := filepath.Join(configDir, "config.toml")

	// Check if config already exists
	if _, err := os.Stat(configFile); err == nil {
		fmt.Printf("Config file already exists at %s\n", configFile)
		fmt.Println("Use 'signalrank config show' to view current configuration")
		return nil
	}

	// Write default config
	if err := os.WriteFile(configFile, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Created config file at %s\n", configFile)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Edit [user] with your role, focus areas, and competitors")
	fmt.Println("  2. Run 'signalrank score signal.json' to score a signal")
	fmt.Println("  3. Run 'signalrank feedback signal.json --type action' to teach it")

	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("No config file found. Run 'signalrank config init' to create one.")
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	fmt.Printf("# Config file: %s\n\n", configPath)
	fmt.Println(string(data))
	return nil
}

const defaultConfig = `# SignalRank Configuration

[database]
path = "~/.local/share/signalrank/signalrank.db"

[engine]
learning_rate = 0.1           # Base preference adjustment per feedback event (0-1]
min_feedback_threshold = 5    # Feedback events before accuracy tracking kicks in
profile_ttl_minutes = 60      # Profile cache TTL
work_hours_start = 9          # Working hours, Mon-Fri, user timezone
work_hours_end = 18

[user]
id = "default"
role = "product_manager"      # product_manager, executive, marketing_manager, ...
seniority = ""
department = ""
timezone = ""                 # IANA name, e.g. "America/New_York" (empty: local)
focus_areas = ["pricing", "enterprise", "integrations"]
products_owned = []
technologies_used = []

# The first three primary competitors get the strongest relevance boost
primary_competitors = []
secondary_competitors = []

[logging]
level = "info"                # debug, info, warn, error
format = "console"            # console, json

[mcp]
enabled = true
transport = "stdio"
`
