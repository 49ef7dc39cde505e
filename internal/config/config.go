package config

import (
	"time"

	"github.com/anishk/signalrank-mcp/internal/signal"
)

// Config represents the application configuration
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Engine   EngineConfig   `toml:"engine"`
	User     UserConfig     `toml:"user"`
	Logging  LoggingConfig  `toml:"logging"`
	MCP      MCPConfig      `toml:"mcp"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// EngineConfig contains scoring engine tuning
type EngineConfig struct {
	LearningRate         float64 `toml:"learning_rate"`
	MinFeedbackThreshold int     `toml:"min_feedback_threshold"`
	ProfileTTLMinutes    int     `toml:"profile_ttl_minutes"`
	WorkHoursStart       int     `toml:"work_hours_start"`
	WorkHoursEnd         int     `toml:"work_hours_end"`
}

// ProfileTTL returns the profile cache staleness window as a duration
func (e EngineConfig) ProfileTTL() time.Duration {
	return time.Duration(e.ProfileTTLMinutes) * time.Minute
}

// UserConfig describes the operator whose relevance is scored
type UserConfig struct {
	ID                   string   `toml:"id"`
	Role                 string   `toml:"role"`
	Seniority            string   `toml:"seniority"`
	Department           string   `toml:"department"`
	Timezone             string   `toml:"timezone"`
	FocusAreas           []string `toml:"focus_areas"`
	PrimaryCompetitors   []string `toml:"primary_competitors"`
	SecondaryCompetitors []string `toml:"secondary_competitors"`
	ProductsOwned        []string `toml:"products_owned"`
	TechnologiesUsed     []string `toml:"technologies_used"`
}

// ToUser converts the configured operator into the engine's user shape
func (u UserConfig) ToUser() *signal.User {
	return &signal.User{
		ID:       u.ID,
		Timezone: u.Timezone,
		Context: signal.UserContext{
			Role:                 u.Role,
			Seniority:            u.Seniority,
			Department:           u.Department,
			FocusAreas:           u.FocusAreas,
			PrimaryCompetitors:   u.PrimaryCompetitors,
			SecondaryCompetitors: u.SecondaryCompetitors,
			ProductsOwned:        u.ProductsOwned,
			TechnologiesUsed:     u.TechnologiesUsed,
		},
	}
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// MCPConfig contains MCP server settings
type MCPConfig struct {
	Enabled   bool   `toml:"enabled"`
	Transport string `toml:"transport"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "~/.local/share/signalrank/signalrank.db",
		},
		Engine: EngineConfig{
			LearningRate:         0.1,
			MinFeedbackThreshold: 5,
			ProfileTTLMinutes:    60,
			WorkHoursStart:       9,
			WorkHoursEnd:         18,
		},
		User: UserConfig{
			ID:   "default",
			Role: "product_manager",
			FocusAreas: []string{
				"pricing",
				"enterprise",
				"integrations",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		MCP: MCPConfig{
			Enabled:   true,
			Transport: "stdio",
		},
	}
}
