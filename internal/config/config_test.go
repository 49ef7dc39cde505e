package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Engine.LearningRate != 0.1 {
		t.Errorf("expected LearningRate=0.1, got %g", cfg.Engine.LearningRate)
	}

	if cfg.Engine.MinFeedbackThreshold != 5 {
		t.Errorf("expected MinFeedbackThreshold=5, got %d", cfg.Engine.MinFeedbackThreshold)
	}

	if cfg.User.ID != "default" {
		t.Errorf("expected user ID=default, got %s", cfg.User.ID)
	}

	if cfg.MCP.Transport != "stdio" {
		t.Errorf("expected Transport=stdio, got %s", cfg.MCP.Transport)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "invalid learning rate",
			modify: func(c *Config) {
				c.Engine.LearningRate = 1.5
			},
			wantErr: true,
		},
		{
			name: "zero learning rate",
			modify: func(c *Config) {
				c.Engine.LearningRate = 0
			},
			wantErr: true,
		},
		{
			name: "invalid feedback threshold",
			modify: func(c *Config) {
				c.Engine.MinFeedbackThreshold = 0
			},
			wantErr: true,
		},
		{
			name: "work hours inverted",
			modify: func(c *Config) {
				c.Engine.WorkHoursStart = 18
				c.Engine.WorkHoursEnd = 9
			},
			wantErr: true,
		},
		{
			name: "missing user id",
			modify: func(c *Config) {
				c.User.ID = ""
			},
			wantErr: true,
		},
		{
			name: "invalid logging level",
			modify: func(c *Config) {
				c.Logging.Level = "verbose"
			},
			wantErr: true,
		},
		{
			name: "invalid mcp transport",
			modify: func(c *Config) {
				c.MCP.Transport = "http"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input    string
		expected string
	}{
		{"~/test", filepath.Join(home, "test")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}

	for _, tt := range tests {
		result, err := expandPath(tt.input)
		if err != nil {
			t.Errorf("expandPath(%q) error: %v", tt.input, err)
		}
		if result != tt.expected {
			t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestProfileTTL(t *testing.T) {
	cfg := Default()
	if got := cfg.Engine.ProfileTTL(); got != time.Hour {
		t.Errorf("ProfileTTL() = %v, want %v", got, time.Hour)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[database]
path = "` + filepath.Join(dir, "test.db") + `"

[engine]
learning_rate = 0.2
min_feedback_threshold = 3

[user]
id = "alice"
role = "executive"
primary_competitors = ["Acme", "Globex"]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Engine.LearningRate != 0.2 {
		t.Errorf("expected LearningRate=0.2, got %g", cfg.Engine.LearningRate)
	}
	if cfg.User.ID != "alice" {
		t.Errorf("expected user ID=alice, got %s", cfg.User.ID)
	}
	// Unset fields keep defaults
	if cfg.Engine.WorkHoursStart != 9 {
		t.Errorf("expected WorkHoursStart=9, got %d", cfg.Engine.WorkHoursStart)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected Level=info, got %s", cfg.Logging.Level)
	}

	user := cfg.User.ToUser()
	if user.ID != "alice" || user.Context.Role != "executive" {
		t.Errorf("ToUser() = %+v, want alice/executive", user)
	}
	if len(user.Context.PrimaryCompetitors) != 2 {
		t.Errorf("expected 2 primary competitors, got %d", len(user.Context.PrimaryCompetitors))
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}
