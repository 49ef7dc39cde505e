package database

import (
	"database/sql"
	"time"
)

// FeedbackEvent is one recorded feedback action, kept as an audit log of
// the learning channel
type FeedbackEvent struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	SignalID     string    `json:"signal_id"`
	FeedbackType string    `json:"feedback_type"`
	Positive     *bool     `json:"positive,omitempty"` // nil = unclassified
	CreatedAt    time.Time `json:"created_at"`
}

// FeedbackStats aggregates the feedback event log for a user
type FeedbackStats struct {
	TotalEvents  int            `json:"total_events"`
	Positive     int            `json:"positive"`
	Negative     int            `json:"negative"`
	Unclassified int            `json:"unclassified"`
	ByType       map[string]int `json:"by_type"`
}

// NullBool is a helper to convert *bool to sql.NullBool
func NullBool(b *bool) sql.NullBool {
	if b == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *b, Valid: true}
}

// BoolPtr converts sql.NullBool to *bool
func BoolPtr(nb sql.NullBool) *bool {
	if !nb.Valid {
		return nil
	}
	return &nb.Bool
}
