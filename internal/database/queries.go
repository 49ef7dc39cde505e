package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/anishk/signalrank-mcp/internal/profile"
)

// GetProfile retrieves a user profile, returning (nil, nil) when no
// profile has been persisted yet
func (db *DB) GetProfile(ctx context.Context, userID string) (*profile.Profile, error) {
	var p profile.Profile
	var categoryJSON, competitorJSON, keywordJSON, sourceJSON, temporalJSON, behaviorJSON string

	err := db.QueryRowContext(ctx, `
		SELECT user_id, category_preferences, competitor_interests,
		       keyword_weights, source_adjustments, temporal_preferences,
		       behavior_patterns, total_feedback_count, model_accuracy,
		       model_version, last_updated
		FROM user_profiles WHERE user_id = ?
	`, userID).Scan(
		&p.UserID, &categoryJSON, &competitorJSON,
		&keywordJSON, &sourceJSON, &temporalJSON,
		&behaviorJSON, &p.TotalFeedbackCount, &p.ModelAccuracy,
		&p.ModelVersion, &p.LastUpdated,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	for _, unmarshal := range []struct {
		data string
		into interface{}
	}{
		{categoryJSON, &p.CategoryPreferences},
		{competitorJSON, &p.CompetitorInterests},
		{keywordJSON, &p.KeywordWeights},
		{sourceJSON, &p.SourceAdjustments},
		{temporalJSON, &p.Temporal},
		{behaviorJSON, &p.Behavior},
	} {
		if err := json.Unmarshal([]byte(unmarshal.data), unmarshal.into); err != nil {
			return nil, fmt.Errorf("corrupt profile for %s: %w", userID, err)
		}
	}

	return &p, nil
}

// PutProfile inserts or updates a user profile, persisting the full
// learned state
func (db *DB) PutProfile(ctx context.Context, p *profile.Profile) error {
	fields := make([]string, 0, 6)
	for _, m := range []interface{}{
		p.CategoryPreferences,
		p.CompetitorInterests,
		p.KeywordWeights,
		p.SourceAdjustments,
		p.Temporal,
		p.Behavior,
	} {
		data, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("failed to encode profile for %s: %w", p.UserID, err)
		}
		fields = append(fields, string(data))
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO user_profiles (
			user_id, category_preferences, competitor_interests,
			keyword_weights, source_adjustments, temporal_preferences,
			behavior_patterns, total_feedback_count, model_accuracy,
			model_version, last_updated, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			category_preferences = excluded.category_preferences,
			competitor_interests = excluded.competitor_interests,
			keyword_weights = excluded.keyword_weights,
			source_adjustments = excluded.source_adjustments,
			temporal_preferences = excluded.temporal_preferences,
			behavior_patterns = excluded.behavior_patterns,
			total_feedback_count = excluded.total_feedback_count,
			model_accuracy = excluded.model_accuracy,
			model_version = excluded.model_version,
			last_updated = excluded.last_updated
	`,
		p.UserID, fields[0], fields[1], fields[2], fields[3], fields[4],
		fields[5], p.TotalFeedbackCount, p.ModelAccuracy,
		p.ModelVersion, p.LastUpdated, time.Now(),
	)
	return err
}

// DeleteProfile removes a user profile. Eviction is an operator action,
// never something the scoring engine does on its own.
func (db *DB) DeleteProfile(ctx context.Context, userID string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM user_profiles WHERE user_id = ?`, userID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("profile not found: %s", userID)
	}
	return nil
}

// RecordFeedbackEvent appends a feedback event to the audit log
func (db *DB) RecordFeedbackEvent(ctx context.Context, e *FeedbackEvent) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO feedback_events (
			id, user_id, signal_id, feedback_type, positive, created_at
		) VALUES (?, ?, ?, ?, ?, ?)
	`,
		e.ID, e.UserID, e.SignalID, e.FeedbackType, NullBool(e.Positive), e.CreatedAt,
	)
	return err
}

// ListFeedbackEvents returns the most recent feedback events for a user,
// newest first
func (db *DB) ListFeedbackEvents(ctx context.Context, userID string, limit int) ([]FeedbackEvent, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, user_id, signal_id, feedback_type, positive, created_at
		FROM feedback_events
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []FeedbackEvent
	for rows.Next() {
		var e FeedbackEvent
		var positive sql.NullBool

		if err := rows.Scan(&e.ID, &e.UserID, &e.SignalID, &e.FeedbackType, &positive, &e.CreatedAt); err != nil {
			return nil, err
		}

		e.Positive = BoolPtr(positive)
		events = append(events, e)
	}

	return events, rows.Err()
}

// GetFeedbackStats aggregates the feedback event log for a user
func (db *DB) GetFeedbackStats(ctx context.Context, userID string) (*FeedbackStats, error) {
	stats := &FeedbackStats{ByType: make(map[string]int)}

	rows, err := db.QueryContext(ctx, `
		SELECT feedback_type, positive, COUNT(*)
		FROM feedback_events
		WHERE user_id = ?
		GROUP BY feedback_type, positive
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			feedbackType string
			positive     sql.NullBool
			count        int
		)
		if err := rows.Scan(&feedbackType, &positive, &count); err != nil {
			return nil, err
		}

		stats.TotalEvents += count
		stats.ByType[feedbackType] += count

		switch {
		case !positive.Valid:
			stats.Unclassified += count
		case positive.Bool:
			stats.Positive += count
		default:
			stats.Negative += count
		}
	}

	return stats, rows.Err()
}
