package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/anishk/signalrank-mcp/internal/database"
	"github.com/anishk/signalrank-mcp/internal/output"
	"github.com/anishk/signalrank-mcp/internal/signal"
)

func (s *Server) registerHandlers() {
	s.handlers["score_signal"] = s.handleScoreSignal
	s.handlers["record_feedback"] = s.handleRecordFeedback
	s.handlers["get_profile_summary"] = s.handleGetProfileSummary
	s.handlers["get_feedback_history"] = s.handleGetFeedbackHistory
}

// resolveUser returns the configured user, optionally re-keyed to a
// caller-supplied user ID
func (s *Server) resolveUser(userID string) *signal.User {
	user := s.config.User.ToUser()
	if userID != "" {
		user.ID = userID
	}
	return user
}

// decodeSignal parses and sanity-checks a signal argument
func decodeSignal(raw json.RawMessage) (*signal.Signal, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("signal is required")
	}
	var sig signal.Signal
	if err := json.Unmarshal(raw, &sig); err != nil {
		return nil, fmt.Errorf("invalid signal: %w", err)
	}
	if sig.ID == "" {
		return nil, fmt.Errorf("signal is missing required field: id")
	}
	if sig.PublishedAt.IsZero() {
		sig.PublishedAt = time.Now()
	}
	return &sig, nil
}

type scoreSignalParams struct {
	Signal json.RawMessage `json:"signal"`
	UserID string          `json:"user_id"`
}

func (s *Server) handleScoreSignal(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p scoreSignalParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	sig, err := decodeSignal(p.Signal)
	if err != nil {
		return nil, err
	}

	result := s.engine.CalculateRelevance(ctx, sig, s.resolveUser(p.UserID))
	return &result, nil
}

type recordFeedbackParams struct {
	Signal       json.RawMessage `json:"signal"`
	FeedbackType string          `json:"feedback_type"`
	Value        string          `json:"value"`
	UserID       string          `json:"user_id"`
}

type recordFeedbackResult struct {
	SignalID  string `json:"signal_id"`
	Type      string `json:"type"`
	Sentiment string `json:"sentiment"`
}

func (s *Server) handleRecordFeedback(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p recordFeedbackParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	sig, err := decodeSignal(p.Signal)
	if err != nil {
		return nil, err
	}
	if p.FeedbackType == "" {
		return nil, fmt.Errorf("feedback_type is required")
	}

	user := s.resolveUser(p.UserID)
	fb := &signal.Feedback{
		Type:     signal.FeedbackType(p.FeedbackType),
		Value:    p.Value,
		SignalID: sig.ID,
	}

	if err := s.engine.UpdateWithFeedback(ctx, user.ID, sig, fb); err != nil {
		return nil, err
	}

	positive := signal.Classify(fb)
	event := &database.FeedbackEvent{
		UserID:       user.ID,
		SignalID:     sig.ID,
		FeedbackType: p.FeedbackType,
		Positive:     positive,
	}
	if err := s.db.RecordFeedbackEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to record feedback event: %w", err)
	}

	sentiment := "neutral"
	if positive != nil {
		if *positive {
			sentiment = "positive"
		} else {
			sentiment = "negative"
		}
	}

	return recordFeedbackResult{
		SignalID:  sig.ID,
		Type:      p.FeedbackType,
		Sentiment: sentiment,
	}, nil
}

type getProfileSummaryParams struct {
	UserID string `json:"user_id"`
}

func (s *Server) handleGetProfileSummary(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p getProfileSummaryParams
	if params != nil {
		json.Unmarshal(params, &p)
	}

	user := s.resolveUser(p.UserID)
	return s.engine.ProfileSummary(ctx, user.ID), nil
}

type getFeedbackHistoryParams struct {
	Limit  int    `json:"limit"`
	UserID string `json:"user_id"`
}

func (s *Server) handleGetFeedbackHistory(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p getFeedbackHistoryParams
	if params != nil {
		json.Unmarshal(params, &p)
	}

	user := s.resolveUser(p.UserID)
	events, err := s.db.ListFeedbackEvents(ctx, user.ID, p.Limit)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return events, nil
}

// Resource handlers

func (s *Server) handleReadResource(ctx context.Context, uri string) (string, error) {
	switch uri {
	case "signalrank://profile":
		return s.getResourceProfile(ctx)
	case "signalrank://recent-feedback":
		return s.getResourceRecentFeedback(ctx)
	case "signalrank://feedback-stats":
		return s.getResourceFeedbackStats(ctx)
	default:
		return "", fmt.Errorf("unknown resource: %s", uri)
	}
}

func (s *Server) getResourceProfile(ctx context.Context) (string, error) {
	summary := s.engine.ProfileSummary(ctx, s.config.User.ID)

	var buf bytes.Buffer
	if err := output.TableTo(&buf, summary); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *Server) getResourceRecentFeedback(ctx context.Context) (string, error) {
	events, err := s.db.ListFeedbackEvents(ctx, s.config.User.ID, 10)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := output.TableTo(&buf, events); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *Server) getResourceFeedbackStats(ctx context.Context) (string, error) {
	stats, err := s.db.GetFeedbackStats(ctx, s.config.User.ID)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := output.TableTo(&buf, stats); err != nil {
		return "", err
	}
	return buf.String(), nil
}
