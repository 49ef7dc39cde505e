package relevance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anishk/signalrank-mcp/internal/profile"
	"github.com/anishk/signalrank-mcp/internal/signal"
)

// Friday 14:00 UTC
var engineTestNow = time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC)

func newTestEngine(opts ...Option) *Engine {
	base := []Option{WithClock(func() time.Time { return engineTestNow })}
	return New(profile.NewStore(nil), append(base, opts...)...)
}

func engineTestUser() *signal.User {
	return &signal.User{
		ID:       "alice",
		Timezone: "UTC",
		Context: signal.UserContext{
			Role:               "executive",
			FocusAreas:         []string{"pricing", "enterprise"},
			PrimaryCompetitors: []string{"Acme", "Globex", "Initech"},
		},
	}
}

func engineTestSignal() *signal.Signal {
	return &signal.Signal{
		ID:       "sig-1",
		Title:    "Acme acquires Initech",
		Summary:  "Consolidation play targeting enterprise pricing",
		Category: signal.CategoryAcquisition,
		Keywords: []string{"pricing", "enterprise", "consolidation"},
		Entities: []signal.Entity{
			{Type: "company", Name: "Acme", IsCompetitor: true},
		},
		SourceID:    "technews",
		TrustLevel:  signal.TrustVerified,
		Priority:    signal.PriorityHigh,
		PublishedAt: engineTestNow.Add(-2 * time.Hour),
	}
}

func TestCalculateRelevance(t *testing.T) {
	e := newTestEngine()
	result := e.CalculateRelevance(context.Background(), engineTestSignal(), engineTestUser())

	assert.False(t, result.Degraded)
	assert.GreaterOrEqual(t, result.Score, 0.0)
	assert.LessOrEqual(t, result.Score, 1.0)
	assert.NotEmpty(t, result.Explanation)

	// All six components are always reported
	require.Len(t, result.Components, 6)
	assert.InDelta(t, 0.7, result.Components["category_match"], 1e-9, "executive acquisition boost on a neutral profile")
	assert.InDelta(t, 0.95, result.Components["competitor_relevance"], 1e-9, "primary competitor mention")
	assert.InDelta(t, 0.95, result.Components["source_trust"], 1e-9, "verified source")
	assert.InDelta(t, 0.2, result.Components["personalization"], 1e-9, "executive on a high-priority signal")

	// A strong competitive signal for a well-matched user scores high
	assert.Greater(t, result.Score, 0.7)
}

func TestCalculateRelevanceIsRepeatable(t *testing.T) {
	e := newTestEngine()
	sig := engineTestSignal()
	user := engineTestUser()
	ctx := context.Background()

	first := e.CalculateRelevance(ctx, sig, user)
	second := e.CalculateRelevance(ctx, sig, user)
	assert.Equal(t, first, second, "scoring must not mutate the profile")
}

func TestCalculateRelevanceIncompleteInput(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	for name, run := range map[string]func() Result{
		"nil signal": func() Result { return e.CalculateRelevance(ctx, nil, engineTestUser()) },
		"nil user":   func() Result { return e.CalculateRelevance(ctx, engineTestSignal(), nil) },
		"no user id": func() Result {
			return e.CalculateRelevance(ctx, engineTestSignal(), &signal.User{})
		},
	} {
		t.Run(name, func(t *testing.T) {
			result := run()
			assert.True(t, result.Degraded)
			assert.Equal(t, 0.5, result.Score)
			assert.Equal(t, "Error calculating relevance", result.Explanation)
			assert.Empty(t, result.Components)
		})
	}
}

type panickingExtractor struct{}

func (panickingExtractor) Extract(*signal.Signal, *signal.User) FeatureRecord {
	panic("feature extraction exploded")
}

func TestCalculateRelevanceRecoversFromPanic(t *testing.T) {
	e := newTestEngine(WithFeatureExtractor(panickingExtractor{}))

	result := e.CalculateRelevance(context.Background(), engineTestSignal(), engineTestUser())

	assert.True(t, result.Degraded)
	assert.Equal(t, 0.5, result.Score)
	assert.Equal(t, "Error calculating relevance", result.Explanation)
}

func TestUpdateWithFeedbackLearns(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()
	sig := engineTestSignal()
	user := engineTestUser()

	before := e.CalculateRelevance(ctx, sig, user)

	fb := &signal.Feedback{Type: signal.FeedbackAction, SignalID: sig.ID}
	for i := 0; i < 5; i++ {
		require.NoError(t, e.UpdateWithFeedback(ctx, user.ID, sig, fb))
	}

	after := e.CalculateRelevance(ctx, sig, user)
	assert.Greater(t, after.Score, before.Score, "repeated positive feedback must raise the score")

	summary := e.ProfileSummary(ctx, user.ID)
	assert.Equal(t, 5, summary.TotalFeedback)
	require.NotEmpty(t, summary.TopCategories)
	assert.Equal(t, signal.CategoryAcquisition, summary.TopCategories[0].Category)
	assert.InDelta(t, 1.0, summary.TopCategories[0].Score, 1e-9)
	require.NotEmpty(t, summary.TopCompetitors)
	assert.Equal(t, "acme", summary.TopCompetitors[0].Name)
}

func TestUpdateWithFeedbackNegative(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()
	sig := engineTestSignal()
	user := engineTestUser()

	before := e.CalculateRelevance(ctx, sig, user)

	fb := &signal.Feedback{Type: signal.FeedbackDismiss, SignalID: sig.ID}
	for i := 0; i < 3; i++ {
		require.NoError(t, e.UpdateWithFeedback(ctx, user.ID, sig, fb))
	}

	after := e.CalculateRelevance(ctx, sig, user)
	assert.Less(t, after.Score, before.Score, "repeated dismissals must lower the score")
}

func TestUpdateWithFeedbackUnclassified(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()
	sig := engineTestSignal()
	user := engineTestUser()

	before := e.CalculateRelevance(ctx, sig, user)

	fb := &signal.Feedback{Type: signal.FeedbackView, SignalID: sig.ID}
	require.NoError(t, e.UpdateWithFeedback(ctx, user.ID, sig, fb))

	after := e.CalculateRelevance(ctx, sig, user)
	assert.Equal(t, before.Score, after.Score, "sentiment-free feedback must not move the score")

	summary := e.ProfileSummary(ctx, user.ID)
	assert.Equal(t, 1, summary.TotalFeedback, "the event still counts")
}

func TestUpdateWithFeedbackValidation(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()
	sig := engineTestSignal()
	fb := &signal.Feedback{Type: signal.FeedbackAction, SignalID: sig.ID}

	assert.Error(t, e.UpdateWithFeedback(ctx, "", sig, fb))
	assert.Error(t, e.UpdateWithFeedback(ctx, "alice", nil, fb))
	assert.Error(t, e.UpdateWithFeedback(ctx, "alice", sig, nil))
}

// failingStorage rejects every write
type failingStorage struct{}

func (failingStorage) GetProfile(context.Context, string) (*profile.Profile, error) {
	return nil, nil
}

func (failingStorage) PutProfile(context.Context, *profile.Profile) error {
	return errors.New("disk full")
}

func TestUpdateWithFeedbackPropagatesStorageError(t *testing.T) {
	store := profile.NewStore(failingStorage{})
	e := New(store, WithClock(func() time.Time { return engineTestNow }))

	sig := engineTestSignal()
	fb := &signal.Feedback{Type: signal.FeedbackAction, SignalID: sig.ID}

	err := e.UpdateWithFeedback(context.Background(), "alice", sig, fb)
	assert.Error(t, err)
}

func TestEngineCustomClassifier(t *testing.T) {
	// A classifier that treats everything as negative
	alwaysNegative := func(*signal.Feedback) *bool {
		b := false
		return &b
	}

	e := newTestEngine(WithClassifier(alwaysNegative))
	ctx := context.Background()
	sig := engineTestSignal()
	user := engineTestUser()

	before := e.CalculateRelevance(ctx, sig, user)
	fb := &signal.Feedback{Type: signal.FeedbackAction, SignalID: sig.ID}
	require.NoError(t, e.UpdateWithFeedback(ctx, user.ID, sig, fb))
	after := e.CalculateRelevance(ctx, sig, user)

	assert.Less(t, after.Score, before.Score)
}

func TestEngineOptionOrderIndependence(t *testing.T) {
	clock := func() time.Time { return engineTestNow }
	hours := WorkHoursBetween(8, 16)

	a := New(profile.NewStore(nil), WithClock(clock), WithWorkHours(hours), WithLearningRate(0.2))
	b := New(profile.NewStore(nil), WithLearningRate(0.2), WithWorkHours(hours), WithClock(clock))

	sig := engineTestSignal()
	user := engineTestUser()
	ctx := context.Background()

	assert.Equal(t,
		a.CalculateRelevance(ctx, sig, user),
		b.CalculateRelevance(ctx, sig, user))
}
