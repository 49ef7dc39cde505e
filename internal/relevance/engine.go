package relevance

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/anishk/signalrank-mcp/internal/profile"
	"github.com/anishk/signalrank-mcp/internal/signal"
)

// Degraded result returned when scoring fails internally. Scoring never
// propagates errors to the caller.
const (
	degradedScore       = 0.5
	degradedExplanation = "Error calculating relevance"
)

// Result is the outcome of one relevance calculation
type Result struct {
	Score       float64            `json:"score"`
	Components  map[string]float64 `json:"components"`
	Explanation string             `json:"explanation"`
	Degraded    bool               `json:"degraded,omitempty"`
}

// ClassifierFunc classifies feedback sentiment; nil result means
// unclassifiable
type ClassifierFunc func(*signal.Feedback) *bool

// Engine scores signals for per-user relevance and folds explicit
// feedback back into the user's profile
type Engine struct {
	profiles     *profile.Store
	features     FeatureExtractor
	learner      *Learner
	classify     ClassifierFunc
	clock        func() time.Time
	workHours    WorkHoursFunc
	learningRate float64
	minFeedback  int
}

// Option configures an Engine
type Option func(*Engine)

// WithClock overrides the time source (tests)
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithWorkHours overrides the work-hours helper
func WithWorkHours(fn WorkHoursFunc) Option {
	return func(e *Engine) { e.workHours = fn }
}

// WithFeatureExtractor replaces the feature extractor entirely
func WithFeatureExtractor(fx FeatureExtractor) Option {
	return func(e *Engine) { e.features = fx }
}

// WithClassifier overrides the feedback sentiment classifier
func WithClassifier(fn ClassifierFunc) Option {
	return func(e *Engine) { e.classify = fn }
}

// WithLearningRate sets the base learning rate
func WithLearningRate(rate float64) Option {
	return func(e *Engine) { e.learningRate = rate }
}

// WithMinFeedbackThreshold sets the feedback count below which the
// personalization term stays inactive
func WithMinFeedbackThreshold(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.minFeedback = n
		}
	}
}

// New creates a scoring engine over the given profile store
func New(profiles *profile.Store, opts ...Option) *Engine {
	e := &Engine{
		profiles:     profiles,
		clock:        time.Now,
		classify:     signal.Classify,
		workHours:    DefaultWorkHours,
		learningRate: DefaultLearningRate,
		minFeedback:  DefaultMinFeedbackThreshold,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.features == nil {
		e.features = NewExtractor(e.clock, e.workHours)
	}
	e.learner = NewLearner(e.learningRate, e.minFeedback, e.clock)
	return e
}

// CalculateRelevance scores a signal for a user. It always returns a
// well-formed result: any internal failure yields the degraded default
// score with an error logged, never a panic or error to the caller.
func (e *Engine) CalculateRelevance(ctx context.Context, sig *signal.Signal, user *signal.User) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Interface("panic", r).
				Str("signal_id", signalID(sig)).
				Str("user_id", userID(user)).
				Msg("relevance scoring failed")
			result = degradedResult()
		}
	}()

	if sig == nil || user == nil || user.ID == "" {
		log.Error().
			Str("signal_id", signalID(sig)).
			Str("user_id", userID(user)).
			Msg("relevance scoring called with incomplete input")
		return degradedResult()
	}

	p := e.profiles.Get(ctx, user.ID)
	f := e.features.Extract(sig, user)

	scores := componentScores{
		CategoryMatch:       scoreCategoryMatch(f, p),
		CompetitorRelevance: scoreCompetitorRelevance(f, p),
		KeywordOverlap:      scoreKeywordOverlap(f, p),
		SourceTrust:         scoreSourceTrust(f, p),
		TemporalRelevance:   scoreTemporalRelevance(f, p),
	}
	scores.Personalization = scorePersonalization(f, p, e.minFeedback)

	return Result{
		Score:       combine(scores, p, f.Hour),
		Components:  scores.asMap(),
		Explanation: explain(scores, f.Category),
	}
}

// UpdateWithFeedback folds one feedback event into the user's profile
// and persists it. Unlike scoring, failures propagate: feedback is the
// sole learning channel and silent loss would degrade personalization
// with no other detection mechanism. Events for the same user are
// serialized; different users proceed independently.
func (e *Engine) UpdateWithFeedback(ctx context.Context, userID string, sig *signal.Signal, fb *signal.Feedback) error {
	if userID == "" {
		return fmt.Errorf("user id is required")
	}
	if sig == nil || fb == nil {
		return fmt.Errorf("signal and feedback are required")
	}

	unlock := e.profiles.Lock(userID)
	defer unlock()

	p := e.profiles.Get(ctx, userID)
	isPositive := e.classify(fb)
	e.learner.Apply(p, sig, fb, isPositive)

	if err := e.profiles.Put(ctx, p); err != nil {
		return fmt.Errorf("failed to persist profile for %s: %w", userID, err)
	}

	log.Debug().
		Str("user_id", userID).
		Str("signal_id", sig.ID).
		Str("feedback_type", string(fb.Type)).
		Int("total_feedback", p.TotalFeedbackCount).
		Msg("profile updated from feedback")

	return nil
}

// ProfileSummary returns the read-only diagnostic projection of the
// user's profile
func (e *Engine) ProfileSummary(ctx context.Context, userID string) *profile.Summary {
	return profile.Summarize(e.profiles.Get(ctx, userID))
}

func degradedResult() Result {
	return Result{
		Score:       degradedScore,
		Components:  map[string]float64{},
		Explanation: degradedExplanation,
		Degraded:    true,
	}
}

func signalID(sig *signal.Signal) string {
	if sig == nil {
		return ""
	}
	return sig.ID
}

func userID(u *signal.User) string {
	if u == nil {
		return ""
	}
	return u.ID
}
