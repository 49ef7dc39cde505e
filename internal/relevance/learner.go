package relevance

import (
	"time"

	"github.com/anishk/signalrank-mcp/internal/profile"
	"github.com/anishk/signalrank-mcp/internal/signal"
)

// Learning defaults
const (
	DefaultLearningRate         = 0.1
	DefaultMinFeedbackThreshold = 5
)

// Per-target scaling of the base learning rate. Competitor interest,
// keyword weights and source adjustments move more conservatively than
// category preferences.
const (
	competitorRateScale = 0.5
	keywordRateScale    = 0.3
	sourceRateScale     = 0.1
	accuracyStep        = 0.01
)

// Learner applies bounded constant-step updates to a profile on each
// feedback event. There is no training pipeline here: every update is a
// clamped nudge of a per-user scalar.
type Learner struct {
	rate        float64
	minFeedback int
	clock       func() time.Time
}

// NewLearner creates a learner with the given base learning rate and
// minimum feedback threshold
func NewLearner(rate float64, minFeedback int, clock func() time.Time) *Learner {
	if rate <= 0 {
		rate = DefaultLearningRate
	}
	if minFeedback <= 0 {
		minFeedback = DefaultMinFeedbackThreshold
	}
	if clock == nil {
		clock = time.Now
	}
	return &Learner{rate: rate, minFeedback: minFeedback, clock: clock}
}

// Apply folds one feedback event into the profile, mutating and
// returning it. isPositive is the opaque classification produced
// upstream; nil means the event carries no sentiment and all directional
// weight updates are skipped, while behavioral statistics still update.
func (l *Learner) Apply(p *profile.Profile, sig *signal.Signal, fb *signal.Feedback, isPositive *bool) *profile.Profile {
	if isPositive != nil {
		dir := -1.0
		if *isPositive {
			dir = 1.0
		}

		p.AdjustCategoryPreference(sig.Category.Normalize(), dir*l.rate)

		for _, ent := range sig.CompetitorEntities() {
			p.AdjustCompetitorInterest(ent.Name, dir*competitorRateScale*l.rate)
		}

		for _, kw := range sig.Keywords {
			p.AdjustKeywordWeight(kw, dir*keywordRateScale*l.rate)
		}

		if sig.SourceID != "" {
			p.AdjustSourceAdjustment(sig.SourceID, dir*sourceRateScale*l.rate)
		}
	}

	// Moving averages fold in against the pre-increment count.
	p.Behavior.FeedbackRate = profile.MovingAverage(p.Behavior.FeedbackRate, 1.0, p.TotalFeedbackCount)
	if fb.IsEngagement() {
		p.Behavior.ActionRate = profile.MovingAverage(p.Behavior.ActionRate, 1.0, p.TotalFeedbackCount)
	}

	p.TotalFeedbackCount++

	// Coarse accuracy proxy, only once enough feedback has accumulated.
	if isPositive != nil && p.TotalFeedbackCount >= l.minFeedback {
		if *isPositive {
			p.AdjustModelAccuracy(accuracyStep)
		} else {
			p.AdjustModelAccuracy(-accuracyStep)
		}
	}

	p.LastUpdated = l.clock()
	return p
}
