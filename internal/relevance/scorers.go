package relevance

import (
	"math"

	"github.com/anishk/signalrank-mcp/internal/profile"
	"github.com/anishk/signalrank-mcp/internal/signal"
)

// Global component weights. These must sum to 1.0; personalization is a
// separate signed boost applied after the weighted sum.
const (
	weightCategoryMatch       = 0.25
	weightCompetitorRelevance = 0.30
	weightKeywordOverlap      = 0.20
	weightSourceTrust         = 0.15
	weightTemporalRelevance   = 0.10
)

const (
	// Score for signals with no competitor mention: not irrelevant,
	// just less salient.
	noCompetitorBase = 0.3
	competitorBase   = 0.8
	primaryBoost     = 0.95

	// Flat score when the signal shares no keywords with the user's
	// focus areas.
	noOverlapScore = 0.2

	roleCategoryBoost = 0.2

	offHoursTimeScore = 0.7
)

// roleCategoryBoosts maps a user role to the categories it gets a flat
// +0.2 preference boost for
var roleCategoryBoosts = map[string][]signal.Category{
	"product_manager": {
		signal.CategoryProductLaunch,
		signal.CategoryPartnership,
	},
	"executive": {
		signal.CategoryAcquisition,
		signal.CategoryFunding,
		signal.CategoryLeadershipChange,
	},
	"marketing_manager": {
		signal.CategoryProductLaunch,
		signal.CategoryPartnership,
		signal.CategoryPricingChange,
	},
}

// trustBases maps source trust levels to base scores; unknown levels
// fall back to 0.5
var trustBases = map[signal.TrustLevel]float64{
	signal.TrustVerified:   0.95,
	signal.TrustOfficial:   0.90,
	signal.TrustReliable:   0.70,
	signal.TrustUnverified: 0.40,
}

// componentScores is the breakdown of one relevance calculation. The
// first five are in [0,1]; personalization is signed in [-0.3,0.3].
type componentScores struct {
	CategoryMatch       float64
	CompetitorRelevance float64
	KeywordOverlap      float64
	SourceTrust         float64
	TemporalRelevance   float64
	Personalization     float64
}

func (c componentScores) asMap() map[string]float64 {
	return map[string]float64{
		"category_match":       c.CategoryMatch,
		"competitor_relevance": c.CompetitorRelevance,
		"keyword_overlap":      c.KeywordOverlap,
		"source_trust":         c.SourceTrust,
		"temporal_relevance":   c.TemporalRelevance,
		"personalization":      c.Personalization,
	}
}

// scoreCategoryMatch scores the learned category preference plus a fixed
// role-specific boost
func scoreCategoryMatch(f FeatureRecord, p *profile.Profile) float64 {
	score := p.CategoryPreference(f.Category)
	for _, c := range roleCategoryBoosts[f.Role] {
		if c == f.Category {
			score += roleCategoryBoost
			break
		}
	}
	return profile.Clamp(score, 0, 1)
}

// scoreCompetitorRelevance scores how salient the signal's competitor
// mentions are to this user. Matching entities each multiply the running
// score by the learned interest, in signal entity order.
func scoreCompetitorRelevance(f FeatureRecord, p *profile.Profile) float64 {
	if !f.HasCompetitorMention {
		return noCompetitorBase
	}
	score := competitorBase
	for _, m := range f.CompetitorMatches {
		if m.Primary && score < primaryBoost {
			score = primaryBoost
		}
		score *= p.CompetitorInterest(m.Name)
	}
	return profile.Clamp(score, 0, 1)
}

// scoreKeywordOverlap scores the focus-area overlap, weighted by the
// mean learned weight over all of the signal's keywords
func scoreKeywordOverlap(f FeatureRecord, p *profile.Profile) float64 {
	if f.KeywordOverlapCount == 0 || len(f.Keywords) == 0 || f.KeywordUniverse == 0 {
		return noOverlapScore
	}
	ratio := float64(f.KeywordOverlapCount) / float64(f.KeywordUniverse)
	var sum float64
	for _, kw := range f.Keywords {
		sum += p.KeywordWeight(kw)
	}
	avgWeight := sum / float64(len(f.Keywords))
	return math.Min(1.0, ratio*avgWeight)
}

// scoreSourceTrust maps the trust level to a fixed base plus the learned
// per-source adjustment
func scoreSourceTrust(f FeatureRecord, p *profile.Profile) float64 {
	base, ok := trustBases[f.TrustLevel]
	if !ok {
		base = 0.5
	}
	return profile.Clamp(base+p.SourceAdjustment(f.SourceID), 0, 1)
}

// scoreTemporalRelevance averages an exponential recency decay (24h
// scale, weighted by the learned recency importance) with a work-hours
// score. The averaging caps the result below 1.0 for any aged signal;
// that dampening is intentional.
func scoreTemporalRelevance(f FeatureRecord, p *profile.Profile) float64 {
	recency := math.Exp(-f.SignalAgeHours/24.0) * p.Temporal.RecencyImportance
	timeScore := offHoursTimeScore
	if f.IsWorkHours {
		timeScore = 1.0
	}
	return (recency + timeScore) / 2
}

// scorePersonalization is the signed learned-adjustment term: model
// accuracy once enough feedback has accumulated, plus a flat boost for
// executives on high-priority signals
func scorePersonalization(f FeatureRecord, p *profile.Profile, minFeedback int) float64 {
	contrib := 0.0
	if p.TotalFeedbackCount >= minFeedback {
		contrib += p.ModelAccuracy - 0.5
	}
	if f.Role == "executive" && f.Priority == signal.PriorityHigh {
		contrib += 0.2
	}
	return profile.Clamp(contrib, -0.3, 0.3)
}

// combine computes the final score: weighted sum, personalization boost,
// frequency preference adjustment, time-of-day multiplier, clamp
func combine(c componentScores, p *profile.Profile, hour int) float64 {
	weighted := weightCategoryMatch*c.CategoryMatch +
		weightCompetitorRelevance*c.CompetitorRelevance +
		weightKeywordOverlap*c.KeywordOverlap +
		weightSourceTrust*c.SourceTrust +
		weightTemporalRelevance*c.TemporalRelevance

	score := math.Min(1.0, weighted+c.Personalization*0.1)

	switch p.Temporal.PreferredFrequency {
	case profile.FrequencyLow:
		if score < 0.8 {
			score *= 0.8
		}
	case profile.FrequencyHigh:
		score *= 1.1
	}

	score *= p.Temporal.ActivityMultiplier(hour)

	return profile.Clamp(score, 0, 1)
}
