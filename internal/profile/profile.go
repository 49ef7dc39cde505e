package profile

import (
	"strings"
	"time"

	"github.com/anishk/signalrank-mcp/internal/signal"
)

// ModelVersion identifies the current learning model layout. Bumped when
// the profile shape or update rules change incompatibly.
const ModelVersion = "1.0.0"

// Bounds for learned profile fields. Every mutation clamps into these
// ranges, so the invariants hold by construction.
const (
	CategoryPreferenceMin = 0.0
	CategoryPreferenceMax = 1.0
	CompetitorInterestMin = 0.2
	CompetitorInterestMax = 1.5
	KeywordWeightMin      = 0.3
	KeywordWeightMax      = 2.0
	SourceAdjustmentMin   = -0.3
	SourceAdjustmentMax   = 0.3
)

// Defaults used when a key is absent from the learned maps
const (
	DefaultCategoryPreference = 0.5
	DefaultCompetitorInterest = 1.0
	DefaultKeywordWeight      = 1.0
	DefaultRecencyImportance  = 0.7
	DefaultModelAccuracy      = 0.5
)

// Frequency is the user's preferred notification volume
type Frequency string

const (
	FrequencyLow    Frequency = "low"
	FrequencyMedium Frequency = "medium"
	FrequencyHigh   Frequency = "high"
)

// TemporalPreferences captures when and how often the user wants signals
type TemporalPreferences struct {
	RecencyImportance  float64         `json:"recency_importance"`
	TimeOfDayActivity  map[int]float64 `json:"time_of_day_activity"`
	PreferredFrequency Frequency       `json:"preferred_frequency"`
}

// ActivityMultiplier returns the learned multiplier for the given hour
// (0-23), defaulting to 1.0
func (t *TemporalPreferences) ActivityMultiplier(hour int) float64 {
	if m, ok := t.TimeOfDayActivity[hour]; ok {
		return m
	}
	return 1.0
}

// BehaviorPatterns holds moving-average behavioral statistics
type BehaviorPatterns struct {
	AvgTimePerSignal  float64  `json:"avg_time_per_signal"`
	ActionRate        float64  `json:"action_rate"`
	FeedbackRate      float64  `json:"feedback_rate"`
	PreferredChannels []string `json:"preferred_channels"`
}

// Profile is the per-user learned state owned exclusively by the scoring
// engine. The durable copy lives in the database; Store keeps a
// read-through cache of it.
type Profile struct {
	UserID              string                      `json:"user_id"`
	CategoryPreferences map[signal.Category]float64 `json:"category_preferences"`
	CompetitorInterests map[string]float64          `json:"competitor_interests"`
	KeywordWeights      map[string]float64          `json:"keyword_weights"`
	SourceAdjustments   map[string]float64          `json:"source_adjustments"`
	Temporal            TemporalPreferences         `json:"temporal_preferences"`
	Behavior            BehaviorPatterns            `json:"behavior_patterns"`
	TotalFeedbackCount  int                         `json:"total_feedback_count"`
	ModelAccuracy       float64                     `json:"model_accuracy"`
	LastUpdated         time.Time                   `json:"last_updated"`
	ModelVersion        string                      `json:"model_version"`
}

// NewDefault creates a profile with deterministic defaults for a user seen
// for the first time
func NewDefault(userID string, now time.Time) *Profile {
	prefs := make(map[signal.Category]float64, len(signal.KnownCategories))
	for _, c := range signal.KnownCategories {
		prefs[c] = DefaultCategoryPreference
	}
	return &Profile{
		UserID:              userID,
		CategoryPreferences: prefs,
		CompetitorInterests: make(map[string]float64),
		KeywordWeights:      make(map[string]float64),
		SourceAdjustments:   make(map[string]float64),
		Temporal: TemporalPreferences{
			RecencyImportance:  DefaultRecencyImportance,
			TimeOfDayActivity:  make(map[int]float64),
			PreferredFrequency: FrequencyMedium,
		},
		Behavior:           BehaviorPatterns{},
		TotalFeedbackCount: 0,
		ModelAccuracy:      DefaultModelAccuracy,
		LastUpdated:        now,
		ModelVersion:       ModelVersion,
	}
}

// Clone returns a deep copy. Store hands out and accepts copies so that
// concurrent scoring reads never share map state with feedback writes.
func (p *Profile) Clone() *Profile {
	cp := *p
	cp.CategoryPreferences = cloneMap(p.CategoryPreferences)
	cp.CompetitorInterests = cloneMap(p.CompetitorInterests)
	cp.KeywordWeights = cloneMap(p.KeywordWeights)
	cp.SourceAdjustments = cloneMap(p.SourceAdjustments)
	cp.Temporal.TimeOfDayActivity = cloneMap(p.Temporal.TimeOfDayActivity)
	cp.Behavior.PreferredChannels = append([]string(nil), p.Behavior.PreferredChannels...)
	return &cp
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return nil
	}
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// CategoryPreference returns the learned preference for a category,
// defaulting to 0.5 for categories never seen in feedback
func (p *Profile) CategoryPreference(c signal.Category) float64 {
	if v, ok := p.CategoryPreferences[c]; ok {
		return v
	}
	return DefaultCategoryPreference
}

// CompetitorInterest returns the learned interest multiplier for a
// competitor name (case-insensitive), defaulting to 1.0
func (p *Profile) CompetitorInterest(name string) float64 {
	if v, ok := p.CompetitorInterests[competitorKey(name)]; ok {
		return v
	}
	return DefaultCompetitorInterest
}

// KeywordWeight returns the learned weight for a keyword
// (case-insensitive), defaulting to 1.0
func (p *Profile) KeywordWeight(kw string) float64 {
	if v, ok := p.KeywordWeights[keywordKey(kw)]; ok {
		return v
	}
	return DefaultKeywordWeight
}

// SourceAdjustment returns the learned trust adjustment for a source,
// defaulting to 0
func (p *Profile) SourceAdjustment(sourceID string) float64 {
	return p.SourceAdjustments[sourceID]
}

// AdjustCategoryPreference nudges a category preference by delta, clamped
// to [0,1]
func (p *Profile) AdjustCategoryPreference(c signal.Category, delta float64) {
	p.CategoryPreferences[c] = Clamp(p.CategoryPreference(c)+delta, CategoryPreferenceMin, CategoryPreferenceMax)
}

// AdjustCompetitorInterest nudges a competitor interest multiplier by
// delta, clamped to [0.2,1.5]
func (p *Profile) AdjustCompetitorInterest(name string, delta float64) {
	key := competitorKey(name)
	p.CompetitorInterests[key] = Clamp(p.CompetitorInterest(name)+delta, CompetitorInterestMin, CompetitorInterestMax)
}

// AdjustKeywordWeight nudges a keyword weight by delta, clamped to [0.3,2.0]
func (p *Profile) AdjustKeywordWeight(kw string, delta float64) {
	key := keywordKey(kw)
	p.KeywordWeights[key] = Clamp(p.KeywordWeight(kw)+delta, KeywordWeightMin, KeywordWeightMax)
}

// AdjustSourceAdjustment nudges a source trust adjustment by delta,
// clamped to [-0.3,0.3]
func (p *Profile) AdjustSourceAdjustment(sourceID string, delta float64) {
	p.SourceAdjustments[sourceID] = Clamp(p.SourceAdjustment(sourceID)+delta, SourceAdjustmentMin, SourceAdjustmentMax)
}

// AdjustModelAccuracy nudges the coarse accuracy estimate, clamped to [0,1]
func (p *Profile) AdjustModelAccuracy(delta float64) {
	p.ModelAccuracy = Clamp(p.ModelAccuracy+delta, 0, 1)
}

func competitorKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func keywordKey(kw string) string {
	return strings.ToLower(strings.TrimSpace(kw))
}

// Clamp bounds v into [lo, hi]. Every scorer and learner mutation goes
// through this single helper.
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MovingAverage folds a new sample into a running average that has seen
// count prior samples: (current*count + value) / (count+1)
func MovingAverage(current, value float64, count int) float64 {
	return (current*float64(count) + value) / float64(count+1)
}
