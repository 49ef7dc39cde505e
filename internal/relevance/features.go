package relevance

import (
	"strings"
	"time"

	"github.com/anishk/signalrank-mcp/internal/signal"
)

// WorkHoursFunc reports whether now falls inside the user's working hours
type WorkHoursFunc func(u *signal.User, now time.Time) bool

// DefaultWorkHours treats Monday-Friday 09:00-18:00 in the user's
// timezone (falling back to local time) as working hours
var DefaultWorkHours = WorkHoursBetween(9, 18)

// WorkHoursBetween builds a WorkHoursFunc for Monday-Friday between
// start (inclusive) and end (exclusive) hours in the user's timezone
func WorkHoursBetween(start, end int) WorkHoursFunc {
	return func(u *signal.User, now time.Time) bool {
		t := now.In(userLocation(u))
		switch t.Weekday() {
		case time.Saturday, time.Sunday:
			return false
		}
		return t.Hour() >= start && t.Hour() < end
	}
}

func userLocation(u *signal.User) *time.Location {
	if u.Timezone != "" {
		if loc, err := time.LoadLocation(u.Timezone); err == nil {
			return loc
		}
	}
	return time.Local
}

// CompetitorMatch is a competitor entity from the signal that the user
// tracks, in signal entity order
type CompetitorMatch struct {
	Name    string
	Primary bool // one of the user's top-3 primary competitors
}

// FeatureRecord is the flat feature set derived from a (signal, user)
// pair. It carries everything the component scorers need so each scorer
// is a pure function of (features, profile).
type FeatureRecord struct {
	SignalID             string
	Category             signal.Category
	Role                 string
	Priority             signal.Priority
	TrustLevel           signal.TrustLevel
	SourceID             string
	Keywords             []string
	KeywordOverlapCount  int
	KeywordUniverse      int
	CompetitorMatches    []CompetitorMatch
	HasCompetitorMention bool
	HasProductMention    bool
	SignalAgeHours       float64
	IsWorkHours          bool
	Hour                 int
}

// FeatureExtractor derives a FeatureRecord from a signal and user
type FeatureExtractor interface {
	Extract(sig *signal.Signal, user *signal.User) FeatureRecord
}

// Extractor is the default feature extractor. Pure apart from the
// injected clock and work-hours helper.
type Extractor struct {
	clock     func() time.Time
	workHours WorkHoursFunc
}

// NewExtractor creates a feature extractor with the given collaborators
func NewExtractor(clock func() time.Time, workHours WorkHoursFunc) *Extractor {
	if clock == nil {
		clock = time.Now
	}
	if workHours == nil {
		workHours = DefaultWorkHours
	}
	return &Extractor{clock: clock, workHours: workHours}
}

// Extract derives the feature record for a (signal, user) pair
func (e *Extractor) Extract(sig *signal.Signal, user *signal.User) FeatureRecord {
	now := e.clock()
	text := strings.ToLower(sig.Text())

	var matches []CompetitorMatch
	for _, ent := range sig.CompetitorEntities() {
		if !user.TracksCompetitor(ent.Name) {
			continue
		}
		matches = append(matches, CompetitorMatch{
			Name:    ent.Name,
			Primary: user.IsPrimaryCompetitor(ent.Name),
		})
	}

	return FeatureRecord{
		SignalID:             sig.ID,
		Category:             sig.Category.Normalize(),
		Role:                 normalizeRole(user.Context.Role),
		Priority:             sig.Priority,
		TrustLevel:           sig.TrustLevel,
		SourceID:             sig.SourceID,
		Keywords:             sig.Keywords,
		KeywordOverlapCount:  overlapCount(sig.Keywords, user.Context.FocusAreas),
		KeywordUniverse:      maxInt(len(sig.Keywords), len(user.Context.FocusAreas)),
		CompetitorMatches:    matches,
		HasCompetitorMention: mentionsAny(text, user.AllCompetitors()),
		HasProductMention:    mentionsAny(text, user.Context.ProductsOwned),
		SignalAgeHours:       sig.AgeHours(now),
		IsWorkHours:          e.workHours(user, now),
		Hour:                 now.In(userLocation(user)).Hour(),
	}
}

// mentionsAny checks for a case-insensitive substring match of any name
// in the (already lowercased) text
func mentionsAny(textLower string, names []string) bool {
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if strings.Contains(textLower, strings.ToLower(name)) {
			return true
		}
	}
	return false
}

// overlapCount returns the size of the case-insensitive set intersection
func overlapCount(keywords, focusAreas []string) int {
	if len(keywords) == 0 || len(focusAreas) == 0 {
		return 0
	}
	focus := make(map[string]struct{}, len(focusAreas))
	for _, f := range focusAreas {
		focus[strings.ToLower(strings.TrimSpace(f))] = struct{}{}
	}
	seen := make(map[string]struct{}, len(keywords))
	count := 0
	for _, kw := range keywords {
		k := strings.ToLower(strings.TrimSpace(kw))
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		if _, ok := focus[k]; ok {
			count++
		}
	}
	return count
}

func normalizeRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
