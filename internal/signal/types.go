package signal

import (
	"strings"
	"time"
)

// Category classifies what kind of market event a signal describes
type Category string

const (
	CategoryProductLaunch    Category = "product_launch"
	CategoryFunding          Category = "funding"
	CategoryAcquisition      Category = "acquisition"
	CategoryPartnership      Category = "partnership"
	CategoryLeadershipChange Category = "leadership_change"
	CategoryPricingChange    Category = "pricing_change"
	CategoryUnknown          Category = "unknown"
)

// KnownCategories lists every category the engine seeds preferences for
var KnownCategories = []Category{
	CategoryProductLaunch,
	CategoryFunding,
	CategoryAcquisition,
	CategoryPartnership,
	CategoryLeadershipChange,
	CategoryPricingChange,
}

// Normalize maps an empty or unrecognized category to CategoryUnknown
func (c Category) Normalize() Category {
	for _, known := range KnownCategories {
		if c == known {
			return c
		}
	}
	return CategoryUnknown
}

// TrustLevel indicates how reliable the signal's source is
type TrustLevel string

const (
	TrustVerified   TrustLevel = "verified"
	TrustOfficial   TrustLevel = "official"
	TrustReliable   TrustLevel = "reliable"
	TrustUnverified TrustLevel = "unverified"
)

// Priority indicates the urgency assigned by the ingestion pipeline
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Entity is a named entity extracted from signal content
type Entity struct {
	Type         string `json:"type"`
	Name         string `json:"name"`
	IsCompetitor bool   `json:"is_competitor,omitempty"`
}

// Signal represents a normalized content item from an upstream source.
// Ingestion (JIRA, Slack, GitHub, news feeds) happens elsewhere; the
// scoring engine only ever sees this shape.
type Signal struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Summary     string     `json:"summary"`
	Category    Category   `json:"category"`
	Keywords    []string   `json:"keywords"`
	Entities    []Entity   `json:"entities"`
	SourceID    string     `json:"source_id"`
	TrustLevel  TrustLevel `json:"trust_level"`
	Priority    Priority   `json:"priority"`
	PublishedAt time.Time  `json:"published_at"`
}

// Text returns the searchable text of the signal (title + summary)
func (s *Signal) Text() string {
	return s.Title + " " + s.Summary
}

// AgeHours returns the signal age in hours relative to now
func (s *Signal) AgeHours(now time.Time) float64 {
	return now.Sub(s.PublishedAt).Hours()
}

// CompetitorEntities returns the company entities flagged as competitors,
// preserving signal entity order
func (s *Signal) CompetitorEntities() []Entity {
	var out []Entity
	for _, e := range s.Entities {
		if e.Type == "company" && e.IsCompetitor {
			out = append(out, e)
		}
	}
	return out
}

// UserContext describes the user's role and interests, supplied by the
// account/settings subsystem
type UserContext struct {
	Role                 string   `json:"role"`
	Seniority            string   `json:"seniority"`
	Department           string   `json:"department"`
	FocusAreas           []string `json:"focus_areas"`
	PrimaryCompetitors   []string `json:"primary_competitors"`
	SecondaryCompetitors []string `json:"secondary_competitors"`
	ProductsOwned        []string `json:"products_owned"`
	TechnologiesUsed     []string `json:"technologies_used"`
}

// User identifies a scoring subject
type User struct {
	ID       string      `json:"id"`
	Timezone string      `json:"timezone,omitempty"`
	Context  UserContext `json:"context"`
}

// AllCompetitors returns primary followed by secondary competitors
func (u *User) AllCompetitors() []string {
	out := make([]string, 0, len(u.Context.PrimaryCompetitors)+len(u.Context.SecondaryCompetitors))
	out = append(out, u.Context.PrimaryCompetitors...)
	out = append(out, u.Context.SecondaryCompetitors...)
	return out
}

// IsPrimaryCompetitor reports whether name is one of the user's top-3
// primary competitors (case-insensitive)
func (u *User) IsPrimaryCompetitor(name string) bool {
	top := u.Context.PrimaryCompetitors
	if len(top) > 3 {
		top = top[:3]
	}
	for _, c := range top {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}

// TracksCompetitor reports whether name appears anywhere in the user's
// competitor lists (case-insensitive)
func (u *User) TracksCompetitor(name string) bool {
	for _, c := range u.AllCompetitors() {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}
