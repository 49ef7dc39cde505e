package profile

import (
	"sort"
	"time"

	"github.com/anishk/signalrank-mcp/internal/signal"
)

// CategoryRank is a category with its learned preference
type CategoryRank struct {
	Category signal.Category `json:"category"`
	Score    float64         `json:"score"`
}

// CompetitorRank is a competitor with its learned interest multiplier
type CompetitorRank struct {
	Name       string  `json:"name"`
	Multiplier float64 `json:"multiplier"`
}

// Summary is a read-only projection of a profile for diagnostics and UI
type Summary struct {
	UserID         string           `json:"user_id"`
	TotalFeedback  int              `json:"total_feedback"`
	ModelAccuracy  float64          `json:"model_accuracy"`
	TopCategories  []CategoryRank   `json:"top_categories"`
	TopCompetitors []CompetitorRank `json:"top_competitors"`
	Behavior       BehaviorPatterns `json:"behavior_summary"`
	LastUpdated    time.Time        `json:"last_updated"`
}

// Summarize projects a profile into its diagnostic summary: top-3
// categories and top-5 competitors sorted descending by learned value
func Summarize(p *Profile) *Summary {
	cats := make([]CategoryRank, 0, len(p.CategoryPreferences))
	for c, v := range p.CategoryPreferences {
		cats = append(cats, CategoryRank{Category: c, Score: v})
	}
	sort.Slice(cats, func(i, j int) bool {
		if cats[i].Score != cats[j].Score {
			return cats[i].Score > cats[j].Score
		}
		return cats[i].Category < cats[j].Category
	})
	if len(cats) > 3 {
		cats = cats[:3]
	}

	comps := make([]CompetitorRank, 0, len(p.CompetitorInterests))
	for name, v := range p.CompetitorInterests {
		comps = append(comps, CompetitorRank{Name: name, Multiplier: v})
	}
	sort.Slice(comps, func(i, j int) bool {
		if comps[i].Multiplier != comps[j].Multiplier {
			return comps[i].Multiplier > comps[j].Multiplier
		}
		return comps[i].Name < comps[j].Name
	})
	if len(comps) > 5 {
		comps = comps[:5]
	}

	return &Summary{
		UserID:         p.UserID,
		TotalFeedback:  p.TotalFeedbackCount,
		ModelAccuracy:  p.ModelAccuracy,
		TopCategories:  cats,
		TopCompetitors: comps,
		Behavior:       p.Behavior,
		LastUpdated:    p.LastUpdated,
	}
}
