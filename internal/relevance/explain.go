package relevance

import (
	"strings"

	"github.com/anishk/signalrank-mcp/internal/signal"
)

// Thresholds above which a component contributes a phrase to the
// explanation
const (
	explainCompetitorThreshold = 0.7
	explainCategoryThreshold   = 0.7
	explainKeywordThreshold    = 0.6
	explainSourceThreshold     = 0.8
	explainTemporalThreshold   = 0.8
)

const fallbackExplanation = "May be relevant to your role"

var categoryPhrases = map[signal.Category]string{
	signal.CategoryProductLaunch:    "Product launch in your space",
	signal.CategoryFunding:          "Funding activity in your market",
	signal.CategoryAcquisition:      "Acquisition activity in your market",
	signal.CategoryPartnership:      "Partnership news in your space",
	signal.CategoryLeadershipChange: "Leadership change at a tracked company",
	signal.CategoryPricingChange:    "Pricing change in your market",
}

// explain maps the high-scoring components to short human-readable
// phrases in a fixed evaluation order
func explain(c componentScores, category signal.Category) string {
	var phrases []string

	if c.CompetitorRelevance > explainCompetitorThreshold {
		phrases = append(phrases, "Mentions your competitors")
	}
	if c.CategoryMatch > explainCategoryThreshold {
		phrases = append(phrases, categoryPhrase(category))
	}
	if c.KeywordOverlap > explainKeywordThreshold {
		phrases = append(phrases, "Matches your focus areas")
	}
	if c.SourceTrust > explainSourceThreshold {
		phrases = append(phrases, "From a highly trusted source")
	}
	if c.TemporalRelevance > explainTemporalThreshold {
		phrases = append(phrases, "Fresh news during your active hours")
	}

	if len(phrases) == 0 {
		return fallbackExplanation
	}
	return strings.Join(phrases, ", ")
}

func categoryPhrase(c signal.Category) string {
	if phrase, ok := categoryPhrases[c]; ok {
		return phrase
	}
	return "Matches your category interests"
}
