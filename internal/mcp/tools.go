package mcp

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// signalSchema describes the normalized signal object shared by
// score_signal and record_feedback
var signalSchema = map[string]interface{}{
	"type":        "object",
	"description": "Normalized market signal to evaluate",
	"properties": map[string]interface{}{
		"id": map[string]interface{}{
			"type":        "string",
			"description": "Stable signal identifier",
		},
		"title": map[string]interface{}{
			"type":        "string",
			"description": "Signal headline",
		},
		"summary": map[string]interface{}{
			"type":        "string",
			"description": "Short summary of the signal",
		},
		"category": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"product_launch", "funding", "acquisition", "partnership", "leadership_change", "pricing_change"},
			"description": "Signal category",
		},
		"keywords": map[string]interface{}{
			"type":        "array",
			"items":       map[string]interface{}{"type": "string"},
			"description": "Extracted keywords",
		},
		"entities": map[string]interface{}{
			"type":        "array",
			"description": "Named entities; companies may be flagged as competitors",
			"items": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"type":          map[string]interface{}{"type": "string"},
					"name":          map[string]interface{}{"type": "string"},
					"is_competitor": map[string]interface{}{"type": "boolean"},
				},
				"required": []string{"type", "name"},
			},
		},
		"source_id": map[string]interface{}{
			"type":        "string",
			"description": "Identifier of the originating source",
		},
		"trust_level": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"verified", "official", "reliable", "unverified"},
			"description": "Trust level of the source",
		},
		"priority": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"critical", "high", "medium", "low"},
			"description": "Upstream priority assessment",
		},
		"published_at": map[string]interface{}{
			"type":        "string",
			"description": "RFC 3339 publication timestamp (default: now)",
		},
	},
	"required": []string{"id"},
}

// ToolDefinitions contains all available MCP tools
var ToolDefinitions = []Tool{
	{
		Name:        "score_signal",
		Description: "Score a market signal's relevance for the configured user. Returns a 0-1 score, per-component breakdown, and a human-readable explanation.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"signal": signalSchema,
				"user_id": map[string]interface{}{
					"type":        "string",
					"description": "Score for this user instead of the configured default",
				},
			},
			"required": []string{"signal"},
		},
	},
	{
		Name:        "record_feedback",
		Description: "Record explicit feedback on a signal to tune the user's relevance profile. Positive types: action, flag, create_task, share, save. Negative types: dismiss, irrelevant.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"signal": signalSchema,
				"feedback_type": map[string]interface{}{
					"type":        "string",
					"description": "Feedback type (action, flag, create_task, share, save, dismiss, irrelevant, ...)",
				},
				"value": map[string]interface{}{
					"type":        "string",
					"description": "Optional value attached to the feedback (e.g. a note or rating)",
				},
				"user_id": map[string]interface{}{
					"type":        "string",
					"description": "Record for this user instead of the configured default",
				},
			},
			"required": []string{"signal", "feedback_type"},
		},
	},
	{
		Name:        "get_profile_summary",
		Description: "Get the learned relevance profile: top category preferences, top competitor interest, model accuracy, and behavior patterns.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"user_id": map[string]interface{}{
					"type":        "string",
					"description": "Summarize this user instead of the configured default",
				},
			},
		},
	},
	{
		Name:        "get_feedback_history",
		Description: "List recent feedback events, newest first.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of events to return (default: 20)",
				},
				"user_id": map[string]interface{}{
					"type":        "string",
					"description": "List for this user instead of the configured default",
				},
			},
		},
	},
}
