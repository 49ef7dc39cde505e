package mcp

// Resource defines an MCP resource
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

// ResourceDefinitions lists all available resources
var ResourceDefinitions = []Resource{
	{
		URI:         "signalrank://profile",
		Name:        "Relevance Profile",
		Description: "Learned profile summary: top categories, top competitors, model accuracy",
		MimeType:    "text/plain",
	},
	{
		URI:         "signalrank://recent-feedback",
		Name:        "Recent Feedback",
		Description: "Last 10 feedback events, newest first",
		MimeType:    "text/plain",
	},
	{
		URI:         "signalrank://feedback-stats",
		Name:        "Feedback Statistics",
		Description: "Aggregate feedback counts by sentiment and type",
		MimeType:    "text/plain",
	},
}

// resourcesListResult is the response for resources/list
type resourcesListResult struct {
	Resources []Resource `json:"resources"`
}

// readResourceParams is the params for resources/read
type readResourceParams struct {
	URI string `json:"uri"`
}

// readResourceResult is the response for resources/read
type readResourceResult struct {
	Contents []resourceContent `json:"contents"`
}

type resourceContent struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
}
