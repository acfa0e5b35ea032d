package models

// ToolRequest is the payload for POST /tool.
type ToolRequest struct {
	Query string `json:"query"`           // user’s natural‑language question
	Owner string `json:"owner,omitempty"` // optional; overrides the default repository
	Repo  string `json:"repo,omitempty"`  // optional; overrides the default repository
}

// ToolResponse is the success body of POST /tool.
type ToolResponse struct {
	Response string `json:"response"`
}

// ErrorResponse is the body of every non‑2xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Tool names, in the order the orchestrator runs them.
const (
	ToolFetchMetadata  = "fetch_repository_metadata"
	ToolFetchReadme    = "fetch_repository_readme"
	ToolSearchContents = "search_repository_contents"
	ToolFetchStructure = "fetch_repository_structure"
)

// ToolResult is the serialized output of one tool call. Content is plain text
// for the README tool and indented JSON for every other tool.
type ToolResult struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}
