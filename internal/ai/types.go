package ai

// Supported operations. Matching is case-insensitive everywhere.
const (
	OpSummarise = "summarise"
	OpRead      = "read"
	OpTranslate = "translate"
	OpAnswer    = "answer"
	OpSimilar   = "similar"
)

// OpError is the operation echoed by the serving layer on its own pre-flight
// validation failures, before a Request ever reaches the pipeline.
const OpError = "error"

// Request is the pipeline input. Field optionality is operation-scoped:
// required fields are checked at prompt-build time, not on construction.
type Request struct {
	Content        string `json:"content"`
	Operation      string `json:"operation"`
	Question       string `json:"question"`
	SummaryLength  string `json:"summaryLength"`
	TargetLanguage string `json:"targetLanguage"`
}

// WebSearch carries condensed live search context for one request.
// Created fresh per request, consumed by the orchestrator, never persisted.
type WebSearch struct {
	// CombinedSnippets is a single text block: Title/URL/Snippet lines plus a
	// "---" separator per result, in provider ranking order.
	CombinedSnippets string
	// SourceURLs holds one link per result that had one, duplicates allowed,
	// provider ranking order.
	SourceURLs []string
}

// Response is the pipeline output, a plain value object.
type Response struct {
	Answer    string   `json:"answer"`
	Sources   []string `json:"sources,omitempty"`
	Operation string   `json:"operation"`
}
