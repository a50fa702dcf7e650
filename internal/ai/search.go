package ai

import (
	"context"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/1-RoushanKumar/SafeScribe/internal/infrastructure/config"
	"github.com/1-RoushanKumar/SafeScribe/internal/infrastructure/logging"
	"github.com/1-RoushanKumar/SafeScribe/internal/infrastructure/monitoring"
	"github.com/1-RoushanKumar/SafeScribe/internal/infrastructure/resilience"
)

// searchKeywords trigger web enrichment for answer questions. Deliberately a
// fixed heuristic, not a classifier; kept as-is for behavioral compatibility.
var searchKeywords = []string{
	"upcoming", "latest", "current", "news", "release date", "who is",
	"when is", "what is the current", "recent", "as of today", "last part",
	"newest",
}

// NeedsSearch reports whether a request should be enriched with live search
// context: answer operation, non-empty question, and either a keyword hit or
// the hard-coded "tom cruise" + "movies" special case.
func NeedsSearch(req Request) bool {
	if !strings.EqualFold(req.Operation, OpAnswer) || req.Question == "" {
		return false
	}

	question := strings.ToLower(req.Question)
	for _, keyword := range searchKeywords {
		if strings.Contains(question, keyword) {
			return true
		}
	}
	return strings.Contains(question, "tom cruise") && strings.Contains(question, "movies")
}

// Searcher queries the web search provider and condenses results into a
// prompt-ready text block. All failures degrade to "no result": enrichment is
// best-effort and must never abort the answer pipeline.
type Searcher struct {
	client  *resty.Client
	cfg     config.SearchConfig
	breaker *resilience.Breaker
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewSearcher creates a search client with an explicit per-call timeout and a
// circuit breaker. An open breaker degrades to "no result" immediately, which
// is the same contract as any other provider failure here.
func NewSearcher(cfg config.SearchConfig, logger *logging.Logger) *Searcher {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", "SafeScribe/1.0")

	breaker := resilience.New("web-search", resilience.Settings{
		MaxRequests: 2,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &Searcher{
		client:  client,
		cfg:     cfg,
		breaker: breaker,
		logger:  logger,
	}
}

// WithMetrics adds metrics tracking to the searcher.
func (s *Searcher) WithMetrics(metrics *monitoring.Metrics) *Searcher {
	s.metrics = metrics
	return s
}

// searchItem is one provider result. Pointers distinguish absent fields,
// which default to the literal "N/A" in the snippets block.
type searchItem struct {
	Title   *string `json:"title"`
	Link    *string `json:"link"`
	Snippet *string `json:"snippet"`
}

type searchResponse struct {
	Items []searchItem `json:"items"`
}

// Search issues a single provider query limited to 5 results and condenses
// them. Returns nil on any transport, status, or parse failure.
func (s *Searcher) Search(ctx context.Context, query string) *WebSearch {
	var timer *monitoring.Timer
	if s.metrics != nil {
		timer = monitoring.NewTimer(s.metrics, "search", "query")
	}

	result, err := s.breaker.Execute(func() (interface{}, error) {
		return s.query(ctx, query)
	})
	if err != nil {
		s.logger.Warn("Web search degraded to no result",
			zap.String("query", query),
			zap.Error(err),
		)
		if s.metrics != nil {
			s.metrics.IncSearchFailures()
			timer.Stop("failure")
		}
		return nil
	}
	if timer != nil {
		timer.Stop("success")
	}

	return result.(*WebSearch)
}

// query performs the HTTP call and condenses the response.
func (s *Searcher) query(ctx context.Context, query string) (*WebSearch, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"key": s.cfg.APIKey,
			"cx":  s.cfg.EngineID,
			"q":   query,
			"num": "5",
		}).
		Get(s.cfg.Endpoint)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 {
		return nil, &BackendError{Message: "search provider returned status " + resp.Status()}
	}

	var parsed searchResponse
	if err := sonic.Unmarshal(resp.Body(), &parsed); err != nil {
		return nil, err
	}

	return condense(parsed.Items), nil
}

// condense builds the snippets block and source list in provider order.
// Results without a usable link contribute snippets but no source URL.
func condense(items []searchItem) *WebSearch {
	var snippets strings.Builder
	urls := []string{}

	for _, item := range items {
		title := stringOr(item.Title, "N/A")
		link := stringOr(item.Link, "N/A")
		snippet := stringOr(item.Snippet, "N/A")

		snippets.WriteString("Title: ")
		snippets.WriteString(title)
		snippets.WriteString("\nURL: ")
		snippets.WriteString(link)
		snippets.WriteString("\nSnippet: ")
		snippets.WriteString(snippet)
		snippets.WriteString("\n---\n")

		if link != "N/A" {
			urls = append(urls, link)
		}
	}

	return &WebSearch{
		CombinedSnippets: snippets.String(),
		SourceURLs:       urls,
	}
}

func stringOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
