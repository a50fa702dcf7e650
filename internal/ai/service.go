package ai

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/1-RoushanKumar/SafeScribe/internal/infrastructure/logging"
	"github.com/1-RoushanKumar/SafeScribe/internal/infrastructure/monitoring"
)

// explanationFallback replaces low-quality similar-operation answers.
const explanationFallback = "Could not provide a detailed explanation for the topic."

// Generator produces answer text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Enricher fetches live search context for a question. Implementations
// return nil rather than an error when no context is available.
type Enricher interface {
	Search(ctx context.Context, query string) *WebSearch
}

// Service is the pipeline entry point. Stateless: every call is processed
// independently end-to-end, nothing is shared between requests.
type Service struct {
	generator Generator
	enricher  Enricher
	logger    *logging.Logger
	metrics   *monitoring.Metrics
}

// NewService creates the orchestrator with its two provider clients.
func NewService(generator Generator, enricher Enricher, logger *logging.Logger) *Service {
	return &Service{
		generator: generator,
		enricher:  enricher,
		logger:    logger,
	}
}

// WithMetrics adds metrics tracking to the service.
func (s *Service) WithMetrics(metrics *monitoring.Metrics) *Service {
	s.metrics = metrics
	return s
}

// Process runs one request through the pipeline: validate, enrich (answer
// only, best-effort), build the prompt, call the generative backend, and
// assemble the response. The similar operation takes its own short-circuit
// path with a soft-failure substitution and never carries sources.
func (s *Service) Process(ctx context.Context, req Request) (*Response, error) {
	if req.Operation == "" {
		s.record("none", "error")
		return nil, &ValidationError{Message: "operation field is required"}
	}
	operation := strings.ToLower(req.Operation)

	var web *WebSearch
	if NeedsSearch(req) {
		if s.metrics != nil {
			s.metrics.IncSearchTriggered()
		}
		// Enrichment failures are absorbed by the enricher; a nil result
		// means the prompt is built without live context.
		web = s.enricher.Search(ctx, req.Question)
	}

	if operation == OpSimilar {
		resp, err := s.explain(ctx, req)
		s.record(operation, statusOf(err))
		return resp, err
	}

	prompt, err := BuildPrompt(req, web)
	if err != nil {
		s.record(operation, "error")
		return nil, err
	}

	answer, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.record(operation, "error")
		return nil, err
	}

	resp := &Response{
		Answer:    answer,
		Operation: req.Operation,
	}
	if web != nil {
		resp.Sources = web.SourceURLs
	}
	s.record(operation, "success")
	return resp, nil
}

// explain handles the similar operation: no search context ever, and a fixed
// apology replaces blank or sentinel answers. The substitution is a content
// fallback, not a retry.
func (s *Service) explain(ctx context.Context, req Request) (*Response, error) {
	prompt, err := BuildPrompt(req, nil)
	if err != nil {
		return nil, err
	}

	answer, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	if isSoftFailure(answer) {
		s.logger.Warn("Explanation degraded to fallback text",
			zap.String("topic", req.Question),
		)
		answer = explanationFallback
	}

	return &Response{
		Answer:    answer,
		Operation: req.Operation,
	}, nil
}

// isSoftFailure reports whether extracted answer text is blank or one of the
// extraction sentinels.
func isSoftFailure(text string) bool {
	return strings.TrimSpace(text) == "" ||
		strings.EqualFold(text, noResponseFound) ||
		strings.Contains(text, "Error processing response")
}

func (s *Service) record(operation, status string) {
	if s.metrics != nil {
		s.metrics.RecordAIRequest(operation, status)
	}
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
