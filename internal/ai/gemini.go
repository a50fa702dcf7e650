package ai

import (
	"context"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"

	"github.com/1-RoushanKumar/SafeScribe/internal/infrastructure/config"
	"github.com/1-RoushanKumar/SafeScribe/internal/infrastructure/monitoring"
)

// Sentinel answer texts for malformed provider responses. These are data the
// orchestrator can inspect, not errors: only transport failures and
// non-success statuses produce a BackendError.
const (
	noResponseFound     = "No response found"
	processingErrPrefix = "Error processing response: "
)

// Gemini is the generative backend client. One prompt in, one answer out,
// single-shot: no retries, failure is the request's failure.
type Gemini struct {
	client  *resty.Client
	cfg     config.GeminiConfig
	metrics *monitoring.Metrics
}

// NewGemini creates a generative backend client with an explicit timeout.
func NewGemini(cfg config.GeminiConfig) *Gemini {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")

	return &Gemini{client: client, cfg: cfg}
}

// WithMetrics adds metrics tracking to the client.
func (g *Gemini) WithMetrics(metrics *monitoring.Metrics) *Gemini {
	g.metrics = metrics
	return g
}

// Wire types for the provider's generateContent schema.
type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	Contents []generateContent `json:"contents"`
}

// Generate sends one prompt and returns the extracted answer text. The API
// key rides in the URL per the provider's key-in-URL scheme.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	var timer *monitoring.Timer
	if g.metrics != nil {
		timer = monitoring.NewTimer(g.metrics, "gemini", "generate")
	}

	body, err := sonic.Marshal(generateRequest{
		Contents: []generateContent{{Parts: []generatePart{{Text: prompt}}}},
	})
	if err != nil {
		return "", &BackendError{Message: "failed to encode generative request", Err: err}
	}

	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(body).
		Post(g.cfg.BaseURL + g.cfg.APIKey)
	if err != nil {
		if timer != nil {
			timer.Stop("failure")
		}
		return "", &BackendError{Message: "generative backend unreachable", Err: err}
	}
	if resp.StatusCode() != 200 {
		if timer != nil {
			timer.Stop("failure")
		}
		return "", &BackendError{Message: "generative backend returned status " + resp.Status()}
	}
	if timer != nil {
		timer.Stop("success")
	}

	return extractText(resp.Body()), nil
}

// extractText walks candidates[0].content.parts[0].text with a default at
// every step. Provider responses are treated as loosely structured: a missing
// or mistyped node yields the sentinel, and only an unparsable body yields
// the processing-error text. Neither is an error.
func extractText(body []byte) string {
	var root interface{}
	if err := sonic.Unmarshal(body, &root); err != nil {
		return processingErrPrefix + err.Error()
	}

	obj, ok := root.(map[string]interface{})
	if !ok {
		return noResponseFound
	}
	candidates, ok := obj["candidates"].([]interface{})
	if !ok || len(candidates) == 0 {
		return noResponseFound
	}
	first, ok := candidates[0].(map[string]interface{})
	if !ok {
		return noResponseFound
	}
	content, ok := first["content"].(map[string]interface{})
	if !ok {
		return noResponseFound
	}
	parts, ok := content["parts"].([]interface{})
	if !ok || len(parts) == 0 {
		return noResponseFound
	}
	part, ok := parts[0].(map[string]interface{})
	if !ok {
		return noResponseFound
	}
	text, ok := part["text"].(string)
	if !ok {
		return noResponseFound
	}
	return text
}
