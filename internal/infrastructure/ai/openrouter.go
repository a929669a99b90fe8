// Package ai implements the model provider boundary against the OpenRouter
// chat completions API.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/eufat/snapshell/internal/domain"
	"github.com/eufat/snapshell/internal/ports"
)

const providerName = "openrouter"

// Client talks to an OpenRouter-compatible chat completions endpoint.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds a provider from resolved configuration.
func NewClient(cfg domain.Config) *Client {
	timeout := domain.DefaultHTTPClientTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = domain.DefaultEndpoint
	}
	return &Client{
		endpoint:   endpoint,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Name implements ports.Provider.
func (c *Client) Name() string {
	return providerName
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string          `json:"model"`
	Messages  []chatMessage   `json:"messages"`
	Reasoning reasoningEffort `json:"reasoning"`
}

type reasoningEffort struct {
	Effort string `json:"effort"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content   string          `json:"content"`
			Reasoning json.RawMessage `json:"reasoning"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the full transcript and returns the raw completion text.
// When the caller asked for reasoning and the API reports it as a message
// field, the value is normalized into a trailing compact JSON line so the
// downstream parser handles both shapes the same way.
func (c *Client) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	if c.apiKey == "" {
		return "", domain.Errorf(domain.KindConfiguration, providerName,
			"missing API key: set SNAPSHELL_OPENROUTER_API_KEY")
	}

	effort := string(req.Effort)
	if effort == "" {
		effort = string(domain.ReasoningLow)
	}
	messages := make([]chatMessage, 0, len(req.Messages))
	for _, msg := range req.Messages {
		messages = append(messages, chatMessage{Role: string(msg.Role), Content: msg.Content})
	}

	body, err := json.Marshal(chatRequest{Model: req.Model, Messages: messages, Reasoning: reasoningEffort{Effort: effort}})
	if err != nil {
		return "", domain.NewError(domain.KindParse, providerName, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", domain.NewError(domain.KindTransport, providerName, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", domain.NewError(domain.KindTransport, providerName, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", domain.Errorf(domain.KindConfiguration, providerName,
			"authentication failed (%s): check SNAPSHELL_OPENROUTER_API_KEY", resp.Status)
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", domain.Errorf(domain.KindTransport, providerName, "rate limited (%s)", resp.Status)
	case resp.StatusCode >= 400:
		return "", domain.Errorf(domain.KindTransport, providerName, "request failed: %s", resp.Status)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", domain.NewError(domain.KindParse, providerName, fmt.Errorf("decode response: %w", err))
	}
	if len(out.Choices) == 0 {
		return "", domain.Errorf(domain.KindParse, providerName, "response contains no choices")
	}

	choice := out.Choices[0].Message
	completion := choice.Content
	if req.IncludeReasoning {
		if line, ok := normalizeReasoning(choice.Reasoning); ok {
			completion = completion + "\n" + line
		}
	}
	return completion, nil
}

// normalizeReasoning folds the provider's message-level reasoning value into
// the canonical single-line form {"reasoning": "..."}. Strings are wrapped,
// objects already carrying a "reasoning" key pass through compacted, and
// anything else is stringified and wrapped.
func normalizeReasoning(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", false
	}

	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", false
	}

	var wrapped interface{}
	switch v := value.(type) {
	case string:
		wrapped = map[string]string{"reasoning": v}
	case map[string]interface{}:
		if _, exists := v["reasoning"]; exists {
			wrapped = v
		} else {
			text, err := json.Marshal(v)
			if err != nil {
				return "", false
			}
			wrapped = map[string]string{"reasoning": string(text)}
		}
	default:
		text, err := json.Marshal(v)
		if err != nil {
			return "", false
		}
		wrapped = map[string]string{"reasoning": string(text)}
	}

	line, err := json.Marshal(wrapped)
	if err != nil {
		return "", false
	}
	return string(line), true
}

var _ ports.Provider = (*Client)(nil)
