// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ideagen generates date-idea cards from a chat completions API.
//
// A Client builds a prompt from fixed formatting rules plus the titles it
// has recently returned, sends one request per call, and parses the
// two-line "Title:/Description:" reply into a types.Idea. Failures come
// back as *GenerationError. The client does not retry, log, or guard
// against overlapping calls; callers own those policies (see Guard).
package ideagen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/idea-swipe/internal/recency"
	"github.com/pdiddy/idea-swipe/pkg/types"
)

// emptyChoicesContent stands in for the content when the API returns no choices.
const emptyChoicesContent = "Failed to generate idea"

// maxErrorBody caps how much of a non-200 body is kept on the error.
const maxErrorBody = 512

// Generator produces one idea per call. Session and CLI code depend on this
// rather than on *Client so tests can supply a fake.
type Generator interface {
	GenerateIdea(ctx context.Context) (types.Idea, error)
}

// Client calls the chat completions API. Its recency set lives as long as
// the Client; construct one per process or inject a shared set with WithRecency.
type Client struct {
	cfg      types.GeneratorConfig
	endpoint string
	http     *http.Client
	recent   *recency.Set
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client (tests pass httptest's client).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithEndpoint overrides the configured endpoint URL.
func WithEndpoint(url string) Option {
	return func(c *Client) { c.endpoint = url }
}

// WithRecency injects the recency set, letting the caller control its lifetime.
func WithRecency(s *recency.Set) Option {
	return func(c *Client) { c.recent = s }
}

// New returns a Client for cfg. The API key must be supplied by the caller.
func New(cfg types.GeneratorConfig, opts ...Option) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("ideagen: API key is required")
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = types.DefaultEndpoint
	}
	if cfg.Model == "" {
		cfg.Model = types.DefaultModel
	}
	cfg.SamplingConfig = withSamplingDefaults(cfg.SamplingConfig)

	c := &Client{
		cfg:      cfg,
		endpoint: cfg.Endpoint,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: cfg.Timeout}
	}
	if c.recent == nil {
		c.recent = recency.New(cfg.RecencySize)
	}
	return c, nil
}

// withSamplingDefaults fills each zero sampling field from the defaults.
// A zero temperature or penalty therefore cannot be requested explicitly.
func withSamplingDefaults(sc types.SamplingConfig) types.SamplingConfig {
	d := types.DefaultGeneratorConfig().SamplingConfig
	if sc.Temperature == 0 {
		sc.Temperature = d.Temperature
	}
	if sc.MaxTokens == 0 {
		sc.MaxTokens = d.MaxTokens
	}
	if sc.PresencePenalty == 0 {
		sc.PresencePenalty = d.PresencePenalty
	}
	if sc.FrequencyPenalty == 0 {
		sc.FrequencyPenalty = d.FrequencyPenalty
	}
	return sc
}

// Recent returns the recency set the client consults and updates.
func (c *Client) Recent() *recency.Set {
	return c.recent
}

// chatRequest is the request body for the chat completions API.
type chatRequest struct {
	Model            string        `json:"model"`
	Messages         []chatMessage `json:"messages"`
	Temperature      float64       `json:"temperature"`
	MaxTokens        int           `json:"max_tokens"`
	PresencePenalty  float64       `json:"presence_penalty"`
	FrequencyPenalty float64       `json:"frequency_penalty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the subset of the response the client reads.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GenerateIdea requests one idea. On success the idea's title joins the
// recency set, evicting the oldest title if the set overflows. On failure
// the set is left untouched.
func (c *Client) GenerateIdea(ctx context.Context) (types.Idea, error) {
	prompt, err := renderPrompt(c.recent.Items())
	if err != nil {
		return types.Idea{}, fmt.Errorf("rendering prompt: %w", err)
	}

	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature:      c.cfg.Temperature,
		MaxTokens:        c.cfg.MaxTokens,
		PresencePenalty:  c.cfg.PresencePenalty,
		FrequencyPenalty: c.cfg.FrequencyPenalty,
	})
	if err != nil {
		return types.Idea{}, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return types.Idea{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return types.Idea{}, &GenerationError{Kind: NetworkFailure, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return types.Idea{}, &GenerationError{
			Kind:       BadStatus,
			StatusCode: resp.StatusCode,
			Body:       string(bytes.TrimSpace(snippet)),
		}
	}

	content, err := decodeContent(resp.Body)
	if err != nil {
		return types.Idea{}, &GenerationError{Kind: DecodeFailure, Err: err}
	}

	idea := ParseIdea(content)
	// Keyed by the label-stripped title so the avoid-list reads as plain titles.
	if idea.Title != "" {
		c.recent.Add(idea.Title)
	}
	return idea, nil
}

// decodeContent reads the first choice's message content. The whole body
// must be one JSON document. A body with no choices decodes to a fixed
// fallback string rather than an error.
func decodeContent(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}
	var cr chatResponse
	if err := json.Unmarshal(data, &cr); err != nil {
		return "", err
	}
	if cr.Choices == nil {
		return "", fmt.Errorf("response has no choices field")
	}
	if len(cr.Choices) == 0 {
		return emptyChoicesContent, nil
	}
	content := cr.Choices[0].Message.Content
	if content == nil {
		return "", fmt.Errorf("first choice has no message content")
	}
	return *content, nil
}
