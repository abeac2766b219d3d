// Package chat provides the "Chef Gemini" kitchen assistant: a Gemini
// generateContent client and the conversation agent that drives it.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/hammamikhairi/kitchenpal/internal/domain"
	"github.com/hammamikhairi/kitchenpal/internal/logger"
)

// Compile-time interface check.
var _ domain.Completer = (*Client)(nil)

const (
	// DefaultBaseURL is the public Gemini API host.
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	// DefaultModel is the model the assistant talks to.
	DefaultModel = "gemini-2.0-flash"
	// NoResponse is the reply used when the model returns no text.
	NoResponse = "No response"
)

// ── Wire types ───────────────────────────────────────────────────

type apiPart struct {
	Text string `json:"text"`
}

type apiContent struct {
	Role  string    `json:"role,omitempty"`
	Parts []apiPart `json:"parts"`
}

type generationConfig struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	MaxOutputTokens int      `json:"maxOutputTokens,omitempty"`
}

type apiRequest struct {
	Contents         []apiContent      `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type apiResponse struct {
	Candidates []struct {
		Content      apiContent `json:"content"`
		FinishReason string     `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
	} `json:"usageMetadata"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// ── Client ───────────────────────────────────────────────────────

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithModel overrides the default model name.
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithBaseURL points the client at another host, e.g. a test server.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) ClientOption {
	return func(c *Client) { c.temperature = &t }
}

// WithMaxTokens sets the response token limit.
func WithMaxTokens(n int) ClientOption {
	return func(c *Client) { c.maxTokens = n }
}

// WithHTTPTimeout sets the HTTP client timeout.
func WithHTTPTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http.Timeout = d }
}

// WithRateLimit caps requests per minute with the given burst.
// A non-positive perMinute disables limiting.
func WithRateLimit(perMinute, burst int) ClientOption {
	return func(c *Client) {
		if perMinute <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(float64(perMinute)/60), burst)
	}
}

// Client talks to the Gemini generateContent endpoint.
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	temperature *float64
	maxTokens   int
	limiter     *rate.Limiter
	http        *http.Client
	log         *logger.Logger
}

// NewClient creates a Gemini client. The key is sent in the
// x-goog-api-key header.
func NewClient(apiKey string, log *logger.Logger, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		apiKey:    apiKey,
		model:     DefaultModel,
		maxTokens: 1024,
		limiter:   rate.NewLimiter(rate.Limit(15.0/60), 3),
		http:      &http.Client{Timeout: 30 * time.Second},
		log:       log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

// Complete sends a single-turn prompt and returns the reply text.
// A reply with no text comes back as NoResponse, not as an error.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("chat: rate limit: %w", err)
		}
	}

	body := apiRequest{
		Contents: []apiContent{{Role: "user", Parts: []apiPart{{Text: prompt}}}},
	}
	if c.temperature != nil || c.maxTokens > 0 {
		body.GenerationConfig = &generationConfig{Temperature: c.temperature, MaxOutputTokens: c.maxTokens}
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("chat: marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("chat: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	c.log.Debug("chat: POST %s (%d bytes)", url, len(jsonData))

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("chat: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("chat: API %s: %s", resp.Status, apiErr.Error.Message)
		}
		return "", fmt.Errorf("chat: API %s\n%s", resp.Status, string(respBody))
	}

	var result apiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("chat: unmarshal response: %w", err)
	}

	reply := replyText(&result)
	c.log.Debug("chat: reply (%d chars, %d+%d tokens): %s", len(reply),
		result.UsageMetadata.PromptTokenCount, result.UsageMetadata.CandidatesTokenCount, truncate(reply, 120))
	return reply, nil
}

// replyText joins the text parts of the first candidate.
func replyText(r *apiResponse) string {
	if len(r.Candidates) == 0 {
		return NoResponse
	}
	var sb strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return NoResponse
	}
	return text
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
