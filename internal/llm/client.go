// Package llm calls an OpenAI-compatible chat-completions endpoint to turn a
// prompt into roast text. Failures here are never fatal to the caller: the
// service layer falls back to canned text.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/manan0209/gitroaster/internal/errs"
)

// minCompletionLen rejects implausibly short completions after cleanup.
const minCompletionLen = 20

// Config holds completion endpoint settings.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// DefaultConfig returns the Groq settings the roast prompts are tuned for.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:      apiKey,
		BaseURL:     "https://api.groq.com/openai/v1",
		Model:       "llama-3.3-70b-versatile",
		Temperature: 0.95,
		MaxTokens:   400,
		Timeout:     60 * time.Second,
	}
}

// Client is an OpenAI-compatible chat-completions client.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// New constructs a client from cfg, applying defaults for zero fields.
func New(cfg Config) *Client {
	def := DefaultConfig(cfg.APIKey)
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.Model == "" {
		cfg.Model = def.Model
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = def.Temperature
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = def.MaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	return &Client{cfg: cfg, httpClient: &http.Client{Timeout: cfg.Timeout}}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	TopP        float64       `json:"top_p"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends one prompt and returns the cleaned completion. Retries a few
// times on 429 and transport errors with exponential backoff. All failure
// modes wrap errs.ErrUpstreamUnavailable so callers can gate the fallback path
// on a single sentinel.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", fmt.Errorf("%w: api key not configured", errs.ErrUpstreamUnavailable)
	}

	body, err := json.Marshal(chatRequest{
		Model:       c.cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
		TopP:        1,
	})
	if err != nil {
		return "", err
	}

	const maxRetries = 3
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(1<<uint(i-1)) * time.Second):
			}
		}

		text, retry, err := c.attempt(ctx, body)
		if err == nil {
			return text, nil
		}
		if !retry {
			return "", err
		}
		lastErr = err
	}
	return "", fmt.Errorf("%w: retries exhausted: %v", errs.ErrUpstreamUnavailable, lastErr)
}

// attempt performs one request. retry reports whether the error is transient.
func (c *Client) attempt(ctx context.Context, body []byte) (text string, retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", false, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", true, fmt.Errorf("%w: %v", errs.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, fmt.Errorf("%w: read response: %v", errs.ErrUpstreamUnavailable, err)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return "", true, fmt.Errorf("%w: rate limited (429)", errs.ErrUpstreamUnavailable)
	}
	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("%w: status %d: %s", errs.ErrUpstreamUnavailable, resp.StatusCode, raw)
	}

	var cr chatResponse
	if err := json.Unmarshal(raw, &cr); err != nil {
		return "", false, fmt.Errorf("%w: parse response: %v", errs.ErrUpstreamUnavailable, err)
	}
	if cr.Error != nil {
		return "", false, fmt.Errorf("%w: api error: %s", errs.ErrUpstreamUnavailable, cr.Error.Message)
	}
	if len(cr.Choices) == 0 {
		return "", false, fmt.Errorf("%w: no completion returned", errs.ErrUpstreamUnavailable)
	}

	text = Clean(cr.Choices[0].Message.Content)
	if len(text) < minCompletionLen {
		return "", false, fmt.Errorf("%w: completion too short (%d chars)", errs.ErrUpstreamUnavailable, len(text))
	}
	return text, false, nil
}
