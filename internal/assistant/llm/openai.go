package llm

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
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-3.5-turbo"
)

// OpenAIClient talks to an OpenAI compatible chat completions endpoint.
type OpenAIClient struct {
	BaseURL string
	Model   string
	APIKey  string
	HTTP    *http.Client
	limiter *rate.Limiter
}

type ClientOptions struct {
	BaseURL    string
	Model      string
	APIKey     string
	Timeout    time.Duration
	RatePerSec float64
}

func NewOpenAIClient(opt ClientOptions) *OpenAIClient {
	if opt.BaseURL == "" {
		opt.BaseURL = DefaultBaseURL
	}
	if opt.Model == "" {
		opt.Model = DefaultModel
	}
	if opt.Timeout == 0 {
		opt.Timeout = 30 * time.Second
	}

	limit := rate.Inf
	burst := 1
	if opt.RatePerSec > 0 {
		limit = rate.Limit(opt.RatePerSec)
		burst = int(opt.RatePerSec)
		if burst < 1 {
			burst = 1
		}
	}

	return &OpenAIClient{
		BaseURL: strings.TrimRight(opt.BaseURL, "/"),
		Model:   opt.Model,
		APIKey:  opt.APIKey,
		HTTP:    &http.Client{Timeout: opt.Timeout},
		limiter: rate.NewLimiter(limit, burst),
	}
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

func (c *OpenAIClient) Generate(ctx context.Context, req Request) (string, error) {
	start := time.Now()
	out, err := c.generate(ctx, req)
	recordGeneratorCall(time.Since(start), err)
	return out, err
}

func (c *OpenAIClient) generate(ctx context.Context, req Request) (string, error) {
	if c.APIKey == "" {
		return "", ErrNoAPIKey
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("openai rate limit: %w", err)
	}

	msgs := make([]Message, 0, len(req.Messages)+1)
	if req.System != "" {
		msgs = append(msgs, Message{Role: RoleSystem, Content: req.System})
	}
	msgs = append(msgs, req.Messages...)

	b, err := json.Marshal(completionRequest{
		Model:       c.Model,
		Messages:    msgs,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("openai encode: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("openai request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("openai chat: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("openai read: %w", err)
	}

	var out completionResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("openai decode (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode >= 400 {
		if out.Error != nil && out.Error.Message != "" {
			return "", fmt.Errorf("openai error (status %d): %s", resp.StatusCode, out.Error.Message)
		}
		return "", fmt.Errorf("openai error (status %d)", resp.StatusCode)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("openai: empty choices")
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
