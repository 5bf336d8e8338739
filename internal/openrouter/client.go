// Package openrouter provides the language-model client for the assistant.
//
// It speaks the OpenAI-compatible chat-completions API exposed by
// OpenRouter. Transient failures are retried with exponential backoff;
// client errors like a bad API key fail immediately.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/kelseyhightower/envconfig"
)

const timeout = 60 * time.Second

// ErrEmptyReply is returned when the model produced no usable content.
var ErrEmptyReply = errors.New("model returned an empty reply")

// Env is the OPENROUTER_* environment block. Fields left empty here are
// filled from the config file or its defaults by the CLI.
type Env struct {
	APIKey  string `split_words:"true"`
	Model   string `split_words:"true"`
	BaseURL string `split_words:"true"`
}

// LoadEnv reads the OPENROUTER_* environment variables.
func LoadEnv() (*Env, error) {
	env := &Env{}
	if err := envconfig.Process("openrouter", env); err != nil {
		return nil, fmt.Errorf("reading OPENROUTER_* environment: %w", err)
	}
	return env, nil
}

// Client calls the OpenRouter chat-completions endpoint.
type Client struct {
	apiKey       string
	model        string
	baseURL      string
	systemPrompt string // empty means the built-in prompt
	httpClient   *http.Client
	maxElapsed   time.Duration
}

// NewClient creates a client. systemPrompt overrides the built-in system
// prompt when non-empty.
func NewClient(env *Env, systemPrompt string) (*Client, error) {
	if env.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if env.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	return &Client{
		apiKey:       env.APIKey,
		model:        env.Model,
		baseURL:      strings.TrimSuffix(env.BaseURL, "/"),
		systemPrompt: systemPrompt,
		httpClient:   &http.Client{Timeout: timeout},
		maxElapsed:   2 * time.Minute,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Prompt sends one user message and returns the model's reply, trimmed.
func (c *Client) Prompt(ctx context.Context, message string) (string, error) {
	sys := c.systemPrompt
	if sys == "" {
		sys = SystemPrompt(time.Now())
	}

	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: sys},
			{Role: "user", Content: message},
		},
	})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	var content string
	operation := func() error {
		var opErr error
		content, opErr = c.send(ctx, payload)
		return opErr
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = c.maxElapsed
	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		return "", err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return "", ErrEmptyReply
	}
	return content, nil
}

func (c *Client) send(ctx context.Context, payload []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-Title", "AI Calendar")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := fmt.Errorf("openrouter API error (status %d): %s", resp.StatusCode, body)
		// Retry rate limits and server errors; everything else is permanent.
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return "", apiErr
		}
		return "", backoff.Permanent(apiErr)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", backoff.Permanent(fmt.Errorf("parsing response: %w", err))
	}
	if parsed.Error != nil {
		return "", backoff.Permanent(fmt.Errorf("openrouter API error: %s", parsed.Error.Message))
	}
	if len(parsed.Choices) == 0 {
		return "", backoff.Permanent(ErrEmptyReply)
	}
	return parsed.Choices[0].Message.Content, nil
}
