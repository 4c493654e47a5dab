// Package groq wraps the Groq chat-completions API with centralized auth,
// logging, and error mapping.
package groq

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

	"github.com/neocodenexus/vendorx-backend/pkg/config"
	pkgerrors "github.com/neocodenexus/vendorx-backend/pkg/errors"
	"github.com/neocodenexus/vendorx-backend/pkg/logger"
)

const defaultTimeout = 60 * time.Second

var (
	errAPIKeyRequired = errors.New("groq api key is required")
	errLoggerRequired = errors.New("groq logger is required")
)

// Message is a single chat turn sent to the model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Options tune a single completion call.
type Options struct {
	Temperature float64
	MaxTokens   int
	JSONMode    bool
}

// Client talks to the Groq OpenAI-compatible endpoint.
type Client struct {
	httpClient *http.Client
	apiKey     string
	model      string
	baseURL    string
	logger     *logger.Logger
}

// NewClient validates the credentials and returns a ready client.
func NewClient(cfg config.GroqConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errAPIKeyRequired
	}

	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		apiKey:     apiKey,
		model:      cfg.Model,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		logger:     logg,
	}, nil
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    float64         `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// ChatCompletion sends the conversation to the model and returns the first
// choice's content.
func (c *Client) ChatCompletion(ctx context.Context, messages []Message, opts Options) (string, error) {
	payload := chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}
	if opts.JSONMode {
		payload.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding completion request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building completion request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	c.log(ctx, "request", map[string]any{"model": c.model, "messages": len(messages)})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log(ctx, "error", map[string]any{"error": err.Error()})
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "calling model provider")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reading model response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log(ctx, "error", map[string]any{"status": resp.StatusCode})
		return "", pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("model provider returned status %d", resp.StatusCode))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding model response")
	}
	if parsed.Error != nil {
		return "", pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("model provider error: %s", parsed.Error.Message))
	}
	if len(parsed.Choices) == 0 {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "model returned no choices")
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "model returned empty content")
	}

	c.log(ctx, "response", map[string]any{"content_length": len(content)})
	return content, nil
}

func (c *Client) log(ctx context.Context, phase string, fields map[string]any) {
	if c.logger == nil {
		return
	}
	merged := map[string]any{"provider": "groq", "phase": phase}
	for k, v := range fields {
		merged[k] = v
	}
	ctx = c.logger.WithFields(ctx, merged)
	c.logger.Info(ctx, "chat completion "+phase)
}
