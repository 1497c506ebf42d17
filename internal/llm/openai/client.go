package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/Suhaibk137/atsclaude/internal/llm"
)

const (
	// Name identifies the provider in errors and logs.
	Name = "openai"

	DefaultModel   = "gpt-4o-mini"
	DefaultBaseURL = "https://api.openai.com"
)

// Config selects the endpoint and model. Empty fields use the defaults.
type Config struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client implements llm.Completer using OpenAI Chat Completions.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewClient constructs a new OpenAI client.
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		baseURL:    baseURL,
		model:      model,
		httpClient: llm.NewHTTPClient(cfg.Timeout),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	MaxTokens      int            `json:"max_tokens,omitempty"`
	Temperature    *float32       `json:"temperature,omitempty"`
	ResponseFormat responseFormat `json:"response_format"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
}

const finishLength = "length"

func (c *Client) Provider() string { return Name }

func (c *Client) Model() string { return c.model }

// Complete sends a single chat completion and returns the first choice.
func (c *Client) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	messages := make([]chatMessage, 0, 2)
	if strings.TrimSpace(req.System) != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Prompt})

	temp := req.Temperature
	body := chatRequest{
		Model:          c.model,
		Messages:       messages,
		MaxTokens:      req.MaxTokens,
		Temperature:    &temp,
		ResponseFormat: responseFormat{Type: "json_object"},
	}

	raw, err := llm.PostJSON(ctx, c.httpClient, Name, c.baseURL+"/v1/chat/completions", body, map[string]string{
		"Authorization": "Bearer " + req.APIKey,
	})
	if err != nil {
		return "", err
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", &llm.ResponseFormatError{Reason: "openai response parse", Err: err}
	}
	if len(parsed.Choices) == 0 {
		return "", &llm.ResponseFormatError{Reason: "openai response missing choices"}
	}
	if parsed.Choices[0].FinishReason == finishLength {
		return "", &llm.ResponseFormatError{Reason: "openai finish_reason length", Err: llm.ErrReplyTruncated}
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

var _ llm.Completer = (*Client)(nil)
