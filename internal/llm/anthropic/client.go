package anthropic

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
	Name = "anthropic"

	DefaultModel   = "claude-3-5-sonnet-latest"
	DefaultBaseURL = "https://api.anthropic.com"
	APIVersion     = "2023-06-01"
)

// Config selects the endpoint and model. Empty fields use the defaults.
type Config struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client implements llm.Completer using the Anthropic Messages API.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewClient constructs a new Anthropic client.
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

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesRequest struct {
	Model       string    `json:"model"`
	System      string    `json:"system,omitempty"`
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float32   `json:"temperature"`
}

type messagesResponse struct {
	ID      string `json:"id"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

const stopMaxTokens = "max_tokens"

func (c *Client) Provider() string { return Name }

func (c *Client) Model() string { return c.model }

// Complete sends one message and joins the text blocks of the reply.
func (c *Client) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = llm.DefaultMaxTokens
	}
	body := messagesRequest{
		Model:       c.model,
		System:      req.System,
		Messages:    []message{{Role: "user", Content: req.Prompt}},
		MaxTokens:   maxTokens,
		Temperature: req.Temperature,
	}

	raw, err := llm.PostJSON(ctx, c.httpClient, Name, c.baseURL+"/v1/messages", body, map[string]string{
		"x-api-key":         req.APIKey,
		"anthropic-version": APIVersion,
	})
	if err != nil {
		return "", err
	}

	var parsed messagesResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", &llm.ResponseFormatError{Reason: "anthropic response parse", Err: err}
	}
	if parsed.StopReason == stopMaxTokens {
		return "", &llm.ResponseFormatError{Reason: "anthropic stop_reason max_tokens", Err: llm.ErrReplyTruncated}
	}

	var b strings.Builder
	for _, block := range parsed.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	return strings.TrimSpace(b.String()), nil
}

var _ llm.Completer = (*Client)(nil)
