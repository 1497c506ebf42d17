package gemini

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/Suhaibk137/atsclaude/internal/llm"
)

const (
	// Name identifies the provider in errors and logs.
	Name = "gemini"

	DefaultModel = "gemini-2.5-flash"
)

// Config selects the endpoint and model. An empty BaseURL keeps the SDK default.
type Config struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client implements llm.Completer with the Gemini API. The SDK client is
// built per call because the key arrives with each request.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewClient constructs a new Gemini client.
func NewClient(cfg Config) *Client {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		baseURL:    strings.TrimSpace(cfg.BaseURL),
		model:      model,
		httpClient: llm.NewHTTPClient(cfg.Timeout),
	}
}

func (c *Client) Provider() string { return Name }

func (c *Client) Model() string { return c.model }

// Complete runs one GenerateContent call with a JSON response type.
func (c *Client) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      req.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  c.httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: c.baseURL},
	})
	if err != nil {
		return "", &llm.RemoteServiceError{Provider: Name, Message: err.Error(), Err: err}
	}

	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(req.Temperature),
		MaxOutputTokens:  int32(req.MaxTokens),
		ResponseMIMEType: "application/json",
	}
	if strings.TrimSpace(req.System) != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	res, err := client.Models.GenerateContent(ctx, c.model, genai.Text(req.Prompt), config)
	if err != nil {
		return "", remoteError(err)
	}
	if len(res.Candidates) > 0 && res.Candidates[0].FinishReason == genai.FinishReasonMaxTokens {
		return "", &llm.ResponseFormatError{Reason: "gemini finish_reason MAX_TOKENS", Err: llm.ErrReplyTruncated}
	}
	return strings.TrimSpace(res.Text()), nil
}

func remoteError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &llm.RemoteServiceError{Provider: Name, Status: apiErr.Code, Message: apiErr.Message, Err: err}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return &llm.RemoteServiceError{Provider: Name, Status: apiErrPtr.Code, Message: apiErrPtr.Message, Err: err}
	}
	return &llm.RemoteServiceError{Provider: Name, Message: err.Error(), Err: err}
}

var _ llm.Completer = (*Client)(nil)
