package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Suhaibk137/atsclaude/internal/shared/telemetry"
	"github.com/Suhaibk137/atsclaude/resume/model"
)

// Defaults for a structuring call.
const (
	DefaultMaxTokens   = 4000
	DefaultTemperature = float32(0.1)
)

// ErrMissingAPIKey is returned when a request carries no provider key.
var ErrMissingAPIKey = errors.New("api key is required")

// Completer sends one prompt to a completion provider and returns the reply text.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	Provider() string
	Model() string
}

// CompletionRequest carries a single prompt. APIKey belongs to the caller and
// is never logged.
type CompletionRequest struct {
	APIKey      string
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float32
}

// Options tune the structuring call.
type Options struct {
	MaxTokens   int
	Temperature float32
}

// Client turns raw resume text into a ResumeRecord through a Completer.
type Client struct {
	completer Completer
	opts      Options
}

// NewClient wraps completer. A non-positive MaxTokens falls back to DefaultMaxTokens.
func NewClient(completer Completer, opts Options) *Client {
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = DefaultMaxTokens
	}
	return &Client{completer: completer, opts: opts}
}

// Provider names the configured completion provider.
func (c *Client) Provider() string {
	return c.completer.Provider()
}

// Model names the configured provider model.
func (c *Client) Model() string {
	return c.completer.Model()
}

// Structure sends rawText with the fixed instruction in a single attempt and
// parses the reply.
func (c *Client) Structure(ctx context.Context, apiKey, rawText string) (model.ResumeRecord, error) {
	if strings.TrimSpace(apiKey) == "" {
		return model.ResumeRecord{}, ErrMissingAPIKey
	}

	system, prompt := BuildPrompt(rawText)
	start := time.Now()
	reply, err := c.completer.Complete(ctx, CompletionRequest{
		APIKey:      apiKey,
		System:      system,
		Prompt:      prompt,
		MaxTokens:   c.opts.MaxTokens,
		Temperature: c.opts.Temperature,
	})

	fields := map[string]any{
		"provider":    c.completer.Provider(),
		"model":       c.completer.Model(),
		"input_chars": len(rawText),
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if err != nil {
		fields["error"] = err.Error()
		telemetry.Error("llm.request.failed", fields)
		return model.ResumeRecord{}, err
	}
	fields["reply_chars"] = len(reply)
	telemetry.Info("llm.request", fields)

	record, err := ParseRecord(reply)
	if err != nil {
		telemetry.Error("llm.reply.invalid", map[string]any{
			"provider": c.completer.Provider(),
			"error":    err.Error(),
		})
		return model.ResumeRecord{}, err
	}
	return record, nil
}
