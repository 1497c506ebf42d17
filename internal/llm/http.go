package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Suhaibk137/atsclaude/internal/shared/telemetry"
)

// NewHTTPClient returns the client used for provider calls. A non-positive
// timeout leaves the call bounded only by the request context.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout < 0 {
		timeout = 0
	}
	return &http.Client{Timeout: timeout}
}

// PostJSON sends body as JSON to url and returns the raw response body.
// Transport failures are reported as a RemoteServiceError with a zero
// status; non-2xx responses as one carrying the upstream message.
func PostJSON(ctx context.Context, client *http.Client, provider, url string, body any, headers map[string]string) ([]byte, error) {
	if client == nil {
		client = NewHTTPClient(0)
	}

	callID := uuid.NewString()
	start := time.Now()

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", provider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", provider, err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		telemetry.Error("llm.http.send_error", map[string]any{
			"call_id":    callID,
			"provider":   provider,
			"error":      err.Error(),
			"elapsed_ms": time.Since(start).Milliseconds(),
		})
		return nil, &RemoteServiceError{Provider: provider, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RemoteServiceError{Provider: provider, Status: resp.StatusCode, Message: "read response: " + err.Error(), Err: err}
	}

	telemetry.Info("llm.http.response", map[string]any{
		"call_id":    callID,
		"provider":   provider,
		"status":     resp.StatusCode,
		"bytes":      len(raw),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})

	if resp.StatusCode/100 != 2 {
		return raw, &RemoteServiceError{Provider: provider, Status: resp.StatusCode, Message: UpstreamMessage(raw)}
	}
	return raw, nil
}
