package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Suhaibk137/atsclaude/internal/llm"
)

func TestCompleteGenerateContent(t *testing.T) {
	var payload map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/models/"+DefaultModel+":generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"name\":\"ADA\"}"}]},"finishReason":"STOP"}]}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	reply, err := client.Complete(context.Background(), llm.CompletionRequest{
		APIKey:      "gm-test",
		System:      "rules",
		Prompt:      "resume text",
		MaxTokens:   4000,
		Temperature: 0.1,
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if reply != `{"name":"ADA"}` {
		t.Fatalf("unexpected reply %q", reply)
	}

	config, _ := payload["generationConfig"].(map[string]any)
	if config["responseMimeType"] != "application/json" || config["maxOutputTokens"] != float64(4000) {
		t.Fatalf("unexpected generation config: %v", payload["generationConfig"])
	}
	if _, ok := payload["systemInstruction"]; !ok {
		t.Fatalf("expected system instruction in payload: %v", payload)
	}
}

func TestCompleteUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"code":401,"message":"API key not valid. Please pass a valid API key.","status":"UNAUTHENTICATED"}}`))
	}))
	defer server.Close()

	_, err := NewClient(Config{BaseURL: server.URL}).Complete(context.Background(), llm.CompletionRequest{APIKey: "bad", Prompt: "x"})
	var remote *llm.RemoteServiceError
	if !errors.As(err, &remote) {
		t.Fatalf("expected RemoteServiceError, got %v", err)
	}
	if remote.Status != http.StatusUnauthorized || !strings.Contains(remote.Message, "API key not valid") {
		t.Fatalf("unexpected error: %+v", remote)
	}
}

func TestCompleteRejectsMaxTokensFinish(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"name\":\"ADA\",\"summary\":[\"Bu"}]},"finishReason":"MAX_TOKENS"}]}`))
	}))
	defer server.Close()

	_, err := NewClient(Config{BaseURL: server.URL}).Complete(context.Background(), llm.CompletionRequest{APIKey: "k", Prompt: "x"})
	var formatErr *llm.ResponseFormatError
	if !errors.As(err, &formatErr) || !errors.Is(err, llm.ErrReplyTruncated) {
		t.Fatalf("expected truncated ResponseFormatError, got %v", err)
	}
}
