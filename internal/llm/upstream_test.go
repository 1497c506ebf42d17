package llm

import (
	"strings"
	"testing"
)

func TestUpstreamMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "anthropic", body: `{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`, want: "invalid x-api-key"},
		{name: "openai", body: `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`, want: "Incorrect API key provided"},
		{name: "top-level message", body: `{"message":"rate limited"}`, want: "rate limited"},
		{name: "string error", body: `{"error":"bad gateway"}`, want: "bad gateway"},
		{name: "plain text", body: "  upstream unavailable \n", want: "upstream unavailable"},
		{name: "empty", body: "", want: "empty response body"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := UpstreamMessage([]byte(tc.body)); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestUpstreamMessageTruncates(t *testing.T) {
	got := UpstreamMessage([]byte(strings.Repeat("x", 2*maxUpstreamMessage)))
	if len(got) != maxUpstreamMessage+len("...") {
		t.Fatalf("unexpected length %d", len(got))
	}
}
