package llm

import (
	"strings"

	"github.com/tidwall/gjson"
)

const maxUpstreamMessage = 500

// UpstreamMessage picks the human-readable message out of a provider error
// body, falling back to the trimmed body itself.
func UpstreamMessage(body []byte) string {
	if gjson.ValidBytes(body) {
		for _, path := range []string{"error.message", "message", "error"} {
			res := gjson.GetBytes(body, path)
			if res.Type == gjson.String && strings.TrimSpace(res.Str) != "" {
				return truncate(res.Str)
			}
		}
	}
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return "empty response body"
	}
	return truncate(msg)
}

func truncate(s string) string {
	if len(s) <= maxUpstreamMessage {
		return s
	}
	return strings.ToValidUTF8(s[:maxUpstreamMessage], "") + "..."
}
