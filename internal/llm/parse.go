package llm

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/Suhaibk137/atsclaude/resume/model"
)

var errTrailingData = errors.New("unexpected data after top-level value")

// ParseRecord reads a model reply as a ResumeRecord. The reply is parsed
// directly first; failing that, the first top-level {...} span is used.
func ParseRecord(reply string) (model.ResumeRecord, error) {
	var record model.ResumeRecord

	trimmed := strings.TrimSpace(reply)
	if trimmed == "" {
		return record, &ResponseFormatError{Reason: "empty reply"}
	}

	value, err := decodeJSON(trimmed)
	if err != nil {
		span := findFirstJSON(trimmed)
		if span == "" {
			return record, &ResponseFormatError{Reason: "no JSON object in reply", Err: err}
		}
		value, err = decodeJSON(span)
		if err != nil {
			return record, &ResponseFormatError{Reason: "invalid JSON object in reply", Err: err}
		}
	}

	value = stringifyNumbers(value)
	if err := validateShape(value); err != nil {
		return record, &ResponseFormatError{Reason: "reply does not match the resume schema", Err: err}
	}

	normalized, err := json.Marshal(value)
	if err != nil {
		return record, &ResponseFormatError{Reason: "re-encode reply", Err: err}
	}
	if err := json.Unmarshal(normalized, &record); err != nil {
		return record, &ResponseFormatError{Reason: "decode reply", Err: err}
	}
	return record, nil
}

func decodeJSON(s string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errTrailingData
	}
	return v, nil
}

// findFirstJSON returns the {...} span opening at the first brace, skipping
// braces inside string literals. A reply cut off before that object closes
// yields "" rather than some nested object.
func findFirstJSON(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}
	end := matchBrace(s, start)
	if end < 0 {
		return ""
	}
	return s[start : end+1]
}

func matchBrace(s string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

