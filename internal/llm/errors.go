package llm

import (
	"errors"
	"fmt"
)

// ErrReplyTruncated marks a reply the provider cut off at the output token
// limit. Such a reply is never parsed.
var ErrReplyTruncated = errors.New("reply truncated at the output token limit")

// RemoteServiceError reports a failed call to the completion provider. Status
// is zero when no HTTP response was received.
type RemoteServiceError struct {
	Provider string
	Status   int
	Message  string
	Err      error
}

func (e *RemoteServiceError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s request failed: %s", e.Provider, e.Message)
	}
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.Status, e.Message)
}

func (e *RemoteServiceError) Unwrap() error {
	return e.Err
}

// ResponseFormatError reports a reply that could not be read as a resume record.
type ResponseFormatError struct {
	Reason string
	Err    error
}

func (e *ResponseFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unexpected response format: %s: %v", e.Reason, e.Err)
	}
	return "unexpected response format: " + e.Reason
}

func (e *ResponseFormatError) Unwrap() error {
	return e.Err
}
