package convert

import (
	"context"
	"errors"

	"github.com/Suhaibk137/atsclaude/internal/extract"
	"github.com/Suhaibk137/atsclaude/internal/llm"
)

// ErrRender wraps failures while rendering or serializing the document.
var ErrRender = errors.New("render document")

// ValidationError reports a request the service refuses to process.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Error codes recorded in the ledger and logs.
const (
	CodeValidation     = "validation_error"
	CodeExtraction     = "extraction_error"
	CodeRemoteService  = "remote_service_error"
	CodeResponseFormat = "response_format_error"
	CodeRender         = "render_error"
	CodeCanceled       = "canceled"
	CodeInternal       = "internal_error"
)

// ErrorCode classifies err into one of the Code constants.
func ErrorCode(err error) string {
	var (
		validationErr *ValidationError
		extractionErr *extract.ExtractionError
		remoteErr     *llm.RemoteServiceError
		formatErr     *llm.ResponseFormatError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &validationErr), errors.Is(err, llm.ErrMissingAPIKey):
		return CodeValidation
	case errors.As(err, &extractionErr):
		return CodeExtraction
	case errors.As(err, &remoteErr):
		return CodeRemoteService
	case errors.As(err, &formatErr):
		return CodeResponseFormat
	case errors.Is(err, ErrRender):
		return CodeRender
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return CodeCanceled
	default:
		return CodeInternal
	}
}
