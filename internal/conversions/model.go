package conversions

import "time"

const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Conversion is one ledger entry describing a /convert request.
type Conversion struct {
	ID          string    `json:"id"`
	RequestID   string    `json:"requestId,omitempty"`
	FileName    string    `json:"fileName"`
	MimeType    string    `json:"mimeType"`
	SizeBytes   int64     `json:"sizeBytes"`
	Provider    string    `json:"provider"`
	Model       string    `json:"model"`
	Status      string    `json:"status"`
	ErrorCode   string    `json:"errorCode,omitempty"`
	OutputBytes int64     `json:"outputBytes"`
	DurationMs  int64     `json:"durationMs"`
	CreatedAt   time.Time `json:"createdAt"`
}
