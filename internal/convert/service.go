package convert

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Suhaibk137/atsclaude/internal/conversions"
	"github.com/Suhaibk137/atsclaude/internal/extract"
	"github.com/Suhaibk137/atsclaude/internal/shared/metrics"
	"github.com/Suhaibk137/atsclaude/internal/shared/storage/object"
	"github.com/Suhaibk137/atsclaude/internal/shared/telemetry"
	"github.com/Suhaibk137/atsclaude/internal/shared/util"
	"github.com/Suhaibk137/atsclaude/resume/model"
	"github.com/Suhaibk137/atsclaude/resume/render"
)

// DefaultMaxUploadBytes is the upload limit when none is configured.
const DefaultMaxUploadBytes int64 = 10 << 20

// Structurer turns resume text into a structured record.
type Structurer interface {
	Structure(ctx context.Context, apiKey, rawText string) (model.ResumeRecord, error)
	Provider() string
	Model() string
}

// Input is one uploaded resume. APIKey is forwarded to the provider and
// never logged or stored.
type Input struct {
	FileName  string
	MimeType  string
	Data      []byte
	APIKey    string
	RequestID string
}

// Output is the converted document.
type Output struct {
	ConversionID string
	FileName     string
	ContentType  string
	Data         []byte
}

// Service runs the extract, structure, render and serialize pipeline. Ledger
// and Archive are optional; their failures are logged and never fail a
// conversion.
type Service struct {
	Structurer     Structurer
	Ledger         conversions.Repo
	Archive        object.Store
	MaxUploadBytes int64

	Now   func() time.Time
	NewID func() string
}

// Convert validates in and runs the pipeline once. Every call produces a
// ledger entry, and Output.ConversionID is set even when an error is returned.
func (s *Service) Convert(ctx context.Context, in Input) (Output, error) {
	start := s.now()
	id := s.newID()
	metrics.IncConversionStarted()

	mimeType := extract.NormalizeMimeType(in.MimeType, in.FileName, in.Data)
	out, err := s.run(ctx, id, mimeType, in)
	out.ConversionID = id

	elapsed := s.now().Sub(start)
	metrics.ObserveConversionDurationMs(float64(elapsed.Microseconds()) / 1000.0)

	entry := conversions.Conversion{
		ID:          id,
		RequestID:   in.RequestID,
		FileName:    in.FileName,
		MimeType:    mimeType,
		SizeBytes:   int64(len(in.Data)),
		Provider:    s.Structurer.Provider(),
		Model:       s.Structurer.Model(),
		Status:      conversions.StatusSucceeded,
		OutputBytes: int64(len(out.Data)),
		DurationMs:  elapsed.Milliseconds(),
		CreatedAt:   start.UTC(),
	}
	fields := map[string]any{
		"conversion_id": id,
		"request_id":    in.RequestID,
		"mime_type":     mimeType,
		"size_bytes":    len(in.Data),
		"duration_ms":   entry.DurationMs,
	}
	if err != nil {
		entry.ErrorCode = ErrorCode(err)
		metrics.IncConversionFailed(entry.ErrorCode)
		entry.Status = conversions.StatusFailed
		fields["error_code"] = entry.ErrorCode
		fields["error"] = err.Error()
		telemetry.Error("convert.failed", fields)
	} else {
		metrics.IncConversionCompleted()
		fields["output_bytes"] = len(out.Data)
		telemetry.Info("convert.complete", fields)
		s.archive(ctx, id, in.FileName, start, out.Data)
	}
	s.record(ctx, entry)
	return out, err
}

func (s *Service) run(ctx context.Context, id, mimeType string, in Input) (Output, error) {
	if err := s.validate(mimeType, in); err != nil {
		return Output{}, err
	}

	text, err := extract.ExtractTextFromBytes(ctx, in.Data, mimeType, in.FileName)
	if err != nil {
		telemetry.Error("convert.extract.failed", map[string]any{
			"conversion_id": id,
			"mime_type":     mimeType,
			"error":         err.Error(),
		})
		return Output{}, err
	}

	record, err := s.Structurer.Structure(ctx, in.APIKey, text)
	if err != nil {
		return Output{}, err
	}

	data, err := render.Serialize(render.Render(record))
	if err != nil {
		return Output{}, fmt.Errorf("%w: %w", ErrRender, err)
	}

	return Output{
		FileName:    util.ConvertedFileName(in.FileName),
		ContentType: render.DocxContentType,
		Data:        data,
	}, nil
}

func (s *Service) validate(mimeType string, in Input) error {
	if len(in.Data) == 0 && in.FileName == "" {
		return &ValidationError{Field: "resume", Message: "No file uploaded"}
	}
	if strings.TrimSpace(in.APIKey) == "" {
		return &ValidationError{Field: "apiKey", Message: "API key is required"}
	}
	if limit := s.maxUploadBytes(); int64(len(in.Data)) > limit {
		return TooLarge(limit)
	}
	if !extract.Supported(mimeType) {
		return &ValidationError{
			Field:   "resume",
			Message: fmt.Sprintf("Unsupported file type %q. Please upload a PDF, DOC, DOCX or TXT file", mimeType),
		}
	}
	return nil
}

// TooLarge is the validation error for an upload over limit bytes.
func TooLarge(limit int64) *ValidationError {
	return &ValidationError{
		Field:   "resume",
		Message: fmt.Sprintf("File exceeds the %s size limit", formatLimit(limit)),
	}
}

func formatLimit(limit int64) string {
	if limit >= 1<<20 && limit%(1<<20) == 0 {
		return fmt.Sprintf("%dMB", limit>>20)
	}
	return fmt.Sprintf("%d byte", limit)
}

func (s *Service) archive(ctx context.Context, id, fileName string, at time.Time, data []byte) {
	if s.Archive == nil {
		return
	}
	key := object.ArchiveKey(id, fileName, at)
	if _, err := s.Archive.Put(context.WithoutCancel(ctx), key, render.DocxContentType, bytes.NewReader(data)); err != nil {
		telemetry.Warn("convert.archive.failed", map[string]any{
			"conversion_id": id,
			"key":           key,
			"error":         err.Error(),
		})
	}
}

func (s *Service) record(ctx context.Context, entry conversions.Conversion) {
	if s.Ledger == nil {
		return
	}
	if err := s.Ledger.Create(context.WithoutCancel(ctx), entry); err != nil {
		telemetry.Warn("convert.ledger.failed", map[string]any{
			"conversion_id": entry.ID,
			"error":         err.Error(),
		})
	}
}

func (s *Service) maxUploadBytes() int64 {
	if s.MaxUploadBytes > 0 {
		return s.MaxUploadBytes
	}
	return DefaultMaxUploadBytes
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}
