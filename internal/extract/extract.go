package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Accepted upload formats.
const (
	MimePDF  = "application/pdf"
	MimeDOC  = "application/msword"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeText = "text/plain"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrNoText            = errors.New("no text could be extracted")
)

var cfbMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// ExtractionError reports a failure to turn an upload into plain text.
type ExtractionError struct {
	Format string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract text (%s): %v", e.Format, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Supported reports whether mimeType, after normalization, can be extracted.
func Supported(mimeType string) bool {
	switch mimeType {
	case MimePDF, MimeDOC, MimeDOCX, MimeText:
		return true
	default:
		return false
	}
}

// ExtractTextFromBytes extracts text from an in-memory payload.
// Libraries used: github.com/ledongthuc/pdf (PDF), github.com/nguyenthenguyen/docx (DOCX)
// and github.com/richardlehane/mscfb (DOC).
func ExtractTextFromBytes(ctx context.Context, data []byte, mimeType string, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	normalized := NormalizeMimeType(mimeType, fileName, data)

	var (
		text string
		err  error
	)
	switch normalized {
	case MimePDF:
		text, err = extractPDF(data)
	case MimeDOCX:
		text, err = extractDOCX(data)
	case MimeDOC:
		text, err = extractDOC(data)
	case MimeText:
		text, err = extractPlainText(data)
	default:
		err = ErrUnsupportedFormat
	}
	if err != nil {
		return "", &ExtractionError{Format: normalized, Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return "", &ExtractionError{Format: normalized, Err: ErrNoText}
	}
	return text, nil
}

// NormalizeMimeType strips parameters from the declared type and resolves
// generic container types by sniffing the payload, then by file extension.
func NormalizeMimeType(mimeType string, fileName string, data []byte) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	switch clean {
	case "", "application/zip", "application/x-zip-compressed", "application/octet-stream":
	default:
		return clean
	}

	if sniffed := sniffMimeType(data); sniffed != "" {
		return sniffed
	}
	if byExt := mimeFromExtension(fileName); byExt != "" {
		return byExt
	}
	return clean
}

func sniffMimeType(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte("%PDF-")):
		return MimePDF
	case bytes.HasPrefix(data, cfbMagic):
		return MimeDOC
	case bytes.HasPrefix(data, []byte("PK\x03\x04")):
		return mapOOXMLFromZip(data)
	}
	return ""
}

func mimeFromExtension(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return MimePDF
	case ".doc":
		return MimeDOC
	case ".docx":
		return MimeDOCX
	case ".txt":
		return MimeText
	default:
		return ""
	}
}

func mapOOXMLFromZip(data []byte) string {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}
	for _, f := range zr.File {
		if normalizeZipName(f.Name) == "word/document.xml" {
			return MimeDOCX
		}
	}
	return ""
}

func normalizeZipName(name string) string {
	return strings.ReplaceAll(name, "\\", "/")
}
