package util

import (
	"errors"
	"path"
	"strings"
)

// SanitizeFileName removes path separators and rejects traversal patterns.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, "\"", "")
	if s == "" {
		return "", errors.New("invalid file name")
	}
	return s, nil
}

// FileStem returns the upload's base name without its final extension.
// Client-supplied paths are reduced to their last element. A name that is
// only a dotted extension, such as ".txt", has no stem.
func FileStem(name string) string {
	base := path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if base == "." || base == ".." || base == "/" {
		return ""
	}
	ext := path.Ext(base)
	if ext == base {
		return ""
	}
	return strings.TrimSuffix(base, ext)
}

// ConvertedFileName is the download name for a converted upload.
func ConvertedFileName(uploadName string) string {
	stem := FileStem(uploadName)
	if safe, err := SanitizeFileName(stem); err == nil {
		stem = safe
	} else {
		stem = "resume"
	}
	return stem + "_converted.docx"
}
