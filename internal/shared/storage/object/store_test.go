package object

import (
	"testing"
	"time"
)

func TestArchiveKey(t *testing.T) {
	at := time.Date(2024, 3, 9, 23, 30, 0, 0, time.FixedZone("UTC+2", 2*60*60))

	tests := []struct {
		name     string
		fileName string
		want     string
	}{
		{name: "pdf", fileName: "Jane Doe CV.pdf", want: "converted/2024/03/id-1_Jane_Doe_CV_converted.docx"},
		{name: "no extension", fileName: "resume", want: "converted/2024/03/id-1_resume_converted.docx"},
		{name: "path separators", fileName: "a/b\\c.docx", want: "converted/2024/03/id-1_c_converted.docx"},
		{name: "traversal", fileName: "../../etc.txt", want: "converted/2024/03/id-1_etc_converted.docx"},
		{name: "empty", fileName: "", want: "converted/2024/03/id-1_resume_converted.docx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ArchiveKey("id-1", tt.fileName, at); got != tt.want {
				t.Fatalf("ArchiveKey(%q) = %q, want %q", tt.fileName, got, tt.want)
			}
		})
	}
}
