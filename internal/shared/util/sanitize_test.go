package util

import "testing"

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "cv.pdf", want: "cv.pdf"},
		{in: " a/b\\c.doc ", want: "a_b_c.doc"},
		{in: `quo"te.txt`, want: "quote.txt"},
		{in: "../etc/passwd", wantErr: true},
		{in: "   ", wantErr: true},
	}
	for _, tt := range tests {
		got, err := SanitizeFileName(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("SanitizeFileName(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("SanitizeFileName(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestFileStem(t *testing.T) {
	tests := map[string]string{
		"resume.pdf":            "resume",
		"Jane Doe.final.docx":   "Jane Doe.final",
		"C:\\Users\\me\\cv.doc": "cv",
		"dir/notes.txt":         "notes",
		".hidden":               "",
		".txt":                  "",
		"dir/.docx":             "",
		".env.txt":              ".env",
		"noext":                 "noext",
		"":                      "",
	}
	for in, want := range tests {
		if got := FileStem(in); got != want {
			t.Fatalf("FileStem(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestConvertedFileName(t *testing.T) {
	tests := map[string]string{
		"resume.pdf":   "resume_converted.docx",
		"My CV.docx":   "My CV_converted.docx",
		"":             "resume_converted.docx",
		"..":           "resume_converted.docx",
		".txt":         "resume_converted.docx",
		"C:\\cv\\.pdf": "resume_converted.docx",
		`bad"name.txt`: "badname_converted.docx",
	}
	for in, want := range tests {
		if got := ConvertedFileName(in); got != want {
			t.Fatalf("ConvertedFileName(%q) = %q, want %q", in, got, want)
		}
	}
}
