package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Suhaibk137/atsclaude/internal/extract"
	"github.com/Suhaibk137/atsclaude/internal/shared/storage/db"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRenderWritesDocx(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "jane.json")
	if err := os.WriteFile(in, []byte(`{"name":"JANE DOE","experience":[{"title":"Engineer","dates":2020,"company":"Acme"}]}`), 0o644); err != nil {
		t.Fatalf("write record: %v", err)
	}

	stdout, err := runCmd(t, "render", in)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := filepath.Join(dir, "jane.docx")
	if strings.TrimSpace(stdout) != want {
		t.Fatalf("expected output path %q, got %q", want, stdout)
	}

	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("read docx: %v", err)
	}
	text, err := extract.ExtractTextFromBytes(t.Context(), data, extract.MimeDOCX, "jane.docx")
	if err != nil {
		t.Fatalf("extract rendered docx: %v", err)
	}
	for _, s := range []string{"JANE DOE", "Acme", "2020"} {
		if !strings.Contains(text, s) {
			t.Fatalf("expected %q in rendered text:\n%s", s, text)
		}
	}
}

func TestRenderText(t *testing.T) {
	in := filepath.Join(t.TempDir(), "r.json")
	if err := os.WriteFile(in, []byte("Here you go:\n{\"name\":\"ADA\"}"), 0o644); err != nil {
		t.Fatalf("write record: %v", err)
	}

	stdout, err := runCmd(t, "render", "--text", in)
	if err != nil {
		t.Fatalf("render --text: %v", err)
	}
	if !strings.HasPrefix(stdout, "ADA\n") || !strings.Contains(stdout, "EXPERIENCE") {
		t.Fatalf("unexpected layout:\n%s", stdout)
	}
}

func TestRenderRejectsNonJSON(t *testing.T) {
	in := filepath.Join(t.TempDir(), "r.json")
	if err := os.WriteFile(in, []byte("no braces here"), 0o644); err != nil {
		t.Fatalf("write record: %v", err)
	}
	if _, err := runCmd(t, "render", in); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestConvertRequiresAPIKey(t *testing.T) {
	t.Setenv("LLM_API_KEY", "")
	in := filepath.Join(t.TempDir(), "cv.txt")
	if err := os.WriteFile(in, []byte("Jane Doe"), 0o644); err != nil {
		t.Fatalf("write resume: %v", err)
	}

	_, err := runCmd(t, "convert", in)
	if err == nil || !strings.Contains(err.Error(), "API key is required") {
		t.Fatalf("expected missing key error, got %v", err)
	}
}

func TestConvertRejectsUnknownProvider(t *testing.T) {
	in := filepath.Join(t.TempDir(), "cv.txt")
	if err := os.WriteFile(in, []byte("Jane Doe"), 0o644); err != nil {
		t.Fatalf("write resume: %v", err)
	}
	if _, err := runCmd(t, "convert", "--provider", "mystery", "--api-key", "k", in); err == nil {
		t.Fatalf("expected provider error")
	}
}

func TestMigrateRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Chdir(t.TempDir())

	_, err := runCmd(t, "migrate")
	if !errors.Is(err, db.ErrNoDatabaseURL) {
		t.Fatalf("expected ErrNoDatabaseURL, got %v", err)
	}
}
