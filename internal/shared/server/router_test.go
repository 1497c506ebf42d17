package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Suhaibk137/atsclaude/internal/conversions"
	"github.com/Suhaibk137/atsclaude/internal/convert"
	"github.com/Suhaibk137/atsclaude/internal/shared/config"
	"github.com/Suhaibk137/atsclaude/resume/model"
)

type stubStructurer struct{}

func (stubStructurer) Structure(context.Context, string, string) (model.ResumeRecord, error) {
	return model.ResumeRecord{Name: "JANE DOE"}, nil
}

func (stubStructurer) Provider() string { return "stub" }

func (stubStructurer) Model() string { return "stub-model" }

func newTestRouter(cfg config.Config) (*gin.Engine, *conversions.MemoryRepo) {
	gin.SetMode(gin.TestMode)
	ledger := conversions.NewMemoryRepo(10)
	svc := &convert.Service{Structurer: stubStructurer{}, Ledger: ledger}
	return NewRouter(RouterDeps{
		Config:            cfg,
		ConvertHandler:    convert.NewHandler(svc),
		ConversionHandler: conversions.NewHandler(ledger),
	}), ledger
}

func TestRouterServesOperationalEndpoints(t *testing.T) {
	r, _ := newTestRouter(config.Config{CORSAllowOrigin: []string{"*"}})

	tests := []struct {
		path     string
		status   int
		contains string
	}{
		{path: "/", status: http.StatusOK, contains: "Resume Converter"},
		{path: "/api/v1/health", status: http.StatusOK, contains: `{"ok":true}`},
		{path: "/metrics", status: http.StatusOK, contains: "conversion_started_total"},
		{path: "/api/v1/conversions", status: http.StatusOK, contains: `"items":[]`},
		{path: "/missing", status: http.StatusNotFound, contains: `{"error":"Not found"}`},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp := httptest.NewRecorder()
			r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if resp.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, resp.Code)
			}
			if !strings.Contains(resp.Body.String(), tt.contains) {
				t.Fatalf("expected %q in body %q", tt.contains, resp.Body.String())
			}
			if resp.Header().Get("X-Request-Id") == "" {
				t.Fatalf("expected X-Request-Id header")
			}
		})
	}
}

func TestRouterConvertRecordsLedger(t *testing.T) {
	r, ledger := newTestRouter(config.Config{})

	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/convert", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil || body["error"] == "" {
		t.Fatalf("expected error body, got %s", resp.Body.String())
	}
	entries, _ := ledger.ListRecent(context.Background(), 5)
	if len(entries) != 1 || entries[0].Status != conversions.StatusFailed {
		t.Fatalf("expected a failed ledger entry, got %+v", entries)
	}
}

func TestRouterRateLimitsConvert(t *testing.T) {
	r, _ := newTestRouter(config.Config{RateLimitRPS: 0.001, RateLimitBurst: 1})

	codes := make([]int, 0, 3)
	for i := 0; i < 2; i++ {
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/convert", nil))
		codes = append(codes, resp.Code)
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	codes = append(codes, resp.Code)

	if codes[0] != http.StatusBadRequest || codes[1] != http.StatusTooManyRequests || codes[2] != http.StatusOK {
		t.Fatalf("unexpected status sequence %v", codes)
	}
}

func TestAddr(t *testing.T) {
	tests := map[string]string{"": ":8080", "9000": ":9000", ":7000": ":7000"}
	for in, want := range tests {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}
