package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	conversionStartedTotal   atomic.Uint64
	conversionCompletedTotal atomic.Uint64
	conversionFailedTotal    = newCodeCounter()

	// Conversions are dominated by the model call, so buckets run past two minutes.
	conversionDuration = newHistogram([]float64{250, 500, 1000, 2500, 5000, 10000, 20000, 30000, 60000, 120000})
)

func IncConversionStarted() {
	conversionStartedTotal.Add(1)
}

func IncConversionCompleted() {
	conversionCompletedTotal.Add(1)
}

// IncConversionFailed counts a failed conversion under its error code.
func IncConversionFailed(code string) {
	conversionFailedTotal.inc(code)
}

// ObserveConversionDurationMs records a conversion duration in milliseconds.
// Negative values are clamped to zero.
func ObserveConversionDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	conversionDuration.observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Data(http.StatusOK, "text/plain; version=0.0.4; charset=utf-8", []byte(Render()))
	}
}

// Render writes every series in Prometheus text exposition format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "conversion_started_total", "Total conversions started", conversionStartedTotal.Load())
	writeCounter(&buf, "conversion_completed_total", "Total conversions completed", conversionCompletedTotal.Load())

	fmt.Fprintf(&buf, "# HELP conversion_failed_total Total conversions failed, by error code\n")
	fmt.Fprintf(&buf, "# TYPE conversion_failed_total counter\n")
	for _, sample := range conversionFailedTotal.snapshot() {
		fmt.Fprintf(&buf, "conversion_failed_total{code=%q} %d\n", sample.code, sample.value)
	}

	conversionDuration.write(&buf, "conversion_duration_ms", "Conversion duration in milliseconds")
	return buf.String()
}

type codeCounter struct {
	mu     sync.Mutex
	counts map[string]uint64
}

type codeSample struct {
	code  string
	value uint64
}

func newCodeCounter() *codeCounter {
	return &codeCounter{counts: make(map[string]uint64)}
}

func (c *codeCounter) inc(code string) {
	if code == "" {
		code = "unknown"
	}
	c.mu.Lock()
	c.counts[code]++
	c.mu.Unlock()
}

func (c *codeCounter) snapshot() []codeSample {
	c.mu.Lock()
	out := make([]codeSample, 0, len(c.counts))
	for code, v := range c.counts {
		out = append(out, codeSample{code: code, value: v})
	}
	c.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].code < out[j].code })
	return out
}

// histogram keeps per-bucket counts; observations above the last bound only
// show up in count and sum.
type histogram struct {
	mu     sync.Mutex
	bounds []float64
	counts []uint64
	sum    float64
	count  uint64
}

func newHistogram(bounds []float64) *histogram {
	return &histogram{
		bounds: bounds,
		counts: make([]uint64, len(bounds)),
	}
}

func (h *histogram) observe(value float64) {
	i := sort.SearchFloat64s(h.bounds, value)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	if i < len(h.counts) {
		h.counts[i]++
	}
}

// cumulative returns the le-bucket values, total count and sum.
func (h *histogram) cumulative() ([]uint64, uint64, float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]uint64, len(h.counts))
	var running uint64
	for i, n := range h.counts {
		running += n
		out[i] = running
	}
	return out, h.count, h.sum
}

func (h *histogram) write(buf *bytes.Buffer, name, help string) {
	buckets, count, sum := h.cumulative()
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	for i, bound := range h.bounds {
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), buckets[i])
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, count)
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
