package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	planStartedTotal     atomic.Uint64
	planCompletedTotal   atomic.Uint64
	planBlockedTotal     atomic.Uint64
	llmCallsTotal        atomic.Uint64
	llmParseFailureTotal atomic.Uint64

	planDuration = newHistogram([]float64{250, 500, 1000, 2000, 5000, 10000, 30000, 60000, 120000})
)

// IncPlanStarted increments the plan-generation started counter.
func IncPlanStarted() {
	planStartedTotal.Add(1)
}

// IncPlanCompleted increments the plan-generation completed counter.
func IncPlanCompleted() {
	planCompletedTotal.Add(1)
}

// IncPlanBlocked increments the counter for plan requests rejected by input gating.
func IncPlanBlocked() {
	planBlockedTotal.Add(1)
}

// IncLLMCall increments the generative-call counter.
func IncLLMCall() {
	llmCallsTotal.Add(1)
}

// IncLLMParseFailure increments the counter of responses that failed fence
// stripping, JSON parsing, or shape validation.
func IncLLMParseFailure() {
	llmParseFailureTotal.Add(1)
}

// ObservePlanDurationMs records a full plan-generation duration in milliseconds.
func ObservePlanDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	planDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "plan_started_total", "Total career plan generations started", planStartedTotal.Load())
	writeCounter(&buf, "plan_completed_total", "Total career plan generations completed", planCompletedTotal.Load())
	writeCounter(&buf, "plan_blocked_total", "Total plan requests blocked by input gating", planBlockedTotal.Load())
	writeCounter(&buf, "llm_calls_total", "Total generative model calls issued", llmCallsTotal.Load())
	writeCounter(&buf, "llm_parse_failures_total", "Total generative responses failing parse or shape validation", llmParseFailureTotal.Load())
	writeHistogram(&buf, "plan_duration_ms", "Plan generation duration in milliseconds", planDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
