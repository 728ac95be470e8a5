package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	ToolCalls        atomic.Int64
	ToolErrors       atomic.Int64
	ResourceReads    atomic.Int64
	ResourceErrors   atomic.Int64
	MetadataRequests atomic.Int64
	MetadataErrors   atomic.Int64
	CaptionRequests  atomic.Int64
	CaptionErrors    atomic.Int64
	CaptionFallbacks atomic.Int64
	MarkdownRenders  atomic.Int64
}

var metricKeys = []string{
	"tool_calls", "tool_errors",
	"resource_reads", "resource_errors",
	"metadata_requests", "metadata_errors",
	"caption_requests", "caption_errors", "caption_fallbacks",
	"markdown_renders",
}

// GetMetrics returns a snapshot of all counters.
func GetMetrics() map[string]int64 {
	return map[string]int64{
		"tool_calls":        metrics.ToolCalls.Load(),
		"tool_errors":       metrics.ToolErrors.Load(),
		"resource_reads":    metrics.ResourceReads.Load(),
		"resource_errors":   metrics.ResourceErrors.Load(),
		"metadata_requests": metrics.MetadataRequests.Load(),
		"metadata_errors":   metrics.MetadataErrors.Load(),
		"caption_requests":  metrics.CaptionRequests.Load(),
		"caption_errors":    metrics.CaptionErrors.Load(),
		"caption_fallbacks": metrics.CaptionFallbacks.Load(),
		"markdown_renders":  metrics.MarkdownRenders.Load(),
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	for _, k := range metricKeys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

func IncrToolCall()        { metrics.ToolCalls.Add(1) }
func IncrToolError()       { metrics.ToolErrors.Add(1) }
func IncrResourceRead()    { metrics.ResourceReads.Add(1) }
func IncrResourceError()   { metrics.ResourceErrors.Add(1) }
func IncrMetadataRequest() { metrics.MetadataRequests.Add(1) }
func IncrMetadataError()   { metrics.MetadataErrors.Add(1) }
func IncrCaptionRequest()  { metrics.CaptionRequests.Add(1) }
func IncrCaptionError()    { metrics.CaptionErrors.Add(1) }
func IncrCaptionFallback() { metrics.CaptionFallbacks.Add(1) }
func IncrMarkdownRender()  { metrics.MarkdownRenders.Add(1) }

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > 5*time.Second {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
