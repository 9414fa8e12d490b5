package core

import "time"

// RenderStats holds aggregated render statistics for monitoring.
type RenderStats struct {
	TotalRenders       int64          `json:"total_renders"`
	RenderedSnippets   int64          `json:"rendered_snippets"`
	UnsupportedRenders int64          `json:"unsupported_renders"`
	TotalResponseTime  int64          `json:"total_response_time"`
	LastRenderTime     time.Time      `json:"last_render_time"`
	RenderHistory      []RenderRecord `json:"render_history"`
}

// RenderRecord represents a single render's metadata for history tracking.
type RenderRecord struct {
	Timestamp    time.Time `json:"timestamp"`
	Rendered     bool      `json:"rendered"`
	ResponseTime int64     `json:"response_time"`
	Model        string    `json:"model"`
	Pipeline     string    `json:"pipeline"`
}

// PeriodStats holds computed statistics for a time period.
type PeriodStats struct {
	Renders         int64   `json:"renders"`
	RenderedRate    float64 `json:"renderedRate"`
	AvgResponseTime int64   `json:"avgResponseTime"`
	QPS             float64 `json:"qps"`
}
