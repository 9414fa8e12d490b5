package metrics

import (
	"embed"
	"fmt"
	"math"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"model2curl/internal/core"

	"github.com/gin-gonic/gin"
)

// StatsPageHTML holds the embedded monitoring dashboard HTML.
//
//go:embed static/index.html
var StatsPageHTML embed.FS

// AtomicRenderStats thread-safe render statistics. Only the render
// counters are persisted; the HTTP and cache counters reset on restart.
type AtomicRenderStats struct {
	TotalRenders       atomic.Int64
	RenderedSnippets   atomic.Int64
	UnsupportedRenders atomic.Int64
	TotalResponseTime  atomic.Int64
	CacheHits          atomic.Int64
	CacheMisses        atomic.Int64
	HTTPRequests       atomic.Int64
	HTTPResponseTime   atomic.Int64
	HTTPErrors         atomic.Int64
}

// MetricsConfig configuration for MetricsService
type MetricsConfig struct {
	SaveInterval time.Duration
	HistorySize  int
	Storage      core.StorageInterface
	Logger       core.Logger
}

// MetricsService collects and manages metrics
type MetricsService struct {
	atomicStats      AtomicRenderStats
	renderHistory    []core.RenderRecord
	historyMu        sync.RWMutex
	lastRenderTime   time.Time
	maxHistorySize   int
	storage          core.StorageInterface
	logger           core.Logger
	lastSaveTime     time.Time
	minSaveInterval  time.Duration
	done             chan struct{}
	historyBuffer    []core.RenderRecord
	bufferMu         sync.Mutex
	bufferFlushTimer *time.Ticker
	recentRenders    []time.Time
	recentMu         sync.Mutex
	closeOnce        sync.Once
	closeErr         error
}

// NewMetricsService creates a new MetricsService
func NewMetricsService(config MetricsConfig) *MetricsService {
	ms := &MetricsService{
		maxHistorySize:  config.HistorySize,
		storage:         config.Storage,
		logger:          config.Logger,
		minSaveInterval: config.SaveInterval,
		done:            make(chan struct{}),
		historyBuffer:   make([]core.RenderRecord, 0, core.HistoryBatchSize),
	}
	if ms.logger == nil {
		ms.logger = &core.NopLogger{}
	}

	ms.bufferFlushTimer = time.NewTicker(core.HistoryFlushInterval)
	go ms.flushLoop()

	return ms
}

func (ms *MetricsService) flushLoop() {
	for {
		select {
		case <-ms.bufferFlushTimer.C:
			ms.flushBuffer()
		case <-ms.done:
			return
		}
	}
}

func (ms *MetricsService) flushBuffer() {
	ms.bufferMu.Lock()
	if len(ms.historyBuffer) == 0 {
		ms.bufferMu.Unlock()
		return
	}
	batch := ms.historyBuffer
	ms.historyBuffer = make([]core.RenderRecord, 0, core.HistoryBatchSize)
	ms.bufferMu.Unlock()

	ms.historyMu.Lock()
	ms.renderHistory = append(ms.renderHistory, batch...)
	if len(ms.renderHistory) > ms.maxHistorySize {
		ms.renderHistory = ms.renderHistory[len(ms.renderHistory)-ms.maxHistorySize:]
	}
	ms.historyMu.Unlock()
}

// RecordRender records one snippet render. rendered is false when the
// pipeline has no renderer and the snippet came back empty.
func (ms *MetricsService) RecordRender(rendered bool, responseTime int64, model string, pipeline string) {
	now := time.Now()
	ms.historyMu.Lock()
	ms.lastRenderTime = now
	ms.historyMu.Unlock()
	ms.atomicStats.TotalRenders.Add(1)
	ms.atomicStats.TotalResponseTime.Add(responseTime)

	if rendered {
		ms.atomicStats.RenderedSnippets.Add(1)
	} else {
		ms.atomicStats.UnsupportedRenders.Add(1)
	}

	ms.recentMu.Lock()
	ms.recentRenders = append(ms.recentRenders, now)
	cutoff := now.Add(-1 * time.Minute)
	startIdx := 0
	for startIdx < len(ms.recentRenders) && ms.recentRenders[startIdx].Before(cutoff) {
		startIdx++
	}
	if startIdx > 0 {
		newRecent := make([]time.Time, len(ms.recentRenders)-startIdx)
		copy(newRecent, ms.recentRenders[startIdx:])
		ms.recentRenders = newRecent
	}
	ms.recentMu.Unlock()

	record := core.RenderRecord{
		Timestamp:    now,
		Rendered:     rendered,
		ResponseTime: responseTime,
		Model:        model,
		Pipeline:     pipeline,
	}

	ms.bufferMu.Lock()
	ms.historyBuffer = append(ms.historyBuffer, record)
	shouldFlush := len(ms.historyBuffer) >= core.HistoryBatchSize
	ms.bufferMu.Unlock()

	if shouldFlush {
		ms.flushBuffer()
	}

	ms.SaveStatsDebounced()
}

// RecordHTTPRequest records HTTP request duration. Kept separate from
// TotalResponseTime so a snippet request is not timed twice (once by the
// HTTP middleware, once by the render record).
func (ms *MetricsService) RecordHTTPRequest(duration time.Duration) {
	ms.atomicStats.HTTPRequests.Add(1)
	ms.atomicStats.HTTPResponseTime.Add(duration.Milliseconds())
}

// RecordHTTPError records HTTP error
func (ms *MetricsService) RecordHTTPError() {
	ms.atomicStats.HTTPErrors.Add(1)
}

// GetHTTPRequests returns the HTTP request count since startup
func (ms *MetricsService) GetHTTPRequests() int64 {
	return ms.atomicStats.HTTPRequests.Load()
}

// GetHTTPErrors returns the HTTP error count since startup
func (ms *MetricsService) GetHTTPErrors() int64 {
	return ms.atomicStats.HTTPErrors.Load()
}

// RecordCacheHit records cache hit
func (ms *MetricsService) RecordCacheHit() {
	ms.atomicStats.CacheHits.Add(1)
}

// RecordCacheMiss records cache miss
func (ms *MetricsService) RecordCacheMiss() {
	ms.atomicStats.CacheMisses.Add(1)
}

// RecordSnippetRender records render duration
func (ms *MetricsService) RecordSnippetRender(duration time.Duration) {
	ms.atomicStats.TotalResponseTime.Add(duration.Milliseconds())
}

// GetQPS returns renders per second over the last minute
func (ms *MetricsService) GetQPS() float64 {
	ms.recentMu.Lock()
	defer ms.recentMu.Unlock()

	now := time.Now()
	cutoff := now.Add(-1 * time.Minute)
	startIdx := 0
	for startIdx < len(ms.recentRenders) && ms.recentRenders[startIdx].Before(cutoff) {
		startIdx++
	}
	if startIdx > 0 {
		newRecent := make([]time.Time, len(ms.recentRenders)-startIdx)
		copy(newRecent, ms.recentRenders[startIdx:])
		ms.recentRenders = newRecent
	}

	if len(ms.recentRenders) == 0 {
		return 0
	}

	return math.Round(float64(len(ms.recentRenders))/60.0*1000) / 1000
}

// GetCacheHitRate returns the snippet cache hit percentage
func (ms *MetricsService) GetCacheHitRate() float64 {
	hits := ms.atomicStats.CacheHits.Load()
	misses := ms.atomicStats.CacheMisses.Load()
	total := hits + misses
	if total == 0 {
		return 0
	}
	return math.Round(float64(hits)/float64(total)*100*100) / 100
}

// GetRenderStats returns current stats snapshot
func (ms *MetricsService) GetRenderStats() core.RenderStats {
	ms.flushBuffer()
	ms.historyMu.RLock()
	defer ms.historyMu.RUnlock()

	historyCopy := make([]core.RenderRecord, len(ms.renderHistory))
	copy(historyCopy, ms.renderHistory)

	return core.RenderStats{
		TotalRenders:       ms.atomicStats.TotalRenders.Load(),
		RenderedSnippets:   ms.atomicStats.RenderedSnippets.Load(),
		UnsupportedRenders: ms.atomicStats.UnsupportedRenders.Load(),
		TotalResponseTime:  ms.atomicStats.TotalResponseTime.Load(),
		LastRenderTime:     ms.lastRenderTime,
		RenderHistory:      historyCopy,
	}
}

// GetPeriodStats computes period statistics for multiple hour windows in a single pass.
func GetPeriodStats(history []core.RenderRecord, hourPeriods ...int) map[int]core.PeriodStats {
	if len(hourPeriods) == 0 {
		return nil
	}

	now := time.Now()
	cutoffs := make([]time.Time, len(hourPeriods))
	renders := make([]int64, len(hourPeriods))
	renderedCount := make([]int64, len(hourPeriods))
	responseTime := make([]int64, len(hourPeriods))

	for i, hours := range hourPeriods {
		cutoffs[i] = now.Add(-time.Duration(hours) * time.Hour)
	}

	for _, record := range history {
		for i, cutoff := range cutoffs {
			if record.Timestamp.After(cutoff) {
				renders[i]++
				responseTime[i] += record.ResponseTime
				if record.Rendered {
					renderedCount[i]++
				}
			}
		}
	}

	result := make(map[int]core.PeriodStats, len(hourPeriods))
	for i, hours := range hourPeriods {
		stats := core.PeriodStats{
			Renders: renders[i],
			QPS:     float64(renders[i]) / (float64(hours) * 3600.0),
		}
		if renders[i] > 0 {
			stats.RenderedRate = float64(renderedCount[i]) / float64(renders[i]) * 100
			stats.AvgResponseTime = responseTime[i] / renders[i]
		}
		result[hours] = stats
	}
	return result
}

// LoadStats loads stats from storage
func (ms *MetricsService) LoadStats() error {
	if ms.storage == nil {
		return nil
	}
	stats, err := ms.storage.LoadStats()
	if err != nil {
		return err
	}

	ms.atomicStats.TotalRenders.Store(stats.TotalRenders)
	ms.atomicStats.RenderedSnippets.Store(stats.RenderedSnippets)
	ms.atomicStats.UnsupportedRenders.Store(stats.UnsupportedRenders)
	ms.atomicStats.TotalResponseTime.Store(stats.TotalResponseTime)
	ms.lastRenderTime = stats.LastRenderTime

	ms.historyMu.Lock()
	ms.renderHistory = stats.RenderHistory
	ms.historyMu.Unlock()

	return nil
}

// SaveStatsDebounced saves stats with debounce
func (ms *MetricsService) SaveStatsDebounced() {
	now := time.Now()
	ms.historyMu.Lock()
	if now.Sub(ms.lastSaveTime) < ms.minSaveInterval {
		ms.historyMu.Unlock()
		return
	}
	ms.lastSaveTime = now
	ms.historyMu.Unlock()

	if ms.storage == nil {
		return
	}

	stats := ms.GetRenderStats()
	if err := ms.storage.SaveStats(&stats); err != nil {
		ms.logger.Warn("Failed to save stats: %v", err)
	}
}

// Close saves final stats and stops. Safe to call more than once.
func (ms *MetricsService) Close() error {
	ms.closeOnce.Do(func() {
		close(ms.done)
		ms.bufferFlushTimer.Stop()
		ms.flushBuffer()

		if ms.storage != nil {
			stats := ms.GetRenderStats()
			ms.closeErr = ms.storage.SaveStats(&stats)
		}
	})
	return ms.closeErr
}

// RecordRenderedWithMetrics records a render that produced content
func RecordRenderedWithMetrics(metrics *MetricsService, startTime time.Time, model, pipeline string) {
	metrics.RecordRender(true, time.Since(startTime).Milliseconds(), model, pipeline)
}

// RecordUnsupportedWithMetrics records a render that produced empty content
func RecordUnsupportedWithMetrics(metrics *MetricsService, startTime time.Time, model, pipeline string) {
	metrics.RecordRender(false, time.Since(startTime).Milliseconds(), model, pipeline)
}

// ShowStatsPage serves the stats HTML page
func ShowStatsPage(c *gin.Context) {
	data, err := StatsPageHTML.ReadFile("static/index.html")
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to load stats page")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", data)
}

// StreamLog serves the log stream endpoint
func StreamLog(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("Access-Control-Allow-Origin", "*")

	_, _ = fmt.Fprintf(c.Writer, "data: Log stream is alive\n\n")
	c.Writer.Flush()
}
