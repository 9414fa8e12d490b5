package core

import "time"

// Cache config constants
const (
	CacheDefaultCapacity = 1000
	CacheCleanupInterval = 5 * time.Minute
	SnippetCacheTTL      = 10 * time.Minute
	CatalogCacheTTL      = 30 * time.Minute
	CacheKeyVersion      = "v1"
)

// Stats and monitoring constants
const (
	StatsFilePath        = "stats.json"
	StatsRedisKey        = "model2curl:stats"
	MinSaveInterval      = 5 * time.Second
	HistoryBufferSize    = 1000
	HistoryBatchSize     = 100
	HistoryFlushInterval = 100 * time.Millisecond
)

// Logging config constants
const (
	MaxDebugFilePathLength = 260
)

// File permission constants
const (
	FilePermissionReadWrite = 0644
)

// Request body size limits
const (
	MaxRequestBodySize = 1 * 1024 * 1024
)

// Default config constants
const (
	DefaultPort             = "7860"
	DefaultGinMode          = "release"
	DefaultModelsConfigPath = "models.json"
	DefaultRateLimit        = 60
	CORSMaxAge              = "86400"
)

// Time format constants
const (
	TimeFormatDateTime = "2006-01-02 15:04:05"
)
