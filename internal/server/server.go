package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"model2curl/internal/cache"
	"model2curl/internal/config"
	"model2curl/internal/core"
	"model2curl/internal/metrics"
	"model2curl/internal/process"
	"model2curl/internal/snippet"

	"github.com/gin-gonic/gin"
)

// Server application server
type Server struct {
	port    string
	ginMode string

	router *gin.Engine

	cache          *cache.CacheService
	metricsService *metrics.MetricsService

	validClientKeys map[string]bool
	modelsData      core.ModelList
	catalog         core.CatalogConfig

	snippetProcessor *process.SnippetProcessor

	config config.ServerConfig

	rateLimiter *rateLimiter

	startTime time.Time

	shutdownCtx    context.Context
	shutdownCancel context.CancelFunc
}

// NewServer creates a new server instance
func NewServer(cfg config.ServerConfig) (*Server, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required in ServerConfig")
	}
	if cfg.Storage == nil {
		return nil, fmt.Errorf("storage is required in ServerConfig")
	}

	cacheService := cache.NewCacheService()

	metricsService := metrics.NewMetricsService(metrics.MetricsConfig{
		SaveInterval: core.MinSaveInterval,
		HistorySize:  core.HistoryBufferSize,
		Storage:      cfg.Storage,
		Logger:       cfg.Logger,
	})

	if err := metricsService.LoadStats(); err != nil {
		cfg.Logger.Warn("Failed to load historical stats: %v", err)
	}

	modelsData, catalog, err := config.GetCatalog(cfg.ModelsConfigPath, cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load model catalog: %w", err)
	}

	validClientKeys := make(map[string]bool)
	for _, key := range cfg.ClientAPIKeys {
		validClientKeys[key] = true
	}

	if len(validClientKeys) == 0 {
		cfg.Logger.Warn("No client API keys configured, API endpoints are open")
	} else {
		cfg.Logger.Info("Loaded %d client API keys", len(validClientKeys))
	}

	rateLimit := cfg.RateLimit
	if rateLimit <= 0 {
		rateLimit = core.DefaultRateLimit
	}

	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())

	server := &Server{
		port:             cfg.Port,
		ginMode:          cfg.GinMode,
		cache:            cacheService,
		metricsService:   metricsService,
		validClientKeys:  validClientKeys,
		modelsData:       modelsData,
		catalog:          catalog,
		snippetProcessor: process.NewSnippetProcessor(catalog, cacheService, metricsService, cfg.Logger),
		config:           cfg,
		rateLimiter:      newRateLimiter(rateLimit),
		startTime:        time.Now(),
		shutdownCtx:      shutdownCtx,
		shutdownCancel:   shutdownCancel,
	}

	server.setupRoutes()

	return server, nil
}

// Run runs the server
func (s *Server) Run() error {
	s.setupGracefulShutdown()

	srv := &http.Server{
		Addr:              ":" + s.port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      time.Minute,
	}

	go func() {
		<-s.shutdownCtx.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			s.config.Logger.Error("Server shutdown error: %v", err)
		}
	}()

	s.config.Logger.Info("Server starting on port %s", s.port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func (s *Server) setupGracefulShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		s.config.Logger.Info("Shutdown signal received, shutting down gracefully...")
		s.shutdownCancel()
	}()
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(200, gin.H{"status": "healthy"})
}

func (s *Server) getStatsData(c *gin.Context) {
	stats := s.metricsService.GetRenderStats()
	periodStats := metrics.GetPeriodStats(stats.RenderHistory, 1, 24, 24*7)

	var avgResponseTime int64
	if stats.TotalRenders > 0 {
		avgResponseTime = stats.TotalResponseTime / stats.TotalRenders
	}

	lastRenderTime := ""
	if !stats.LastRenderTime.IsZero() {
		lastRenderTime = stats.LastRenderTime.Format(core.TimeFormatDateTime)
	}

	c.JSON(200, gin.H{
		"current_time":        time.Now().Format(core.TimeFormatDateTime),
		"total_renders":       stats.TotalRenders,
		"rendered_snippets":   stats.RenderedSnippets,
		"unsupported_renders": stats.UnsupportedRenders,
		"qps":                 s.metricsService.GetQPS(),
		"avg_response_time":   avgResponseTime,
		"cache_hit_rate":      s.metricsService.GetCacheHitRate(),
		"http_requests":       s.metricsService.GetHTTPRequests(),
		"http_errors":         s.metricsService.GetHTTPErrors(),
		"periods":             periodStats,
		"supported_pipelines": snippet.SupportedPipelines(),
		"total_records":       len(stats.RenderHistory),
		"uptime":              time.Since(s.startTime).Round(time.Second).String(),
		"last_render_time":    lastRenderTime,
	})
}

// Close closes the server
func (s *Server) Close() error {
	if s.shutdownCancel != nil {
		s.shutdownCancel()
	}

	var closeErr error

	if s.metricsService != nil {
		if err := s.metricsService.Close(); err != nil {
			closeErr = errors.Join(closeErr, fmt.Errorf("close metrics service: %w", err))
		}
	}

	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			closeErr = errors.Join(closeErr, fmt.Errorf("close cache service: %w", err))
		}
	}

	return closeErr
}
