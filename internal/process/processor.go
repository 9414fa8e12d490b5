package process

import (
	"time"

	"model2curl/internal/cache"
	"model2curl/internal/config"
	"model2curl/internal/core"
	"model2curl/internal/snippet"
	"model2curl/internal/util"
)

// SnippetProcessor renders snippets through the cache and records metrics
type SnippetProcessor struct {
	catalog core.CatalogConfig
	cache   core.Cache
	metrics core.MetricsCollector
	logger  core.Logger
}

// NewSnippetProcessor creates a new snippet processor
func NewSnippetProcessor(catalog core.CatalogConfig, c core.Cache, metrics core.MetricsCollector, logger core.Logger) *SnippetProcessor {
	if metrics == nil {
		metrics = &core.NopMetrics{}
	}
	if logger == nil {
		logger = &core.NopLogger{}
	}
	return &SnippetProcessor{
		catalog: catalog,
		cache:   c,
		metrics: metrics,
		logger:  logger,
	}
}

// ProcessSnippetResult snippet processing result
type ProcessSnippetResult struct {
	Snippet  core.Snippet
	CacheHit bool
}

// ProcessSnippet renders the curl snippet for a model, serving repeated
// requests from the cache. Rendering itself never fails; unsupported
// pipelines yield an empty snippet.
func (p *SnippetProcessor) ProcessSnippet(model core.ModelDescriptor, accessToken string, opts *core.SnippetOptions) ProcessSnippetResult {
	cacheKey := cache.GenerateSnippetCacheKey(model, accessToken, opts)

	if cachedAny, found := p.cache.Get(cacheKey); found {
		if cached, ok := cachedAny.(core.Snippet); ok {
			p.metrics.RecordCacheHit()
			return ProcessSnippetResult{
				Snippet:  cached,
				CacheHit: true,
			}
		}
		p.logger.Warn("Cache format mismatch for snippet (key: %s), re-rendering", cache.TruncateCacheKey(cacheKey, 16))
	}

	p.metrics.RecordCacheMiss()
	renderStart := time.Now()
	rendered := snippet.GetCurlSnippetWithOptions(model, accessToken, opts)
	p.metrics.RecordSnippetRender(time.Since(renderStart))
	p.logger.Debug("Rendered snippet: model=%s, pipeline=%s, caller=%s",
		model.ID, model.PipelineTag, util.TokenDisplayName(accessToken))

	p.cache.Set(cacheKey, rendered, core.SnippetCacheTTL)

	return ProcessSnippetResult{
		Snippet:  rendered,
		CacheHit: false,
	}
}

// Supports reports whether the model's pipeline has a renderer
func (p *SnippetProcessor) Supports(model core.ModelDescriptor) bool {
	return snippet.HasCurlSnippet(model)
}

// FindModel resolves a catalog descriptor by model ID
func (p *SnippetProcessor) FindModel(modelID string) *core.ModelDescriptor {
	return config.FindModel(p.catalog, modelID)
}

// Catalog returns the processor's model catalog
func (p *SnippetProcessor) Catalog() core.CatalogConfig {
	return p.catalog
}
