package cache

import (
	"context"
	"crypto/sha1" //nolint:gosec // G505: sha1 for cache keys, not security
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"model2curl/internal/core"
	"model2curl/internal/util"
)

// LRUCache is a thread-safe LRU cache with expiration
type LRUCache struct {
	capacity int
	items    map[string]*CacheItem
	mu       sync.RWMutex
	head     *CacheItem
	tail     *CacheItem
	ctx      context.Context
	cancel   context.CancelFunc
}

// CacheItem represents an item in the cache with LRU links
type CacheItem struct {
	Value      any
	Expiration int64
	key        string
	prev       *CacheItem
	next       *CacheItem
}

// NewCache creates a new LRU Cache
func NewCache() *LRUCache {
	ctx, cancel := context.WithCancel(context.Background())
	c := &LRUCache{
		capacity: core.CacheDefaultCapacity,
		items:    make(map[string]*CacheItem),
		ctx:      ctx,
		cancel:   cancel,
	}

	c.head = &CacheItem{}
	c.tail = &CacheItem{}
	c.head.next = c.tail
	c.tail.prev = c.head

	go c.startCleanupWorker()
	return c
}

func (c *LRUCache) startCleanupWorker() {
	ticker := time.NewTicker(core.CacheCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanupExpired()
		case <-c.ctx.Done():
			return
		}
	}
}

// Stop terminates the cache cleanup worker goroutine.
func (c *LRUCache) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
}

// Set stores a value in the cache with the given TTL.
func (c *LRUCache) Set(key string, value any, duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if item, exists := c.items[key]; exists {
		item.Value = value
		item.Expiration = time.Now().Add(duration).UnixNano()
		c.moveToFront(item)
		return
	}

	item := &CacheItem{
		Value:      value,
		Expiration: time.Now().Add(duration).UnixNano(),
		key:        key,
	}

	c.addToFront(item)
	c.items[key] = item

	if len(c.items) > c.capacity {
		c.evict()
	}
}

// Get retrieves a value from the cache, returning false if not found or expired.
func (c *LRUCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, found := c.items[key]
	if !found {
		return nil, false
	}

	if time.Now().UnixNano() > item.Expiration {
		c.remove(item)
		delete(c.items, key)
		return nil, false
	}

	c.moveToFront(item)
	return item.Value, true
}

func (c *LRUCache) addToFront(item *CacheItem) {
	item.next = c.head.next
	item.prev = c.head
	c.head.next.prev = item
	c.head.next = item
}

func (c *LRUCache) moveToFront(item *CacheItem) {
	c.remove(item)
	c.addToFront(item)
}

func (c *LRUCache) remove(item *CacheItem) {
	item.prev.next = item.next
	item.next.prev = item.prev
}

func (c *LRUCache) evict() {
	if c.tail.prev == c.head {
		return
	}
	item := c.tail.prev
	c.remove(item)
	delete(c.items, item.key)
}

func (c *LRUCache) cleanupExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UnixNano()
	for key, item := range c.items {
		if now > item.Expiration {
			c.remove(item)
			delete(c.items, key)
		}
	}
}

// Clear clears all cache items
func (c *LRUCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.head.next = c.tail
	c.tail.prev = c.head
	c.items = make(map[string]*CacheItem)
}

// CacheService unified cache service
type CacheService struct {
	snippets *LRUCache
	catalog  *LRUCache
}

// NewCacheService creates a new CacheService with snippet and catalog caches.
func NewCacheService() *CacheService {
	return &CacheService{
		snippets: NewCache(),
		catalog:  NewCache(),
	}
}

// GetModelCache retrieves a model descriptor from the catalog-specific cache.
func (cs *CacheService) GetModelCache(key string) (*core.ModelDescriptor, bool) {
	cached, found := cs.catalog.Get(key)
	if !found {
		return nil, false
	}

	model, ok := cached.(*core.ModelDescriptor)
	if !ok {
		return nil, false
	}

	return model.Clone(), true
}

// SetModelCache stores a model descriptor in the catalog-specific cache.
func (cs *CacheService) SetModelCache(key string, model *core.ModelDescriptor) {
	cs.catalog.Set(key, model.Clone(), core.CatalogCacheTTL)
}

// ClearModelCache removes all items from the catalog cache.
func (cs *CacheService) ClearModelCache() {
	cs.catalog.Clear()
}

// Get retrieves a value from the snippet cache.
func (cs *CacheService) Get(key string) (any, bool) {
	return cs.snippets.Get(key)
}

// Set stores a value in the snippet cache.
func (cs *CacheService) Set(key string, value any, duration time.Duration) {
	cs.snippets.Set(key, value, duration)
}

// Stop terminates both snippet and catalog cache cleanup workers.
func (cs *CacheService) Stop() {
	cs.snippets.Stop()
	cs.catalog.Stop()
}

// Close stops the cache service and releases resources.
func (cs *CacheService) Close() error {
	cs.Stop()
	return nil
}

// GenerateSnippetCacheKey creates a cache key covering every input that
// changes rendered output: model identity, the access token, and caller
// options. The token is folded into the digest so snippets rendered for
// one caller are never served to another.
func GenerateSnippetCacheKey(model core.ModelDescriptor, accessToken string, opts *core.SnippetOptions) string {
	h := sha1.New() //nolint:gosec // G401: sha1 for cache keys, not security
	h.Write([]byte(model.ID))
	h.Write([]byte{0})
	h.Write([]byte(model.PipelineTag))
	h.Write([]byte{0})
	for _, tag := range model.Tags {
		h.Write([]byte(tag))
		h.Write([]byte{0})
	}
	h.Write([]byte(model.MaskToken))
	h.Write([]byte{0})
	h.Write([]byte(accessToken))
	h.Write([]byte{0})

	if opts != nil {
		if opts.Streaming != nil {
			fmt.Fprintf(h, "stream=%t;", *opts.Streaming)
		}
		if opts.Temperature != nil {
			fmt.Fprintf(h, "temperature=%g;", *opts.Temperature)
		}
		if opts.MaxTokens != nil {
			fmt.Fprintf(h, "max_tokens=%d;", *opts.MaxTokens)
		}
		if opts.TopP != nil {
			fmt.Fprintf(h, "top_p=%g;", *opts.TopP)
		}
		if len(opts.Messages) > 0 {
			h.Write([]byte(GenerateMessagesCacheKey(opts.Messages)))
		}
	}

	return fmt.Sprintf("snippet:%s:%s", core.CacheKeyVersion, hex.EncodeToString(h.Sum(nil)))
}

// GenerateMessagesCacheKey creates a cache key from chat messages. Messages
// whose content cannot be marshaled still contribute their role and text so
// the key keeps distinguishing different conversations.
func GenerateMessagesCacheKey(messages []core.ChatMessage) string {
	h := sha1.New() //nolint:gosec // G401: sha1 for cache keys, not security
	for _, msg := range messages {
		msgBytes, err := util.MarshalJSON(msg)
		if err != nil {
			h.Write([]byte(msg.Role))
			h.Write([]byte(util.ExtractTextContent(msg.Content)))
			continue
		}
		h.Write(msgBytes)
	}
	return fmt.Sprintf("msg:%s:%s", core.CacheKeyVersion, hex.EncodeToString(h.Sum(nil)))
}

// GenerateModelCacheKey creates a cache key for a catalog descriptor
func GenerateModelCacheKey(modelID string) string {
	return fmt.Sprintf("model:%s:%s", core.CacheKeyVersion, modelID)
}

// TruncateCacheKey safely truncates cache key for log display
func TruncateCacheKey(key string, maxLen int) string {
	if len(key) <= maxLen {
		return key
	}
	return key[:maxLen]
}
