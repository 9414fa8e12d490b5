package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"model2curl/internal/config"
	"model2curl/internal/core"
	"model2curl/internal/storage"

	"github.com/bytedance/sonic"
)

const testCatalogJSON = `{
  "models": [
    {"id": "distilbert/distilbert-base-uncased-finetuned-sst-2-english", "pipeline_tag": "text-classification"},
    {"id": "meta-llama/Llama-3.1-8B-Instruct", "pipeline_tag": "text-generation", "tags": ["conversational"]},
    {"id": "openai/whisper-large-v3", "pipeline_tag": "automatic-speech-recognition"},
    {"id": "stabilityai/stable-diffusion-xl-base-1.0", "pipeline_tag": "text-to-image"}
  ]
}`

func writeTempTestFile(t *testing.T, fileName string, content []byte) string {
	t.Helper()
	filePath := filepath.Join(t.TempDir(), fileName)
	if err := os.WriteFile(filePath, content, core.FilePermissionReadWrite); err != nil {
		t.Fatalf("写入临时文件失败: %v", err)
	}
	return filePath
}

func newTestServerConfig(t *testing.T, clientKeys []string) config.ServerConfig {
	t.Helper()

	modelsPath := writeTempTestFile(t, "models.json", []byte(testCatalogJSON))
	statsPath := writeTempTestFile(t, "stats.json", []byte(`{}`))

	st := storage.NewFileStorage(statsPath)
	t.Cleanup(func() { _ = st.Close() })

	return config.ServerConfig{
		Port:             "0",
		GinMode:          "test",
		ClientAPIKeys:    clientKeys,
		RateLimit:        1000,
		ModelsConfigPath: modelsPath,
		Storage:          st,
		Logger:           &core.NopLogger{},
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	server, err := NewServer(newTestServerConfig(t, []string{"test-key"}))
	if err != nil {
		t.Fatalf("创建测试 Server 失败: %v", err)
	}

	t.Cleanup(func() { _ = server.Close() })

	return server
}

func TestServerRoutes_StatsPublicAccess(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("监控页面应公开访问，实际 %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	w = httptest.NewRecorder()
	server.router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("/api/stats 应公开访问，实际 %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/log", nil)
	w = httptest.NewRecorder()
	server.router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("/log 应需要认证，实际 %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/log", nil)
	req.Header.Set(core.HeaderAuthorization, core.AuthBearerPrefix+"test-key")
	w = httptest.NewRecorder()
	server.router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("/log 带认证应返回 200，实际 %d", w.Code)
	}

	if got := server.metricsService.GetHTTPRequests(); got < 4 {
		t.Fatalf("HTTP 中间件应记录全部请求，实际 %d", got)
	}
}

func TestServerRoutes_RequestIDEcho(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)
	if w.Header().Get(core.HeaderRequestID) == "" {
		t.Fatalf("响应应携带 %s 头", core.HeaderRequestID)
	}
}

type spyStorage struct {
	mu       sync.Mutex
	saveCall int
	lastStat core.RenderStats
}

func (s *spyStorage) SaveStats(stats *core.RenderStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.saveCall++
	if stats != nil {
		s.lastStat = *stats
		s.lastStat.RenderHistory = append([]core.RenderRecord(nil), stats.RenderHistory...)
	}
	return nil
}

func (s *spyStorage) LoadStats() (*core.RenderStats, error) {
	return &core.RenderStats{}, nil
}

func (s *spyStorage) Close() error {
	return nil
}

func (s *spyStorage) snapshot() (int, core.RenderStats) {
	s.mu.Lock()
	defer s.mu.Unlock()

	statsCopy := s.lastStat
	statsCopy.RenderHistory = append([]core.RenderRecord(nil), s.lastStat.RenderHistory...)
	return s.saveCall, statsCopy
}

func TestServerClose_PersistsBufferedMetrics(t *testing.T) {
	st := &spyStorage{}
	cfg := newTestServerConfig(t, []string{"test-key"})
	cfg.Storage = st

	server, err := NewServer(cfg)
	if err != nil {
		t.Fatalf("创建测试 Server 失败: %v", err)
	}

	server.metricsService.RecordRender(true, 10, "meta-llama/Llama-3.1-8B-Instruct", "text-generation")
	server.metricsService.RecordRender(false, 20, "stabilityai/stable-diffusion-xl-base-1.0", "text-to-image")

	beforeSaves, beforeStats := st.snapshot()
	if beforeStats.TotalRenders != 1 {
		t.Fatalf("关闭前应只持久化首条记录，实际 total=%d", beforeStats.TotalRenders)
	}

	if err := server.Close(); err != nil {
		t.Fatalf("关闭 Server 失败: %v", err)
	}

	afterSaves, afterStats := st.snapshot()
	if afterSaves <= beforeSaves {
		t.Fatalf("关闭后应触发最终持久化，save 次数 %d -> %d", beforeSaves, afterSaves)
	}
	if afterStats.TotalRenders != 2 {
		t.Fatalf("关闭后应持久化全部渲染，实际 total=%d", afterStats.TotalRenders)
	}
	if len(afterStats.RenderHistory) != 2 {
		t.Fatalf("关闭后应持久化完整历史，实际 history=%d", len(afterStats.RenderHistory))
	}
}

func TestServerClose_Idempotent(t *testing.T) {
	server := newTestServer(t)

	if err := server.Close(); err != nil {
		t.Fatalf("第一次关闭失败: %v", err)
	}
	if err := server.Close(); err != nil {
		t.Fatalf("第二次关闭失败: %v", err)
	}
}

func TestServerRoutes_ModelsAndSnippetErrors(t *testing.T) {
	server := newTestServer(t)

	// /v1/models
	req := httptest.NewRequest(http.MethodGet, "/v1/models", nil)
	req.Header.Set(core.HeaderAuthorization, core.AuthBearerPrefix+"test-key")
	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("/v1/models 应返回 200，实际 %d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte(`"meta-llama/Llama-3.1-8B-Instruct"`)) {
		t.Fatalf("/v1/models 应包含目录内模型")
	}

	// 模型不存在
	body := []byte(`{"model":"not-exist"}`)
	req = httptest.NewRequest(http.MethodPost, "/v1/snippet", bytes.NewReader(body))
	req.Header.Set(core.HeaderAuthorization, core.AuthBearerPrefix+"test-key")
	req.Header.Set(core.HeaderContentType, core.ContentTypeJSON)
	w = httptest.NewRecorder()
	server.router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("未知模型应返回 404，实际 %d", w.Code)
	}

	// GET 变体：模型不存在
	req = httptest.NewRequest(http.MethodGet, "/v1/snippet?model=not-exist", nil)
	req.Header.Set(core.HeaderAuthorization, core.AuthBearerPrefix+"test-key")
	w = httptest.NewRecorder()
	server.router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("GET 变体未知模型应返回 404，实际 %d", w.Code)
	}

	// 请求体缺少 model 字段
	req = httptest.NewRequest(http.MethodPost, "/v1/snippet", bytes.NewReader([]byte(`{}`)))
	req.Header.Set(core.HeaderAuthorization, core.AuthBearerPrefix+"test-key")
	req.Header.Set(core.HeaderContentType, core.ContentTypeJSON)
	w = httptest.NewRecorder()
	server.router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("缺少 model 字段应返回 400，实际 %d", w.Code)
	}
}

func TestServerRoutes_OpenMode(t *testing.T) {
	server, err := NewServer(newTestServerConfig(t, nil))
	if err != nil {
		t.Fatalf("创建测试 Server 失败: %v", err)
	}
	t.Cleanup(func() { _ = server.Close() })

	req := httptest.NewRequest(http.MethodGet, "/v1/models", nil)
	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("未配置密钥时 API 应开放访问，实际 %d", w.Code)
	}
}

func TestGetStatsData_Contract(t *testing.T) {
	server := newTestServer(t)

	body := []byte(`{"model":"distilbert/distilbert-base-uncased-finetuned-sst-2-english"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/snippet", bytes.NewReader(body))
	req.Header.Set(core.HeaderAuthorization, core.AuthBearerPrefix+"test-key")
	req.Header.Set(core.HeaderContentType, core.ContentTypeJSON)
	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("渲染请求应成功，实际 %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	w = httptest.NewRecorder()
	server.router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("/api/stats 应返回 200，实际 %d", w.Code)
	}

	var payload map[string]any
	if err := sonic.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("解析 /api/stats 响应失败: %v", err)
	}

	if got, ok := payload["total_renders"].(float64); !ok || got != 1 {
		t.Errorf("期望 total_renders 为 1，实际 %v", payload["total_renders"])
	}
	pipelines, ok := payload["supported_pipelines"].([]any)
	if !ok || len(pipelines) != 20 {
		t.Errorf("期望 20 个支持的管道，实际 %v", payload["supported_pipelines"])
	}
	periods, ok := payload["periods"].(map[string]any)
	if !ok {
		t.Fatalf("期望 periods 为对象，实际 %T", payload["periods"])
	}
	for _, window := range []string{"1", "24", "168"} {
		if _, ok := periods[window]; !ok {
			t.Errorf("periods 应包含 %s 小时窗口", window)
		}
	}
	if _, ok := payload["uptime"].(string); !ok {
		t.Errorf("期望 uptime 为字符串，实际 %T", payload["uptime"])
	}
}
