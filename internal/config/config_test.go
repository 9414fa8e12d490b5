package config

import (
	"os"
	"path/filepath"
	"testing"

	"model2curl/internal/core"
)

func createModelsTempFile(t *testing.T, content string) string {
	t.Helper()
	filePath := filepath.Join(t.TempDir(), "models.json")
	if err := os.WriteFile(filePath, []byte(content), core.FilePermissionReadWrite); err != nil {
		t.Fatalf("写入临时文件失败: %v", err)
	}
	return filePath
}

func TestLoadModelCatalog_WrappedForm(t *testing.T) {
	filePath := createModelsTempFile(t, `{"models":[
		{"id":"distilbert-base-uncased-finetuned-sst-2-english","pipeline_tag":"text-classification"},
		{"id":"meta-llama/Llama-3.1-8B-Instruct","pipeline_tag":"text-generation","tags":["conversational"]}
	]}`)

	catalog, err := LoadModelCatalog(filePath)
	if err != nil {
		t.Fatalf("LoadModelCatalog failed: %v", err)
	}

	if len(catalog.Models) != 2 {
		t.Errorf("Expected 2 models, got %d", len(catalog.Models))
	}
	if catalog.Models[0].PipelineTag != core.PipelineTextClassification {
		t.Errorf("Expected text-classification, got '%s'", catalog.Models[0].PipelineTag)
	}
	if !catalog.Models[1].IsConversational() {
		t.Error("Expected second model to be conversational")
	}
}

func TestLoadModelCatalog_ArrayForm(t *testing.T) {
	filePath := createModelsTempFile(t, `[
		{"id":"openai/whisper-large-v3","pipeline_tag":"automatic-speech-recognition"},
		{"id":"facebook/bart-large-mnli","pipeline_tag":"zero-shot-classification"}
	]`)

	catalog, err := LoadModelCatalog(filePath)
	if err != nil {
		t.Fatalf("LoadModelCatalog failed: %v", err)
	}

	if len(catalog.Models) != 2 {
		t.Errorf("Expected 2 models, got %d", len(catalog.Models))
	}
	if catalog.Models[0].ID != "openai/whisper-large-v3" {
		t.Errorf("Array form: unexpected first model '%s'", catalog.Models[0].ID)
	}
}

func TestLoadModelCatalog_NonExistentFile(t *testing.T) {
	_, err := LoadModelCatalog("/tmp/nonexistent_models_file_12345.json")
	if err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestLoadModelCatalog_InvalidJSON(t *testing.T) {
	filePath := createModelsTempFile(t, `{not json`)

	_, err := LoadModelCatalog(filePath)
	if err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestLoadModels(t *testing.T) {
	filePath := createModelsTempFile(t, `{"models":[
		{"id":"zebra/model","pipeline_tag":"text-classification"},
		{"id":"alpha/model","pipeline_tag":"summarization"}
	]}`)

	modelsData, err := LoadModels(filePath, &core.NopLogger{})
	if err != nil {
		t.Fatalf("LoadModels failed: %v", err)
	}

	if len(modelsData.Data) != 2 {
		t.Fatalf("Expected 2 model items, got %d", len(modelsData.Data))
	}
	if modelsData.Object != core.ModelListObjectType {
		t.Errorf("Expected object '%s', got '%s'", core.ModelListObjectType, modelsData.Object)
	}
	if modelsData.Data[0].ID != "alpha/model" {
		t.Errorf("Expected sorted order, first was '%s'", modelsData.Data[0].ID)
	}
	if modelsData.Data[0].OwnedBy != core.ModelOwner {
		t.Errorf("Expected owner '%s', got '%s'", core.ModelOwner, modelsData.Data[0].OwnedBy)
	}
}

func TestFindModel(t *testing.T) {
	catalog := core.CatalogConfig{
		Models: []core.ModelDescriptor{
			{ID: "gpt2", PipelineTag: core.PipelineTextGeneration},
			{ID: "facebook/bart-large-mnli", PipelineTag: core.PipelineZeroShotClassification},
		},
	}

	model := FindModel(catalog, "gpt2")
	if model == nil {
		t.Fatal("Expected to find gpt2")
	}
	if model.PipelineTag != core.PipelineTextGeneration {
		t.Errorf("Expected text-generation, got '%s'", model.PipelineTag)
	}

	if FindModel(catalog, "nonexistent") != nil {
		t.Error("Expected nil for nonexistent model")
	}
}

func TestGetModelItem(t *testing.T) {
	modelsData := core.ModelList{
		Data: []core.ModelInfo{
			{ID: "gpt2", Object: "model", OwnedBy: "huggingface"},
			{ID: "openai/whisper-large-v3", Object: "model", OwnedBy: "huggingface"},
		},
	}

	model := GetModelItem(modelsData, "gpt2")
	if model == nil {
		t.Fatal("Expected to find gpt2")
	}
	if model.ID != "gpt2" {
		t.Errorf("Expected ID 'gpt2', got '%s'", model.ID)
	}

	model = GetModelItem(modelsData, "nonexistent")
	if model != nil {
		t.Error("Expected nil for nonexistent model")
	}
}

func TestLoadServerConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("GIN_MODE", "release")
	t.Setenv("CLIENT_API_KEYS", "key1,key2")
	t.Setenv("RATE_LIMIT", "120")
	t.Setenv("REDIS_URL", "")
	t.Setenv("MODELS_CONFIG_PATH", "")

	cfg, err := LoadServerConfigFromEnv(&core.NopLogger{})
	if err != nil {
		t.Fatalf("LoadServerConfigFromEnv failed: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("期望端口 '9000'，实际 '%s'", cfg.Port)
	}
	if len(cfg.ClientAPIKeys) != 2 {
		t.Errorf("期望 2 个客户端密钥，实际 %d", len(cfg.ClientAPIKeys))
	}
	if cfg.RateLimit != 120 {
		t.Errorf("期望速率限制 120，实际 %d", cfg.RateLimit)
	}
	if cfg.ModelsConfigPath != core.DefaultModelsConfigPath {
		t.Errorf("期望默认目录文件路径，实际 '%s'", cfg.ModelsConfigPath)
	}
}

func TestLoadServerConfigFromEnv_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("GIN_MODE", "")
	t.Setenv("CLIENT_API_KEYS", "")
	t.Setenv("RATE_LIMIT", "")

	cfg, err := LoadServerConfigFromEnv(&core.NopLogger{})
	if err != nil {
		t.Fatalf("LoadServerConfigFromEnv failed: %v", err)
	}

	if cfg.Port != core.DefaultPort {
		t.Errorf("期望默认端口 '%s'，实际 '%s'", core.DefaultPort, cfg.Port)
	}
	if cfg.RateLimit != core.DefaultRateLimit {
		t.Errorf("期望默认速率限制 %d，实际 %d", core.DefaultRateLimit, cfg.RateLimit)
	}
	if len(cfg.ClientAPIKeys) != 0 {
		t.Errorf("期望无客户端密钥，实际 %d", len(cfg.ClientAPIKeys))
	}
}

func TestLoadServerConfigFromEnv_InvalidRateLimit(t *testing.T) {
	t.Setenv("RATE_LIMIT", "not-a-number")

	cfg, err := LoadServerConfigFromEnv(&core.NopLogger{})
	if err != nil {
		t.Fatalf("LoadServerConfigFromEnv failed: %v", err)
	}

	if cfg.RateLimit != core.DefaultRateLimit {
		t.Errorf("无效速率限制应回退默认值 %d，实际 %d", core.DefaultRateLimit, cfg.RateLimit)
	}
}
