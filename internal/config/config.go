package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"model2curl/internal/core"
	"model2curl/internal/util"

	"github.com/bytedance/sonic"
)

// ServerConfig server configuration
type ServerConfig struct {
	Port             string
	GinMode          string
	ClientAPIKeys    []string
	RateLimit        int
	RedisURL         string
	ModelsConfigPath string
	Storage          core.StorageInterface
	Logger           core.Logger
}

// LoadModels loads the catalog as a models list API response
func LoadModels(path string, logger core.Logger) (core.ModelList, error) {
	var result core.ModelList

	catalog, err := LoadModelCatalog(path)
	if err != nil {
		return result, err
	}

	now := time.Now().Unix()
	models := make([]core.ModelDescriptor, len(catalog.Models))
	copy(models, catalog.Models)
	sort.Slice(models, func(i, j int) bool {
		return models[i].ID < models[j].ID
	})

	result.Object = core.ModelListObjectType
	for _, model := range models {
		result.Data = append(result.Data, core.ModelInfo{
			ID:          model.ID,
			Object:      core.ModelObjectType,
			Created:     now,
			OwnedBy:     core.ModelOwner,
			PipelineTag: model.PipelineTag,
			Tags:        model.Tags,
		})
	}

	logger.Info("Loaded %d models from %s", len(catalog.Models), path)
	return result, nil
}

// LoadModelCatalog loads the model catalog file. Both the wrapped form
// {"models": [...]} and a bare descriptor array are accepted.
func LoadModelCatalog(path string) (core.CatalogConfig, error) {
	var catalog core.CatalogConfig

	data, err := os.ReadFile(path) //nolint:gosec // G304: path from config, not user input
	if err != nil {
		return catalog, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := sonic.Unmarshal(data, &catalog); err != nil {
		var models []core.ModelDescriptor
		if err := sonic.Unmarshal(data, &models); err != nil {
			return catalog, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		catalog.Models = models
	}

	if catalog.Models == nil {
		catalog.Models = []core.ModelDescriptor{}
	}

	return catalog, nil
}

// FindModel finds a catalog descriptor by model ID
func FindModel(catalog core.CatalogConfig, modelID string) *core.ModelDescriptor {
	for i := range catalog.Models {
		if catalog.Models[i].ID == modelID {
			return &catalog.Models[i]
		}
	}
	return nil
}

// GetModelItem finds a model by ID in a loaded list
func GetModelItem(modelsData core.ModelList, modelID string) *core.ModelInfo {
	for i := range modelsData.Data {
		if modelsData.Data[i].ID == modelID {
			return &modelsData.Data[i]
		}
	}
	return nil
}

// GetCatalog loads both the models list response and the raw catalog
func GetCatalog(path string, logger core.Logger) (core.ModelList, core.CatalogConfig, error) {
	modelsData, err := LoadModels(path, logger)
	if err != nil {
		return modelsData, core.CatalogConfig{}, fmt.Errorf("failed to load models: %w", err)
	}

	catalog, err := LoadModelCatalog(path)
	if err != nil {
		return modelsData, core.CatalogConfig{}, fmt.Errorf("failed to load model catalog: %w", err)
	}

	return modelsData, catalog, nil
}

// LoadServerConfigFromEnv loads server config from environment variables
func LoadServerConfigFromEnv(logger core.Logger) (ServerConfig, error) {
	clientAPIKeys := util.ParseEnvList(os.Getenv("CLIENT_API_KEYS"))
	if len(clientAPIKeys) == 0 {
		logger.Warn("CLIENT_API_KEYS environment variable is empty, API runs in open mode")
	} else {
		logger.Info("Loaded %d client API keys", len(clientAPIKeys))
	}

	rateLimit := core.DefaultRateLimit
	if raw := os.Getenv("RATE_LIMIT"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			logger.Warn("Invalid RATE_LIMIT %q, using default %d", raw, core.DefaultRateLimit)
		} else {
			rateLimit = parsed
		}
	}

	config := ServerConfig{
		Port:             util.GetEnvWithDefault("PORT", core.DefaultPort),
		GinMode:          util.GetEnvWithDefault("GIN_MODE", core.DefaultGinMode),
		ClientAPIKeys:    clientAPIKeys,
		RateLimit:        rateLimit,
		RedisURL:         os.Getenv("REDIS_URL"),
		ModelsConfigPath: util.GetEnvWithDefault("MODELS_CONFIG_PATH", core.DefaultModelsConfigPath),
	}

	return config, nil
}
