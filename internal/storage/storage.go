package storage

import (
	"context"
	"os"

	"model2curl/internal/core"
	"model2curl/internal/util"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

// FileStorage implements persistence using JSON files
type FileStorage struct {
	filePath string
}

func NewFileStorage(filePath string) *FileStorage {
	if filePath == "" {
		filePath = core.StatsFilePath
	}
	return &FileStorage{filePath: filePath}
}

func (fs *FileStorage) SaveStats(stats *core.RenderStats) error {
	data, err := sonic.MarshalIndent(stats, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(fs.filePath, data, core.FilePermissionReadWrite)
}

func (fs *FileStorage) LoadStats() (*core.RenderStats, error) {
	data, err := os.ReadFile(fs.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &core.RenderStats{RenderHistory: []core.RenderRecord{}}, nil
		}
		return nil, err
	}

	var stats core.RenderStats
	if err := sonic.Unmarshal(data, &stats); err != nil {
		return nil, err
	}

	if stats.RenderHistory == nil {
		stats.RenderHistory = []core.RenderRecord{}
	}

	return &stats, nil
}

func (fs *FileStorage) Close() error {
	return nil
}

// RedisStorage implements persistence using Redis
type RedisStorage struct {
	client *redis.Client
	ctx    context.Context
	key    string
}

// RedisStorageConfig Redis storage config
type RedisStorageConfig struct {
	URL string
	Key string
}

func NewRedisStorage(config RedisStorageConfig) (*RedisStorage, error) {
	opts, err := redis.ParseURL(config.URL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	ctx := context.Background()

	_, err = client.Ping(ctx).Result()
	if err != nil {
		return nil, err
	}

	key := config.Key
	if key == "" {
		key = core.StatsRedisKey
	}

	return &RedisStorage{client: client, ctx: ctx, key: key}, nil
}

func (rs *RedisStorage) SaveStats(stats *core.RenderStats) error {
	data, err := util.MarshalJSON(stats)
	if err != nil {
		return err
	}
	return rs.client.Set(rs.ctx, rs.key, data, 0).Err()
}

func (rs *RedisStorage) LoadStats() (*core.RenderStats, error) {
	val, err := rs.client.Get(rs.ctx, rs.key).Result()
	if err != nil {
		if err == redis.Nil {
			return &core.RenderStats{RenderHistory: []core.RenderRecord{}}, nil
		}
		return nil, err
	}

	var stats core.RenderStats
	if err := sonic.Unmarshal([]byte(val), &stats); err != nil {
		return nil, err
	}

	if stats.RenderHistory == nil {
		stats.RenderHistory = []core.RenderRecord{}
	}

	return &stats, nil
}

func (rs *RedisStorage) Close() error {
	return rs.client.Close()
}

// InitStorage selects Redis when REDIS_URL is set and reachable, falling
// back to file storage otherwise.
func InitStorage(logger core.Logger) (core.StorageInterface, error) {
	if logger == nil {
		logger = &core.NopLogger{}
	}
	redisURL := os.Getenv("REDIS_URL")

	if redisURL != "" {
		redisStorage, err := NewRedisStorage(RedisStorageConfig{
			URL: redisURL,
			Key: core.StatsRedisKey,
		})
		if err != nil {
			logger.Warn("Failed to initialize Redis storage: %v, falling back to file storage", err)
			return NewFileStorage(core.StatsFilePath), nil
		}
		logger.Info("Using Redis storage")
		return redisStorage, nil
	}

	logger.Info("Using file storage")
	return NewFileStorage(core.StatsFilePath), nil
}
