package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/repotutor/repotutor-backend/internal/llm"
	"github.com/repotutor/repotutor-backend/internal/logger"
)

const (
	modelCacheKey = "repotutor:models"
	modelCacheTTL = 10 * time.Minute
)

// ModelCatalog lists selectable models, satisfied by llm.Client.
type ModelCatalog interface {
	ListModels(ctx context.Context) ([]llm.Model, error)
}

type ModelsService interface {
	List(ctx context.Context) ([]llm.Model, error)
}

// modelsService fronts the provider catalog with a Redis cache.
// Without Redis configured every call goes straight upstream.
type modelsService struct {
	log     *logger.Logger
	catalog ModelCatalog
	cache   *redis.Client
}

func NewModelsService(baseLog *logger.Logger, catalog ModelCatalog, cache *redis.Client) ModelsService {
	return &modelsService{
		log:     baseLog.With("service", "ModelsService"),
		catalog: catalog,
		cache:   cache,
	}
}

func (ms *modelsService) List(ctx context.Context) ([]llm.Model, error) {
	if ms.cache != nil {
		if raw, err := ms.cache.Get(ctx, modelCacheKey).Bytes(); err == nil {
			var models []llm.Model
			if err := json.Unmarshal(raw, &models); err == nil {
				return models, nil
			}
			// Corrupt cache entry; fall through to a fresh fetch.
			ms.cache.Del(ctx, modelCacheKey)
		}
	}

	models, err := ms.catalog.ListModels(ctx)
	if err != nil {
		return nil, err
	}

	if ms.cache != nil {
		if raw, err := json.Marshal(models); err == nil {
			if err := ms.cache.Set(ctx, modelCacheKey, raw, modelCacheTTL).Err(); err != nil {
				ms.log.Warn("model cache write failed", "error", err)
			}
		}
	}
	return models, nil
}
