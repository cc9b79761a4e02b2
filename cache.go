package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"activiti-query/domain"
)

type cacheStore interface {
	ListVariables(ctx context.Context, processInstanceID string, limit int32) ([]domain.VariableEntity, error)
}

type cacheRefresher interface {
	RefreshVariables(ctx context.Context, processInstanceID string)
}

type cacheUpdater struct {
	store        cacheStore
	redis        *redis.Client
	variablesTTL time.Duration
	limit        int32
	now          func() time.Time
}

const variablesCachePrefix = "pv"

type cachedVariable struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Type            string  `json:"type,omitempty"`
	Value           string  `json:"value,omitempty"`
	TaskID          *string `json:"taskId,omitempty"`
	ExecutionID     string  `json:"executionId,omitempty"`
	CreateTime      int64   `json:"createTime"`
	LastUpdatedTime int64   `json:"lastUpdatedTime"`
}

type cachedVariables struct {
	Version           int              `json:"version"`
	CachedAt          time.Time        `json:"cachedAt"`
	ProcessInstanceID string           `json:"processInstanceId"`
	LastUpdatedAt     int64            `json:"lastUpdatedAt"`
	Variables         []cachedVariable `json:"variables"`
}

func newCacheUpdater(store cacheStore, redis *redis.Client, limit int32, variablesTTL time.Duration) *cacheUpdater {
	if limit <= 0 {
		limit = 1
	}
	if variablesTTL <= 0 {
		variablesTTL = 12 * time.Hour
	}
	return &cacheUpdater{
		store:        store,
		redis:        redis,
		variablesTTL: variablesTTL,
		limit:        limit,
		now:          time.Now,
	}
}

func (c *cacheUpdater) RefreshVariables(ctx context.Context, processInstanceID string) {
	if c == nil || c.redis == nil || c.store == nil {
		return
	}
	logger := log.WithField("processInstance", processInstanceID)
	vars, err := c.store.ListVariables(ctx, processInstanceID, c.limit)
	if err != nil {
		logger.WithError(err).Error("failed to list variables for cache")
		return
	}
	key := cacheKey(processInstanceID, variablesCachePrefix)
	if len(vars) == 0 {
		if err := c.redis.Del(ctx, key).Err(); err != nil {
			logger.WithError(err).Error("failed to delete variables cache entry")
		}
		return
	}
	entries := make([]cachedVariable, 0, len(vars))
	var maxTs int64
	for _, v := range vars {
		entries = append(entries, cachedVariable{
			ID:              v.VariableID,
			Name:            v.Name,
			Type:            v.Type,
			Value:           v.Value,
			TaskID:          v.TaskID,
			ExecutionID:     v.ExecutionID,
			CreateTime:      v.CreateTime,
			LastUpdatedTime: v.LastUpdatedTime,
		})
		if v.LastUpdatedTime > maxTs {
			maxTs = v.LastUpdatedTime
		}
	}
	payload := cachedVariables{
		Version:           1,
		CachedAt:          c.now().UTC(),
		ProcessInstanceID: processInstanceID,
		LastUpdatedAt:     maxTs,
		Variables:         entries,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		logger.WithError(err).Error("failed to marshal variables cache payload")
		return
	}
	if err := c.redis.Set(ctx, key, data, c.variablesTTL).Err(); err != nil {
		logger.WithError(err).Error("failed to store variables cache entry")
	}
}

func cacheKey(id, prefix string) string {
	return id + ":" + prefix
}
