package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"visit-dashboard-service/internal/statistics/core/domain"
	"visit-dashboard-service/internal/statistics/core/ports"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	DefaultKey = "dashboard:statistics"
	DefaultTTL = 30 * time.Second
)

// Client is the subset of *redis.Client the cache needs.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CachingFetcher serves the statistics record from Redis when it is fresh and
// falls through to next otherwise. Cache failures never fail a fetch.
type CachingFetcher struct {
	next   ports.StatisticsFetcherPort
	client Client
	key    string
	ttl    time.Duration
	logger *zap.Logger
}

var _ ports.StatisticsFetcherPort = (*CachingFetcher)(nil)

func NewCachingFetcher(next ports.StatisticsFetcherPort, client Client, key string, ttl time.Duration, logger *zap.Logger) *CachingFetcher {
	if key == "" {
		key = DefaultKey
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachingFetcher{
		next:   next,
		client: client,
		key:    key,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *CachingFetcher) FetchStatistics(ctx context.Context) (*domain.RawStatistics, error) {
	if raw := c.get(ctx); raw != nil {
		return raw, nil
	}

	raw, err := c.next.FetchStatistics(ctx)
	if err != nil || raw == nil {
		return raw, err
	}

	c.set(ctx, raw)
	return raw, nil
}

func (c *CachingFetcher) get(ctx context.Context) *domain.RawStatistics {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("failed to get statistics from cache", zap.Error(err), zap.String("key", c.key))
		}
		return nil
	}

	var raw domain.RawStatistics
	if err := json.Unmarshal(data, &raw); err != nil {
		c.logger.Warn("failed to unmarshal cached statistics", zap.Error(err))
		return nil
	}

	c.logger.Debug("cache hit for statistics", zap.String("key", c.key))
	return &raw
}

func (c *CachingFetcher) set(ctx context.Context, raw *domain.RawStatistics) {
	data, err := json.Marshal(raw)
	if err != nil {
		c.logger.Warn("failed to marshal statistics for cache", zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("failed to set statistics in cache", zap.Error(err), zap.String("key", c.key))
		return
	}

	c.logger.Debug("cached statistics", zap.String("key", c.key), zap.Duration("ttl", c.ttl))
}

// NewClient builds a go-redis client for addr.
func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}
