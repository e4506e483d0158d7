package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"partybets/domain/entities"
	"partybets/domain/interfaces"
	"partybets/infrastructure/observability"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// ConnectRedis opens a Redis client and checks it responds
func ConnectRedis(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	log.WithField("addr", addr).Info("Connected to Redis")
	return rdb, nil
}

// RedisSummaryCache stores party summaries as JSON with a TTL
type RedisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSummaryCache creates a summary cache on the given client
func NewRedisSummaryCache(client *redis.Client, ttl time.Duration) *RedisSummaryCache {
	return &RedisSummaryCache{
		client: client,
		ttl:    ttl,
	}
}

func summaryKey(partyID int64) string {
	return fmt.Sprintf("partybets:summary:%d", partyID)
}

// Get returns the cached summary, or nil on a miss
func (c *RedisSummaryCache) Get(ctx context.Context, partyID int64) (*entities.PartySummary, error) {
	data, err := c.client.Get(ctx, summaryKey(partyID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached summary: %w", err)
	}

	var summary entities.PartySummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("failed to decode cached summary: %w", err)
	}

	return &summary, nil
}

// Set stores a summary until the TTL expires
func (c *RedisSummaryCache) Set(ctx context.Context, summary *entities.PartySummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}

	if err := c.client.Set(ctx, summaryKey(summary.PartyID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache summary: %w", err)
	}
	return nil
}

// Invalidate drops the cached summary of a party
func (c *RedisSummaryCache) Invalidate(ctx context.Context, partyID int64) error {
	if err := c.client.Del(ctx, summaryKey(partyID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate summary: %w", err)
	}
	return nil
}

// InstrumentedSummaryCache counts lookups of another summary cache
type InstrumentedSummaryCache struct {
	interfaces.SummaryCache
	metrics *observability.MetricsProvider
}

// NewInstrumentedSummaryCache wraps a cache so every Get is counted as a hit, miss or error
func NewInstrumentedSummaryCache(inner interfaces.SummaryCache, metrics *observability.MetricsProvider) *InstrumentedSummaryCache {
	return &InstrumentedSummaryCache{
		SummaryCache: inner,
		metrics:      metrics,
	}
}

// Get delegates to the wrapped cache and records the result
func (c *InstrumentedSummaryCache) Get(ctx context.Context, partyID int64) (*entities.PartySummary, error) {
	summary, err := c.SummaryCache.Get(ctx, partyID)
	switch {
	case err != nil:
		c.metrics.RecordCacheLookup(observability.CacheResultError)
	case summary == nil:
		c.metrics.RecordCacheLookup(observability.CacheResultMiss)
	default:
		c.metrics.RecordCacheLookup(observability.CacheResultHit)
	}
	return summary, err
}
