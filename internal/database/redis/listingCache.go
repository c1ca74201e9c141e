package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"eventboard/internal/entity"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const listingKeyPrefix = "events:list:"

// ListingCache stores rendered listing pages keyed by (filter, pageSize,
// page). Entries expire after the configured TTL and the whole keyspace is
// dropped whenever an event is created, edited or deleted.
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewListingCache(client *redis.Client, ttl time.Duration) *ListingCache {
	return &ListingCache{
		client: client,
		ttl:    ttl,
	}
}

func listingKey(req entity.ListingRequest) string {
	return fmt.Sprintf("%s%s:%d:%d", listingKeyPrefix, req.Filter, req.PageSize, req.Page)
}

func (c *ListingCache) Get(ctx context.Context, req entity.ListingRequest) (*entity.ListingResult, bool) {
	data, err := c.client.Get(ctx, listingKey(req)).Result()
	if err != nil {
		if err != redis.Nil {
			logrus.Warnf("listing cache read failed: %v", err)
		}
		return nil, false
	}

	var result entity.ListingResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, false
	}

	return &result, true
}

func (c *ListingCache) Set(ctx context.Context, req entity.ListingRequest, result *entity.ListingResult) {
	data, err := json.Marshal(result)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, listingKey(req), data, c.ttl).Err(); err != nil {
		logrus.Warnf("listing cache write failed: %v", err)
	}
}

// InvalidateAll drops every cached listing page. Called after each write so
// readers never see a deleted or stale event.
func (c *ListingCache) InvalidateAll(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, listingKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			logrus.Warnf("listing cache invalidation failed for %s: %v", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		logrus.Warnf("listing cache invalidation scan failed: %v", err)
	}
}
