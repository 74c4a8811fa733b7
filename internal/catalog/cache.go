package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jonathan/opportunity-matcher/internal/matching"
)

const (
	skillCachePrefix = "catalog:skill:"
	orgCachePrefix   = "catalog:org:"
)

// Cache is a Redis-backed cache for skill and organization resolutions so the
// enrichment stage does not hit Postgres on every run. It is strictly
// cache-aside: misses and Redis failures fall through to the store.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache creates a cache over the given Redis client
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Cache{client: client, ttl: ttl}
}

// GetSkillName returns the cached display name for a canonical key
func (c *Cache) GetSkillName(ctx context.Context, key string) (string, bool) {
	name, err := c.client.Get(ctx, skillCachePrefix+key).Result()
	if err != nil {
		return "", false
	}
	return name, true
}

// SetSkillName caches the display name for a canonical key
func (c *Cache) SetSkillName(ctx context.Context, key, name string) {
	_ = c.client.Set(ctx, skillCachePrefix+key, name, c.ttl).Err()
}

// GetOrganization returns the cached organization metadata for a key
func (c *Cache) GetOrganization(ctx context.Context, key string) (*matching.Organization, bool) {
	raw, err := c.client.Get(ctx, orgCachePrefix+key).Result()
	if err != nil {
		return nil, false
	}
	var org matching.Organization
	if err := json.Unmarshal([]byte(raw), &org); err != nil {
		return nil, false
	}
	return &org, true
}

// SetOrganization caches organization metadata for a key
func (c *Cache) SetOrganization(ctx context.Context, key string, org *matching.Organization) {
	raw, err := json.Marshal(org)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, orgCachePrefix+key, raw, c.ttl).Err()
}
