package room

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	listCacheKey = "rooms:list"
	listCacheTTL = 5 * time.Minute
)

// Cache is a read-through cache for the room list. The catalog is small and
// read-heavy; every public page load hits it. A nil client disables caching.
type Cache struct {
	redis *redis.Client
}

// NewCache creates a room cache. redis may be nil.
func NewCache(redis *redis.Client) *Cache {
	return &Cache{redis: redis}
}

// GetList returns the cached room list, or nil on miss.
func (c *Cache) GetList(ctx context.Context) []*Response {
	if c.redis == nil {
		return nil
	}

	data, err := c.redis.Get(ctx, listCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Msg("Room list cache read failed")
		}
		return nil
	}

	var rooms []*Response
	if err := json.Unmarshal(data, &rooms); err != nil {
		// Stale or corrupt payload; drop it and fall through to the DB.
		c.redis.Del(ctx, listCacheKey)
		return nil
	}
	return rooms
}

// SetList stores the room list.
func (c *Cache) SetList(ctx context.Context, rooms []*Response) {
	if c.redis == nil {
		return
	}

	data, err := json.Marshal(rooms)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, listCacheKey, data, listCacheTTL).Err(); err != nil {
		log.Warn().Err(err).Msg("Room list cache write failed")
	}
}

// Invalidate drops the cached list. Called on every catalog write.
func (c *Cache) Invalidate(ctx context.Context) {
	if c.redis == nil {
		return
	}
	if err := c.redis.Del(ctx, listCacheKey).Err(); err != nil {
		log.Warn().Err(err).Msg("Room list cache invalidation failed")
	}
}
