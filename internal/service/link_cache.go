package service

import (
	"encoding/json"

	"github.com/gomodule/redigo/redis"
	"go.uber.org/zap"

	"shrinklink/constant"
	"shrinklink/internal/model"
)

// linkCache caches resolved links in redis, including negative entries for
// unknown codes so repeated probing cannot hammer the store. All operations
// are best effort; a nil pool disables caching entirely.
type linkCache struct {
	pool *redis.Pool
}

// get returns (link, found). A found nil link is a cached negative entry.
func (c *linkCache) get(shortCode string) (*model.Link, bool) {
	if c.pool == nil {
		return nil, false
	}
	conn := c.pool.Get()
	defer closeConn(conn)

	key := constant.GetLinkCacheKey(shortCode)
	cached, err := redis.Bytes(conn.Do("GET", key))
	if err != nil {
		if err != redis.ErrNil {
			zap.L().Warn("Error getting from Redis",
				zap.String("cache_key", key),
				zap.Error(err))
		}
		return nil, false
	}
	if len(cached) == 0 {
		return nil, true
	}
	var link model.Link
	if err := json.Unmarshal(cached, &link); err != nil {
		zap.L().Warn("Failed to unmarshal cached link",
			zap.String("cache_key", key),
			zap.Error(err))
		return nil, false
	}
	return &link, true
}

func (c *linkCache) set(link *model.Link) {
	if c.pool == nil {
		return
	}
	conn := c.pool.Get()
	defer closeConn(conn)

	key := constant.GetLinkCacheKey(link.ShortCode)
	value, err := json.Marshal(link)
	if err != nil {
		return
	}
	if _, err := conn.Do("SET", key, value, "EX", constant.LinkCacheTTL); err != nil {
		zap.L().Warn("Failed to cache link",
			zap.String("cache_key", key),
			zap.Error(err))
	}
}

// setNegative caches an empty value so lookups of unknown codes short-circuit.
func (c *linkCache) setNegative(shortCode string) {
	if c.pool == nil {
		return
	}
	conn := c.pool.Get()
	defer closeConn(conn)

	key := constant.GetLinkCacheKey(shortCode)
	if _, err := conn.Do("SET", key, "", "EX", constant.NegativeLinkCacheTTL); err != nil {
		zap.L().Warn("Failed to cache negative entry",
			zap.String("cache_key", key),
			zap.Error(err))
	}
}

func (c *linkCache) invalidate(shortCode string) {
	if c.pool == nil {
		return
	}
	conn := c.pool.Get()
	defer closeConn(conn)

	key := constant.GetLinkCacheKey(shortCode)
	if _, err := conn.Do("DEL", key); err != nil {
		zap.L().Warn("Failed to drop cached link",
			zap.String("cache_key", key),
			zap.Error(err))
	}
}

// dropPending discards the buffered click counter of a deleted link so the
// key cannot outlive its row; FlushClicks only drains surviving links.
func (c *linkCache) dropPending(shortCode string) {
	if c.pool == nil {
		return
	}
	conn := c.pool.Get()
	defer closeConn(conn)

	key := constant.GetPendingClicksKey(shortCode)
	if _, err := conn.Do("DEL", key); err != nil {
		zap.L().Warn("Failed to drop pending click counter",
			zap.String("key", key),
			zap.Error(err))
	}
}

func closeConn(conn redis.Conn) {
	if err := conn.Close(); err != nil {
		zap.L().Warn("Failed to close Redis connection", zap.Error(err))
	}
}
