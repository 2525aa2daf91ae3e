package cache

import (
	"errors"
	"fmt"
	"time"

	"github.com/coocood/freecache"
)

type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) bool
	Clear()
}

var _ Cache = (*FreeCache)(nil)

// FreeCache is an in-process byte cache with per-entry expiry, backed by freecache.
type FreeCache struct {
	mainCache *freecache.Cache
}

// NewFreeCache creates a cache holding up to sizeMB megabytes (freecache minimum is 512KB).
func NewFreeCache(sizeMB int) *FreeCache {
	return &FreeCache{
		mainCache: freecache.NewCache(sizeMB * 1024 * 1024),
	}
}

func (c *FreeCache) Get(key string) ([]byte, bool) {
	value, err := c.mainCache.Get([]byte(key))
	if err != nil {
		return nil, false
	}
	return value, true
}

func (c *FreeCache) Set(key string, value []byte, ttl time.Duration) error {
	expireSeconds := int(ttl.Seconds())
	if expireSeconds <= 0 {
		return errors.New("cache ttl must be at least one second")
	}
	if err := c.mainCache.Set([]byte(key), value, expireSeconds); err != nil {
		return fmt.Errorf("cache set [%s]: %w", key, err)
	}
	return nil
}

func (c *FreeCache) Delete(key string) bool {
	return c.mainCache.Del([]byte(key))
}

func (c *FreeCache) Clear() {
	c.mainCache.Clear()
}
