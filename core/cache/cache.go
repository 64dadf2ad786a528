package cache

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"sportloan.GO/config"
)

// Cache is a thread-safe key-value store over sync.Map with optional Redis
// write-through: when config.RedisClient is configured, values are mirrored
// there so multiple instances share warm dashboard figures.
type Cache struct {
	m sync.Map
}

var (
	once     sync.Once
	instance *Cache
)

func GetInstance() *Cache {
	once.Do(func() {
		instance = NewCache()
	})
	return instance
}

func NewCache() *Cache {
	return &Cache{}
}

// cacheItem holds a value and its expiration time.
type cacheItem struct {
	Value     interface{}
	ExpiresAt int64 // unix nanoseconds; 0 means no expiration
}

// Set stores a value with an optional TTL in seconds (0 = no expiration).
func (c *Cache) Set(key string, value interface{}, ttl int64) {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = time.Now().Add(time.Duration(ttl) * time.Second).UnixNano()
	}
	c.m.Store(key, cacheItem{Value: value, ExpiresAt: expiresAt})

	if rc := config.RedisClient; rc != nil {
		if data, err := json.Marshal(value); err == nil {
			rc.Set(config.RedisCtx(), key, data, time.Duration(ttl)*time.Second)
		}
	}
}

// Get retrieves a value from the local map. Returns (value, true) if present
// and not expired.
func (c *Cache) Get(key string) (interface{}, bool) {
	v, ok := c.m.Load(key)
	if !ok {
		return nil, false
	}
	item, isItem := v.(cacheItem)
	if !isItem {
		return v, true
	}
	if item.ExpiresAt > 0 && time.Now().UnixNano() > item.ExpiresAt {
		c.m.Delete(key)
		return nil, false
	}
	return item.Value, true
}

// GetInto decodes a cached value into dest, checking the local map first and
// Redis second. Returns false on miss.
func (c *Cache) GetInto(key string, dest interface{}) bool {
	if v, ok := c.Get(key); ok {
		data, err := json.Marshal(v)
		if err != nil {
			return false
		}
		return json.Unmarshal(data, dest) == nil
	}
	rc := config.RedisClient
	if rc == nil {
		return false
	}
	data, err := rc.Get(config.RedisCtx(), key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

func (c *Cache) Delete(key string) {
	c.m.Delete(key)
	if rc := config.RedisClient; rc != nil {
		rc.Del(config.RedisCtx(), key)
	}
}

func makeCompositeKey(keys ...interface{}) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%v", k)
	}
	return strings.Join(parts, "|")
}

// SetN and GetN address values by composite key.
func (c *Cache) SetN(keys []interface{}, value interface{}, ttl int64) {
	c.Set(makeCompositeKey(keys...), value, ttl)
}

func (c *Cache) GetN(keys ...interface{}) (interface{}, bool) {
	return c.Get(makeCompositeKey(keys...))
}
