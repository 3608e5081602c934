package mem

import (
	"sync"
	"time"

	"tripforge/internal/models/trip_models"
)

type ItineraryCacheInterface interface {
	Set(key string, result *trip_models.ItineraryResult, ttl time.Duration)
	Get(key string) (*trip_models.ItineraryResult, bool)
}

type cacheEntry struct {
	result    *trip_models.ItineraryResult
	expiresAt time.Time
}

// ItineraryCache is a TTL map for generated itineraries, keyed by a hash
// of the trip spec. Expired entries are dropped lazily on read and when
// the map grows past a soft cap.
type ItineraryCache struct {
	mu   sync.RWMutex
	data map[string]cacheEntry
}

const cacheSoftCap = 1000

func NewItineraryCache() *ItineraryCache {
	return &ItineraryCache{data: make(map[string]cacheEntry)}
}

func (c *ItineraryCache) Set(key string, result *trip_models.ItineraryResult, ttl time.Duration) {
	if key == "" || result == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[key] = cacheEntry{result: result, expiresAt: time.Now().Add(ttl)}

	if len(c.data) > cacheSoftCap {
		now := time.Now()
		for k, e := range c.data {
			if now.After(e.expiresAt) {
				delete(c.data, k)
			}
		}
	}
}

func (c *ItineraryCache) Get(key string) (*trip_models.ItineraryResult, bool) {
	c.mu.RLock()
	e, ok := c.data[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.data, key)
		c.mu.Unlock()
		return nil, false
	}
	return e.result, true
}
