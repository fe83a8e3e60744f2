package weather

import (
	"sync"

	"github.com/EvgDevt/weather-app/pkg/models"
)

// Cache holds canonical (Celsius) query results keyed by lowercase city.
// There is no per-key TTL and no eviction policy; a scheduled job clears
// the whole cache on a fixed interval to bound staleness.
//
// Only canonical values are cached. Unit conversion happens per request on
// the way out, so a cached entry can never leak one caller's unit system
// into another caller's response.
type Cache struct {
	mu       sync.RWMutex
	latest   map[string]models.WeatherData
	averages map[string]float64
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{
		latest:   make(map[string]models.WeatherData),
		averages: make(map[string]float64),
	}
}

// GetLatest returns the cached latest reading for a city key.
func (c *Cache) GetLatest(key string) (models.WeatherData, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	w, ok := c.latest[key]
	return w, ok
}

// SetLatest caches the latest reading for a city key.
func (c *Cache) SetLatest(key string, w models.WeatherData) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.latest[key] = w
}

// GetAverage returns the cached seven-day average (Celsius) for a city key.
func (c *Cache) GetAverage(key string) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	avg, ok := c.averages[key]
	return avg, ok
}

// SetAverage caches the seven-day average (Celsius) for a city key.
func (c *Cache) SetAverage(key string, avg float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.averages[key] = avg
}

// Flush drops every cached entry.
func (c *Cache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.latest = make(map[string]models.WeatherData)
	c.averages = make(map[string]float64)
}

// Len returns the total number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.latest) + len(c.averages)
}
