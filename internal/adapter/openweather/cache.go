package openweather

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/couchcryptid/urban-risk-service/internal/domain"
	"github.com/couchcryptid/urban-risk-service/internal/observability"
	"github.com/jonboulle/clockwork"
)

// CachedProvider wraps a Provider with in-memory LRU caches whose entries
// expire after a fixed TTL. Errors are never cached.
type CachedProvider struct {
	inner    Provider
	metrics  *observability.Metrics
	weather  *lruCache[Weather]
	forecast *lruCache[domain.RawForecast]
	air      *lruCache[AirQuality]
}

// NewCachedProvider creates a cache decorator around a provider.
func NewCachedProvider(inner Provider, maxEntries int, ttl time.Duration, clock clockwork.Clock, metrics *observability.Metrics) *CachedProvider {
	return &CachedProvider{
		inner:    inner,
		metrics:  metrics,
		weather:  newLRUCache[Weather](maxEntries, ttl, clock),
		forecast: newLRUCache[domain.RawForecast](maxEntries, ttl, clock),
		air:      newLRUCache[AirQuality](maxEntries, ttl, clock),
	}
}

func (c *CachedProvider) CurrentWeather(ctx context.Context, location string) (Weather, error) {
	return cached(c, c.weather, "weather", locationKey(location), func() (Weather, error) {
		return c.inner.CurrentWeather(ctx, location)
	})
}

func (c *CachedProvider) Forecast(ctx context.Context, location string) (domain.RawForecast, error) {
	return cached(c, c.forecast, "forecast", locationKey(location), func() (domain.RawForecast, error) {
		return c.inner.Forecast(ctx, location)
	})
}

func (c *CachedProvider) AirPollution(ctx context.Context, lat, lon float64) (AirQuality, error) {
	key := fmt.Sprintf("%.4f,%.4f", lat, lon)
	return cached(c, c.air, "air_pollution", key, func() (AirQuality, error) {
		return c.inner.AirPollution(ctx, lat, lon)
	})
}

func cached[V any](c *CachedProvider, cache *lruCache[V], endpoint, key string, fetch func() (V, error)) (V, error) {
	if v, ok := cache.get(key); ok {
		c.metrics.ProviderCache.WithLabelValues(endpoint, "hit").Inc()
		return v, nil
	}
	c.metrics.ProviderCache.WithLabelValues(endpoint, "miss").Inc()

	v, err := fetch()
	if err != nil {
		return v, err
	}
	cache.put(key, v)
	return v, nil
}

func locationKey(location string) string {
	return strings.ToLower(strings.TrimSpace(location))
}

// lruCache is a thread-safe LRU cache with per-entry expiry.
type lruCache[V any] struct {
	maxEntries int
	ttl        time.Duration
	clock      clockwork.Clock
	mu         sync.Mutex
	entries    map[string]*entry[V]
	head       *entry[V] // most recently used
	tail       *entry[V] // least recently used
}

type entry[V any] struct {
	key     string
	value   V
	expires time.Time
	prev    *entry[V]
	next    *entry[V]
}

func newLRUCache[V any](maxEntries int, ttl time.Duration, clock clockwork.Clock) *lruCache[V] {
	return &lruCache[V]{
		maxEntries: maxEntries,
		ttl:        ttl,
		clock:      clock,
		entries:    make(map[string]*entry[V]),
	}
}

func (c *lruCache[V]) get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if !c.clock.Now().Before(e.expires) {
		delete(c.entries, key)
		c.remove(e)
		return zero, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache[V]) put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expires := c.clock.Now().Add(c.ttl)
	if e, ok := c.entries[key]; ok {
		e.value = value
		e.expires = expires
		c.moveToFront(e)
		return
	}

	e := &entry[V]{key: key, value: value, expires: expires}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache[V]) moveToFront(e *entry[V]) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache[V]) addToFront(e *entry[V]) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache[V]) remove(e *entry[V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache[V]) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
