package inmemorycache

import (
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"ulascansenturk/farm-records/internal/weather"
)

type cacheEntry struct {
	data       []byte
	expiration time.Time
}

// Cache holds forecast views per coordinate pair. Entries are stored
// serialized so callers never share slices or pointers.
type Cache interface {
	Get(coords weather.Coordinates) ([]weather.Observation, bool, error)
	Set(coords weather.Coordinates, days []weather.Observation, ttl time.Duration) error
}

type InMemoryCache struct {
	cache           map[string]cacheEntry
	mutex           sync.Mutex
	clock           clockwork.Clock
	cleanupInterval time.Duration
	stop            chan struct{}
	stopOnce        sync.Once
}

func NewInMemoryCacheProvider(clock clockwork.Clock, cleanupInterval time.Duration) *InMemoryCache {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	provider := &InMemoryCache{
		cache:           make(map[string]cacheEntry),
		clock:           clock,
		cleanupInterval: cleanupInterval,
		stop:            make(chan struct{}),
	}

	go provider.startCleanup()

	return provider
}

func cacheKey(coords weather.Coordinates) string {
	return strconv.FormatFloat(coords.Lat, 'f', 4, 64) + "," + strconv.FormatFloat(coords.Lon, 'f', 4, 64)
}

func (m *InMemoryCache) Get(coords weather.Coordinates) ([]weather.Observation, bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	key := cacheKey(coords)
	entry, exists := m.cache[key]
	if !exists {
		return nil, false, nil
	}

	if !m.clock.Now().Before(entry.expiration) {
		delete(m.cache, key)
		return nil, false, nil
	}

	var days []weather.Observation
	if err := json.Unmarshal(entry.data, &days); err != nil {
		return nil, false, err
	}

	return days, true, nil
}

func (m *InMemoryCache) Set(coords weather.Coordinates, days []weather.Observation, ttl time.Duration) error {
	jsonData, err := json.Marshal(days)
	if err != nil {
		return err
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.cache[cacheKey(coords)] = cacheEntry{
		data:       jsonData,
		expiration: m.clock.Now().Add(ttl),
	}

	return nil
}

func (m *InMemoryCache) Len() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.cache)
}

// Stop ends the cleanup loop. Safe to call more than once.
func (m *InMemoryCache) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
}

func (m *InMemoryCache) startCleanup() {
	ticker := m.clock.NewTicker(m.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.Chan():
			m.evictExpired()
		}
	}
}

func (m *InMemoryCache) evictExpired() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	now := m.clock.Now()
	for k, v := range m.cache {
		if !now.Before(v.expiration) {
			delete(m.cache, k)
		}
	}
}
