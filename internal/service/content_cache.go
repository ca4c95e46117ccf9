package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"clinic-site-api/internal/domain/entity"
	"clinic-site-api/internal/domain/repository"
	"clinic-site-api/internal/infrastructure/cache"
	"clinic-site-api/internal/infrastructure/metrics"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// Timeout for individual Redis operations
	snapshotRedisTimeout = 2 * time.Second

	// Interval for dropping slugs nobody asked for recently
	entryCleanupInterval = 10 * time.Minute

	// How long a slug must be unused before its entry is dropped
	entryStaleThreshold = time.Hour
)

// ContentCache serves content snapshots per practice slug.
//
// Lookup order: process memory, then Redis (shared across replicas), then the
// backend. When the backend refresh fails the last good snapshot is served.
// Refreshes of one slug are serialized so concurrent callers share one fetch.
type ContentCache struct {
	repo        repository.ContentRepository
	redisClient *redis.Client
	log         *logrus.Logger
	metrics     *metrics.SiteMetrics
	ttl         time.Duration
	now         func() time.Time

	entries sync.Map // map[string]*cacheEntry

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

type cacheEntry struct {
	mu       sync.Mutex
	snapshot atomic.Pointer[entity.ContentSnapshot]
	lastUsed atomic.Int64 // Unix timestamp
}

// NewContentCache starts the background entry cleanup. redisClient may be nil.
// Call Stop() during graceful shutdown.
func NewContentCache(repo repository.ContentRepository, redisClient *redis.Client, log *logrus.Logger, m *metrics.SiteMetrics, ttl time.Duration) *ContentCache {
	c := &ContentCache{
		repo:        repo,
		redisClient: redisClient,
		log:         log,
		metrics:     m,
		ttl:         ttl,
		now:         time.Now,
		stopChan:    make(chan struct{}),
	}

	c.wg.Add(1)
	go c.cleanupLoop()

	return c
}

// Stop is safe to call multiple times.
func (c *ContentCache) Stop() {
	if c.stopped.CompareAndSwap(false, true) {
		close(c.stopChan)
		c.wg.Wait()
		c.log.Info("ContentCache stopped")
	}
}

// Get returns a snapshot no older than the TTL, or the last good one when
// the backend cannot be reached.
func (c *ContentCache) Get(ctx context.Context, slug string) (*entity.ContentSnapshot, error) {
	e := c.entry(slug)
	if s := e.snapshot.Load(); s != nil && c.fresh(s) {
		c.metrics.ObserveSnapshot("memory")
		return s, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// another caller may have refreshed while we waited
	if s := e.snapshot.Load(); s != nil && c.fresh(s) {
		c.metrics.ObserveSnapshot("memory")
		return s, nil
	}

	if s := c.loadShared(ctx, slug); s != nil && c.fresh(s) {
		e.snapshot.Store(s)
		c.metrics.ObserveSnapshot("redis")
		return s, nil
	}

	fresh, err := c.repo.FetchWebsite(ctx, slug)
	if err != nil {
		if stale := e.snapshot.Load(); stale != nil {
			c.log.Warnf("Failed to refresh content for %s, serving snapshot from %s: %+v", slug, stale.FetchedAt.Format(time.RFC3339), err)
			c.metrics.ObserveSnapshot("stale")
			return stale, nil
		}
		return nil, err
	}

	fresh.FetchedAt = c.now()
	e.snapshot.Store(fresh)
	c.storeShared(ctx, slug, fresh)
	c.metrics.ObserveSnapshot("backend")
	return fresh, nil
}

// Invalidate forces the next Get to refresh. The current snapshot stays
// available as a stale fallback.
func (c *ContentCache) Invalidate(ctx context.Context, slug string) {
	e := c.entry(slug)
	e.mu.Lock()
	if s := e.snapshot.Load(); s != nil {
		expired := *s
		expired.FetchedAt = time.Time{}
		e.snapshot.Store(&expired)
	}
	e.mu.Unlock()

	if c.redisClient == nil {
		return
	}
	rctx, cancel := context.WithTimeout(ctx, snapshotRedisTimeout)
	defer cancel()
	if err := c.redisClient.Del(rctx, cache.SnapshotKeyPrefix+slug).Err(); err != nil {
		c.log.Warnf("Failed to delete cached snapshot for %s: %+v", slug, err)
	}
}

// ForSlug binds the cache to one practice.
func (c *ContentCache) ForSlug(slug string) SnapshotProvider {
	return slugSnapshots{cache: c, slug: slug}
}

type slugSnapshots struct {
	cache *ContentCache
	slug  string
}

func (s slugSnapshots) Snapshot(ctx context.Context) (*entity.ContentSnapshot, error) {
	return s.cache.Get(ctx, s.slug)
}

func (c *ContentCache) fresh(s *entity.ContentSnapshot) bool {
	return !s.FetchedAt.IsZero() && c.now().Sub(s.FetchedAt) < c.ttl
}

func (c *ContentCache) entry(slug string) *cacheEntry {
	v, _ := c.entries.LoadOrStore(slug, &cacheEntry{})
	e := v.(*cacheEntry)
	e.lastUsed.Store(c.now().Unix())
	return e
}

func (c *ContentCache) loadShared(ctx context.Context, slug string) *entity.ContentSnapshot {
	if c.redisClient == nil {
		return nil
	}
	rctx, cancel := context.WithTimeout(ctx, snapshotRedisTimeout)
	defer cancel()

	data, err := c.redisClient.Get(rctx, cache.SnapshotKeyPrefix+slug).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warnf("Failed to read cached snapshot for %s: %+v", slug, err)
		}
		return nil
	}

	var s entity.ContentSnapshot
	if err := json.Unmarshal(data, &s); err != nil {
		c.log.Warnf("Discarding unreadable cached snapshot for %s: %+v", slug, err)
		return nil
	}
	s.Normalize()
	return &s
}

func (c *ContentCache) storeShared(ctx context.Context, slug string, s *entity.ContentSnapshot) {
	if c.redisClient == nil {
		return
	}
	data, err := json.Marshal(s)
	if err != nil {
		c.log.Warnf("Failed to encode snapshot for %s: %+v", slug, err)
		return
	}
	rctx, cancel := context.WithTimeout(ctx, snapshotRedisTimeout)
	defer cancel()
	if err := c.redisClient.Set(rctx, cache.SnapshotKeyPrefix+slug, data, c.ttl).Err(); err != nil {
		c.log.Warnf("Failed to cache snapshot for %s: %+v", slug, err)
		return
	}
	c.log.Debugf("Cached snapshot for %s, TTL=%v", slug, c.ttl)
}

// cleanupLoop runs in background to drop entries of idle slugs
func (c *ContentCache) cleanupLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(entryCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			c.log.Debug("Content cache cleanup goroutine stopping")
			return
		case <-ticker.C:
			c.cleanupIdleEntries()
		}
	}
}

// cleanupIdleEntries skips entries that are mid-refresh
func (c *ContentCache) cleanupIdleEntries() {
	cutoff := c.now().Add(-entryStaleThreshold).Unix()
	var cleaned int

	c.entries.Range(func(key, value any) bool {
		e, ok := value.(*cacheEntry)
		if !ok {
			return true
		}
		if e.mu.TryLock() {
			if e.lastUsed.Load() < cutoff {
				c.entries.Delete(key)
				cleaned++
			}
			e.mu.Unlock()
		}
		return true
	})

	if cleaned > 0 {
		c.log.Debugf("Dropped %d idle content cache entries", cleaned)
	}
}
