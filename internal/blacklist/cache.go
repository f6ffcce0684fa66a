package blacklist

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/baseclean/baseclean/internal/assets"
)

// DefaultTTL is how long a fetched blacklist stays fresh.
const DefaultTTL = 24 * time.Hour

// ErrNoData means no blacklist has ever been fetched successfully, so not
// even stale data is available.
var ErrNoData = errors.New("blacklist: no data available")

// Provider fetches the community blacklist from its upstream source.
type Provider interface {
	Fetch(ctx context.Context) (map[string]bool, error)
}

// Stats exposes cache observability fields.
type Stats struct {
	Size      int
	LastFetch time.Time
	CacheAge  time.Duration
}

// Cache holds the community blacklist behind a TTL with stale fallback.
// Refreshes are deduplicated: concurrent callers during a refresh await the
// same in-flight fetch. The cached set is the only mutable shared state in
// the classification path; all access goes through the mutex.
type Cache struct {
	provider Provider
	ttl      time.Duration
	logger   *slog.Logger

	mu        sync.RWMutex
	data      map[string]bool
	fetchedAt time.Time

	group singleflight.Group
	nowFn func() time.Time
}

func New(provider Provider, ttl time.Duration, logger *slog.Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		provider: provider,
		ttl:      ttl,
		logger:   logger,
		nowFn:    time.Now,
	}
}

// Lookup reports whether an address is on the community blacklist. A failed
// refresh serves last-known-good data; ErrNoData only when nothing has ever
// been fetched.
func (c *Cache) Lookup(ctx context.Context, address string) (bool, error) {
	data, err := c.current(ctx)
	if err != nil {
		return false, err
	}
	return data[strings.ToLower(strings.TrimSpace(address))], nil
}

// Annotate sets the advisory Flagged bit on each token. The flag is surfaced
// to the user independently and never OR'd into the spam verdict. Annotation
// is best-effort: with no data available, tokens pass through unflagged.
func (c *Cache) Annotate(ctx context.Context, tokens []assets.Token) []assets.Token {
	data, err := c.current(ctx)
	if err != nil {
		return tokens
	}
	for i := range tokens {
		tokens[i].Flagged = data[tokens[i].Key()]
	}
	return tokens
}

// Stats returns a snapshot of cache state for observability.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := Stats{Size: len(c.data), LastFetch: c.fetchedAt}
	if !c.fetchedAt.IsZero() {
		s.CacheAge = c.nowFn().Sub(c.fetchedAt)
	}
	return s
}

// current returns fresh data, refreshing through the single-flight group when
// the TTL has lapsed.
func (c *Cache) current(ctx context.Context) (map[string]bool, error) {
	c.mu.RLock()
	data, fetchedAt := c.data, c.fetchedAt
	c.mu.RUnlock()

	if data != nil && c.nowFn().Sub(fetchedAt) < c.ttl {
		return data, nil
	}

	got, err, _ := c.group.Do("refresh", func() (any, error) {
		// Re-check under the group: another caller may have refreshed while
		// this one waited for the flight slot.
		c.mu.RLock()
		cur, at := c.data, c.fetchedAt
		c.mu.RUnlock()
		if cur != nil && c.nowFn().Sub(at) < c.ttl {
			return cur, nil
		}

		fresh, err := c.provider.Fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.data = fresh
		c.fetchedAt = c.nowFn()
		c.mu.Unlock()
		c.logger.Info("blacklist refreshed", "size", len(fresh))
		return fresh, nil
	})
	if err != nil {
		if data != nil {
			c.logger.Warn("blacklist refresh failed, serving stale data",
				"error", err, "age", c.nowFn().Sub(fetchedAt))
			return data, nil
		}
		return nil, errors.Join(ErrNoData, err)
	}
	return got.(map[string]bool), nil
}
