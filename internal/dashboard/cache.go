package dashboard

import (
	"sync"

	"github.com/lehigh-university-libraries/gutenstats/internal/models"
)

type cacheKey struct {
	bookID  string
	version uint64
	k       int
}

// recommendationCache memoizes ranked lists. Keys carry the snapshot
// version, so entries from a replaced snapshot are never served.
type recommendationCache struct {
	entries map[cacheKey][]models.Recommendation
	size    int
	mu      sync.Mutex
}

func newRecommendationCache(size int) *recommendationCache {
	return &recommendationCache{
		entries: make(map[cacheKey][]models.Recommendation),
		size:    size,
	}
}

func (c *recommendationCache) get(key cacheKey) ([]models.Recommendation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	recs, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return clone(recs), true
}

func (c *recommendationCache) put(key cacheKey, recs []models.Recommendation) {
	if c.size <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.size {
		c.entries = make(map[cacheKey][]models.Recommendation)
	}
	c.entries[key] = clone(recs)
}

// prune drops entries computed against any version other than current
func (c *recommendationCache) prune(current uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		if key.version != current {
			delete(c.entries, key)
		}
	}
}

func (c *recommendationCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func clone(recs []models.Recommendation) []models.Recommendation {
	out := make([]models.Recommendation, len(recs))
	copy(out, recs)
	return out
}
