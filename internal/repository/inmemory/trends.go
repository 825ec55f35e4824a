package inmemory

import (
	"sync"
	"time"

	caissedomain "fonds-social-go/internal/domain/caisse"
)

type TrendsCache struct {
	mu        sync.RWMutex
	value     []caissedomain.TrendPoint
	expiresAt time.Time
}

func NewTrendsCache() *TrendsCache {
	return &TrendsCache{}
}

func (c *TrendsCache) Get() ([]caissedomain.TrendPoint, bool) {
	now := time.Now()

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.value == nil || !c.expiresAt.After(now) {
		return nil, false
	}
	return clonePoints(c.value), true
}

func (c *TrendsCache) Set(points []caissedomain.TrendPoint, ttl time.Duration) {
	if ttl <= 0 {
		c.Invalidate()
		return
	}

	c.mu.Lock()
	c.value = clonePoints(points)
	c.expiresAt = time.Now().Add(ttl)
	c.mu.Unlock()
}

func (c *TrendsCache) Invalidate() {
	c.mu.Lock()
	c.value = nil
	c.mu.Unlock()
}

func clonePoints(points []caissedomain.TrendPoint) []caissedomain.TrendPoint {
	cloned := make([]caissedomain.TrendPoint, len(points))
	copy(cloned, points)
	return cloned
}
